package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/sandeshq/quillhub/internal/config"
	"github.com/sandeshq/quillhub/internal/db"
	routes "github.com/sandeshq/quillhub/internal/http"
	"github.com/sandeshq/quillhub/internal/models"
	"github.com/sandeshq/quillhub/internal/storage"
)

func main() {
	// Environment variables may come from a .env file in development or
	// directly from the environment in production.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	database, err := db.Init(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	log.Println("Running database migrations...")
	if err := database.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations complete.")

	store, err := newStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize media storage: %v", err)
	}

	router := gin.Default()
	routes.SetupRoutes(router, database, cfg, store)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

// newStorage picks the media backend: S3 when a bucket is configured,
// the local media directory otherwise.
func newStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.S3.Bucket != "" {
		log.Println("Using S3 media storage, bucket:", cfg.S3.Bucket)
		return storage.NewS3(cfg.S3.Bucket, cfg.S3.Region, cfg.S3.AccessKey, cfg.S3.SecretKey)
	}
	log.Println("Using local media storage at", cfg.MediaDir)
	return storage.NewDisk(cfg.MediaDir)
}
