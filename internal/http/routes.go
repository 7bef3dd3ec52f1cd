package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sandeshq/quillhub/internal/auth"
	"github.com/sandeshq/quillhub/internal/config"
	"github.com/sandeshq/quillhub/internal/storage"
)

// SetupRoutes configures all application routes and middleware.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, store storage.Storage) {

	// --- Dependencies ---
	env := &Env{
		DB:      db,
		Auth:    auth.NewManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour),
		Storage: store,
	}

	// --- Middleware ---
	router.Use(SecurityHeadersMiddleware())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	authRequired := env.RequireAuth()

	// --- API Routes ---
	api := router.Group("/api/v1")
	api.Use(env.OptionalAuth())
	{
		api.POST("/auth/signup", env.Signup)
		api.POST("/auth/login", env.Login)

		api.GET("/users", env.ListUsers)
		api.GET("/users/:id", env.GetUser)

		api.GET("/groups", env.ListGroups)
		api.GET("/groups/:id", env.GetGroup)
		api.POST("/groups", authRequired, env.AdminOnly(), env.CreateGroup)
		api.PUT("/groups/:id", authRequired, env.UpdateGroup)
		api.PATCH("/groups/:id", authRequired, env.UpdateGroup)
		api.DELETE("/groups/:id", authRequired, env.DeleteGroup)

		api.GET("/posts", env.ListPosts)
		api.GET("/posts/:id", env.GetPost)
		api.POST("/posts", authRequired, env.CreatePost)
		api.PUT("/posts/:id", authRequired, env.UpdatePost)
		api.PATCH("/posts/:id", authRequired, env.UpdatePost)
		api.DELETE("/posts/:id", authRequired, env.DeletePost)

		api.GET("/posts/:id/comments", env.ListComments)
		api.GET("/posts/:id/comments/:comment_id", env.GetComment)
		api.POST("/posts/:id/comments", authRequired, env.CreateComment)
		api.PUT("/posts/:id/comments/:comment_id", authRequired, env.UpdateComment)
		api.PATCH("/posts/:id/comments/:comment_id", authRequired, env.UpdateComment)
		api.DELETE("/posts/:id/comments/:comment_id", authRequired, env.DeleteComment)

		api.GET("/follows", authRequired, env.ListFollows)
		api.POST("/follows", authRequired, env.CreateFollow)
	}

	// Uploaded media is served locally when disk storage is active.
	if _, ok := store.(*storage.Disk); ok {
		router.Static("/media", cfg.MediaDir)
	}
}
