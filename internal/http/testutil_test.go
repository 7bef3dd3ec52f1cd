package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sandeshq/quillhub/internal/auth"
	"github.com/sandeshq/quillhub/internal/config"
	"github.com/sandeshq/quillhub/internal/models"
	"github.com/sandeshq/quillhub/internal/storage"
)

const testSecret = "test-secret"

// setupTest builds a router backed by an in-memory SQLite database.
func setupTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))

	cfg := &config.Config{
		JWTSecret:     testSecret,
		CORSOrigin:    "*",
		MediaDir:      t.TempDir(),
		TokenTTLHours: 1,
	}
	store, err := storage.NewDisk(cfg.MediaDir)
	require.NoError(t, err)

	router := gin.New()
	SetupRoutes(router, db, cfg, store)
	return router, db
}

func createUser(t *testing.T, db *gorm.DB, username string, admin bool) models.User {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	user := models.User{Username: username, PasswordHash: hash, IsAdmin: admin}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func tokenFor(t *testing.T, userID uint) string {
	t.Helper()
	token, err := auth.NewManager(testSecret, time.Hour).IssueToken(userID)
	require.NoError(t, err)
	return token
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst))
}

func itoa(n uint) string {
	return strconv.FormatUint(uint64(n), 10)
}

func createPost(t *testing.T, router *gin.Engine, token, text string) postResponse {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/v1/posts", gin.H{"text": text}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp postResponse
	decodeBody(t, w, &resp)
	return resp
}
