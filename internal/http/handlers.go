package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sandeshq/quillhub/internal/auth"
	"github.com/sandeshq/quillhub/internal/storage"
)

// Env carries the dependencies shared by all handlers.
type Env struct {
	DB      *gorm.DB
	Auth    *auth.Manager
	Storage storage.Storage
}

// currentUserID returns the authenticated user's ID, or 0 when the
// request is anonymous. Handlers behind RequireAuth can rely on a
// non-zero result.
func currentUserID(c *gin.Context) uint {
	v, exists := c.Get(ctxUserIDKey)
	if !exists {
		return 0
	}
	id, ok := v.(uint)
	if !ok {
		return 0
	}
	return id
}

// uintParam parses a numeric path parameter.
func uintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
