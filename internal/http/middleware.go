package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sandeshq/quillhub/internal/logs"
	"github.com/sandeshq/quillhub/internal/models"
)

// ctxUserIDKey is where the auth middleware stores the requester's user ID.
const ctxUserIDKey = "user_id"

// RequireAuth rejects requests without a valid bearer token.
func (e *Env) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		userID, err := e.Auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Next()
	}
}

// OptionalAuth resolves a bearer token to an identity when one is present
// but lets anonymous requests through. Read endpoints are public.
func (e *Env) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if userID, err := e.Auth.ParseToken(tokenStr); err == nil {
			c.Set(ctxUserIDKey, userID)
		}
		c.Next()
	}
}

// AdminOnly guards routes reserved for administrators. It must run after
// RequireAuth so the requester identity is already resolved.
func (e *Env) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		userID := currentUserID(c)

		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			logs.LogJSON("WARN", "Non-authenticated user tried admin route", map[string]interface{}{
				"route": route,
			})
			return
		}

		isAdmin, err := models.IsAdmin(e.DB, userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify admin status"})
			logs.LogJSON("ERROR", "Admin check failed", map[string]interface{}{
				"error":  err.Error(),
				"route":  route,
				"userID": userID,
			})
			return
		}

		if !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Administrator privileges required"})
			logs.LogJSON("WARN", "Non-admin user blocked from admin route", map[string]interface{}{
				"route":  route,
				"userID": userID,
			})
			return
		}

		c.Next()
	}
}

// SecurityHeadersMiddleware adds basic, sensible security headers.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Prevents clickjacking
		c.Header("X-Frame-Options", "DENY")
		// Prevents MIME-type sniffing
		c.Header("X-Content-Type-Options", "nosniff")
		c.Next()
	}
}
