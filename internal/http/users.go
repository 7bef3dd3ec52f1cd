package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sandeshq/quillhub/internal/models"
)

// The user directory is read-only; accounts are created through signup
// and never mutated through this API.

func (e *Env) ListUsers(c *gin.Context) {
	var users []models.User
	if err := e.DB.Order("id asc").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	c.JSON(http.StatusOK, newUserResponses(users))
}

func (e *Env) GetUser(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var user models.User
	if err := e.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}
