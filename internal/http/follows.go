package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sandeshq/quillhub/internal/logs"
	"github.com/sandeshq/quillhub/internal/models"
)

// Follows support create and list only. The list is always scoped to the
// requester's own outgoing follows.

func (e *Env) ListFollows(c *gin.Context) {
	userID := currentUserID(c)

	q := e.DB.Model(&models.Follow{}).Where("follows.user_id = ?", userID)

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Joins("JOIN users AS follower ON follower.id = follows.user_id").
			Joins("JOIN users AS followed ON followed.id = follows.following_id").
			Where("LOWER(follower.username) LIKE ? OR LOWER(followed.username) LIKE ?", pattern, pattern)
	}

	var follows []models.Follow
	err := q.Preload("User").Preload("Following").
		Order("follows.user_id desc, follows.id desc").
		Find(&follows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch follows"})
		return
	}
	c.JSON(http.StatusOK, newFollowResponses(follows))
}

// CreateFollow runs behind RequireAuth. The follower is always the
// requester; the target comes from the payload by username.
func (e *Env) CreateFollow(c *gin.Context) {
	userID := currentUserID(c)

	var input followInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var target models.User
	if err := e.DB.Where("username = ?", input.Following).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User to follow not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
		return
	}

	if target.ID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot follow yourself"})
		return
	}

	var existing models.Follow
	if err := e.DB.Where("user_id = ? AND following_id = ?", userID, target.ID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Already following this user"})
		logs.LogJSON("WARN", "Duplicate follow attempt", map[string]interface{}{
			"userID":    userID,
			"following": target.Username,
		})
		return
	}

	follow := models.Follow{UserID: userID, FollowingID: target.ID}
	if err := e.DB.Create(&follow).Error; err != nil {
		// A concurrent create can still trip the unique pair index.
		c.JSON(http.StatusConflict, gin.H{"error": "Already following this user"})
		return
	}

	if err := e.DB.Preload("User").Preload("Following").First(&follow, follow.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load created follow"})
		return
	}
	c.JSON(http.StatusCreated, newFollowResponse(follow))
}
