package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sandeshq/quillhub/internal/logs"
	"github.com/sandeshq/quillhub/internal/models"
)

// Groups have no author, so there is no ownership to check on mutation.
// Creation is reserved for administrators; update and delete are evaluated
// under the read-only policy, which denies them for every requester. The
// routes exist so the policy can be loosened without reshaping the API.

func (e *Env) ListGroups(c *gin.Context) {
	var groups []models.Group
	if err := e.DB.Order("id asc").Find(&groups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}
	c.JSON(http.StatusOK, groups)
}

func (e *Env) GetGroup(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var group models.Group
	if err := e.DB.First(&group, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}
	c.JSON(http.StatusOK, group)
}

// CreateGroup runs behind RequireAuth and AdminOnly.
func (e *Env) CreateGroup(c *gin.Context) {
	var input groupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var existing models.Group
	if err := e.DB.Where("slug = ?", input.Slug).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A group with this slug already exists"})
		return
	}

	group := models.Group{
		Title:       input.Title,
		Slug:        input.Slug,
		Description: input.Description,
	}
	if err := e.DB.Create(&group).Error; err != nil {
		logs.LogJSON("ERROR", "Group creation failed", map[string]interface{}{
			"error": err.Error(),
			"slug":  input.Slug,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	c.JSON(http.StatusCreated, group)
}

func (e *Env) UpdateGroup(c *gin.Context) {
	if !readOnly.allows(actionUpdate, currentUserID(c), 0) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Groups cannot be modified through this API"})
		return
	}

	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var group models.Group
	if err := e.DB.First(&group, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	var input groupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	group.Title = input.Title
	group.Slug = input.Slug
	group.Description = input.Description
	if err := e.DB.Save(&group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update group"})
		return
	}
	c.JSON(http.StatusOK, group)
}

func (e *Env) DeleteGroup(c *gin.Context) {
	if !readOnly.allows(actionDelete, currentUserID(c), 0) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Groups cannot be deleted through this API"})
		return
	}

	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var group models.Group
	if err := e.DB.First(&group, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	// Posts keep existing when their group disappears.
	if err := e.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).Where("group_id = ?", group.ID).Update("group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&group).Error
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete group"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Group deleted"})
}
