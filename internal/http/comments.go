package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sandeshq/quillhub/internal/models"
)

// Comments are nested under their post: every route resolves the parent
// first and answers 404 when it does not exist.

func (e *Env) findParentPost(c *gin.Context) (models.Post, bool) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return models.Post{}, false
	}

	var post models.Post
	if err := e.DB.First(&post, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return models.Post{}, false
	}
	return post, true
}

func (e *Env) ListComments(c *gin.Context) {
	post, ok := e.findParentPost(c)
	if !ok {
		return
	}

	var comments []models.Comment
	err := e.DB.Preload("Author").
		Where("post_id = ?", post.ID).
		Order("created desc, id desc").
		Find(&comments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}
	c.JSON(http.StatusOK, newCommentResponses(comments))
}

func (e *Env) GetComment(c *gin.Context) {
	if !readOnly.allows(actionRetrieve, currentUserID(c), 0) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	post, ok := e.findParentPost(c)
	if !ok {
		return
	}
	commentID, ok := uintParam(c, "comment_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	var comment models.Comment
	if err := e.DB.Preload("Author").Where("post_id = ?", post.ID).First(&comment, commentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}
	c.JSON(http.StatusOK, newCommentResponse(comment))
}

// CreateComment runs behind RequireAuth. Author and post are injected
// server-side after validation; payload values for them are ignored.
func (e *Env) CreateComment(c *gin.Context) {
	userID := currentUserID(c)
	if !authorOrReadOnly.allows(actionCreate, userID, 0) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	post, ok := e.findParentPost(c)
	if !ok {
		return
	}

	var input commentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	comment := models.Comment{
		AuthorID: userID,
		PostID:   post.ID,
		Text:     input.Text,
	}
	if err := e.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	if err := e.DB.Preload("Author").First(&comment, comment.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load created comment"})
		return
	}
	c.JSON(http.StatusCreated, newCommentResponse(comment))
}

func (e *Env) UpdateComment(c *gin.Context) {
	post, ok := e.findParentPost(c)
	if !ok {
		return
	}
	commentID, ok := uintParam(c, "comment_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	var comment models.Comment
	if err := e.DB.Where("post_id = ?", post.ID).First(&comment, commentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	if !authorOrReadOnly.allows(actionUpdate, currentUserID(c), comment.AuthorID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author can modify this comment"})
		return
	}

	var input commentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	comment.Text = input.Text
	if err := e.DB.Save(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}

	if err := e.DB.Preload("Author").First(&comment, comment.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load updated comment"})
		return
	}
	c.JSON(http.StatusOK, newCommentResponse(comment))
}

func (e *Env) DeleteComment(c *gin.Context) {
	post, ok := e.findParentPost(c)
	if !ok {
		return
	}
	commentID, ok := uintParam(c, "comment_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	var comment models.Comment
	if err := e.DB.Where("post_id = ?", post.ID).First(&comment, commentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	if !authorOrReadOnly.allows(actionDelete, currentUserID(c), comment.AuthorID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author can delete this comment"})
		return
	}

	if err := e.DB.Delete(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
