package http

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sandeshq/quillhub/internal/logs"
	"github.com/sandeshq/quillhub/internal/models"
)

var validImageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true,
	".gif": true, ".webp": true,
}

// postInput is the writable subset of a post. Group distinguishes
// "absent" from an explicit null so PATCH can detach a post from its
// group. Image arrives only via multipart form.
type postInput struct {
	Text     *string
	Group    *uint
	GroupSet bool
	Image    *multipart.FileHeader
}

// bindPostInput accepts either a JSON body or a multipart form.
func bindPostInput(c *gin.Context) (postInput, error) {
	var input postInput

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if text, ok := c.GetPostForm("text"); ok {
			input.Text = &text
		}
		if raw, ok := c.GetPostForm("group"); ok {
			input.GroupSet = true
			if raw != "" && raw != "null" {
				id, err := strconv.ParseUint(raw, 10, 32)
				if err != nil {
					return input, fmt.Errorf("group must be a numeric ID")
				}
				gid := uint(id)
				input.Group = &gid
			}
		}
		if file, err := c.FormFile("image"); err == nil {
			ext := strings.ToLower(filepath.Ext(file.Filename))
			if !validImageExtensions[ext] {
				return input, fmt.Errorf("unsupported image extension %q", ext)
			}
			input.Image = file
		}
		return input, nil
	}

	var body struct {
		Text  *string         `json:"text"`
		Group json.RawMessage `json:"group"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		return input, fmt.Errorf("invalid JSON body")
	}
	input.Text = body.Text
	if len(body.Group) > 0 {
		input.GroupSet = true
		if string(body.Group) != "null" {
			var gid uint
			if err := json.Unmarshal(body.Group, &gid); err != nil {
				return input, fmt.Errorf("group must be a numeric ID")
			}
			input.Group = &gid
		}
	}
	return input, nil
}

// saveImage stores an uploaded file and returns its public URL.
func (e *Env) saveImage(file *multipart.FileHeader, folder string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	filename := fmt.Sprintf("post_%s%s", uuid.New().String(), strings.ToLower(filepath.Ext(file.Filename)))
	contentType := file.Header.Get("Content-Type")
	return e.Storage.Save(src, filename, contentType, folder)
}

func (e *Env) ListPosts(c *gin.Context) {
	p := pageFromQuery(c)

	var count int64
	if err := e.DB.Model(&models.Post{}).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	var posts []models.Post
	err := e.DB.Preload("Author").
		Order("id asc").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, newPagedResponse(c, count, p, newPostResponses(posts)))
}

func (e *Env) GetPost(c *gin.Context) {
	// Retrieval runs under the read-only policy, kept separate from the
	// ownership policy that guards mutations.
	if !readOnly.allows(actionRetrieve, currentUserID(c), 0) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var post models.Post
	if err := e.DB.Preload("Author").First(&post, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	c.JSON(http.StatusOK, newPostResponse(post))
}

// CreatePost runs behind RequireAuth. The author and publication date come
// from the request context and the clock, never from the payload.
func (e *Env) CreatePost(c *gin.Context) {
	userID := currentUserID(c)
	if !authorOrReadOnly.allows(actionCreate, userID, 0) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	input, err := bindPostInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if input.Text == nil || *input.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: text is required"})
		return
	}
	if input.Group != nil {
		var group models.Group
		if err := e.DB.First(&group, *input.Group).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: group does not exist"})
			return
		}
	}

	post := models.Post{
		Text:     *input.Text,
		AuthorID: userID,
		GroupID:  input.Group,
	}

	if input.Image != nil {
		url, err := e.saveImage(input.Image, "posts")
		if err != nil {
			logs.LogJSON("ERROR", "Image upload failed", map[string]interface{}{
				"error":  err.Error(),
				"userID": userID,
			})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
			return
		}
		post.Image = url
	}

	if err := e.DB.Create(&post).Error; err != nil {
		logs.LogJSON("ERROR", "Post creation failed", map[string]interface{}{
			"error":  err.Error(),
			"userID": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	if err := e.DB.Preload("Author").First(&post, post.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load created post"})
		return
	}
	c.JSON(http.StatusCreated, newPostResponse(post))
}

// UpdatePost handles both PUT (text required) and PATCH (partial).
func (e *Env) UpdatePost(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var post models.Post
	if err := e.DB.First(&post, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if !authorOrReadOnly.allows(actionUpdate, currentUserID(c), post.AuthorID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author can modify this post"})
		return
	}

	input, err := bindPostInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if c.Request.Method == http.MethodPut && (input.Text == nil || *input.Text == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: text is required"})
		return
	}
	if input.Text != nil && *input.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: text must not be empty"})
		return
	}

	if input.Text != nil {
		post.Text = *input.Text
	}
	if input.GroupSet {
		if input.Group != nil {
			var group models.Group
			if err := e.DB.First(&group, *input.Group).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: group does not exist"})
				return
			}
		}
		post.GroupID = input.Group
	}
	if input.Image != nil {
		url, err := e.saveImage(input.Image, "posts")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
			return
		}
		if post.Image != "" {
			_ = e.Storage.Delete(post.Image)
		}
		post.Image = url
	}

	// Update via a map so a detached group (nil GroupID) is persisted.
	if err := e.DB.Model(&post).Select("text", "image", "group_id").Updates(map[string]interface{}{
		"text":     post.Text,
		"image":    post.Image,
		"group_id": post.GroupID,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	if err := e.DB.Preload("Author").First(&post, post.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load updated post"})
		return
	}
	c.JSON(http.StatusOK, newPostResponse(post))
}

func (e *Env) DeletePost(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var post models.Post
	if err := e.DB.First(&post, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if !authorOrReadOnly.allows(actionDelete, currentUserID(c), post.AuthorID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author can delete this post"})
		return
	}

	// Comments go with their post.
	err := e.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	if post.Image != "" {
		if err := e.Storage.Delete(post.Image); err != nil {
			logs.LogJSON("WARN", "Failed to remove post image", map[string]interface{}{
				"error": err.Error(),
				"image": post.Image,
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
