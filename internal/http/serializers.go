package http

import (
	"time"

	"github.com/sandeshq/quillhub/internal/models"
)

// Wire representations. Related users are rendered by username rather than
// numeric ID; read-only fields (author, pub_date, created, post) have no
// counterpart in the bind structs, so client-supplied values for them are
// silently ignored.

type userResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func newUserResponse(u models.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username}
}

func newUserResponses(users []models.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, newUserResponse(u))
	}
	return out
}

// Groups expose every field as writable, so the model doubles as the
// response shape; only the input needs a dedicated struct.
type groupInput struct {
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
}

type postResponse struct {
	ID      uint      `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
	Image   *string   `json:"image"`
	Group   *uint     `json:"group"`
}

// newPostResponse expects p.Author to be preloaded.
func newPostResponse(p models.Post) postResponse {
	resp := postResponse{
		ID:      p.ID,
		Author:  p.Author.Username,
		Text:    p.Text,
		PubDate: p.PubDate,
		Group:   p.GroupID,
	}
	if p.Image != "" {
		img := p.Image
		resp.Image = &img
	}
	return resp
}

func newPostResponses(posts []models.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, newPostResponse(p))
	}
	return out
}

type commentInput struct {
	Text string `json:"text" binding:"required"`
}

type commentResponse struct {
	ID      uint      `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
	Post    uint      `json:"post"`
}

// newCommentResponse expects cm.Author to be preloaded.
func newCommentResponse(cm models.Comment) commentResponse {
	return commentResponse{
		ID:      cm.ID,
		Author:  cm.Author.Username,
		Text:    cm.Text,
		Created: cm.Created,
		Post:    cm.PostID,
	}
}

func newCommentResponses(comments []models.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(comments))
	for _, cm := range comments {
		out = append(out, newCommentResponse(cm))
	}
	return out
}

type followInput struct {
	Following string `json:"following" binding:"required"`
}

type followResponse struct {
	User      string `json:"user"`
	Following string `json:"following"`
}

// newFollowResponse expects f.User and f.Following to be preloaded.
func newFollowResponse(f models.Follow) followResponse {
	return followResponse{
		User:      f.User.Username,
		Following: f.Following.Username,
	}
}

func newFollowResponses(follows []models.Follow) []followResponse {
	out := make([]followResponse, 0, len(follows))
	for _, f := range follows {
		out = append(out, newFollowResponse(f))
	}
	return out
}
