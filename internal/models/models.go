package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// User is an account that can author posts and comments and follow other users.
// PasswordHash never leaves the server; API responses expose id and username only.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// Group is a curated category that posts can optionally belong to.
type Group struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Description string `json:"description"`
}

// Post is a blog entry. The author and publication date are assigned
// server-side at creation and are immutable afterwards. Deleting the
// group a post belongs to detaches the post instead of deleting it.
type Post struct {
	ID       uint      `gorm:"primarykey" json:"id"`
	Text     string    `gorm:"not null" json:"text"`
	PubDate  time.Time `gorm:"autoCreateTime;index" json:"pub_date"`
	AuthorID uint      `gorm:"not null;index" json:"author_id"`
	Author   User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Image    string    `json:"image,omitempty"`
	GroupID  *uint     `json:"group_id,omitempty"`
	Group    *Group    `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Comments []Comment `gorm:"foreignKey:PostID" json:"-"`
}

// Comment belongs to exactly one post and one author. Deleting either
// the post or the author cascades to the comment.
type Comment struct {
	ID       uint      `gorm:"primarykey" json:"id"`
	AuthorID uint      `gorm:"not null;index" json:"author_id"`
	Author   User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	PostID   uint      `gorm:"not null;index" json:"post_id"`
	Post     Post      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Text     string    `gorm:"not null" json:"text"`
	Created  time.Time `gorm:"autoCreateTime;index" json:"created"`
}

// Follow is a directional relationship: UserID follows FollowingID.
// The composite unique index rejects duplicate pairs at the storage level.
type Follow struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserID      uint      `gorm:"not null;index;uniqueIndex:idx_follows_user_following" json:"user_id"`
	User        User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	FollowingID uint      `gorm:"not null;index;uniqueIndex:idx_follows_user_following" json:"following_id"`
	Following   User      `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time `json:"-"`
}

// All lists every entity for AutoMigrate.
func All() []any {
	return []any{&User{}, &Group{}, &Post{}, &Comment{}, &Follow{}}
}

// IsAdmin reports whether the user with the given ID has the admin flag set.
// An unknown user is simply not an admin.
func IsAdmin(db *gorm.DB, userID uint) (bool, error) {
	var isAdmin bool
	err := db.Model(&User{}).Select("is_admin").Where("id = ?", userID).Scan(&isAdmin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return isAdmin, nil
}
