package models

import (
	"time"

	"gorm.io/datatypes"
)

// Post represents a feed update published by a user.
type Post struct {
	ID        uint                      `gorm:"primaryKey" json:"id"`
	UserID    uint                      `gorm:"index;not null" json:"user_id"`
	Content   string                    `gorm:"type:text" json:"content"`
	Likes     datatypes.JSONSlice[uint] `gorm:"type:json" json:"likes"`
	CreatedAt time.Time                 `json:"created_at"`
	UpdatedAt time.Time                 `json:"updated_at"`
	Comments  []PostComment             `json:"comments"`
}

// LikedBy reports whether the given user already likes the post.
func (p Post) LikedBy(userID uint) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// PostComment represents a comment attached to a post.
type PostComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index;not null" json:"post_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Text      string    `gorm:"type:text" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
