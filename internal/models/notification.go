package models

import "time"

// Notification kinds created by domain transitions.
const (
	NotificationLike       = "like"
	NotificationComment    = "comment"
	NotificationConnection = "connection"
	NotificationMessage    = "message"
	NotificationMention    = "mention"
)

// Notification represents a durable notification targeted at a single user.
type Notification struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	Type       string    `gorm:"size:32;not null" json:"type"`
	FromUserID uint      `gorm:"index" json:"from_user_id"`
	PostID     *uint     `gorm:"index" json:"post_id,omitempty"`
	Text       string    `gorm:"type:text" json:"text"`
	Read       bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
