package models

import (
	"time"

	"gorm.io/datatypes"
)

// User represents a member of the professional network.
type User struct {
	ID          uint                      `gorm:"primaryKey" json:"id"`
	Name        string                    `gorm:"size:255;not null" json:"name"`
	Email       string                    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password    string                    `gorm:"size:255;not null" json:"-"`
	Title       string                    `gorm:"size:255" json:"title"`
	Company     string                    `gorm:"size:255" json:"company"`
	Avatar      string                    `gorm:"size:512" json:"avatar"`
	Connections datatypes.JSONSlice[uint] `gorm:"type:json" json:"connections"`
	CreatedAt   time.Time                 `json:"created_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}

// Connected reports whether the user already holds an edge to the given member.
func (u User) Connected(userID uint) bool {
	for _, id := range u.Connections {
		if id == userID {
			return true
		}
	}
	return false
}
