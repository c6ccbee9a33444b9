package models

import (
	"time"

	"gorm.io/datatypes"
)

// Status represents an ephemeral story that disappears after a fixed
// window. Expired rows stay in place and are filtered at read time;
// physical cleanup is left to the database.
type Status struct {
	ID        uint                      `gorm:"primaryKey" json:"id"`
	UserID    uint                      `gorm:"index;not null" json:"user_id"`
	Text      string                    `gorm:"type:text" json:"text"`
	Image     string                    `gorm:"size:512" json:"image"`
	Views     datatypes.JSONSlice[uint] `gorm:"type:json" json:"views"`
	ExpiresAt time.Time                 `gorm:"index;not null" json:"expires_at"`
	CreatedAt time.Time                 `json:"created_at"`
}

// ViewedBy reports whether the given user is already recorded as a viewer.
func (s Status) ViewedBy(userID uint) bool {
	for _, id := range s.Views {
		if id == userID {
			return true
		}
	}
	return false
}
