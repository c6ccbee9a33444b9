package models

import "time"

// Message represents a direct message exchanged between two users.
// Messages are append-only; the read flag is the only field that ever
// transitions, and only from false to true when the recipient fetches
// the thread.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FromID    uint      `gorm:"index;not null" json:"from_id"`
	ToID      uint      `gorm:"index;not null" json:"to_id"`
	Text      string    `gorm:"type:text" json:"text"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// Counterpart returns the other endpoint of the message relative to the
// given user.
func (m Message) Counterpart(userID uint) uint {
	if m.FromID == userID {
		return m.ToID
	}
	return m.FromID
}
