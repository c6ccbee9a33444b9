package dto

import (
	"time"

	"github.com/priyanshuguptaiit99/pronetwork/internal/models"
)

// NotificationResponse represents notification data returned to clients
// and pushed over the realtime channel.
type NotificationResponse struct {
	ID        uint        `json:"id"`
	UserID    uint        `json:"user_id"`
	Type      string      `json:"type"`
	FromUser  UserSummary `json:"from_user"`
	PostID    *uint       `json:"post_id,omitempty"`
	Text      string      `json:"text"`
	Read      bool        `json:"read"`
	CreatedAt time.Time   `json:"created_at"`
}

// UnreadCountResponse wraps the unread notification counter.
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// NewNotificationResponse converts a notification model into a DTO.
func NewNotificationResponse(notification models.Notification, users map[uint]models.User) NotificationResponse {
	return NotificationResponse{
		ID:        notification.ID,
		UserID:    notification.UserID,
		Type:      notification.Type,
		FromUser:  NewUserSummary(users[notification.FromUserID]),
		PostID:    notification.PostID,
		Text:      notification.Text,
		Read:      notification.Read,
		CreatedAt: notification.CreatedAt,
	}
}

// NewNotificationResponseSlice converts a slice of notification models into DTOs.
func NewNotificationResponseSlice(notifications []models.Notification, users map[uint]models.User) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		out = append(out, NewNotificationResponse(notification, users))
	}
	return out
}
