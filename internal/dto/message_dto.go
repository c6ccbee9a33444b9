package dto

import (
	"time"

	"github.com/priyanshuguptaiit99/pronetwork/internal/models"
)

// MessageResponse is the serialized representation of a direct message
// with both endpoints denormalized.
type MessageResponse struct {
	ID        uint        `json:"id"`
	From      UserSummary `json:"from"`
	To        UserSummary `json:"to"`
	Text      string      `json:"text"`
	Read      bool        `json:"read"`
	CreatedAt time.Time   `json:"created_at"`
}

// ConversationResponse is one derived summary row per counterpart,
// reflecting only the most recent message in that thread.
type ConversationResponse struct {
	User            UserSummary `json:"user"`
	LastMessage     string      `json:"lastMessage"`
	LastMessageTime time.Time   `json:"lastMessageTime"`
	Unread          bool        `json:"unread"`
}

// NewMessageResponse converts a message model into a DTO, resolving
// endpoint names from the given user map.
func NewMessageResponse(message models.Message, users map[uint]models.User) MessageResponse {
	return MessageResponse{
		ID:        message.ID,
		From:      NewUserSummary(users[message.FromID]),
		To:        NewUserSummary(users[message.ToID]),
		Text:      message.Text,
		Read:      message.Read,
		CreatedAt: message.CreatedAt,
	}
}

// NewMessageResponseSlice converts a slice of message models into DTOs.
func NewMessageResponseSlice(messages []models.Message, users map[uint]models.User) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, message := range messages {
		out = append(out, NewMessageResponse(message, users))
	}
	return out
}
