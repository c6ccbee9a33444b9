package dto

import (
	"time"

	"github.com/priyanshuguptaiit99/pronetwork/internal/models"
)

// StatusResponse is the serialized representation of an ephemeral status.
type StatusResponse struct {
	ID        uint        `json:"id"`
	User      UserSummary `json:"user"`
	Text      string      `json:"text"`
	Image     string      `json:"image,omitempty"`
	Views     []uint      `json:"views"`
	ExpiresAt time.Time   `json:"expires_at"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewStatusResponse converts a status model into a DTO.
func NewStatusResponse(status models.Status, users map[uint]models.User) StatusResponse {
	views := make([]uint, 0, len(status.Views))
	views = append(views, status.Views...)

	return StatusResponse{
		ID:        status.ID,
		User:      NewUserSummary(users[status.UserID]),
		Text:      status.Text,
		Image:     status.Image,
		Views:     views,
		ExpiresAt: status.ExpiresAt,
		CreatedAt: status.CreatedAt,
	}
}

// NewStatusResponseSlice converts a slice of status models into DTOs.
func NewStatusResponseSlice(statuses []models.Status, users map[uint]models.User) []StatusResponse {
	out := make([]StatusResponse, 0, len(statuses))
	for _, status := range statuses {
		out = append(out, NewStatusResponse(status, users))
	}
	return out
}
