package dto

import (
	"time"

	"github.com/priyanshuguptaiit99/pronetwork/internal/models"
)

// UserResponse is the serialized representation of a user without credentials.
type UserResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Avatar      string    `json:"avatar,omitempty"`
	Connections []uint    `json:"connections"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserSummary is the denormalized view embedded in messages, posts and
// notifications.
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
}

// ProfileUpdateRequest carries the mutable profile fields. Email and
// password never change through this path.
type ProfileUpdateRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=255"`
	Title   *string `json:"title" validate:"omitempty,max=255"`
	Company *string `json:"company" validate:"omitempty,max=255"`
	Avatar  *string `json:"avatar" validate:"omitempty,max=512"`
}

// ProfileResponse combines a user with their recent posts and their
// connections denormalized to name and title.
type ProfileResponse struct {
	User        UserResponse   `json:"user"`
	Posts       []PostResponse `json:"posts"`
	Connections []UserSummary  `json:"connections"`
}

// AnalyticsResponse summarises a user's activity footprint.
type AnalyticsResponse struct {
	PostCount       int64 `json:"post_count"`
	ConnectionCount int   `json:"connection_count"`
	TotalLikes      int   `json:"total_likes"`
	TotalComments   int   `json:"total_comments"`
	ProfileViews    int   `json:"profile_views"`
}

// NewUserResponse converts a user model into a DTO.
func NewUserResponse(user models.User) UserResponse {
	connections := make([]uint, 0, len(user.Connections))
	connections = append(connections, user.Connections...)

	return UserResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Title:       user.Title,
		Company:     user.Company,
		Avatar:      user.Avatar,
		Connections: connections,
		CreatedAt:   user.CreatedAt,
	}
}

// NewUserResponseSlice converts a slice of user models into DTOs.
func NewUserResponseSlice(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, NewUserResponse(user))
	}
	return out
}

// NewUserSummary converts a user model into its embedded summary form.
func NewUserSummary(user models.User) UserSummary {
	return UserSummary{
		ID:    user.ID,
		Name:  user.Name,
		Title: user.Title,
	}
}
