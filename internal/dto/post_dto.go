package dto

import (
	"time"

	"github.com/priyanshuguptaiit99/pronetwork/internal/models"
)

// PostCreateRequest is the payload for publishing a feed update.
type PostCreateRequest struct {
	Content string `json:"content" validate:"required,min=1,max=8000"`
}

// CommentCreateRequest is the payload for commenting on a post.
type CommentCreateRequest struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}

// PostResponse is the serialized representation of a post with its author
// denormalized.
type PostResponse struct {
	ID        uint              `json:"id"`
	User      UserSummary       `json:"user"`
	Content   string            `json:"content"`
	Likes     []uint            `json:"likes"`
	LikeCount int               `json:"like_count"`
	Comments  []CommentResponse `json:"comments"`
	CreatedAt time.Time         `json:"created_at"`
}

// CommentResponse is the serialized representation of a post comment.
type CommentResponse struct {
	ID        uint        `json:"id"`
	User      UserSummary `json:"user"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewPostResponse converts a post model into a DTO, resolving author and
// commenter names from the given user map.
func NewPostResponse(post models.Post, users map[uint]models.User) PostResponse {
	likes := make([]uint, 0, len(post.Likes))
	likes = append(likes, post.Likes...)

	comments := make([]CommentResponse, 0, len(post.Comments))
	for _, comment := range post.Comments {
		comments = append(comments, CommentResponse{
			ID:        comment.ID,
			User:      NewUserSummary(users[comment.UserID]),
			Text:      comment.Text,
			CreatedAt: comment.CreatedAt,
		})
	}

	return PostResponse{
		ID:        post.ID,
		User:      NewUserSummary(users[post.UserID]),
		Content:   post.Content,
		Likes:     likes,
		LikeCount: len(likes),
		Comments:  comments,
		CreatedAt: post.CreatedAt,
	}
}

// NewPostResponseSlice converts a slice of post models into DTOs.
func NewPostResponseSlice(posts []models.Post, users map[uint]models.User) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		out = append(out, NewPostResponse(post, users))
	}
	return out
}
