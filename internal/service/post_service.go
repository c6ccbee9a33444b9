package service

import (
	"context"
	"errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/priyanshuguptaiit99/pronetwork/internal/dto"
	"github.com/priyanshuguptaiit99/pronetwork/internal/models"
	"github.com/priyanshuguptaiit99/pronetwork/internal/repository"
)

// PostService handles the feed: posts, likes and comments. Like and
// comment transitions fan out notifications to the post owner.
type PostService interface {
	Create(ctx context.Context, userID uint, content string) (dto.PostResponse, error)
	List(ctx context.Context) ([]dto.PostResponse, error)
	// ToggleLike adds or removes the caller's like. Only the off-to-on
	// transition notifies; un-liking is not a notifiable event.
	ToggleLike(ctx context.Context, postID, userID uint) (dto.PostResponse, error)
	Comment(ctx context.Context, postID, userID uint, text string) (dto.PostResponse, error)
}

type postService struct {
	posts         repository.PostRepository
	users         repository.UserRepository
	notifications NotificationService
	sanitizer     *bluemonday.Policy
	logger        zerolog.Logger
}

// NewPostService constructs a post service.
func NewPostService(posts repository.PostRepository, users repository.UserRepository, notifications NotificationService, logger zerolog.Logger) PostService {
	sanitizer := bluemonday.UGCPolicy()
	sanitizer.AllowElements("br")

	return &postService{
		posts:         posts,
		users:         users,
		notifications: notifications,
		sanitizer:     sanitizer,
		logger:        logger.With().Str("component", "post_service").Logger(),
	}
}

func (s *postService) Create(ctx context.Context, userID uint, content string) (dto.PostResponse, error) {
	clean := strings.TrimSpace(s.sanitizer.Sanitize(content))
	if clean == "" {
		return dto.PostResponse{}, errors.New("post content empty after sanitization")
	}

	model := models.Post{
		UserID:  userID,
		Content: clean,
	}

	if err := s.posts.Create(ctx, &model); err != nil {
		return dto.PostResponse{}, err
	}

	return s.enrich(ctx, model)
}

func (s *postService) List(ctx context.Context) ([]dto.PostResponse, error) {
	posts, err := s.posts.List(ctx, 0)
	if err != nil {
		return nil, err
	}

	users, err := s.users.FindByIDs(ctx, participantIDs(posts))
	if err != nil {
		return nil, err
	}

	return dto.NewPostResponseSlice(posts, users), nil
}

func (s *postService) ToggleLike(ctx context.Context, postID, userID uint) (dto.PostResponse, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return dto.PostResponse{}, err
	}

	liked := post.LikedBy(userID)
	if liked {
		kept := post.Likes[:0]
		for _, id := range post.Likes {
			if id != userID {
				kept = append(kept, id)
			}
		}
		post.Likes = kept
	} else {
		post.Likes = append(post.Likes, userID)
	}

	if err := s.posts.Save(ctx, &post); err != nil {
		return dto.PostResponse{}, err
	}

	if !liked {
		if err := s.notifications.Notify(ctx, post.UserID, models.NotificationLike, userID, &post.ID, "liked your post"); err != nil {
			return dto.PostResponse{}, err
		}
	}

	return s.enrich(ctx, post)
}

func (s *postService) Comment(ctx context.Context, postID, userID uint, text string) (dto.PostResponse, error) {
	clean := strings.TrimSpace(s.sanitizer.Sanitize(text))
	if clean == "" {
		return dto.PostResponse{}, errors.New("comment text empty after sanitization")
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return dto.PostResponse{}, err
	}

	comment := models.PostComment{
		PostID: post.ID,
		UserID: userID,
		Text:   clean,
	}

	if err := s.posts.AddComment(ctx, &comment); err != nil {
		return dto.PostResponse{}, err
	}

	if err := s.notifications.Notify(ctx, post.UserID, models.NotificationComment, userID, &post.ID, "commented on your post"); err != nil {
		return dto.PostResponse{}, err
	}

	post, err = s.posts.FindByID(ctx, postID)
	if err != nil {
		return dto.PostResponse{}, err
	}

	return s.enrich(ctx, post)
}

func (s *postService) enrich(ctx context.Context, post models.Post) (dto.PostResponse, error) {
	users, err := s.users.FindByIDs(ctx, participantIDs([]models.Post{post}))
	if err != nil {
		return dto.PostResponse{}, err
	}

	return dto.NewPostResponse(post, users), nil
}

func participantIDs(posts []models.Post) []uint {
	seen := make(map[uint]struct{})
	ids := make([]uint, 0, len(posts))

	record := func(id uint) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for _, post := range posts {
		record(post.UserID)
		for _, comment := range post.Comments {
			record(comment.UserID)
		}
	}
	return ids
}
