package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/priyanshuguptaiit99/pronetwork/internal/dto"
	"github.com/priyanshuguptaiit99/pronetwork/internal/models"
	"github.com/priyanshuguptaiit99/pronetwork/internal/repository"
)

// ErrSelfConnection indicates an attempt to connect a user to themselves.
var ErrSelfConnection = errors.New("cannot connect to yourself")

// UserService handles directory, profile and connection-graph operations.
type UserService interface {
	List(ctx context.Context, userID uint) ([]dto.UserResponse, error)
	Search(ctx context.Context, query string) ([]dto.UserResponse, error)
	Profile(ctx context.Context, userID uint) (dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uint, payload dto.ProfileUpdateRequest) (dto.UserResponse, error)
	// Connect creates a mutual edge between two users. Idempotent: an
	// existing edge is left alone and fires no notification.
	Connect(ctx context.Context, userID, targetID uint) error
	Analytics(ctx context.Context, userID uint) (dto.AnalyticsResponse, error)
}

type userService struct {
	users         repository.UserRepository
	posts         repository.PostRepository
	notifications NotificationService
	logger        zerolog.Logger
}

// NewUserService constructs a user service.
func NewUserService(users repository.UserRepository, posts repository.PostRepository, notifications NotificationService, logger zerolog.Logger) UserService {
	return &userService{
		users:         users,
		posts:         posts,
		notifications: notifications,
		logger:        logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) List(ctx context.Context, userID uint) ([]dto.UserResponse, error) {
	users, err := s.users.ListOthers(ctx, userID, 50)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponseSlice(users), nil
}

func (s *userService) Search(ctx context.Context, query string) ([]dto.UserResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []dto.UserResponse{}, nil
	}

	users, err := s.users.Search(ctx, query, 20)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponseSlice(users), nil
}

func (s *userService) Profile(ctx context.Context, userID uint) (dto.ProfileResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return dto.ProfileResponse{}, err
	}

	posts, err := s.posts.ListByUser(ctx, userID, 10)
	if err != nil {
		return dto.ProfileResponse{}, err
	}

	participants, err := s.users.FindByIDs(ctx, participantIDs(posts))
	if err != nil {
		return dto.ProfileResponse{}, err
	}

	connected, err := s.users.FindByIDs(ctx, user.Connections)
	if err != nil {
		return dto.ProfileResponse{}, err
	}

	connections := make([]dto.UserSummary, 0, len(user.Connections))
	for _, id := range user.Connections {
		if member, ok := connected[id]; ok {
			connections = append(connections, dto.NewUserSummary(member))
		}
	}

	return dto.ProfileResponse{
		User:        dto.NewUserResponse(user),
		Posts:       dto.NewPostResponseSlice(posts, participants),
		Connections: connections,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint, payload dto.ProfileUpdateRequest) (dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return dto.UserResponse{}, err
	}

	if payload.Name != nil {
		user.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Title != nil {
		user.Title = strings.TrimSpace(*payload.Title)
	}
	if payload.Company != nil {
		user.Company = strings.TrimSpace(*payload.Company)
	}
	if payload.Avatar != nil {
		user.Avatar = strings.TrimSpace(*payload.Avatar)
	}

	if err := s.users.Save(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(user), nil
}

func (s *userService) Connect(ctx context.Context, userID, targetID uint) error {
	if userID == targetID {
		return ErrSelfConnection
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.Connected(targetID) {
		return nil
	}

	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return err
	}

	user.Connections = append(user.Connections, targetID)
	if !target.Connected(userID) {
		target.Connections = append(target.Connections, userID)
	}

	if err := s.users.Save(ctx, &user); err != nil {
		return err
	}
	if err := s.users.Save(ctx, &target); err != nil {
		return err
	}

	return s.notifications.Notify(ctx, targetID, models.NotificationConnection, userID, nil, "connected with you")
}

func (s *userService) Analytics(ctx context.Context, userID uint) (dto.AnalyticsResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return dto.AnalyticsResponse{}, err
	}

	postCount, err := s.posts.CountByUser(ctx, userID)
	if err != nil {
		return dto.AnalyticsResponse{}, err
	}

	posts, err := s.posts.ListAllByUser(ctx, userID)
	if err != nil {
		return dto.AnalyticsResponse{}, err
	}

	totalLikes := 0
	totalComments := 0
	for _, post := range posts {
		totalLikes += len(post.Likes)
		totalComments += len(post.Comments)
	}

	return dto.AnalyticsResponse{
		PostCount:       postCount,
		ConnectionCount: len(user.Connections),
		TotalLikes:      totalLikes,
		TotalComments:   totalComments,
	}, nil
}
