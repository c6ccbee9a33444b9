package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/priyanshuguptaiit99/pronetwork/internal/dto"
	"github.com/priyanshuguptaiit99/pronetwork/internal/models"
	"github.com/priyanshuguptaiit99/pronetwork/internal/realtime"
	"github.com/priyanshuguptaiit99/pronetwork/internal/repository"
)

// StatusService publishes and reads ephemeral statuses.
type StatusService interface {
	// Publish persists a status and broadcasts the newStatus event to
	// everyone connected.
	Publish(ctx context.Context, userID uint, text string) (dto.StatusResponse, error)
	List(ctx context.Context) ([]dto.StatusResponse, error)
	// View records the viewer on the status at most once.
	View(ctx context.Context, statusID, viewerID uint) (dto.StatusResponse, error)
}

type statusService struct {
	repo      repository.StatusRepository
	users     repository.UserRepository
	router    *realtime.Router
	ttl       time.Duration
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewStatusService constructs a status service. ttl is the lifetime of a
// status from creation to expiry.
func NewStatusService(repo repository.StatusRepository, users repository.UserRepository, router *realtime.Router, ttl time.Duration, logger zerolog.Logger) StatusService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &statusService{
		repo:      repo,
		users:     users,
		router:    router,
		ttl:       ttl,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "status_service").Logger(),
	}
}

func (s *statusService) Publish(ctx context.Context, userID uint, text string) (dto.StatusResponse, error) {
	clean := strings.TrimSpace(s.sanitizer.Sanitize(text))
	if clean == "" {
		return dto.StatusResponse{}, errors.New("status text empty after sanitization")
	}

	model := models.Status{
		UserID:    userID,
		Text:      clean,
		ExpiresAt: time.Now().UTC().Add(s.ttl),
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		return dto.StatusResponse{}, err
	}

	users, err := s.users.FindByIDs(ctx, []uint{userID})
	if err != nil {
		s.logger.Warn().Err(err).Uint("user_id", userID).Msg("failed to enrich status author")
		users = map[uint]models.User{}
	}

	response := dto.NewStatusResponse(model, users)
	s.router.Broadcast(ctx, realtime.Event{Type: realtime.EventNewStatus, Data: response})

	return response, nil
}

func (s *statusService) List(ctx context.Context) ([]dto.StatusResponse, error) {
	statuses, err := s.repo.ListActive(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	users, err := s.users.FindByIDs(ctx, authorIDs(statuses))
	if err != nil {
		return nil, err
	}

	return dto.NewStatusResponseSlice(statuses, users), nil
}

func (s *statusService) View(ctx context.Context, statusID, viewerID uint) (dto.StatusResponse, error) {
	status, err := s.repo.FindByID(ctx, statusID)
	if err != nil {
		return dto.StatusResponse{}, err
	}

	if !status.ViewedBy(viewerID) {
		status.Views = append(status.Views, viewerID)
		if err := s.repo.Save(ctx, &status); err != nil {
			return dto.StatusResponse{}, err
		}
	}

	users, err := s.users.FindByIDs(ctx, []uint{status.UserID})
	if err != nil {
		return dto.StatusResponse{}, err
	}

	return dto.NewStatusResponse(status, users), nil
}

func authorIDs(statuses []models.Status) []uint {
	seen := make(map[uint]struct{}, len(statuses))
	ids := make([]uint, 0, len(statuses))
	for _, status := range statuses {
		if _, ok := seen[status.UserID]; ok {
			continue
		}
		seen[status.UserID] = struct{}{}
		ids = append(ids, status.UserID)
	}
	return ids
}
