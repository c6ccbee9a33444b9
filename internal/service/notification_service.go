package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/priyanshuguptaiit99/pronetwork/internal/dto"
	"github.com/priyanshuguptaiit99/pronetwork/internal/models"
	"github.com/priyanshuguptaiit99/pronetwork/internal/observability"
	"github.com/priyanshuguptaiit99/pronetwork/internal/realtime"
	"github.com/priyanshuguptaiit99/pronetwork/internal/repository"
)

// NotificationService creates durable notifications on qualifying domain
// events and opportunistically pushes them live. A self-action never
// notifies its own actor.
type NotificationService interface {
	Notify(ctx context.Context, recipient uint, kind string, origin uint, postID *uint, text string) error
	List(ctx context.Context, userID uint, limit, offset int) ([]dto.NotificationResponse, error)
	MarkRead(ctx context.Context, id, userID uint) (dto.NotificationResponse, error)
	MarkAllRead(ctx context.Context, userID uint) error
	UnreadCount(ctx context.Context, userID uint) (int64, error)
}

type notificationService struct {
	repo      repository.NotificationRepository
	users     repository.UserRepository
	router    *realtime.Router
	redis     *redis.Client
	cacheTTL  time.Duration
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewNotificationService constructs a notification service.
func NewNotificationService(repo repository.NotificationRepository, users repository.UserRepository, router *realtime.Router, redisClient *redis.Client, cacheTTL time.Duration, logger zerolog.Logger) NotificationService {
	return &notificationService{
		repo:      repo,
		users:     users,
		router:    router,
		redis:     redisClient,
		cacheTTL:  cacheTTL,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "notification_service").Logger(),
	}
}

func (s *notificationService) Notify(ctx context.Context, recipient uint, kind string, origin uint, postID *uint, text string) error {
	if recipient == origin {
		return nil
	}

	clean := strings.TrimSpace(s.sanitizer.Sanitize(text))
	if clean == "" {
		return errors.New("notification text empty after sanitization")
	}

	model := models.Notification{
		UserID:     recipient,
		Type:       kind,
		FromUserID: origin,
		PostID:     postID,
		Text:       clean,
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		return err
	}

	observability.NotificationsPublished().WithLabelValues(kind).Inc()
	s.invalidateUnreadCount(ctx, recipient)

	users, err := s.users.FindByIDs(ctx, []uint{origin})
	if err != nil {
		s.logger.Warn().Err(err).Uint("origin", origin).Msg("failed to enrich notification origin")
		users = map[uint]models.User{}
	}

	response := dto.NewNotificationResponse(model, users)
	s.router.Send(ctx, realtime.Event{Type: realtime.EventNotification, Data: response}, recipient)

	return nil
}

func (s *notificationService) List(ctx context.Context, userID uint, limit, offset int) ([]dto.NotificationResponse, error) {
	notifications, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	users, err := s.users.FindByIDs(ctx, originIDs(notifications))
	if err != nil {
		return nil, err
	}

	return dto.NewNotificationResponseSlice(notifications, users), nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID uint) (dto.NotificationResponse, error) {
	notification, err := s.repo.MarkRead(ctx, id, userID)
	if err != nil {
		return dto.NotificationResponse{}, err
	}

	s.invalidateUnreadCount(ctx, userID)

	users, err := s.users.FindByIDs(ctx, []uint{notification.FromUserID})
	if err != nil {
		return dto.NotificationResponse{}, err
	}

	return dto.NewNotificationResponse(notification, users), nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uint) error {
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return err
	}

	s.invalidateUnreadCount(ctx, userID)
	return nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, unreadCountKey(userID)).Result()
		if err == nil {
			if count, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
				return count, nil
			}
		}
	}

	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.redis != nil && s.cacheTTL > 0 {
		if err := s.redis.Set(ctx, unreadCountKey(userID), count, s.cacheTTL).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to cache unread count")
		}
	}

	return count, nil
}

func (s *notificationService) invalidateUnreadCount(ctx context.Context, userID uint) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, unreadCountKey(userID)).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate unread count cache")
	}
}

func unreadCountKey(userID uint) string {
	return fmt.Sprintf("pronetwork:notifications:unread:%d", userID)
}

func originIDs(notifications []models.Notification) []uint {
	seen := make(map[uint]struct{}, len(notifications))
	ids := make([]uint, 0, len(notifications))
	for _, notification := range notifications {
		if _, ok := seen[notification.FromUserID]; ok {
			continue
		}
		seen[notification.FromUserID] = struct{}{}
		ids = append(ids, notification.FromUserID)
	}
	return ids
}
