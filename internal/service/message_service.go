package service

import (
	"context"
	"errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/priyanshuguptaiit99/pronetwork/internal/dto"
	"github.com/priyanshuguptaiit99/pronetwork/internal/models"
	"github.com/priyanshuguptaiit99/pronetwork/internal/realtime"
	"github.com/priyanshuguptaiit99/pronetwork/internal/repository"
)

// MessageService handles the direct-message send path, thread history
// and the derived conversation view.
type MessageService interface {
	// Send persists a message and then delivers the newMessage event to
	// both endpoints. A failed persist aborts delivery; a client never
	// sees a live message it cannot fetch from history afterwards.
	Send(ctx context.Context, from, to uint, text string) (dto.MessageResponse, error)
	// History returns the thread with a counterpart in chronological
	// order and, as a side effect, marks the counterpart's unread
	// messages to the caller as read.
	History(ctx context.Context, userID, otherID uint) ([]dto.MessageResponse, error)
	// Conversations collapses the caller's message log into one summary
	// row per counterpart, ordered by recency of interaction.
	Conversations(ctx context.Context, userID uint) ([]dto.ConversationResponse, error)
}

type messageService struct {
	repo      repository.MessageRepository
	users     repository.UserRepository
	router    *realtime.Router
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewMessageService constructs a message service.
func NewMessageService(repo repository.MessageRepository, users repository.UserRepository, router *realtime.Router, logger zerolog.Logger) MessageService {
	return &messageService{
		repo:      repo,
		users:     users,
		router:    router,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "message_service").Logger(),
	}
}

func (s *messageService) Send(ctx context.Context, from, to uint, text string) (dto.MessageResponse, error) {
	clean := strings.TrimSpace(s.sanitizer.Sanitize(text))
	if clean == "" {
		return dto.MessageResponse{}, errors.New("message text empty after sanitization")
	}

	model := models.Message{
		FromID: from,
		ToID:   to,
		Text:   clean,
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		return dto.MessageResponse{}, err
	}

	users, err := s.users.FindByIDs(ctx, []uint{from, to})
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to enrich message endpoints")
		users = map[uint]models.User{}
	}

	response := dto.NewMessageResponse(model, users)
	s.router.Send(ctx, realtime.Event{Type: realtime.EventNewMessage, Data: response}, from, to)

	return response, nil
}

func (s *messageService) History(ctx context.Context, userID, otherID uint) ([]dto.MessageResponse, error) {
	messages, err := s.repo.ListBetween(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}

	users, err := s.users.FindByIDs(ctx, []uint{userID, otherID})
	if err != nil {
		return nil, err
	}

	if err := s.repo.MarkRead(ctx, otherID, userID); err != nil {
		return nil, err
	}

	return dto.NewMessageResponseSlice(messages, users), nil
}

func (s *messageService) Conversations(ctx context.Context, userID uint) ([]dto.ConversationResponse, error) {
	messages, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	users, err := s.users.FindByIDs(ctx, counterpartIDs(userID, messages))
	if err != nil {
		return nil, err
	}

	return projectConversations(userID, messages, users), nil
}

// projectConversations collapses a message log fetched most-recent-first
// into one row per counterpart. Only the latest message with each
// counterpart surfaces; older unread messages in the same thread do not
// independently raise the unread flag.
func projectConversations(requester uint, messages []models.Message, users map[uint]models.User) []dto.ConversationResponse {
	seen := make(map[uint]struct{}, len(messages))
	conversations := make([]dto.ConversationResponse, 0, len(messages))

	for _, message := range messages {
		other := message.Counterpart(requester)
		if _, ok := seen[other]; ok {
			continue
		}
		seen[other] = struct{}{}

		conversations = append(conversations, dto.ConversationResponse{
			User:            dto.NewUserSummary(users[other]),
			LastMessage:     message.Text,
			LastMessageTime: message.CreatedAt,
			Unread:          !message.Read && message.ToID == requester,
		})
	}

	return conversations
}

func counterpartIDs(requester uint, messages []models.Message) []uint {
	seen := make(map[uint]struct{}, len(messages))
	ids := make([]uint, 0, len(messages))
	for _, message := range messages {
		other := message.Counterpart(requester)
		if _, ok := seen[other]; ok {
			continue
		}
		seen[other] = struct{}{}
		ids = append(ids, other)
	}
	return ids
}
