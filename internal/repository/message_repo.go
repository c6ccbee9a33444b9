package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/priyanshuguptaiit99/pronetwork/internal/models"
)

// MessageRepository persists direct messages.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	// ListForUser returns every message where the user is sender or
	// recipient, newest first. The conversation projection depends on
	// this ordering.
	ListForUser(ctx context.Context, userID uint) ([]models.Message, error)
	// ListBetween returns the full thread between two users in
	// chronological order.
	ListBetween(ctx context.Context, userID, otherID uint) ([]models.Message, error)
	// MarkRead flips every unread message from fromID to toID to read.
	MarkRead(ctx context.Context, fromID, toID uint) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository constructs a message repository backed by GORM.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) ListForUser(ctx context.Context, userID uint) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Where("from_id = ? OR to_id = ?", userID, userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) ListBetween(ctx context.Context, userID, otherID uint) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Where("(from_id = ? AND to_id = ?) OR (from_id = ? AND to_id = ?)", userID, otherID, otherID, userID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, fromID, toID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("from_id = ? AND to_id = ? AND read = ?", fromID, toID, false).
		Update("read", true).Error
}
