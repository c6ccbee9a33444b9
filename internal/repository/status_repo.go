package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/priyanshuguptaiit99/pronetwork/internal/models"
)

// StatusRepository persists ephemeral statuses. Expired rows are
// filtered at read time; physical deletion is delegated to the database.
type StatusRepository interface {
	Create(ctx context.Context, status *models.Status) error
	FindByID(ctx context.Context, id uint) (models.Status, error)
	ListActive(ctx context.Context, now time.Time) ([]models.Status, error)
	Save(ctx context.Context, status *models.Status) error
}

type statusRepository struct {
	db *gorm.DB
}

// NewStatusRepository constructs a status repository backed by GORM.
func NewStatusRepository(db *gorm.DB) StatusRepository {
	return &statusRepository{db: db}
}

func (r *statusRepository) Create(ctx context.Context, status *models.Status) error {
	return r.db.WithContext(ctx).Create(status).Error
}

func (r *statusRepository) FindByID(ctx context.Context, id uint) (models.Status, error) {
	var status models.Status
	if err := r.db.WithContext(ctx).First(&status, id).Error; err != nil {
		return models.Status{}, err
	}
	return status, nil
}

func (r *statusRepository) ListActive(ctx context.Context, now time.Time) ([]models.Status, error) {
	var statuses []models.Status
	if err := r.db.WithContext(ctx).
		Where("expires_at > ?", now).
		Order("created_at DESC").
		Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

func (r *statusRepository) Save(ctx context.Context, status *models.Status) error {
	return r.db.WithContext(ctx).Save(status).Error
}
