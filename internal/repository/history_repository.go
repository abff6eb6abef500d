package repository

import (
	"context"

	"gorm.io/gorm"

	"guardianclima/internal/model"
)

// HistoryRepository persists per-user weather query history. Records are
// append-only.
type HistoryRepository interface {
	Create(ctx context.Context, query *model.WeatherQuery) error
	// ListByUser returns the user's queries newest-first. A limit of zero
	// or less means unlimited.
	ListByUser(ctx context.Context, userID uint, limit int) ([]model.WeatherQuery, error)
}

type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository builds a GORM-backed repository.
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Create(ctx context.Context, query *model.WeatherQuery) error {
	return r.db.WithContext(ctx).Create(query).Error
}

func (r *historyRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]model.WeatherQuery, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var queries []model.WeatherQuery
	if err := q.Find(&queries).Error; err != nil {
		return nil, err
	}
	return queries, nil
}
