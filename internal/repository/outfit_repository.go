package repository

import (
	"context"

	"gorm.io/gorm"

	"guardianclima/internal/model"
)

// OutfitRepository persists per-user outfit advice records. Records are
// append-only.
type OutfitRepository interface {
	Create(ctx context.Context, outfit *model.Outfit) error
	// ListByUser returns the user's outfits newest-first.
	ListByUser(ctx context.Context, userID uint) ([]model.Outfit, error)
}

type outfitRepository struct {
	db *gorm.DB
}

// NewOutfitRepository builds a GORM-backed repository.
func NewOutfitRepository(db *gorm.DB) OutfitRepository {
	return &outfitRepository{db: db}
}

func (r *outfitRepository) Create(ctx context.Context, outfit *model.Outfit) error {
	return r.db.WithContext(ctx).Create(outfit).Error
}

func (r *outfitRepository) ListByUser(ctx context.Context, userID uint) ([]model.Outfit, error) {
	var outfits []model.Outfit
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&outfits).Error; err != nil {
		return nil, err
	}
	return outfits, nil
}
