package service

import (
	"context"
	"fmt"
	"time"

	"guardianclima/internal/model"
	"guardianclima/internal/repository"
)

// freeHistoryLimit is how many weather history entries a free-plan user
// can see.
const freeHistoryLimit = 5

// HistoryService lists weather history and outfit records, always scoped
// to the calling user's identity.
type HistoryService interface {
	// WeatherHistory returns the user's queries newest-first. Free plan
	// is capped; paid plans are unlimited. The plan comes from the
	// token claims, not from a fresh row read.
	WeatherHistory(ctx context.Context, userID uint, plan string) ([]model.WeatherQuery, error)
	Outfits(ctx context.Context, userID uint) ([]model.Outfit, error)
	// SaveOutfit appends a client-submitted outfit record. A nil date
	// defaults to now.
	SaveOutfit(ctx context.Context, userID uint, city, advice string, date *time.Time) (uint, error)
}

type historyService struct {
	historyRepo repository.HistoryRepository
	outfitRepo  repository.OutfitRepository
}

// NewHistoryService creates a new history service.
func NewHistoryService(historyRepo repository.HistoryRepository, outfitRepo repository.OutfitRepository) HistoryService {
	return &historyService{
		historyRepo: historyRepo,
		outfitRepo:  outfitRepo,
	}
}

func (s *historyService) WeatherHistory(ctx context.Context, userID uint, plan string) ([]model.WeatherQuery, error) {
	limit := 0
	if plan == model.PlanFree {
		limit = freeHistoryLimit
	}

	queries, err := s.historyRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return queries, nil
}

func (s *historyService) Outfits(ctx context.Context, userID uint) ([]model.Outfit, error) {
	outfits, err := s.outfitRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list outfits: %w", err)
	}
	return outfits, nil
}

func (s *historyService) SaveOutfit(ctx context.Context, userID uint, city, advice string, date *time.Time) (uint, error) {
	when := time.Now().UTC()
	if date != nil {
		when = *date
	}

	outfit := &model.Outfit{
		UserID: userID,
		City:   city,
		Advice: advice,
		Date:   when,
	}
	if err := s.outfitRepo.Create(ctx, outfit); err != nil {
		return 0, fmt.Errorf("save outfit: %w", err)
	}
	return outfit.ID, nil
}
