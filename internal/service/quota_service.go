package service

import (
	"context"
	"fmt"

	"guardianclima/internal/model"
	"guardianclima/internal/repository"
)

// Feature names a quota-limited capability.
type Feature string

const (
	// FeatureOutfitAdvice is the image-grounded outfit advice endpoint.
	FeatureOutfitAdvice Feature = "ai-outfit"
	// FeatureTravelAdvice is the travel assistant endpoint.
	FeatureTravelAdvice Feature = "ai-travel"
)

// QuotaExceededError is returned when a free-plan user has exhausted a
// feature's usage limit.
type QuotaExceededError struct {
	Feature Feature
	Limit   int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("quota exceeded for %s (limit %d)", e.Feature, e.Limit)
}

// QuotaLimits carries the per-feature free-plan usage ceilings.
type QuotaLimits struct {
	OutfitAdvice int
	TravelAdvice int
}

// QuotaService gates free-plan usage of the AI features.
type QuotaService interface {
	CheckAndConsume(ctx context.Context, user *model.User, feature Feature) error
}

type quotaService struct {
	userRepo repository.UserRepository
	limits   QuotaLimits
}

// NewQuotaService creates a quota service with the given limits.
func NewQuotaService(userRepo repository.UserRepository, limits QuotaLimits) QuotaService {
	return &quotaService{
		userRepo: userRepo,
		limits:   limits,
	}
}

// CheckAndConsume spends one use of feature for free-plan users. Paid
// plans pass through without touching the counters. The counter is
// advanced before any provider call, so quota stays spent even if
// generation later fails.
func (s *quotaService) CheckAndConsume(ctx context.Context, user *model.User, feature Feature) error {
	if user.Plan != model.PlanFree {
		return nil
	}

	var (
		column repository.UsageFeature
		limit  int
	)
	switch feature {
	case FeatureOutfitAdvice:
		column, limit = repository.FeatureOutfit, s.limits.OutfitAdvice
	case FeatureTravelAdvice:
		column, limit = repository.FeatureTravel, s.limits.TravelAdvice
	default:
		return fmt.Errorf("unknown feature %q", feature)
	}

	allowed, err := s.userRepo.ConsumeQuota(ctx, user.ID, column, limit)
	if err != nil {
		return fmt.Errorf("consume quota: %w", err)
	}
	if !allowed {
		return &QuotaExceededError{Feature: feature, Limit: limit}
	}

	// Keep the in-memory row aligned so a reissued token reflects the spend.
	switch feature {
	case FeatureOutfitAdvice:
		user.AIOutfitUses++
	case FeatureTravelAdvice:
		user.AITravelUses++
	}
	return nil
}
