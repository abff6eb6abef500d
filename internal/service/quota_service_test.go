package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"guardianclima/internal/model"
	"guardianclima/internal/repository"
)

func TestQuotaService_CheckAndConsume(t *testing.T) {
	limits := QuotaLimits{OutfitAdvice: 3, TravelAdvice: 1}

	tests := []struct {
		name           string
		user           *model.User
		feature        Feature
		setupMock      func(*MockUserRepository)
		expectExceeded bool
		expectedUses   int
	}{
		{
			name:    "premium plan bypasses the counter",
			user:    &model.User{ID: 1, Plan: model.PlanPremium, AIOutfitUses: 99},
			feature: FeatureOutfitAdvice,
			setupMock: func(m *MockUserRepository) {
				// No repository call expected.
			},
			expectedUses: 99,
		},
		{
			name:    "pro plan bypasses the counter",
			user:    &model.User{ID: 1, Plan: model.PlanPro},
			feature: FeatureTravelAdvice,
			setupMock: func(m *MockUserRepository) {
			},
			expectedUses: 0,
		},
		{
			name:    "free plan under the limit consumes one use",
			user:    &model.User{ID: 2, Plan: model.PlanFree, AIOutfitUses: 2},
			feature: FeatureOutfitAdvice,
			setupMock: func(m *MockUserRepository) {
				m.On("ConsumeQuota", mock.Anything, uint(2), repository.FeatureOutfit, 3).Return(true, nil)
			},
			expectedUses: 3,
		},
		{
			name:    "free plan at the limit is denied",
			user:    &model.User{ID: 2, Plan: model.PlanFree, AIOutfitUses: 3},
			feature: FeatureOutfitAdvice,
			setupMock: func(m *MockUserRepository) {
				m.On("ConsumeQuota", mock.Anything, uint(2), repository.FeatureOutfit, 3).Return(false, nil)
			},
			expectExceeded: true,
			expectedUses:   3,
		},
		{
			name:    "travel limit of one is denied on the second use",
			user:    &model.User{ID: 3, Plan: model.PlanFree, AITravelUses: 1},
			feature: FeatureTravelAdvice,
			setupMock: func(m *MockUserRepository) {
				m.On("ConsumeQuota", mock.Anything, uint(3), repository.FeatureTravel, 1).Return(false, nil)
			},
			expectExceeded: true,
			expectedUses:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewQuotaService(mockRepo, limits)
			err := service.CheckAndConsume(context.Background(), tt.user, tt.feature)

			if tt.expectExceeded {
				var quotaErr *QuotaExceededError
				assert.Error(t, err)
				assert.True(t, errors.As(err, &quotaErr))
				assert.Equal(t, tt.feature, quotaErr.Feature)
			} else {
				assert.NoError(t, err)
			}

			switch tt.feature {
			case FeatureOutfitAdvice:
				assert.Equal(t, tt.expectedUses, tt.user.AIOutfitUses)
			case FeatureTravelAdvice:
				assert.Equal(t, tt.expectedUses, tt.user.AITravelUses)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

// countingQuotaRepo models the database's guarded-update semantics: the
// counter can never pass the limit no matter how many callers race.
type countingQuotaRepo struct {
	MockUserRepository
	mu    sync.Mutex
	count int
}

func (r *countingQuotaRepo) ConsumeQuota(ctx context.Context, id uint, feature repository.UsageFeature, limit int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.count >= limit {
		return false, nil
	}
	r.count++
	return true, nil
}

func TestQuotaService_CheckAndConsume_Concurrent(t *testing.T) {
	const limit = 3
	const callers = 10

	repo := &countingQuotaRepo{}
	service := NewQuotaService(repo, QuotaLimits{OutfitAdvice: limit, TravelAdvice: 1})

	var wg sync.WaitGroup
	results := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := &model.User{ID: 5, Plan: model.PlanFree}
			results[i] = service.CheckAndConsume(context.Background(), user, FeatureOutfitAdvice)
		}(i)
	}
	wg.Wait()

	allowed := 0
	for _, err := range results {
		if err == nil {
			allowed++
			continue
		}
		var quotaErr *QuotaExceededError
		assert.True(t, errors.As(err, &quotaErr))
	}
	assert.Equal(t, limit, allowed)
	assert.Equal(t, limit, repo.count)
}
