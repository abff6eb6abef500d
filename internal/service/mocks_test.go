package service

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"guardianclima/internal/ai"
	"guardianclima/internal/model"
	"guardianclima/internal/repository"
	"guardianclima/internal/weather"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePreferences(ctx context.Context, id uint, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePlan(ctx context.Context, id uint, plan string) error {
	args := m.Called(ctx, id, plan)
	return args.Error(0)
}

func (m *MockUserRepository) ConsumeQuota(ctx context.Context, id uint, feature repository.UsageFeature, limit int) (bool, error) {
	args := m.Called(ctx, id, feature, limit)
	return args.Bool(0), args.Error(1)
}

// MockHistoryRepository is a mock implementation of repository.HistoryRepository.
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Create(ctx context.Context, query *model.WeatherQuery) error {
	args := m.Called(ctx, query)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]model.WeatherQuery, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WeatherQuery), args.Error(1)
}

// MockOutfitRepository is a mock implementation of repository.OutfitRepository.
type MockOutfitRepository struct {
	mock.Mock
}

func (m *MockOutfitRepository) Create(ctx context.Context, outfit *model.Outfit) error {
	args := m.Called(ctx, outfit)
	return args.Error(0)
}

func (m *MockOutfitRepository) ListByUser(ctx context.Context, userID uint) ([]model.Outfit, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Outfit), args.Error(1)
}

// MockFetcher is a mock implementation of weather.Fetcher.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, city string) (*weather.Snapshot, json.RawMessage, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*weather.Snapshot), args.Get(1).(json.RawMessage), args.Error(2)
}

// MockAdvisor is a mock implementation of ai.Advisor.
type MockAdvisor struct {
	mock.Mock
}

func (m *MockAdvisor) TextAdvice(ctx context.Context, user *model.User, snap *weather.Snapshot) (string, error) {
	args := m.Called(ctx, user, snap)
	return args.String(0), args.Error(1)
}

func (m *MockAdvisor) OutfitAdvice(ctx context.Context, user *model.User, city string, snap *weather.Snapshot, images []ai.Image) (string, error) {
	args := m.Called(ctx, user, city, snap, images)
	return args.String(0), args.Error(1)
}

func (m *MockAdvisor) TravelAdvice(ctx context.Context, user *model.User, city, startDate, endDate string, snap *weather.Snapshot) (string, error) {
	args := m.Called(ctx, user, city, startDate, endDate, snap)
	return args.String(0), args.Error(1)
}
