package handler

import (
	"context"
	"mime/multipart"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/mock"

	"guardianclima/internal/model"
	"guardianclima/internal/service"
)

// testValidator wires validator.v10 into echo the same way the router does.
type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) SavePreferences(ctx context.Context, userID uint, update service.PreferencesUpdate) (string, error) {
	args := m.Called(ctx, userID, update)
	return args.String(0), args.Error(1)
}

func (m *MockUserService) UpgradePlan(ctx context.Context, userID uint, plan string) (*model.User, string, error) {
	args := m.Called(ctx, userID, plan)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

// MockAdviceService is a mock implementation of service.AdviceService.
type MockAdviceService struct {
	mock.Mock
}

func (m *MockAdviceService) TextAdvice(ctx context.Context, userID uint, city string) (string, error) {
	args := m.Called(ctx, userID, city)
	return args.String(0), args.Error(1)
}

func (m *MockAdviceService) OutfitAdvice(ctx context.Context, userID uint, city string, files []*multipart.FileHeader) (string, string, error) {
	args := m.Called(ctx, userID, city, files)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAdviceService) TravelAdvice(ctx context.Context, userID uint, city, startDate, endDate string) (string, string, error) {
	args := m.Called(ctx, userID, city, startDate, endDate)
	return args.String(0), args.String(1), args.Error(2)
}
