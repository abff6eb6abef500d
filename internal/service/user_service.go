package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"guardianclima/internal/auth"
	apperrors "guardianclima/internal/errors"
	"guardianclima/internal/model"
	"guardianclima/internal/repository"
)

// PreferencesUpdate carries the preference fields the client may change.
// An empty string leaves the current value untouched.
type PreferencesUpdate struct {
	Style             string
	Activity          string
	ColdSensitivity   string
	PreferredColors   string
	ClimatePreference string
	TravelFrequency   string
}

// UserService exposes profile mutations. Both operations change claims
// the client caches in its token, so both return a reissued token.
type UserService interface {
	SavePreferences(ctx context.Context, userID uint, update PreferencesUpdate) (accessToken string, err error)
	UpgradePlan(ctx context.Context, userID uint, plan string) (user *model.User, accessToken string, err error)
}

type userService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, jwtService *auth.JWTService) UserService {
	return &userService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// SavePreferences applies a partial preference update, marks preferences
// as saved and reissues the token so the prefs_saved claim flips for the
// client.
func (s *userService) SavePreferences(ctx context.Context, userID uint, update PreferencesUpdate) (string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrUserNotFound
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	fields := map[string]interface{}{"prefs_saved": true}
	apply := func(column, value string, dst *string) {
		if value != "" {
			fields[column] = value
			*dst = value
		}
	}
	apply("preferred_style", update.Style, &user.PreferredStyle)
	apply("main_activity", update.Activity, &user.MainActivity)
	apply("cold_sensitivity", update.ColdSensitivity, &user.ColdSensitivity)
	apply("preferred_colors", update.PreferredColors, &user.PreferredColors)
	apply("climate_preference", update.ClimatePreference, &user.ClimatePreference)
	apply("travel_frequency", update.TravelFrequency, &user.TravelFrequency)

	if err := s.userRepo.UpdatePreferences(ctx, user.ID, fields); err != nil {
		return "", fmt.Errorf("update preferences: %w", err)
	}
	user.PrefsSaved = true

	token, err := s.jwtService.IssueForUser(user)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// UpgradePlan switches the user to a paid plan and reissues the token so
// the plan claim is fresh. Only premium and pro are valid targets.
func (s *userService) UpgradePlan(ctx context.Context, userID uint, plan string) (*model.User, string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.ErrUserNotFound
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if !model.ValidUpgradePlan(plan) {
		return nil, "", apperrors.ErrInvalidPlan
	}

	if err := s.userRepo.UpdatePlan(ctx, user.ID, plan); err != nil {
		return nil, "", fmt.Errorf("update plan: %w", err)
	}
	user.Plan = plan

	token, err := s.jwtService.IssueForUser(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}
