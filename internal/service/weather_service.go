package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"guardianclima/internal/model"
	"guardianclima/internal/repository"
	"guardianclima/internal/weather"
)

// WeatherService fetches current conditions and records per-user history.
type WeatherService interface {
	CurrentWeather(ctx context.Context, userID uint, city string) (*weather.Snapshot, json.RawMessage, error)
}

type weatherService struct {
	fetcher     weather.Fetcher
	historyRepo repository.HistoryRepository
}

// NewWeatherService creates a new weather service.
func NewWeatherService(fetcher weather.Fetcher, historyRepo repository.HistoryRepository) WeatherService {
	return &weatherService{
		fetcher:     fetcher,
		historyRepo: historyRepo,
	}
}

// CurrentWeather fetches current conditions for city and appends a
// history row for the user. The history insert is best-effort: a storage
// failure is logged and the weather payload is still returned.
func (s *weatherService) CurrentWeather(ctx context.Context, userID uint, city string) (*weather.Snapshot, json.RawMessage, error) {
	snap, raw, err := s.fetcher.Fetch(ctx, city)
	if err != nil {
		return nil, nil, err
	}

	record := &model.WeatherQuery{
		UserID:      userID,
		City:        snap.Name,
		Temperature: snap.TempC,
		Description: snap.Description,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.historyRepo.Create(ctx, record); err != nil {
		log.Printf("weather history write failed for user %d: %v", userID, err)
	}

	return snap, raw, nil
}
