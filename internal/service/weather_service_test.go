package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"guardianclima/internal/model"
	"guardianclima/internal/weather"
)

func TestWeatherService_CurrentWeather(t *testing.T) {
	rawBody := json.RawMessage(`{"name":"Madrid","main":{"temp":21.5}}`)

	t.Run("fetch succeeds and history is recorded", func(t *testing.T) {
		mockFetcher := new(MockFetcher)
		mockHistory := new(MockHistoryRepository)

		mockFetcher.On("Fetch", mock.Anything, "Madrid").Return(testSnapshot, rawBody, nil)
		mockHistory.On("Create", mock.Anything, mock.MatchedBy(func(q *model.WeatherQuery) bool {
			return q.UserID == 4 && q.City == "Madrid" && q.Temperature == 21.5 && q.Description == "cielo claro"
		})).Return(nil)

		service := NewWeatherService(mockFetcher, mockHistory)
		snap, raw, err := service.CurrentWeather(context.Background(), 4, "Madrid")

		assert.NoError(t, err)
		assert.Equal(t, testSnapshot, snap)
		assert.Equal(t, rawBody, raw)

		mockFetcher.AssertExpectations(t)
		mockHistory.AssertExpectations(t)
	})

	t.Run("history write failure still returns the weather", func(t *testing.T) {
		mockFetcher := new(MockFetcher)
		mockHistory := new(MockHistoryRepository)

		mockFetcher.On("Fetch", mock.Anything, "Madrid").Return(testSnapshot, rawBody, nil)
		mockHistory.On("Create", mock.Anything, mock.AnythingOfType("*model.WeatherQuery")).Return(errors.New("insert failed"))

		service := NewWeatherService(mockFetcher, mockHistory)
		snap, raw, err := service.CurrentWeather(context.Background(), 4, "Madrid")

		assert.NoError(t, err)
		assert.Equal(t, testSnapshot, snap)
		assert.Equal(t, rawBody, raw)
	})

	t.Run("gateway failure writes no history", func(t *testing.T) {
		mockFetcher := new(MockFetcher)
		mockHistory := new(MockHistoryRepository)

		mockFetcher.On("Fetch", mock.Anything, "Nowhere").Return(nil, nil, &weather.GatewayError{UpstreamStatus: 404})

		service := NewWeatherService(mockFetcher, mockHistory)
		snap, raw, err := service.CurrentWeather(context.Background(), 4, "Nowhere")

		var gatewayErr *weather.GatewayError
		assert.True(t, errors.As(err, &gatewayErr))
		assert.Equal(t, 404, gatewayErr.UpstreamStatus)
		assert.Nil(t, snap)
		assert.Nil(t, raw)

		mockHistory.AssertExpectations(t)
	})
}
