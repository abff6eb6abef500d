package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleBody = `{
	"name": "Madrid",
	"main": {"temp": 21.5, "feels_like": 20.1, "humidity": 40},
	"weather": [{"description": "cielo claro"}]
}`

func TestClient_Fetch(t *testing.T) {
	t.Run("successful fetch", func(t *testing.T) {
		var gotQuery map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			gotQuery = map[string]string{
				"q":     q.Get("q"),
				"appid": q.Get("appid"),
				"units": q.Get("units"),
				"lang":  q.Get("lang"),
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(sampleBody))
		}))
		defer server.Close()

		client := NewClient(server.Client(), server.URL, "test-key")
		snap, raw, err := client.Fetch(context.Background(), "Madrid")

		assert.NoError(t, err)
		assert.Equal(t, "Madrid", snap.Name)
		assert.Equal(t, 21.5, snap.TempC)
		assert.Equal(t, 20.1, snap.FeelsLikeC)
		assert.Equal(t, 40, snap.HumidityPct)
		assert.Equal(t, "cielo claro", snap.Description)
		assert.JSONEq(t, sampleBody, string(raw))

		assert.Equal(t, map[string]string{
			"q":     "Madrid",
			"appid": "test-key",
			"units": "metric",
			"lang":  "es",
		}, gotQuery)
	})

	t.Run("upstream error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
		}))
		defer server.Close()

		client := NewClient(server.Client(), server.URL, "test-key")
		snap, raw, err := client.Fetch(context.Background(), "Nowhere")

		var gatewayErr *GatewayError
		assert.True(t, errors.As(err, &gatewayErr))
		assert.Equal(t, http.StatusNotFound, gatewayErr.UpstreamStatus)
		assert.Nil(t, snap)
		assert.Nil(t, raw)
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer server.Close()

		client := NewClient(server.Client(), server.URL, "test-key")
		snap, _, err := client.Fetch(context.Background(), "Madrid")

		var gatewayErr *GatewayError
		assert.True(t, errors.As(err, &gatewayErr))
		assert.Equal(t, http.StatusOK, gatewayErr.UpstreamStatus)
		assert.Nil(t, snap)
	})

	t.Run("body without weather entries", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"name":"Madrid","main":{"temp":21.5},"weather":[]}`))
		}))
		defer server.Close()

		client := NewClient(server.Client(), server.URL, "test-key")
		snap, _, err := client.Fetch(context.Background(), "Madrid")

		var gatewayErr *GatewayError
		assert.True(t, errors.As(err, &gatewayErr))
		assert.Nil(t, snap)
	})

	t.Run("unreachable server", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := NewClient(nil, server.URL, "test-key")
		snap, _, err := client.Fetch(context.Background(), "Madrid")

		var gatewayErr *GatewayError
		assert.True(t, errors.As(err, &gatewayErr))
		assert.Equal(t, http.StatusInternalServerError, gatewayErr.UpstreamStatus)
		assert.Nil(t, snap)
	})
}
