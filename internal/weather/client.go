// Package weather fetches current conditions from the OpenWeatherMap API.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"
	requestTimeout = 10 * time.Second
)

// Snapshot is the subset of provider data the rest of the system uses.
type Snapshot struct {
	Name        string
	TempC       float64
	FeelsLikeC  float64
	HumidityPct int
	Description string
}

// GatewayError reports a failed provider call. It carries only an
// upstream status hint; the provider's response body never leaves this
// package.
type GatewayError struct {
	UpstreamStatus int
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("weather provider request failed (status %d)", e.UpstreamStatus)
}

// Fetcher fetches current conditions for a city.
type Fetcher interface {
	Fetch(ctx context.Context, city string) (*Snapshot, json.RawMessage, error)
}

// Client is an OpenWeatherMap-backed Fetcher.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a weather client. A nil httpClient gets a default
// with a fixed timeout; an empty baseURL falls back to the public API.
func NewClient(httpClient *http.Client, baseURL, apiKey string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// Fetch performs a single request with no retries. It returns the parsed
// snapshot together with the raw provider body; the weather endpoint
// passes the raw body through to the client unchanged.
func (c *Client) Fetch(ctx context.Context, city string) (*Snapshot, json.RawMessage, error) {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	q.Set("lang", "es")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, &GatewayError{UpstreamStatus: http.StatusInternalServerError}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, nil, &GatewayError{UpstreamStatus: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &GatewayError{UpstreamStatus: resp.StatusCode}
	}

	var payload struct {
		Name string `json:"name"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Weather) == 0 {
		return nil, nil, &GatewayError{UpstreamStatus: resp.StatusCode}
	}

	snap := &Snapshot{
		Name:        payload.Name,
		TempC:       payload.Main.Temp,
		FeelsLikeC:  payload.Main.FeelsLike,
		HumidityPct: payload.Main.Humidity,
		Description: payload.Weather[0].Description,
	}
	return snap, json.RawMessage(body), nil
}
