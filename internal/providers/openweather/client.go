package openweather

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gridiron-data-service/internal/domain/weather"
	"gridiron-data-service/internal/metrics"
	"gridiron-data-service/internal/providers"
)

// Config controls how the OpenWeather client reaches the upstream API.
type Config struct {
	BaseURL     string
	APIKey      string
	HTTPClient  *http.Client
	MinInterval time.Duration
	MaxAttempts int
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
}

// Client fetches current weather and the 3-hourly forecast from
// OpenWeather, always in imperial units.
type Client struct {
	baseURL   string
	apiKey    string
	transport *providers.Transport
	now       func() time.Time
}

// NewClient constructs an OpenWeather client with the provided
// configuration.
func NewClient(cfg Config) *Client {
	interval := cfg.MinInterval
	if interval <= 0 {
		interval = defaultMinInterval
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{
		baseURL: normalizeBaseURL(cfg.BaseURL),
		apiKey:  cfg.APIKey,
		transport: providers.NewTransport(providers.TransportConfig{
			Source:      providerName,
			Client:      client,
			MinInterval: interval,
			MaxAttempts: cfg.MaxAttempts,
			Logger:      cfg.Logger,
			Metrics:     cfg.Metrics,
		}),
		now: time.Now,
	}
}

// Name identifies this provider in fallback chains and logs.
func (c *Client) Name() string { return providerName }

// CurrentConditions returns present-day conditions for a city.
func (c *Client) CurrentConditions(ctx context.Context, city, state string) (weather.Conditions, error) {
	var payload currentResponse
	if err := c.getJSON(ctx, "/data/2.5/weather", city, state, &payload); err != nil {
		return weather.Conditions{}, err
	}
	return mapCurrent(payload), nil
}

// GameForecast returns the forecast entry closest to kickoff. Games
// already in the past fall back to current conditions, since the
// forecast list only looks forward.
func (c *Client) GameForecast(ctx context.Context, city, state string, kickoff time.Time) (weather.Conditions, error) {
	if kickoff.Before(c.now()) {
		return c.CurrentConditions(ctx, city, state)
	}

	var payload forecastResponse
	if err := c.getJSON(ctx, "/data/2.5/forecast", city, state, &payload); err != nil {
		return weather.Conditions{}, err
	}
	if len(payload.List) == 0 {
		return weather.Conditions{}, fmt.Errorf("openweather: empty forecast for %s, %s", city, state)
	}

	best := payload.List[0]
	bestGap := entryGap(best.Dt, kickoff)
	for _, entry := range payload.List[1:] {
		if gap := entryGap(entry.Dt, kickoff); gap < bestGap {
			best, bestGap = entry, gap
		}
	}
	return mapForecast(best), nil
}

func (c *Client) getJSON(ctx context.Context, path, city, state string, out any) error {
	if c.apiKey == "" {
		return fmt.Errorf("openweather: missing api key: %w", providers.ErrProviderUnavailable)
	}
	if city == "" {
		return fmt.Errorf("openweather: empty city")
	}

	build := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, err
		}
		q := url.Values{}
		q.Set("q", locationQuery(city, state))
		q.Set("appid", c.apiKey)
		q.Set("units", "imperial")
		req.URL.RawQuery = q.Encode()
		return req, nil
	}
	return c.transport.GetJSON(ctx, build, out)
}

func locationQuery(city, state string) string {
	if state == "" {
		return city + "," + defaultCountry
	}
	return city + "," + state + "," + defaultCountry
}

func entryGap(dt int64, kickoff time.Time) time.Duration {
	gap := time.Unix(dt, 0).Sub(kickoff)
	if gap < 0 {
		gap = -gap
	}
	return gap
}

func normalizeBaseURL(raw string) string {
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}
