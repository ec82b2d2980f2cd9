package accuweather

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"gridiron-data-service/internal/domain/weather"
	"gridiron-data-service/internal/metrics"
	"gridiron-data-service/internal/providers"
)

// Config controls how the AccuWeather client reaches the upstream API.
type Config struct {
	BaseURL     string
	APIKey      string
	HTTPClient  *http.Client
	MinInterval time.Duration
	MaxAttempts int
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
}

// Client fetches current conditions and hourly forecasts from
// AccuWeather. City lookups resolve to location keys, which are cached
// for the life of the client; AccuWeather free-tier quotas are tight
// enough that every saved lookup matters.
type Client struct {
	baseURL   string
	apiKey    string
	transport *providers.Transport
	now       func() time.Time

	mu   sync.Mutex
	keys map[string]string
}

// NewClient constructs an AccuWeather client with the provided
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
		now:  time.Now,
		keys: make(map[string]string),
	}
}

// Name identifies this provider in fallback chains and logs.
func (c *Client) Name() string { return providerName }

// CurrentConditions returns present-day conditions for a city.
func (c *Client) CurrentConditions(ctx context.Context, city, state string) (weather.Conditions, error) {
	key, err := c.locationKey(ctx, city, state)
	if err != nil {
		return weather.Conditions{}, err
	}

	var payload []currentConditions
	query := url.Values{}
	query.Set("details", "true")
	if err := c.getJSON(ctx, "/currentconditions/v1/"+key, query, &payload); err != nil {
		return weather.Conditions{}, err
	}
	if len(payload) == 0 {
		return weather.Conditions{}, fmt.Errorf("accuweather: no current conditions for %s, %s", city, state)
	}
	return mapCurrent(payload[0]), nil
}

// GameForecast returns the hourly forecast closest to kickoff. Games
// already in the past fall back to current conditions, since the
// forecast window only looks forward.
func (c *Client) GameForecast(ctx context.Context, city, state string, kickoff time.Time) (weather.Conditions, error) {
	if kickoff.Before(c.now()) {
		return c.CurrentConditions(ctx, city, state)
	}

	key, err := c.locationKey(ctx, city, state)
	if err != nil {
		return weather.Conditions{}, err
	}

	var payload []hourlyForecast
	query := url.Values{}
	query.Set("details", "true")
	query.Set("metric", "false")
	if err := c.getJSON(ctx, "/forecasts/v1/hourly/"+hourlyWindow+"/"+key, query, &payload); err != nil {
		return weather.Conditions{}, err
	}
	if len(payload) == 0 {
		return weather.Conditions{}, fmt.Errorf("accuweather: empty hourly forecast for %s, %s", city, state)
	}

	best := payload[0]
	bestGap := forecastGap(best.DateTime, kickoff)
	for _, hour := range payload[1:] {
		if gap := forecastGap(hour.DateTime, kickoff); gap < bestGap {
			best, bestGap = hour, gap
		}
	}
	return mapHourly(best), nil
}

// locationKey resolves a city/state pair to an AccuWeather location key,
// consulting the cache first.
func (c *Client) locationKey(ctx context.Context, city, state string) (string, error) {
	if city == "" {
		return "", fmt.Errorf("accuweather: empty city")
	}

	cacheKey := strings.ToLower(city + "," + state)
	c.mu.Lock()
	if key, ok := c.keys[cacheKey]; ok {
		c.mu.Unlock()
		return key, nil
	}
	c.mu.Unlock()

	var results []locationResult
	query := url.Values{}
	query.Set("q", locationQuery(city, state))
	if err := c.getJSON(ctx, "/locations/v1/cities/search", query, &results); err != nil {
		return "", err
	}
	if len(results) == 0 || results[0].Key == "" {
		return "", fmt.Errorf("accuweather: no location key for %s, %s", city, state)
	}

	c.mu.Lock()
	c.keys[cacheKey] = results[0].Key
	c.mu.Unlock()
	return results[0].Key, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	if c.apiKey == "" {
		return fmt.Errorf("accuweather: missing api key: %w", providers.ErrProviderUnavailable)
	}

	build := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		q.Set("apikey", c.apiKey)
		req.URL.RawQuery = q.Encode()
		return req, nil
	}
	return c.transport.GetJSON(ctx, build, out)
}

func locationQuery(city, state string) string {
	if state == "" {
		return city
	}
	return city + "," + state
}

// forecastGap measures how far a forecast entry sits from kickoff.
// Unparseable timestamps sort last.
func forecastGap(raw string, kickoff time.Time) time.Duration {
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Duration(1<<63 - 1)
	}
	gap := ts.Sub(kickoff)
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
