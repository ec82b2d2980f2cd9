package actionnetwork

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"gridiron-data-service/internal/domain/games"
	"gridiron-data-service/internal/domain/odds"
	"gridiron-data-service/internal/metrics"
	"gridiron-data-service/internal/providers"
)

// Config controls how the Action Network client reaches the public
// scoreboard feed.
type Config struct {
	BaseURL     string
	HTTPClient  *http.Client
	MinInterval time.Duration
	MaxAttempts int
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
}

// Client reads betting lines from the Action Network scoreboard feed
// and maps them to odds movements.
type Client struct {
	baseURL   string
	transport *providers.Transport
	now       func() time.Time
}

// NewClient constructs an Action Network client with the provided
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

// FetchOdds retrieves the current board lines for a league.
func (c *Client) FetchOdds(ctx context.Context, league games.League) ([]odds.Movement, error) {
	sport, err := sportPath(league)
	if err != nil {
		return nil, err
	}

	build := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/web/v2/scoreboard/"+sport, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("period", "game")
		req.URL.RawQuery = q.Encode()
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	var payload scoreboardResponse
	if err := c.transport.GetJSON(ctx, build, &payload); err != nil {
		return nil, err
	}

	movements := make([]odds.Movement, 0, len(payload.Games))
	for _, g := range payload.Games {
		if m, ok := mapMovement(g, league, c.now()); ok {
			movements = append(movements, m)
		}
	}
	return movements, nil
}

func sportPath(league games.League) (string, error) {
	switch league {
	case games.LeagueNFL:
		return "nfl", nil
	case games.LeagueNCAAF:
		return "ncaaf", nil
	}
	return "", fmt.Errorf("actionnetwork: unsupported league %q", league)
}

func normalizeBaseURL(raw string) string {
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}
