package overtime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"gridiron-data-service/internal/domain/games"
	"gridiron-data-service/internal/metrics"
	"gridiron-data-service/internal/providers"
	"gridiron-data-service/internal/timeutil"
)

// Config controls how the Overtime client reaches the upstream API.
type Config struct {
	BaseURL     string
	CustomerID  string
	Password    string
	HTTPClient  *http.Client
	MinInterval time.Duration
	MaxAttempts int
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
}

// Client fetches games, game details, and team stats from the Overtime
// API. Requests carry a bearer token obtained via Login; an expired
// token is refreshed once on 401 before the call fails.
type Client struct {
	baseURL    string
	customerID string
	password   string
	transport  *providers.Transport
	now        func() time.Time

	mu    sync.Mutex
	token string
}

// NewClient constructs an Overtime client with the provided configuration.
func NewClient(cfg Config) *Client {
	interval := cfg.MinInterval
	if interval <= 0 {
		interval = defaultMinInterval
	}
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		customerID: cfg.CustomerID,
		password:   cfg.Password,
		transport: providers.NewTransport(providers.TransportConfig{
			Source:      providerName,
			Client:      resolveHTTPClient(cfg.HTTPClient),
			MinInterval: interval,
			MaxAttempts: cfg.MaxAttempts,
			Logger:      cfg.Logger,
			Metrics:     cfg.Metrics,
		}),
		now: time.Now,
	}
}

// Login exchanges the configured credentials for a bearer token. Callers
// normally never need this: fetch methods log in lazily.
func (c *Client) Login(ctx context.Context) error {
	_, err := c.login(ctx)
	return err
}

// FetchGames retrieves the board for a league. A week of zero means the
// upstream's current week; a season of zero means the current season.
func (c *Client) FetchGames(ctx context.Context, league games.League, week, season int) ([]games.Game, error) {
	if !league.Valid() {
		return nil, fmt.Errorf("overtime: unsupported league %q", league)
	}
	if season <= 0 {
		season = timeutil.CurrentSeason(c.now())
	}

	query := url.Values{}
	query.Set("league", string(league))
	query.Set("season", strconv.Itoa(season))
	if week > 0 {
		query.Set("week", strconv.Itoa(week))
	}

	var payload gamesResponse
	if err := c.authorizedJSON(ctx, "/api/v1/games", query, &payload); err != nil {
		return nil, err
	}

	fetched := c.now()
	mapped := make([]games.Game, 0, len(payload.Games))
	for _, g := range payload.Games {
		mapped = append(mapped, mapGame(g, fetched))
	}
	return mapped, nil
}

// GameDetails retrieves a single game by its upstream id.
func (c *Client) GameDetails(ctx context.Context, gameID string) (games.Game, error) {
	if gameID == "" {
		return games.Game{}, fmt.Errorf("overtime: empty game id")
	}

	var payload gameResponse
	if err := c.authorizedJSON(ctx, "/api/v1/games/"+url.PathEscape(gameID), nil, &payload); err != nil {
		return games.Game{}, err
	}
	return mapGame(payload, c.now()), nil
}

// TeamStats retrieves season aggregates for a team.
func (c *Client) TeamStats(ctx context.Context, league games.League, abbreviation string, season int) (TeamStats, error) {
	if abbreviation == "" {
		return TeamStats{}, fmt.Errorf("overtime: empty team abbreviation")
	}
	if season <= 0 {
		season = timeutil.CurrentSeason(c.now())
	}

	query := url.Values{}
	query.Set("league", string(league))
	query.Set("season", strconv.Itoa(season))

	var payload teamStatsResponse
	path := "/api/v1/teams/" + url.PathEscape(abbreviation) + "/stats"
	if err := c.authorizedJSON(ctx, path, query, &payload); err != nil {
		return TeamStats{}, err
	}
	return mapTeamStats(payload), nil
}

// authorizedJSON performs a bearer-authenticated GET, refreshing the
// token once when the upstream reports 401.
func (c *Client) authorizedJSON(ctx context.Context, path string, query url.Values, out any) error {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return err
	}

	err = c.transport.GetJSON(ctx, c.buildGet(path, query, token), out)
	if se, ok := providers.AsStatusError(err); ok && se.StatusCode == http.StatusUnauthorized {
		token, err = c.refreshToken(ctx, token)
		if err != nil {
			return err
		}
		return c.transport.GetJSON(ctx, c.buildGet(path, query, token), out)
	}
	return err
}

func (c *Client) buildGet(path string, query url.Values, token string) func(ctx context.Context) (*http.Request, error) {
	return func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, err
		}
		if len(query) > 0 {
			req.URL.RawQuery = query.Encode()
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")
		return req, nil
	}
}

func (c *Client) ensureToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		return token, nil
	}
	return c.login(ctx)
}

// refreshToken re-authenticates unless another caller already replaced
// the stale token.
func (c *Client) refreshToken(ctx context.Context, stale string) (string, error) {
	c.mu.Lock()
	current := c.token
	c.mu.Unlock()
	if current != "" && current != stale {
		return current, nil
	}
	return c.login(ctx)
}

func (c *Client) login(ctx context.Context) (string, error) {
	if c.customerID == "" || c.password == "" {
		return "", fmt.Errorf("overtime: missing credentials: %w", providers.ErrProviderUnavailable)
	}

	build := func(ctx context.Context) (*http.Request, error) {
		body, err := json.Marshal(loginRequest{CustomerID: c.customerID, Password: c.password})
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/login", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}

	var payload loginResponse
	if err := c.transport.GetJSON(ctx, build, &payload); err != nil {
		return "", fmt.Errorf("overtime: login failed: %w", err)
	}
	if payload.Token == "" {
		return "", fmt.Errorf("overtime: login returned empty token")
	}

	c.mu.Lock()
	c.token = payload.Token
	c.mu.Unlock()
	return payload.Token, nil
}

func normalizeBaseURL(raw string) string {
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}

func resolveHTTPClient(client *http.Client) *http.Client {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}
