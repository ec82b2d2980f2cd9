package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"

	"gridiron-data-service/internal/metrics"
)

const (
	defaultMaxAttempts    = 3
	defaultInitialBackoff = 1 * time.Second
	defaultMaxBackoff     = 30 * time.Second
	defaultHTTPTimeout    = 30 * time.Second
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TransportConfig controls the shared resilient transport used by every
// source client.
type TransportConfig struct {
	Source         string
	Client         *http.Client
	MinInterval    time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Logger         *slog.Logger
	Metrics        *metrics.Recorder
}

// Transport executes HTTP requests with a blocking throttle, a circuit
// breaker, and exponential-backoff retries. 4xx responses fail fast;
// 5xx and network errors are retried; 429 honors Retry-After.
type Transport struct {
	source         string
	client         httpDoer
	throttle       *throttle
	breaker        *gobreaker.CircuitBreaker
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
	metrics        *metrics.Recorder

	// onRetry is invoked before each retry sleep; tests use it to
	// observe the delay schedule.
	onRetry func(attempt int, delay time.Duration, err error)
}

// NewTransport constructs a Transport, applying defaults for any unset field.
func NewTransport(cfg TransportConfig) *Transport {
	client := httpDoer(cfg.Client)
	if cfg.Client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	initial := cfg.InitialBackoff
	if initial <= 0 {
		initial = defaultInitialBackoff
	}
	max := cfg.MaxBackoff
	if max <= 0 {
		max = defaultMaxBackoff
	}
	source := cfg.Source
	if source == "" {
		source = "source"
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        source,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Transport{
		source:         source,
		client:         client,
		throttle:       newThrottle(cfg.MinInterval),
		breaker:        breaker,
		maxAttempts:    maxAttempts,
		initialBackoff: initial,
		maxBackoff:     max,
		logger:         cfg.Logger,
		metrics:        cfg.Metrics,
	}
}

// Source returns the name the transport reports in errors and metrics.
func (t *Transport) Source() string {
	if t == nil {
		return ""
	}
	return t.source
}

// Do executes a request built by build, retrying per the backoff policy.
// The request is rebuilt for every attempt so bodies are never reused.
func (t *Transport) Do(ctx context.Context, build func(ctx context.Context) (*http.Request, error)) (*http.Response, error) {
	if t == nil || t.client == nil {
		return nil, ErrProviderUnavailable
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = t.initialBackoff
	bo.RandomizationFactor = 0
	bo.Multiplier = 2
	bo.MaxInterval = t.maxBackoff
	bo.MaxElapsedTime = 0
	bo.Reset()

	var lastErr error
	for attempt := 1; ; attempt++ {
		if err := t.throttle.wait(ctx); err != nil {
			return nil, err
		}

		start := time.Now()
		resp, err := t.attempt(ctx, build)
		if t.metrics != nil {
			t.metrics.RecordSourceAttempt(t.source, time.Since(start), err)
		}
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if rl, ok := AsRateLimitError(err); ok && t.metrics != nil {
			t.metrics.RecordRateLimit(t.source, rl.RetryAfter)
		}

		if isPermanent(err) {
			return nil, unwrapPermanent(err)
		}
		if attempt >= t.maxAttempts {
			t.logWarn(ctx, "source fetch failed", "attempts", attempt, "err", lastErr)
			return nil, &ExhaustedError{Source: t.source, Attempts: attempt, Last: lastErr}
		}

		delay := bo.NextBackOff()
		if rl, ok := AsRateLimitError(err); ok && rl.RetryAfter > 0 {
			delay = rl.RetryAfter
		}
		if t.onRetry != nil {
			t.onRetry(attempt, delay, err)
		}
		t.logWarn(ctx, "source fetch retry", "attempt", attempt, "max_attempts", t.maxAttempts, "delay", delay, "err", err)

		if err := sleepCtx(ctx, delay); err != nil {
			return nil, err
		}
	}
}

// GetJSON executes the request and decodes a JSON body into out.
func (t *Transport) GetJSON(ctx context.Context, build func(ctx context.Context) (*http.Request, error), out any) error {
	resp, err := t.Do(ctx, build)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", t.source, err)
	}
	return nil
}

func (t *Transport) attempt(ctx context.Context, build func(ctx context.Context) (*http.Request, error)) (*http.Response, error) {
	req, err := build(ctx)
	if err != nil {
		return nil, backoff.Permanent(err)
	}

	result, err := t.breaker.Execute(func() (interface{}, error) {
		resp, doErr := t.client.Do(req)
		if doErr != nil {
			return nil, doErr
		}
		if classifyErr := t.classify(resp); classifyErr != nil {
			return nil, classifyErr
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, backoff.Permanent(fmt.Errorf("%s: circuit open: %w", t.source, err))
		}
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, backoff.Permanent(fmt.Errorf("%s: unexpected breaker result", t.source))
	}
	return resp, nil
}

// classify turns non-2xx responses into typed errors and drains the body.
func (t *Transport) classify(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	resp.Body.Close()
	snippet := strings.TrimSpace(string(body))

	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{
			Source:     t.source,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Message:    snippet,
		}
	}
	return &StatusError{Source: t.source, StatusCode: resp.StatusCode, Body: snippet}
}

func parseRetryAfter(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}

func isPermanent(err error) bool {
	var pe *backoff.PermanentError
	if errors.As(err, &pe) {
		return true
	}
	if se, ok := AsStatusError(err); ok {
		return se.Permanent()
	}
	return false
}

func unwrapPermanent(err error) error {
	var pe *backoff.PermanentError
	if errors.As(err, &pe) && pe.Err != nil {
		return pe.Err
	}
	return err
}

func (t *Transport) logWarn(ctx context.Context, msg string, args ...any) {
	logWithSource(ctx, t.logger, slog.LevelWarn, t.source, msg, args...)
}
