package providers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gridiron-data-service/internal/domain/weather"
)

// FallbackWeather tries a primary weather provider and falls back to a
// secondary when the primary fails. The secondary is attempted exactly
// once; if both fail, the returned error carries both failures.
type FallbackWeather struct {
	primary   WeatherProvider
	secondary WeatherProvider
	logger    *slog.Logger
}

// NewFallbackWeather builds the fallback chain. Either provider may be
// nil; a chain with no providers reports ErrProviderUnavailable.
func NewFallbackWeather(primary, secondary WeatherProvider, logger *slog.Logger) *FallbackWeather {
	return &FallbackWeather{primary: primary, secondary: secondary, logger: logger}
}

func (f *FallbackWeather) Name() string {
	switch {
	case f == nil:
		return "weather"
	case f.primary != nil && f.secondary != nil:
		return fmt.Sprintf("%s+%s", f.primary.Name(), f.secondary.Name())
	case f.primary != nil:
		return f.primary.Name()
	case f.secondary != nil:
		return f.secondary.Name()
	}
	return "weather"
}

// CurrentConditions returns present-day conditions for a stadium location.
func (f *FallbackWeather) CurrentConditions(ctx context.Context, city, state string) (weather.Conditions, error) {
	return f.fetch(ctx, func(p WeatherProvider) (weather.Conditions, error) {
		return p.CurrentConditions(ctx, city, state)
	})
}

// GameForecast returns the forecast closest to kickoff for a stadium location.
func (f *FallbackWeather) GameForecast(ctx context.Context, city, state string, kickoff time.Time) (weather.Conditions, error) {
	return f.fetch(ctx, func(p WeatherProvider) (weather.Conditions, error) {
		return p.GameForecast(ctx, city, state, kickoff)
	})
}

func (f *FallbackWeather) fetch(ctx context.Context, call func(WeatherProvider) (weather.Conditions, error)) (weather.Conditions, error) {
	if f == nil || (f.primary == nil && f.secondary == nil) {
		return weather.Conditions{}, ErrProviderUnavailable
	}
	if f.primary == nil {
		return call(f.secondary)
	}

	conditions, primaryErr := call(f.primary)
	if primaryErr == nil {
		return conditions, nil
	}
	if f.secondary == nil {
		return weather.Conditions{}, primaryErr
	}

	logWithSource(ctx, f.logger, slog.LevelWarn, f.primary.Name(),
		"primary weather source failed, trying fallback",
		"fallback", f.secondary.Name(), "err", primaryErr)

	conditions, secondaryErr := call(f.secondary)
	if secondaryErr == nil {
		return conditions, nil
	}
	return weather.Conditions{}, fmt.Errorf("all weather sources failed: %s: %v; %s: %w",
		f.primary.Name(), primaryErr, f.secondary.Name(), secondaryErr)
}
