package providers

import (
	"context"
	"log/slog"
	"time"

	"gridiron-data-service/internal/domain/games"
	"gridiron-data-service/internal/domain/odds"
	"gridiron-data-service/internal/domain/weather"
	"gridiron-data-service/internal/logging"
	"gridiron-data-service/internal/metrics"
	"gridiron-data-service/internal/validate"
)

// ValidationOptions is shared by the validating decorators.
type ValidationOptions struct {
	Mode    validate.Mode
	Logger  *slog.Logger
	Metrics *metrics.Recorder
	Checker *validate.Validator
}

func (o *ValidationOptions) checker() *validate.Validator {
	if o.Checker == nil {
		o.Checker = validate.New()
	}
	return o.Checker
}

// ValidatedGameProvider filters or rejects games with out-of-range fields
// before they reach the rest of the pipeline.
type ValidatedGameProvider struct {
	inner GameProvider
	name  string
	opts  ValidationOptions
}

// NewValidatedGameProvider wraps a game provider with record validation.
func NewValidatedGameProvider(inner GameProvider, name string, opts ValidationOptions) *ValidatedGameProvider {
	opts.checker()
	return &ValidatedGameProvider{inner: inner, name: name, opts: opts}
}

func (p *ValidatedGameProvider) FetchGames(ctx context.Context, league games.League, week, season int) ([]games.Game, error) {
	fetched, err := p.inner.FetchGames(ctx, league, week, season)
	if err != nil {
		return nil, err
	}
	return filterBatch(ctx, p.name, "game", fetched, p.opts, func(g games.Game) error {
		return p.opts.Checker.Game(g)
	})
}

// ValidatedOddsProvider filters or rejects odds movements with
// unrealistic lines before they reach the rest of the pipeline.
type ValidatedOddsProvider struct {
	inner OddsProvider
	name  string
	opts  ValidationOptions
}

// NewValidatedOddsProvider wraps an odds provider with record validation.
func NewValidatedOddsProvider(inner OddsProvider, name string, opts ValidationOptions) *ValidatedOddsProvider {
	opts.checker()
	return &ValidatedOddsProvider{inner: inner, name: name, opts: opts}
}

func (p *ValidatedOddsProvider) FetchOdds(ctx context.Context, league games.League) ([]odds.Movement, error) {
	fetched, err := p.inner.FetchOdds(ctx, league)
	if err != nil {
		return nil, err
	}
	return filterBatch(ctx, p.name, "odds movement", fetched, p.opts, func(m odds.Movement) error {
		return p.opts.Checker.Movement(m)
	})
}

// ValidatedWeatherProvider rejects weather records with out-of-range
// readings. Weather is a single record, so drop mode surfaces the error
// the same way strict mode does.
type ValidatedWeatherProvider struct {
	inner WeatherProvider
	opts  ValidationOptions
}

// NewValidatedWeatherProvider wraps a weather provider with record validation.
func NewValidatedWeatherProvider(inner WeatherProvider, opts ValidationOptions) *ValidatedWeatherProvider {
	opts.checker()
	return &ValidatedWeatherProvider{inner: inner, opts: opts}
}

func (p *ValidatedWeatherProvider) Name() string { return p.inner.Name() }

func (p *ValidatedWeatherProvider) CurrentConditions(ctx context.Context, city, state string) (weather.Conditions, error) {
	conditions, err := p.inner.CurrentConditions(ctx, city, state)
	if err != nil {
		return weather.Conditions{}, err
	}
	return p.check(ctx, conditions)
}

func (p *ValidatedWeatherProvider) GameForecast(ctx context.Context, city, state string, kickoff time.Time) (weather.Conditions, error) {
	conditions, err := p.inner.GameForecast(ctx, city, state, kickoff)
	if err != nil {
		return weather.Conditions{}, err
	}
	return p.check(ctx, conditions)
}

func (p *ValidatedWeatherProvider) check(ctx context.Context, conditions weather.Conditions) (weather.Conditions, error) {
	if err := p.opts.Checker.Conditions(conditions); err != nil {
		if p.opts.Metrics != nil {
			p.opts.Metrics.RecordDropped(p.inner.Name(), 1)
		}
		logWithSource(ctx, p.opts.Logger, slog.LevelWarn, p.inner.Name(),
			"invalid weather record", "err", err)
		return weather.Conditions{}, err
	}
	return conditions, nil
}

// filterBatch applies the per-record check to a batch. In drop mode bad
// records are logged, counted, and removed; in strict mode the first bad
// record aborts the batch with a BatchError.
func filterBatch[T any](ctx context.Context, source, kind string, batch []T, opts ValidationOptions, check func(T) error) ([]T, error) {
	kept := make([]T, 0, len(batch))
	dropped := 0
	for i, record := range batch {
		err := check(record)
		if err == nil {
			kept = append(kept, record)
			continue
		}
		if opts.Mode == validate.ModeStrict {
			return nil, &validate.BatchError{Kind: kind, Index: i, Err: err}
		}
		dropped++
		logWithSource(ctx, opts.Logger, slog.LevelWarn, source,
			"dropping invalid record", "kind", kind, "index", i, "err", err)
	}
	if dropped > 0 {
		if opts.Metrics != nil {
			opts.Metrics.RecordDropped(source, dropped)
		}
		logWithSource(ctx, opts.Logger, slog.LevelInfo, source,
			"batch validated", "kind", kind, logging.FieldDropped, dropped, "kept", len(kept))
	}
	return kept, nil
}
