package server

import (
	"log/slog"

	"gridiron-data-service/internal/config"
	"gridiron-data-service/internal/metrics"
	"gridiron-data-service/internal/providers"
	"gridiron-data-service/internal/providers/accuweather"
	"gridiron-data-service/internal/providers/actionnetwork"
	"gridiron-data-service/internal/providers/fixture"
	"gridiron-data-service/internal/providers/openweather"
	"gridiron-data-service/internal/providers/overtime"
	"gridiron-data-service/internal/validate"
)

// providerFactory assembles the upstream source clients and wraps them
// with schema validation.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

type providerSet struct {
	games   providers.GameProvider
	odds    providers.OddsProvider
	weather providers.WeatherProvider
}

func (f providerFactory) build(cfg config.Config) providerSet {
	set := f.selectProviders(cfg)
	opts := providers.ValidationOptions{
		Mode:    validate.ParseMode(cfg.ValidationMode),
		Logger:  f.logger,
		Metrics: f.metrics,
	}

	set.games = providers.NewValidatedGameProvider(set.games, gameSourceName(cfg), opts)
	if set.odds != nil {
		set.odds = providers.NewValidatedOddsProvider(set.odds, oddsSourceName(cfg), opts)
	}
	if set.weather != nil {
		set.weather = providers.NewValidatedWeatherProvider(set.weather, opts)
	}
	return set
}

func (f providerFactory) selectProviders(cfg config.Config) providerSet {
	if cfg.Source == "fixture" || !cfg.Overtime.Configured() {
		if cfg.Source != "fixture" && f.logger != nil {
			f.logger.Warn("game source credentials missing, falling back to fixtures",
				slog.String("source", cfg.Source))
		}
		fx := fixture.New()
		return providerSet{games: fx, odds: fx, weather: fixture.NewWeather()}
	}

	gamesClient := overtime.NewClient(overtime.Config{
		BaseURL:    cfg.Overtime.BaseURL,
		CustomerID: cfg.Overtime.CustomerID,
		Password:   cfg.Overtime.Password,
		Logger:     f.logger,
		Metrics:    f.metrics,
	})
	oddsClient := actionnetwork.NewClient(actionnetwork.Config{
		BaseURL:     cfg.ActionNetwork.BaseURL,
		MinInterval: cfg.ActionNetwork.RateLimit,
		Logger:      f.logger,
		Metrics:     f.metrics,
	})

	return providerSet{
		games:   gamesClient,
		odds:    oddsClient,
		weather: f.buildWeather(cfg),
	}
}

// buildWeather picks the weather stack from the configured keys. With
// both keys present the preferred source is primary and the other is
// the fallback; with one key there is no fallback; with none, weather
// enrichment is disabled.
func (f providerFactory) buildWeather(cfg config.Config) providers.WeatherProvider {
	var accu, open providers.WeatherProvider
	if cfg.Weather.AccuWeatherKey != "" {
		accu = accuweather.NewClient(accuweather.Config{
			APIKey:  cfg.Weather.AccuWeatherKey,
			Logger:  f.logger,
			Metrics: f.metrics,
		})
	}
	if cfg.Weather.OpenWeatherKey != "" {
		open = openweather.NewClient(openweather.Config{
			APIKey:  cfg.Weather.OpenWeatherKey,
			Logger:  f.logger,
			Metrics: f.metrics,
		})
	}

	switch {
	case accu != nil && open != nil:
		if cfg.Weather.PreferredSource == "openweather" {
			return providers.NewFallbackWeather(open, accu, f.logger)
		}
		return providers.NewFallbackWeather(accu, open, f.logger)
	case accu != nil:
		return accu
	case open != nil:
		return open
	}
	if f.logger != nil {
		f.logger.Warn("no weather keys configured, weather enrichment disabled")
	}
	return nil
}

func gameSourceName(cfg config.Config) string {
	if cfg.Source == "fixture" || !cfg.Overtime.Configured() {
		return "fixture"
	}
	return "overtime"
}

func oddsSourceName(cfg config.Config) string {
	if cfg.Source == "fixture" || !cfg.Overtime.Configured() {
		return "fixture"
	}
	return "actionnetwork"
}
