package server

import (
	"io"
	"log/slog"
	"testing"

	"gridiron-data-service/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFactoryDefaultsToFixture(t *testing.T) {
	cfg := config.Config{Source: "fixture"}
	set := newProviderFactory(discardLogger(), nil).build(cfg)

	if set.games == nil || set.odds == nil || set.weather == nil {
		t.Fatal("expected all fixture providers to be wired")
	}
	if got := set.weather.Name(); got != "fixture" {
		t.Fatalf("expected fixture weather, got %q", got)
	}
}

func TestFactoryFallsBackWithoutCredentials(t *testing.T) {
	cfg := config.Config{Source: "overtime"}
	set := newProviderFactory(discardLogger(), nil).build(cfg)

	if got := set.weather.Name(); got != "fixture" {
		t.Fatalf("expected fixture fallback without credentials, got %q", got)
	}
}

func TestFactoryBuildsLiveClients(t *testing.T) {
	cfg := config.Config{
		Source: "overtime",
		Overtime: config.OvertimeConfig{
			BaseURL:    "https://api.overtime.test",
			CustomerID: "cust",
			Password:   "pass",
		},
		ActionNetwork: config.ActionNetworkConfig{BaseURL: "https://api.action.test"},
		Weather: config.WeatherConfig{
			AccuWeatherKey:  "a-key",
			OpenWeatherKey:  "o-key",
			PreferredSource: "accuweather",
		},
	}
	set := newProviderFactory(discardLogger(), nil).build(cfg)

	if set.games == nil || set.odds == nil {
		t.Fatal("expected live game and odds providers")
	}
	if got := set.weather.Name(); got != "accuweather+openweather" {
		t.Fatalf("expected accuweather primary, got %q", got)
	}
}

func TestFactoryPrefersOpenWeather(t *testing.T) {
	cfg := config.Config{
		Source:   "overtime",
		Overtime: config.OvertimeConfig{CustomerID: "cust", Password: "pass"},
		Weather: config.WeatherConfig{
			AccuWeatherKey:  "a-key",
			OpenWeatherKey:  "o-key",
			PreferredSource: "openweather",
		},
	}
	set := newProviderFactory(discardLogger(), nil).build(cfg)

	if got := set.weather.Name(); got != "openweather+accuweather" {
		t.Fatalf("expected openweather primary, got %q", got)
	}
}

func TestFactoryDisablesWeatherWithoutKeys(t *testing.T) {
	cfg := config.Config{
		Source:   "overtime",
		Overtime: config.OvertimeConfig{CustomerID: "cust", Password: "pass"},
	}
	set := newProviderFactory(discardLogger(), nil).build(cfg)

	if set.weather != nil {
		t.Fatalf("expected weather disabled without keys, got %v", set.weather)
	}
}

func TestFactorySingleWeatherKey(t *testing.T) {
	cfg := config.Config{
		Source:   "overtime",
		Overtime: config.OvertimeConfig{CustomerID: "cust", Password: "pass"},
		Weather:  config.WeatherConfig{OpenWeatherKey: "o-key"},
	}
	set := newProviderFactory(discardLogger(), nil).build(cfg)

	if got := set.weather.Name(); got != "openweather" {
		t.Fatalf("expected bare openweather, got %q", got)
	}
}
