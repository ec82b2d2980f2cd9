package openweather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gridiron-data-service/internal/providers"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		BaseURL:     srv.URL,
		APIKey:      "test-key",
		HTTPClient:  srv.Client(),
		MinInterval: time.Millisecond,
	})
}

func TestCurrentConditionsBuildsImperialQuery(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /data/2.5/weather", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("q") != "Buffalo,NY,US" || q.Get("units") != "imperial" || q.Get("appid") != "test-key" {
			t.Errorf("unexpected query %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"weather": [{"main": "Clouds", "description": "overcast clouds"}],
			"main": {"temp": 33.1, "humidity": 81},
			"wind": {"speed": 22.0, "deg": 250}
		}`))
	})

	c := newTestClient(t, mux)
	got, err := c.CurrentConditions(context.Background(), "Buffalo", "NY")
	if err != nil {
		t.Fatalf("CurrentConditions: %v", err)
	}
	if got.TemperatureF == nil || *got.TemperatureF != 33.1 {
		t.Errorf("temperature = %v", got.TemperatureF)
	}
	if got.WindDirection != "WSW" {
		t.Errorf("wind direction = %s", got.WindDirection)
	}
}

func TestGameForecastPicksClosestEntry(t *testing.T) {
	kickoff := time.Date(2025, time.December, 14, 18, 0, 0, 0, time.UTC)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /data/2.5/forecast", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"list": [
				{"dt": 1765726200, "main": {"temp": 30}, "wind": {"speed": 8, "deg": 180}, "pop": 0.1},
				{"dt": 1765737000, "main": {"temp": 27}, "wind": {"speed": 12, "deg": 200}, "pop": 0.5},
				{"dt": 1765747800, "main": {"temp": 25}, "wind": {"speed": 14, "deg": 220}, "pop": 0.7}
			]
		}`))
	})

	c := newTestClient(t, mux)
	c.now = func() time.Time { return kickoff.Add(-6 * time.Hour) }

	got, err := c.GameForecast(context.Background(), "Buffalo", "NY", kickoff)
	if err != nil {
		t.Fatalf("GameForecast: %v", err)
	}

	// Kickoff is 2025-12-14T18:00Z = unix 1765735200; the middle entry
	// (1765737000, thirty minutes later) is nearest.
	if got.TemperatureF == nil || *got.TemperatureF != 27 {
		t.Errorf("temperature = %v, want middle entry", got.TemperatureF)
	}
	if got.PrecipChance == nil || *got.PrecipChance != 50 {
		t.Errorf("precip chance = %v, want 50", got.PrecipChance)
	}
}

func TestGameForecastInPastUsesCurrentConditions(t *testing.T) {
	currentCalled := false
	mux := http.NewServeMux()
	mux.HandleFunc("GET /data/2.5/weather", func(w http.ResponseWriter, _ *http.Request) {
		currentCalled = true
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"main": {"temp": 41}, "wind": {"speed": 5, "deg": 90}}`))
	})

	c := newTestClient(t, mux)
	c.now = func() time.Time { return time.Date(2025, time.December, 15, 12, 0, 0, 0, time.UTC) }

	kickoff := time.Date(2025, time.December, 14, 18, 0, 0, 0, time.UTC)
	if _, err := c.GameForecast(context.Background(), "Buffalo", "NY", kickoff); err != nil {
		t.Fatalf("GameForecast: %v", err)
	}
	if !currentCalled {
		t.Error("past kickoff did not use current conditions")
	}
}

func TestClientRequiresAPIKey(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://localhost:1", MinInterval: time.Millisecond})
	_, err := c.CurrentConditions(context.Background(), "Buffalo", "NY")
	if !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Errorf("error = %v, want ErrProviderUnavailable", err)
	}
}
