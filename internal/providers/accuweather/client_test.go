package accuweather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
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

func locationHandler(t *testing.T, lookups *atomic.Int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if lookups != nil {
			lookups.Add(1)
		}
		if r.URL.Query().Get("apikey") != "test-key" {
			t.Errorf("missing api key in %v", r.URL.Query())
		}
		if q := r.URL.Query().Get("q"); q != "Green Bay,WI" {
			t.Errorf("location query = %q", q)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"Key": "331910", "LocalizedName": "Green Bay"}]`))
	}
}

func TestCurrentConditionsMapsReadings(t *testing.T) {
	var lookups atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("GET /locations/v1/cities/search", locationHandler(t, &lookups))
	mux.HandleFunc("GET /currentconditions/v1/331910", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{
			"WeatherText": "Light snow",
			"Temperature": {"Imperial": {"Value": 21.0, "Unit": "F"}},
			"RelativeHumidity": 78,
			"Wind": {"Speed": {"Imperial": {"Value": 14.0, "Unit": "mi/h"}}, "Direction": {"Degrees": 315, "English": "NW"}},
			"HasPrecipitation": true,
			"PrecipitationType": "Snow",
			"LocalObservationDateTime": "2025-12-14T15:00:00Z"
		}]`))
	})

	c := newTestClient(t, mux)
	got, err := c.CurrentConditions(context.Background(), "Green Bay", "WI")
	if err != nil {
		t.Fatalf("CurrentConditions: %v", err)
	}
	if got.TemperatureF == nil || *got.TemperatureF != 21 {
		t.Errorf("temperature = %v", got.TemperatureF)
	}
	if got.WindSpeedMPH == nil || *got.WindSpeedMPH != 14 || got.WindDirection != "NW" {
		t.Errorf("wind = %v %s", got.WindSpeedMPH, got.WindDirection)
	}
	if got.PrecipType != "Snow" || got.Summary != "Light snow" {
		t.Errorf("precip=%q summary=%q", got.PrecipType, got.Summary)
	}
	if got.Source != "accuweather" {
		t.Errorf("source = %s", got.Source)
	}

	// Second call hits the location-key cache.
	if _, err := c.CurrentConditions(context.Background(), "Green Bay", "WI"); err != nil {
		t.Fatalf("second CurrentConditions: %v", err)
	}
	if lookups.Load() != 1 {
		t.Errorf("location lookups = %d, want 1", lookups.Load())
	}
}

func TestGameForecastPicksClosestHour(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /locations/v1/cities/search", locationHandler(t, nil))
	mux.HandleFunc("GET /forecasts/v1/hourly/12hour/331910", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("metric") != "false" {
			t.Errorf("expected imperial forecast, query %v", r.URL.Query())
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"DateTime": "2025-12-14T17:00:00Z", "IconPhrase": "Cloudy", "Temperature": {"Value": 24}, "Wind": {"Speed": {"Value": 10}, "Direction": {"English": "W"}}, "PrecipitationProbability": 20},
			{"DateTime": "2025-12-14T18:00:00Z", "IconPhrase": "Snow", "Temperature": {"Value": 22}, "Wind": {"Speed": {"Value": 12}, "Direction": {"English": "NW"}}, "PrecipitationProbability": 60, "HasPrecipitation": true, "PrecipitationType": "Snow"},
			{"DateTime": "2025-12-14T19:00:00Z", "IconPhrase": "Snow", "Temperature": {"Value": 20}, "Wind": {"Speed": {"Value": 15}, "Direction": {"English": "NW"}}, "PrecipitationProbability": 70}
		]`))
	})

	c := newTestClient(t, mux)
	c.now = func() time.Time { return time.Date(2025, time.December, 14, 12, 0, 0, 0, time.UTC) }

	kickoff := time.Date(2025, time.December, 14, 18, 10, 0, 0, time.UTC)
	got, err := c.GameForecast(context.Background(), "Green Bay", "WI", kickoff)
	if err != nil {
		t.Fatalf("GameForecast: %v", err)
	}
	if got.TemperatureF == nil || *got.TemperatureF != 22 {
		t.Errorf("temperature = %v, want the 18:00 entry", got.TemperatureF)
	}
	if got.PrecipChance == nil || *got.PrecipChance != 60 {
		t.Errorf("precip chance = %v", got.PrecipChance)
	}
	if got.ForecastTime == nil || got.ForecastTime.Hour() != 18 {
		t.Errorf("forecast time = %v", got.ForecastTime)
	}
}

func TestGameForecastInPastUsesCurrentConditions(t *testing.T) {
	currentCalled := false
	mux := http.NewServeMux()
	mux.HandleFunc("GET /locations/v1/cities/search", locationHandler(t, nil))
	mux.HandleFunc("GET /currentconditions/v1/331910", func(w http.ResponseWriter, _ *http.Request) {
		currentCalled = true
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"WeatherText": "Clear", "Temperature": {"Imperial": {"Value": 30}}}]`))
	})

	c := newTestClient(t, mux)
	c.now = func() time.Time { return time.Date(2025, time.December, 15, 12, 0, 0, 0, time.UTC) }

	kickoff := time.Date(2025, time.December, 14, 18, 0, 0, 0, time.UTC)
	got, err := c.GameForecast(context.Background(), "Green Bay", "WI", kickoff)
	if err != nil {
		t.Fatalf("GameForecast: %v", err)
	}
	if !currentCalled {
		t.Error("past kickoff did not use current conditions")
	}
	if got.Summary != "Clear" {
		t.Errorf("summary = %q", got.Summary)
	}
}

func TestClientRequiresAPIKey(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://localhost:1", MinInterval: time.Millisecond})
	_, err := c.CurrentConditions(context.Background(), "Denver", "CO")
	if !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Errorf("error = %v, want ErrProviderUnavailable", err)
	}
}

func TestLocationKeyNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /locations/v1/cities/search", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	c := newTestClient(t, mux)
	if _, err := c.CurrentConditions(context.Background(), "Nowhere", "ZZ"); err == nil {
		t.Error("CurrentConditions succeeded for unknown city")
	}
}
