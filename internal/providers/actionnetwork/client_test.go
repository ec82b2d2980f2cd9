package actionnetwork

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gridiron-data-service/internal/domain/games"
	"gridiron-data-service/internal/providers"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		BaseURL:     srv.URL,
		HTTPClient:  srv.Client(),
		MinInterval: time.Millisecond,
	})
}

func TestFetchOddsRequestsScoreboard(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /web/v2/scoreboard/nfl", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("period") != "game" {
			t.Errorf("unexpected query %v", r.URL.Query())
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"games": [{
				"id": 1001,
				"home_team_id": 2,
				"away_team_id": 1,
				"teams": [
					{"id": 1, "abbr": "GB", "rotation_number": 451},
					{"id": 2, "abbr": "CHI", "rotation_number": 452}
				],
				"odds": [
					{"type": "game", "book_id": 15, "spread_home": -3.5, "spread_home_line": -110, "total": 44.5, "over_line": -110}
				]
			}]
		}`))
	})

	c := newTestClient(t, mux)
	got, err := c.FetchOdds(context.Background(), games.LeagueNFL)
	if err != nil {
		t.Fatalf("FetchOdds: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d movements, want 1", len(got))
	}
	if got[0].HomeTeam != "CHI" || got[0].Spread != -3.5 {
		t.Errorf("movement = %+v", got[0])
	}
}

func TestFetchOddsUnsupportedLeague(t *testing.T) {
	c := newTestClient(t, http.NewServeMux())
	if _, err := c.FetchOdds(context.Background(), games.League("MLB")); err == nil {
		t.Error("FetchOdds accepted unsupported league")
	}
}

func TestFetchOddsSurfacesStatusErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /web/v2/scoreboard/ncaaf", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})

	c := newTestClient(t, mux)
	_, err := c.FetchOdds(context.Background(), games.LeagueNCAAF)
	se, ok := providers.AsStatusError(err)
	if !ok || se.StatusCode != http.StatusForbidden {
		t.Errorf("error = %v, want StatusError 403", err)
	}
}
