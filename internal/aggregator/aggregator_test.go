package aggregator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gridiron-data-service/internal/domain/games"
	"gridiron-data-service/internal/domain/odds"
	"gridiron-data-service/internal/domain/teams"
	"gridiron-data-service/internal/domain/weather"
)

type stubGames struct {
	games []games.Game
	err   error
}

func (s *stubGames) FetchGames(_ context.Context, _ games.League, _, _ int) ([]games.Game, error) {
	return s.games, s.err
}

type stubOdds struct {
	movements []odds.Movement
	err       error
}

func (s *stubOdds) FetchOdds(_ context.Context, _ games.League) ([]odds.Movement, error) {
	return s.movements, s.err
}

type stubWeather struct {
	mu     sync.Mutex
	cities []string
	err    error
}

func (s *stubWeather) Name() string { return "stubweather" }

func (s *stubWeather) CurrentConditions(_ context.Context, city, _ string) (weather.Conditions, error) {
	return s.record(city)
}

func (s *stubWeather) GameForecast(_ context.Context, city, _ string, _ time.Time) (weather.Conditions, error) {
	return s.record(city)
}

func (s *stubWeather) record(city string) (weather.Conditions, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return weather.Conditions{}, s.err
	}
	s.cities = append(s.cities, city)
	return weather.Conditions{TemperatureF: weather.Float(40), Summary: "Cloudy"}, nil
}

func boardGames() []games.Game {
	return []games.Game{
		{
			ID:       "overtime-1",
			League:   games.LeagueNFL,
			HomeTeam: teams.Team{Abbreviation: "CHI"},
			AwayTeam: teams.Team{Abbreviation: "GB"},
			Stadium:  &teams.Stadium{Name: "Soldier Field", City: "Chicago", State: "IL"},
			Kickoff:  time.Now().Add(24 * time.Hour),
		},
		{
			ID:       "overtime-2",
			League:   games.LeagueNFL,
			HomeTeam: teams.Team{Abbreviation: "DAL", RotationNumber: "454"},
			AwayTeam: teams.Team{Abbreviation: "PHI", RotationNumber: "453"},
			Stadium:  &teams.Stadium{Name: "AT&T Stadium", City: "Arlington", State: "TX", Dome: true},
			Kickoff:  time.Now().Add(27 * time.Hour),
		},
	}
}

func TestFetchBoardMergesAndEnriches(t *testing.T) {
	w := &stubWeather{}
	a := New(Config{
		Games: &stubGames{games: boardGames()},
		Odds: &stubOdds{movements: []odds.Movement{
			{League: "NFL", AwayTeam: "gb", HomeTeam: "chi", Spread: -3.5, SpreadOdds: -110, OverUnder: 44.5, TotalOdds: -110},
			// No abbreviations; matched via home rotation number.
			{League: "NFL", AwayTeam: "PHIL", HomeTeam: "DALL", HomeRotation: "454", Spread: 2.5, SpreadOdds: -110, OverUnder: 51, TotalOdds: -110},
		}},
		Weather: w,
	})

	board, err := a.FetchBoard(context.Background(), games.LeagueNFL, 9, 2025)
	if err != nil {
		t.Fatalf("FetchBoard: %v", err)
	}
	if board.BatchID == "" {
		t.Error("batch id missing")
	}
	if board.League != games.LeagueNFL || len(board.Games) != 2 {
		t.Fatalf("board = %+v", board)
	}

	first, second := board.Games[0], board.Games[1]
	if first.Odds == nil || first.Odds.Spread != -3.5 {
		t.Errorf("first game odds = %+v", first.Odds)
	}
	if second.Odds == nil || second.Odds.Spread != 2.5 {
		t.Errorf("rotation-matched odds = %+v", second.Odds)
	}

	// Outdoor Chicago gets weather; the Arlington dome is skipped.
	if first.Weather == nil {
		t.Error("outdoor game missing weather")
	}
	if second.Weather != nil {
		t.Error("dome game was enriched with weather")
	}
	if len(w.cities) != 1 || w.cities[0] != "Chicago" {
		t.Errorf("weather lookups = %v", w.cities)
	}
}

func TestFetchBoardSurvivesOddsFailure(t *testing.T) {
	a := New(Config{
		Games: &stubGames{games: boardGames()},
		Odds:  &stubOdds{err: errors.New("scoreboard down")},
	})

	board, err := a.FetchBoard(context.Background(), games.LeagueNFL, 9, 2025)
	if err != nil {
		t.Fatalf("FetchBoard: %v", err)
	}
	if len(board.Games) != 2 {
		t.Fatalf("games = %d, want 2", len(board.Games))
	}
	for _, g := range board.Games {
		if g.Odds != nil {
			t.Errorf("game %s has odds from a failed source", g.ID)
		}
	}
}

func TestFetchBoardSurvivesWeatherFailure(t *testing.T) {
	a := New(Config{
		Games:   &stubGames{games: boardGames()},
		Weather: &stubWeather{err: errors.New("both sources down")},
	})

	board, err := a.FetchBoard(context.Background(), games.LeagueNFL, 9, 2025)
	if err != nil {
		t.Fatalf("FetchBoard: %v", err)
	}
	for _, g := range board.Games {
		if g.Weather != nil {
			t.Errorf("game %s has weather from a failed source", g.ID)
		}
	}
}

func TestFetchBoardFailsWhenAllSourcesFail(t *testing.T) {
	gamesErr := errors.New("login failed")
	a := New(Config{
		Games: &stubGames{err: gamesErr},
		Odds:  &stubOdds{err: errors.New("scoreboard down")},
	})

	_, err := a.FetchBoard(context.Background(), games.LeagueNFL, 9, 2025)
	if !errors.Is(err, gamesErr) {
		t.Errorf("error = %v, want wrapped game-source failure", err)
	}
}

func TestFetchBoardDegradesWhenOnlyGamesFail(t *testing.T) {
	a := New(Config{
		Games: &stubGames{err: errors.New("login failed")},
		Odds:  &stubOdds{movements: []odds.Movement{{League: "NFL", AwayTeam: "GB", HomeTeam: "CHI"}}},
	})

	board, err := a.FetchBoard(context.Background(), games.LeagueNFL, 9, 2025)
	if err != nil {
		t.Fatalf("FetchBoard: %v", err)
	}
	if len(board.Games) != 0 {
		t.Errorf("games = %d, want empty degraded board", len(board.Games))
	}
}
