package actionnetwork

import (
	"testing"
	"time"

	"gridiron-data-service/internal/domain/games"
	"gridiron-data-service/internal/domain/odds"
)

func scoreboardGame() gameEntry {
	return gameEntry{
		ID:         1001,
		StartTime:  "2025-11-02T18:00:00Z",
		HomeTeamID: 2,
		AwayTeamID: 1,
		Teams: []teamEntry{
			{ID: 1, FullName: "Green Bay Packers", Abbreviation: "gb", RotationNumber: 451},
			{ID: 2, FullName: "Chicago Bears", Abbreviation: "chi", RotationNumber: 452},
		},
		Odds: []oddsEntry{
			{Type: "game", BookID: 15, Opener: true, SpreadHome: -2.5, Total: 42.5},
			{Type: "game", BookID: 15, SpreadHome: -3.5, SpreadHomeLine: -115, Total: 44.5, OverLine: -105, MoneylineHome: -180, MoneylineAway: 155, Inserted: "2025-11-01T12:00:00Z"},
			{Type: "firsthalf", BookID: 15, SpreadHome: -2, Total: 21},
		},
	}
}

func TestMapMovementUsesConsensusLine(t *testing.T) {
	m, ok := mapMovement(scoreboardGame(), games.LeagueNFL, time.Now())
	if !ok {
		t.Fatal("mapMovement skipped a complete game")
	}
	if m.HomeTeam != "CHI" || m.AwayTeam != "GB" {
		t.Errorf("teams = %s @ %s, want GB @ CHI", m.AwayTeam, m.HomeTeam)
	}
	if m.HomeRotation != "452" || m.AwayRotation != "451" {
		t.Errorf("rotations = %s/%s", m.AwayRotation, m.HomeRotation)
	}
	if m.Spread != -3.5 || m.SpreadOdds != -115 {
		t.Errorf("spread = %v @ %d", m.Spread, m.SpreadOdds)
	}
	if m.OverUnder != 44.5 || m.TotalOdds != -105 {
		t.Errorf("total = %v @ %d", m.OverUnder, m.TotalOdds)
	}
	if m.MoneylineHome == nil || *m.MoneylineHome != -180 {
		t.Errorf("moneyline home = %v", m.MoneylineHome)
	}
	if m.OpeningSpread == nil || *m.OpeningSpread != -2.5 {
		t.Errorf("opening spread = %v", m.OpeningSpread)
	}
	if m.OpeningTotal == nil || *m.OpeningTotal != 42.5 {
		t.Errorf("opening total = %v", m.OpeningTotal)
	}
	if m.Sportsbook != "consensus" || m.Source != "actionnetwork" {
		t.Errorf("book=%s source=%s", m.Sportsbook, m.Source)
	}
	if !m.Timestamp.Equal(time.Date(2025, time.November, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("timestamp = %v, want inserted time", m.Timestamp)
	}
}

func TestMapMovementFallsBackToFirstBook(t *testing.T) {
	g := scoreboardGame()
	g.Odds = []oddsEntry{
		{Type: "game", BookID: 68, SpreadHome: -3, Total: 43},
	}

	m, ok := mapMovement(g, games.LeagueNFL, time.Now())
	if !ok {
		t.Fatal("mapMovement skipped game without consensus book")
	}
	if m.Sportsbook != "draftkings" {
		t.Errorf("sportsbook = %s, want draftkings", m.Sportsbook)
	}
	if m.SpreadOdds != odds.DefaultJuice || m.TotalOdds != odds.DefaultJuice {
		t.Errorf("missing lines did not default to juice: %d/%d", m.SpreadOdds, m.TotalOdds)
	}
	if m.MoneylineHome != nil {
		t.Errorf("moneyline home = %v, want nil when unquoted", m.MoneylineHome)
	}
	if m.OpeningSpread != nil {
		t.Errorf("opening spread = %v, want nil without opener entry", m.OpeningSpread)
	}
}

func TestMapMovementSkipsIncompleteGames(t *testing.T) {
	noTeams := scoreboardGame()
	noTeams.Teams = nil
	if _, ok := mapMovement(noTeams, games.LeagueNFL, time.Now()); ok {
		t.Error("mapped a game with unresolved teams")
	}

	noLine := scoreboardGame()
	noLine.Odds = []oddsEntry{{Type: "firsthalf", BookID: 15, SpreadHome: -2}}
	if _, ok := mapMovement(noLine, games.LeagueNFL, time.Now()); ok {
		t.Error("mapped a game with no game-period line")
	}
}
