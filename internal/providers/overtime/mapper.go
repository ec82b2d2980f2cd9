package overtime

import (
	"fmt"
	"strings"
	"time"

	"gridiron-data-service/internal/domain/games"
	"gridiron-data-service/internal/domain/teams"
)

// TeamStats holds season aggregates for a single team.
type TeamStats struct {
	Team          teams.Team
	League        games.League
	Season        int
	Wins          int
	Losses        int
	PointsFor     float64
	PointsAgainst float64
	YardsPerPlay  float64
}

func mapGame(g gameResponse, fetched time.Time) games.Game {
	game := games.Game{
		ID:       fmt.Sprintf("%s-%s", providerName, g.GameID),
		League:   games.League(strings.ToUpper(g.League)),
		Provider: providerName,
		HomeTeam: mapTeam(g.HomeTeam),
		AwayTeam: mapTeam(g.AwayTeam),
		Kickoff:  parseGameTime(g.GameTime),
		Week:     g.Week,
		Season:   g.Season,
		Status:   mapStatus(g.Status),
		Playoff:  g.Playoff,
		BowlGame: g.BowlGame,
		Meta: games.GameMeta{
			UpstreamGameID: g.GameID,
			FetchTime:      fetched,
		},
	}
	if g.Stadium != nil {
		game.Stadium = &teams.Stadium{
			Name:    g.Stadium.Name,
			City:    g.Stadium.City,
			State:   g.Stadium.State,
			Dome:    g.Stadium.Dome,
			Surface: g.Stadium.Surface,
		}
	}
	if g.HomeScore != nil && g.AwayScore != nil {
		game.Score = &games.Score{Home: *g.HomeScore, Away: *g.AwayScore}
	}
	return game
}

func mapTeam(t teamResponse) teams.Team {
	return teams.Team{
		Name:           t.Name,
		Abbreviation:   teams.NormalizeAbbreviation(t.Abbreviation),
		Conference:     t.Conference,
		RotationNumber: t.RotationNumber,
	}
}

func mapStatus(status string) games.GameStatus {
	switch strings.ToLower(status) {
	case "final", "complete", "completed":
		return games.StatusFinal
	case "in_progress", "live", "halftime":
		return games.StatusInProgress
	case "postponed", "delayed":
		return games.StatusPostponed
	case "canceled", "cancelled":
		return games.StatusCanceled
	default:
		return games.StatusScheduled
	}
}

func parseGameTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	if kickoff, err := time.Parse(time.RFC3339, raw); err == nil {
		return kickoff
	}
	// Some endpoints return date-only values for future weeks.
	if kickoff, err := time.Parse("2006-01-02", raw); err == nil {
		return kickoff
	}
	return time.Time{}
}

func mapTeamStats(s teamStatsResponse) TeamStats {
	return TeamStats{
		Team:          mapTeam(s.Team),
		League:        games.League(strings.ToUpper(s.League)),
		Season:        s.Season,
		Wins:          s.Wins,
		Losses:        s.Losses,
		PointsFor:     s.PointsFor,
		PointsAgainst: s.PointsAgainst,
		YardsPerPlay:  s.YardsPerPlay,
	}
}
