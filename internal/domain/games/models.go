package games

import (
	"time"

	"gridiron-data-service/internal/domain/odds"
	"gridiron-data-service/internal/domain/teams"
	"gridiron-data-service/internal/domain/weather"
)

// League identifies a supported football league.
type League string

const (
	LeagueNFL   League = "NFL"
	LeagueNCAAF League = "NCAAF"
)

// Valid reports whether the league is one we aggregate.
func (l League) Valid() bool {
	return l == LeagueNFL || l == LeagueNCAAF
}

// WeekBounds returns the inclusive week range for the league.
// NFL: 1-18 regular season, 19-22 playoffs. NCAAF: 0 preseason,
// 1-15 regular season, 16 bowls.
func (l League) WeekBounds() (min, max int) {
	if l == LeagueNFL {
		return 1, 22
	}
	return 0, 16
}

// GameStatus mirrors the shared contract for game lifecycle states.
type GameStatus string

const (
	StatusScheduled  GameStatus = "SCHEDULED"
	StatusInProgress GameStatus = "IN_PROGRESS"
	StatusFinal      GameStatus = "FINAL"
	StatusPostponed  GameStatus = "POSTPONED"
	StatusCanceled   GameStatus = "CANCELED"
)

// Score captures home and away points for games that have started.
type Score struct {
	Home int `json:"home" validate:"gte=0,lte=150"`
	Away int `json:"away" validate:"gte=0,lte=150"`
}

// GameMeta stores provider metadata for a game.
type GameMeta struct {
	UpstreamGameID string    `json:"upstreamGameId"`
	FetchTime      time.Time `json:"fetchTime"`
}

// Game is the canonical game shape exposed by the service. Odds and
// weather are attached during aggregation when available.
type Game struct {
	ID        string              `json:"id"`
	League    League              `json:"league"`
	Provider  string              `json:"provider"`
	HomeTeam  teams.Team          `json:"homeTeam"`
	AwayTeam  teams.Team          `json:"awayTeam"`
	Stadium   *teams.Stadium      `json:"stadium,omitempty"`
	Kickoff   time.Time           `json:"kickoff"`
	Week      int                 `json:"week"`
	Season    int                 `json:"season"`
	Status    GameStatus          `json:"status"`
	Score     *Score              `json:"score,omitempty"`
	Odds      *odds.Movement      `json:"odds,omitempty"`
	Weather   *weather.Conditions `json:"weather,omitempty"`
	Playoff   bool                `json:"playoff,omitempty"`
	BowlGame  bool                `json:"bowlGame,omitempty"`
	Meta      GameMeta            `json:"meta"`
}

// PointDifferential returns home minus away points once a score exists.
func (g Game) PointDifferential() (int, bool) {
	if g.Score == nil {
		return 0, false
	}
	return g.Score.Home - g.Score.Away, true
}

// TotalPoints returns the combined score once a score exists.
func (g Game) TotalPoints() (int, bool) {
	if g.Score == nil {
		return 0, false
	}
	return g.Score.Home + g.Score.Away, true
}

// CoveredSpread reports whether the home side covered the posted spread.
func (g Game) CoveredSpread() (bool, bool) {
	diff, ok := g.PointDifferential()
	if !ok || g.Odds == nil {
		return false, false
	}
	return float64(diff)+g.Odds.Spread > 0, true
}

// HitOver reports whether the combined score beat the posted total.
func (g Game) HitOver() (bool, bool) {
	total, ok := g.TotalPoints()
	if !ok || g.Odds == nil {
		return false, false
	}
	return float64(total) > g.Odds.OverUnder, true
}

// Board is the merged per-league payload served over HTTP and written
// to snapshots.
type Board struct {
	League  League    `json:"league"`
	Date    string    `json:"date"`
	BatchID string    `json:"batchId,omitempty"`
	Games   []Game    `json:"games"`
	Fetched time.Time `json:"fetched"`
}

// NewBoard builds a Board payload.
func NewBoard(league League, date string, games []Game) Board {
	return Board{
		League: league,
		Date:   date,
		Games:  games,
	}
}
