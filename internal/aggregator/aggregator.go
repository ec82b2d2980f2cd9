package aggregator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"gridiron-data-service/internal/domain/games"
	"gridiron-data-service/internal/domain/odds"
	"gridiron-data-service/internal/domain/teams"
	"gridiron-data-service/internal/logging"
	"gridiron-data-service/internal/providers"
	"gridiron-data-service/internal/timeutil"
)

const defaultWeatherLimit = 4

// Config wires the aggregator's sources.
type Config struct {
	Games        providers.GameProvider
	Odds         providers.OddsProvider
	Weather      providers.WeatherProvider
	Logger       *slog.Logger
	WeatherLimit int
}

// Aggregator fetches games and odds concurrently, merges odds into
// games by matchup, and enriches outdoor games with a kickoff forecast.
// A failed source degrades the board; the board itself fails only when
// no source produced anything.
type Aggregator struct {
	games        providers.GameProvider
	odds         providers.OddsProvider
	weather      providers.WeatherProvider
	logger       *slog.Logger
	weatherLimit int
	now          func() time.Time
	newBatchID   func() string
}

// New constructs an Aggregator. Games is required; odds and weather are
// optional and simply skipped when absent.
func New(cfg Config) *Aggregator {
	limit := cfg.WeatherLimit
	if limit <= 0 {
		limit = defaultWeatherLimit
	}
	return &Aggregator{
		games:        cfg.Games,
		odds:         cfg.Odds,
		weather:      cfg.Weather,
		logger:       cfg.Logger,
		weatherLimit: limit,
		now:          time.Now,
		newBatchID:   uuid.NewString,
	}
}

// FetchBoard builds the merged board for one league.
func (a *Aggregator) FetchBoard(ctx context.Context, league games.League, week, season int) (games.Board, error) {
	if a.games == nil {
		return games.Board{}, providers.ErrProviderUnavailable
	}

	batchID := a.newBatchID()
	logger := a.log().With(logging.FieldBatchID, batchID, logging.FieldLeague, string(league))

	var (
		fetchedGames []games.Game
		gamesErr     error
		movements    []odds.Movement
		oddsErr      error
	)

	var g errgroup.Group
	g.Go(func() error {
		fetchedGames, gamesErr = a.games.FetchGames(ctx, league, week, season)
		return nil
	})
	if a.odds != nil {
		g.Go(func() error {
			movements, oddsErr = a.odds.FetchOdds(ctx, league)
			return nil
		})
	}
	_ = g.Wait()

	if gamesErr != nil {
		logger.WarnContext(ctx, "game source failed", "err", gamesErr)
	}
	if oddsErr != nil {
		logger.WarnContext(ctx, "odds source failed", "err", oddsErr)
	}
	if gamesErr != nil && (a.odds == nil || oddsErr != nil) {
		return games.Board{}, fmt.Errorf("board %s: all sources failed: %w", league, gamesErr)
	}

	board := games.Board{
		League:  league,
		Date:    timeutil.FormatDate(a.now().UTC()),
		BatchID: batchID,
		Games:   fetchedGames,
		Fetched: a.now().UTC(),
	}
	if board.Games == nil {
		board.Games = []games.Game{}
	}

	matched := mergeOdds(board.Games, movements)
	if len(movements) > 0 {
		logger.InfoContext(ctx, "merged odds into board",
			"movements", len(movements), "matched", matched, "games", len(board.Games))
	}

	a.enrichWeather(ctx, logger, board.Games)
	return board, nil
}

// mergeOdds attaches each movement to its game, matching first on
// normalized team abbreviations and then on rotation numbers. It
// returns the number of games that received a line.
func mergeOdds(boardGames []games.Game, movements []odds.Movement) int {
	if len(boardGames) == 0 || len(movements) == 0 {
		return 0
	}

	byMatchup := make(map[string]odds.Movement, len(movements))
	byRotation := make(map[string]odds.Movement)
	for _, m := range movements {
		byMatchup[matchupKey(m.AwayTeam, m.HomeTeam)] = m
		if m.HomeRotation != "" {
			byRotation[m.HomeRotation] = m
		}
	}

	matched := 0
	for i := range boardGames {
		g := &boardGames[i]
		m, ok := byMatchup[matchupKey(g.AwayTeam.Abbreviation, g.HomeTeam.Abbreviation)]
		if !ok && g.HomeTeam.RotationNumber != "" {
			m, ok = byRotation[g.HomeTeam.RotationNumber]
		}
		if !ok {
			continue
		}
		line := m
		g.Odds = &line
		matched++
	}
	return matched
}

// enrichWeather fetches a kickoff forecast for every outdoor game with
// a known stadium. Failures leave the game without weather rather than
// failing the board.
func (a *Aggregator) enrichWeather(ctx context.Context, logger *slog.Logger, boardGames []games.Game) {
	if a.weather == nil {
		return
	}

	var g errgroup.Group
	g.SetLimit(a.weatherLimit)
	for i := range boardGames {
		game := &boardGames[i]
		if game.Stadium == nil || game.Stadium.Dome || game.Stadium.City == "" {
			continue
		}
		g.Go(func() error {
			conditions, err := a.weather.GameForecast(ctx, game.Stadium.City, game.Stadium.State, game.Kickoff)
			if err != nil {
				logger.WarnContext(ctx, "weather enrichment failed",
					"game_id", game.ID, "city", game.Stadium.City, "err", err)
				return nil
			}
			game.Weather = &conditions
			return nil
		})
	}
	_ = g.Wait()
}

func (a *Aggregator) log() *slog.Logger {
	if a.logger != nil {
		return a.logger
	}
	return slog.Default()
}

func matchupKey(away, home string) string {
	return teams.NormalizeAbbreviation(away) + "@" + teams.NormalizeAbbreviation(home)
}
