package providers

import (
	"context"
	"time"

	"gridiron-data-service/internal/domain/games"
	"gridiron-data-service/internal/domain/odds"
	"gridiron-data-service/internal/domain/weather"
)

// GameProvider defines how upstream game data is fetched and normalized.
// A week of 0 with an NFL league means "current week" as interpreted by
// the provider; season 0 means the current season.
type GameProvider interface {
	FetchGames(ctx context.Context, league games.League, week, season int) ([]games.Game, error)
}

// OddsProvider fetches the current betting lines for a league.
type OddsProvider interface {
	FetchOdds(ctx context.Context, league games.League) ([]odds.Movement, error)
}

// WeatherProvider fetches normalized weather for a stadium location.
type WeatherProvider interface {
	Name() string
	CurrentConditions(ctx context.Context, city, state string) (weather.Conditions, error)
	GameForecast(ctx context.Context, city, state string, kickoff time.Time) (weather.Conditions, error)
}

// BoardProvider combines the capabilities needed to build a full board.
type BoardProvider interface {
	GameProvider
	OddsProvider
}
