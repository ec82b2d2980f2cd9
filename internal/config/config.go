package config

import (
	"strings"

	"github.com/joho/godotenv"

	"gridiron-data-service/internal/domain/games"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port           string
	PollInterval   Duration
	Source         string
	Leagues        []games.League
	ValidationMode string
	LineHistoryURL string
	Overtime       OvertimeConfig
	ActionNetwork  ActionNetworkConfig
	Weather        WeatherConfig
	Metrics        MetricsConfig
	Snapshots      SnapshotConfig
}

// Load reads configuration from environment variables with sensible
// defaults. A .env file is honored when present; a missing file is not
// an error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:           envOrDefault(envPort, defaultPort),
		PollInterval:   durationEnvOrDefault(envPollInterval, defaultPollInterval),
		Source:         envOrDefault(envSource, defaultSource),
		Leagues:        loadLeagues(),
		ValidationMode: envOrDefault(envValidation, "drop"),
		LineHistoryURL: envOrDefault(envLineHistory, ""),
		Overtime:       loadOvertime(),
		ActionNetwork:  loadActionNetwork(),
		Weather:        loadWeather(),
		Metrics:        loadMetrics(),
		Snapshots:      loadSnapshots(),
	}
}

func loadLeagues() []games.League {
	raw := listEnvOrDefault(envLeagues, []string{string(games.LeagueNFL), string(games.LeagueNCAAF)})
	leagues := make([]games.League, 0, len(raw))
	for _, r := range raw {
		l := games.League(strings.ToUpper(r))
		if l.Valid() {
			leagues = append(leagues, l)
		}
	}
	if len(leagues) == 0 {
		leagues = []games.League{games.LeagueNFL, games.LeagueNCAAF}
	}
	return leagues
}
