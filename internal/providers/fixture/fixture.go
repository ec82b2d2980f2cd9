package fixture

import (
	"context"
	"time"

	domaingames "gridiron-data-service/internal/domain/games"
	"gridiron-data-service/internal/domain/odds"
	"gridiron-data-service/internal/domain/teams"
	"gridiron-data-service/internal/domain/weather"
	"gridiron-data-service/internal/timeutil"
)

// Provider returns a static board useful for local testing and
// bootstrapping when no upstream credentials are configured.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{now: time.Now}
}

// FetchGames returns a deterministic set of example games.
func (p *Provider) FetchGames(ctx context.Context, league domaingames.League, week, season int) ([]domaingames.Game, error) {
	_ = ctx

	kickoff := p.now().UTC().Truncate(time.Hour).Add(3 * time.Hour)
	if week <= 0 {
		week = 1
	}
	if season <= 0 {
		season = timeutil.CurrentSeason(p.now())
	}

	if league == domaingames.LeagueNCAAF {
		return []domaingames.Game{
			{
				ID:       "fixture-ncaaf-1",
				League:   domaingames.LeagueNCAAF,
				Provider: "fixture",
				HomeTeam: teams.Team{Name: "Ohio State Buckeyes", Abbreviation: "OSU", Conference: "Big Ten", RotationNumber: "155"},
				AwayTeam: teams.Team{Name: "Michigan Wolverines", Abbreviation: "MICH", Conference: "Big Ten", RotationNumber: "154"},
				Stadium:  &teams.Stadium{Name: "Ohio Stadium", City: "Columbus", State: "OH", Surface: "turf"},
				Kickoff:  kickoff,
				Week:     week,
				Season:   season,
				Status:   domaingames.StatusScheduled,
				Meta:     domaingames.GameMeta{UpstreamGameID: "fx-2001", FetchTime: p.now()},
			},
		}, nil
	}

	return []domaingames.Game{
		{
			ID:       "fixture-nfl-1",
			League:   domaingames.LeagueNFL,
			Provider: "fixture",
			HomeTeam: teams.Team{Name: "Chicago Bears", Abbreviation: "CHI", Conference: "NFC", RotationNumber: "452"},
			AwayTeam: teams.Team{Name: "Green Bay Packers", Abbreviation: "GB", Conference: "NFC", RotationNumber: "451"},
			Stadium:  &teams.Stadium{Name: "Soldier Field", City: "Chicago", State: "IL", Surface: "grass"},
			Kickoff:  kickoff,
			Week:     week,
			Season:   season,
			Status:   domaingames.StatusScheduled,
			Meta:     domaingames.GameMeta{UpstreamGameID: "fx-1001", FetchTime: p.now()},
		},
		{
			ID:       "fixture-nfl-2",
			League:   domaingames.LeagueNFL,
			Provider: "fixture",
			HomeTeam: teams.Team{Name: "Dallas Cowboys", Abbreviation: "DAL", Conference: "NFC", RotationNumber: "454"},
			AwayTeam: teams.Team{Name: "Philadelphia Eagles", Abbreviation: "PHI", Conference: "NFC", RotationNumber: "453"},
			Stadium:  &teams.Stadium{Name: "AT&T Stadium", City: "Arlington", State: "TX", Dome: true, Surface: "turf"},
			Kickoff:  kickoff.Add(3 * time.Hour),
			Week:     week,
			Season:   season,
			Status:   domaingames.StatusScheduled,
			Meta:     domaingames.GameMeta{UpstreamGameID: "fx-1002", FetchTime: p.now()},
		},
	}, nil
}

// FetchOdds returns deterministic lines matching the fixture games.
func (p *Provider) FetchOdds(ctx context.Context, league domaingames.League) ([]odds.Movement, error) {
	_ = ctx
	observed := p.now().UTC()

	if league == domaingames.LeagueNCAAF {
		return []odds.Movement{
			{
				League:       string(domaingames.LeagueNCAAF),
				AwayTeam:     "MICH",
				HomeTeam:     "OSU",
				AwayRotation: "154",
				HomeRotation: "155",
				Spread:       -6.5,
				SpreadOdds:   odds.DefaultJuice,
				OverUnder:    48.5,
				TotalOdds:    odds.DefaultJuice,
				Sportsbook:   "fixture",
				Timestamp:    observed,
				Source:       "fixture",
			},
		}, nil
	}

	openSpread, openTotal := -2.5, 43.5
	return []odds.Movement{
		{
			League:        string(domaingames.LeagueNFL),
			AwayTeam:      "GB",
			HomeTeam:      "CHI",
			AwayRotation:  "451",
			HomeRotation:  "452",
			Spread:        -3.5,
			SpreadOdds:    odds.DefaultJuice,
			OverUnder:     44.5,
			TotalOdds:     odds.DefaultJuice,
			Sportsbook:    "fixture",
			Timestamp:     observed,
			OpeningSpread: &openSpread,
			OpeningTotal:  &openTotal,
			Source:        "fixture",
		},
		{
			League:       string(domaingames.LeagueNFL),
			AwayTeam:     "PHI",
			HomeTeam:     "DAL",
			AwayRotation: "453",
			HomeRotation: "454",
			Spread:       2.5,
			SpreadOdds:   odds.DefaultJuice,
			OverUnder:    51,
			TotalOdds:    odds.DefaultJuice,
			Sportsbook:   "fixture",
			Timestamp:    observed,
			Source:       "fixture",
		},
	}, nil
}

// Weather is a canned weather provider for outdoor fixture games.
type Weather struct{}

// NewWeather creates the fixture weather provider.
func NewWeather() *Weather { return &Weather{} }

func (*Weather) Name() string { return "fixture" }

// CurrentConditions returns mild, deterministic conditions.
func (*Weather) CurrentConditions(ctx context.Context, city, state string) (weather.Conditions, error) {
	_ = ctx
	_, _ = city, state
	return cannedConditions(nil), nil
}

// GameForecast returns mild, deterministic conditions stamped at kickoff.
func (*Weather) GameForecast(ctx context.Context, city, state string, kickoff time.Time) (weather.Conditions, error) {
	_ = ctx
	_, _ = city, state
	return cannedConditions(&kickoff), nil
}

func cannedConditions(at *time.Time) weather.Conditions {
	return weather.Conditions{
		TemperatureF:  weather.Float(52),
		WindSpeedMPH:  weather.Float(8),
		WindDirection: "W",
		PrecipChance:  weather.Float(10),
		Humidity:      weather.Float(60),
		Summary:       "Partly cloudy",
		ForecastTime:  at,
		Source:        "fixture",
	}
}
