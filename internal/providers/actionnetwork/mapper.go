package actionnetwork

import (
	"fmt"
	"strconv"
	"time"

	"gridiron-data-service/internal/domain/games"
	"gridiron-data-service/internal/domain/odds"
	"gridiron-data-service/internal/domain/teams"
)

// mapMovement turns one scoreboard game into an odds movement. Games
// with no usable line (no teams resolved or no game-period odds) are
// skipped rather than emitted half-empty.
func mapMovement(g gameEntry, league games.League, observed time.Time) (odds.Movement, bool) {
	home, homeOK := findTeam(g.Teams, g.HomeTeamID)
	away, awayOK := findTeam(g.Teams, g.AwayTeamID)
	if !homeOK || !awayOK {
		return odds.Movement{}, false
	}

	current, currentOK := pickLine(g.Odds)
	if !currentOK {
		return odds.Movement{}, false
	}

	m := odds.Movement{
		League:       string(league),
		AwayTeam:     teams.NormalizeAbbreviation(away.Abbreviation),
		HomeTeam:     teams.NormalizeAbbreviation(home.Abbreviation),
		AwayRotation: rotation(away.RotationNumber),
		HomeRotation: rotation(home.RotationNumber),
		Spread:       current.SpreadHome,
		SpreadOdds:   lineOrJuice(current.SpreadHomeLine),
		OverUnder:    current.Total,
		TotalOdds:    lineOrJuice(current.OverLine),
		Sportsbook:   bookName(current.BookID),
		Timestamp:    parseInserted(current.Inserted, observed),
		Source:       providerName,
	}
	if current.MoneylineHome != 0 {
		ml := current.MoneylineHome
		m.MoneylineHome = &ml
	}
	if current.MoneylineAway != 0 {
		ml := current.MoneylineAway
		m.MoneylineAway = &ml
	}
	if opener, ok := pickOpener(g.Odds); ok {
		spread, total := opener.SpreadHome, opener.Total
		m.OpeningSpread = &spread
		m.OpeningTotal = &total
	}
	return m, true
}

func findTeam(entries []teamEntry, id int) (teamEntry, bool) {
	for _, t := range entries {
		if t.ID == id {
			return t, true
		}
	}
	return teamEntry{}, false
}

// pickLine prefers the consensus book's game line, falling back to the
// first non-opener game entry.
func pickLine(entries []oddsEntry) (oddsEntry, bool) {
	var fallback oddsEntry
	found := false
	for _, e := range entries {
		if e.Type != "game" || e.Opener {
			continue
		}
		if e.BookID == consensusBookID {
			return e, true
		}
		if !found {
			fallback = e
			found = true
		}
	}
	return fallback, found
}

func pickOpener(entries []oddsEntry) (oddsEntry, bool) {
	for _, e := range entries {
		if e.Type == "game" && e.Opener {
			return e, true
		}
	}
	return oddsEntry{}, false
}

func lineOrJuice(line int) int {
	if line == 0 {
		return odds.DefaultJuice
	}
	return line
}

func bookName(id int) string {
	if name, ok := bookNames[id]; ok {
		return name
	}
	return fmt.Sprintf("book-%d", id)
}

func rotation(num int) string {
	if num <= 0 {
		return ""
	}
	return strconv.Itoa(num)
}

func parseInserted(raw string, fallback time.Time) time.Time {
	if raw == "" {
		return fallback
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts
	}
	return fallback
}
