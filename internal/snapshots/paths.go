package snapshots

import (
	"fmt"
	"path/filepath"
	"strings"

	"gridiron-data-service/internal/domain/games"
)

// BoardSnapshotPath builds the path to a board snapshot for a league
// and date.
func BoardSnapshotPath(basePath string, league games.League, date string) string {
	return filepath.Join(basePath, leagueDir(league), fmt.Sprintf("%s.json", date))
}

func leagueDir(league games.League) string {
	return strings.ToLower(string(league))
}
