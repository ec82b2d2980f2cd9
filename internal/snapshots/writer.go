package snapshots

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gridiron-data-service/internal/domain/games"
	"gridiron-data-service/internal/timeutil"
)

const defaultRetentionDays = 14

// Writer persists per-league board snapshots and the manifest, pruning
// snapshots that fall outside the retention window.
type Writer struct {
	basePath      string
	retentionDays int
	now           func() time.Time
}

// NewWriter constructs a writer rooted at basePath with a rolling
// retention window.
func NewWriter(basePath string, retentionDays int) *Writer {
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}
	return &Writer{
		basePath:      basePath,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// BasePath exposes the writer root path (primarily for testing).
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteBoard writes a board snapshot under its league and date, then
// prunes old dates for that league. Unchanged payloads skip the write
// but still refresh the manifest.
func (w *Writer) WriteBoard(board games.Board) error {
	if w == nil {
		return fmt.Errorf("snapshot writer not configured")
	}
	if board.Date == "" {
		return fmt.Errorf("snapshot date required")
	}
	if !board.League.Valid() {
		return fmt.Errorf("snapshot league %q unknown", board.League)
	}

	// The caller's slice may already be shared with HTTP readers, so
	// sort a copy rather than reordering it in place.
	sorted := make([]games.Game, len(board.Games))
	copy(sorted, board.Games)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})
	board.Games = sorted

	target := BoardSnapshotPath(w.basePath, board.League, board.Date)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(board, "", "  ")
	if err != nil {
		return err
	}
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return w.updateManifest(board.League, board.Date)
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		return err
	}
	return w.updateManifest(board.League, board.Date)
}

// Prune removes snapshots older than the retention window for every
// league and rewrites the manifest. The daily maintenance job calls
// this; writes also prune their own league as a side effect.
func (w *Writer) Prune() error {
	if w == nil {
		return nil
	}
	manifestPath := filepath.Join(w.basePath, "manifest.json")
	m, _ := readManifest(manifestPath, w.retentionDays)

	for _, league := range []games.League{games.LeagueNFL, games.LeagueNCAAF} {
		dates, err := w.listDates(league)
		if err != nil {
			return err
		}
		kept, err := w.pruneLeague(league, dates)
		if err != nil {
			return err
		}
		meta := m.Leagues[string(league)]
		meta.Dates = kept
		m.Leagues[string(league)] = meta
	}
	m.Retention.BoardDays = w.retentionDays
	return writeManifest(w.basePath, m)
}

func (w *Writer) updateManifest(league games.League, date string) error {
	manifestPath := filepath.Join(w.basePath, "manifest.json")
	m, _ := readManifest(manifestPath, w.retentionDays)

	dates, err := w.listDates(league)
	if err != nil {
		return err
	}
	if !containsDate(dates, date) {
		dates = append(dates, date)
	}
	kept, err := w.pruneLeague(league, dates)
	if err != nil {
		return err
	}

	m.Leagues[string(league)] = LeagueMeta{
		Dates:         kept,
		LastRefreshed: w.now().UTC(),
	}
	m.Retention.BoardDays = w.retentionDays
	return writeManifest(w.basePath, m)
}

func (w *Writer) listDates(league games.League) ([]string, error) {
	dir := filepath.Join(w.basePath, leagueDir(league))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var dates []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if filepath.Ext(name) != ".json" {
			continue
		}
		dates = append(dates, name[:len(name)-len(".json")])
	}
	sort.Strings(dates)
	return dates, nil
}

func (w *Writer) pruneLeague(league games.League, dates []string) ([]string, error) {
	now := w.now().UTC()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -w.retentionDays)

	var keep []string
	for _, d := range dates {
		parsed, err := timeutil.ParseDate(d)
		if err != nil {
			keep = append(keep, d)
			continue
		}
		if parsed.Before(cutoff) {
			_ = os.Remove(BoardSnapshotPath(w.basePath, league, d))
			continue
		}
		keep = append(keep, d)
	}
	sort.Strings(keep)
	return keep, nil
}

func containsDate(dates []string, date string) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}
