package snapshots

import (
	"encoding/json"
	"errors"
	"os"

	"gridiron-data-service/internal/domain/games"
)

// Store defines how historical boards are loaded.
type Store interface {
	LoadBoard(league games.League, date string) (games.Board, error)
}

// FSStore loads board snapshots from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadBoard reads the board snapshot for a league and date (YYYY-MM-DD).
func (s *FSStore) LoadBoard(league games.League, date string) (games.Board, error) {
	if s == nil {
		return games.Board{}, errors.New("snapshot store not configured")
	}
	if date == "" {
		return games.Board{}, errors.New("snapshot date required")
	}

	f, err := os.Open(BoardSnapshotPath(s.basePath, league, date))
	if err != nil {
		return games.Board{}, err
	}
	defer f.Close()

	var board games.Board
	if err := json.NewDecoder(f).Decode(&board); err != nil {
		return games.Board{}, err
	}
	if board.Date == "" {
		board.Date = date
	}
	return board, nil
}
