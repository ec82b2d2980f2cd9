package store

import (
	"sync"

	"gridiron-data-service/internal/domain/games"
)

// MemoryStore keeps the latest merged board per league in memory,
// with a flat index of games by id for direct lookups.
type MemoryStore struct {
	mu     sync.RWMutex
	boards map[games.League]games.Board
	byID   map[string]games.Game
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		boards: make(map[games.League]games.Board),
		byID:   make(map[string]games.Game),
	}
}

// ReplaceBoard swaps in a freshly aggregated board for its league.
func (s *MemoryStore) ReplaceBoard(board games.Board) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.boards[board.League]; ok {
		for _, g := range prev.Games {
			delete(s.byID, g.ID)
		}
	}
	s.boards[board.League] = board
	for _, g := range board.Games {
		s.byID[g.ID] = g
	}
}

// Board returns the current board for a league.
func (s *MemoryStore) Board(league games.League) (games.Board, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.boards[league]
	return b, ok
}

// Boards returns the current board for every league that has one.
func (s *MemoryStore) Boards() []games.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]games.Board, 0, len(s.boards))
	for _, b := range s.boards {
		result = append(result, b)
	}
	return result
}

// Game retrieves a game by its aggregated id.
func (s *MemoryStore) Game(id string) (games.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.byID[id]
	return g, ok
}

// GameCount reports how many games are currently indexed.
func (s *MemoryStore) GameCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
