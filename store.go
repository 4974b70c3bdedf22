package main

import (
	"log"
	"sync"
)

// ScoreStore persists the leaderboard
type ScoreStore interface {
	LoadHighScores() ([]Score, error)
	SaveHighScores(scores []Score) error
}

// MemoryScoreStore keeps the leaderboard for the lifetime of the process.
// It stands in when the database cannot be opened.
type MemoryScoreStore struct {
	mu     sync.Mutex
	scores []Score
}

// NewMemoryScoreStore creates an empty in-memory leaderboard
func NewMemoryScoreStore() *MemoryScoreStore {
	return &MemoryScoreStore{}
}

func (m *MemoryScoreStore) LoadHighScores() ([]Score, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Score, len(m.scores))
	copy(out, m.scores)
	return out, nil
}

func (m *MemoryScoreStore) SaveHighScores(scores []Score) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = TrimScores(scores)
	return nil
}

// loadHighScores reads the leaderboard. A missing or corrupt store yields an
// empty list and a logged warning.
func loadHighScores(store ScoreStore, logger *log.Logger) []Score {
	if store == nil {
		return nil
	}
	scores, err := store.LoadHighScores()
	if err != nil {
		logger.Printf("warning: could not load high scores: %v", err)
		return nil
	}
	return TrimScores(scores)
}

// saveHighScores writes the leaderboard. Failures are logged and dropped.
func saveHighScores(store ScoreStore, scores []Score, logger *log.Logger) {
	if store == nil {
		return
	}
	if err := store.SaveHighScores(TrimScores(scores)); err != nil {
		logger.Printf("warning: could not save high scores: %v", err)
	}
}
