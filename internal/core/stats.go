package core

import "time"

// Stats is the per-session score record. BestScore survives sessions;
// the other fields reset on every start.
type Stats struct {
	Score     int `json:"score"`
	Level     int `json:"level"`
	Lives     int `json:"lives"`
	BestScore int `json:"bestScore"`
}

// DefaultStats is used before anything has been persisted.
func DefaultStats() Stats {
	return Stats{Score: 0, Level: 1, Lives: 3, BestScore: 0}
}

// Reset clears the transient fields and keeps BestScore.
func (s *Stats) Reset() {
	s.Score = 0
	s.Level = 1
	s.Lives = 3
}

// SessionRecord describes one completed play session.
type SessionRecord struct {
	RunID      string
	Kind       string
	FinalScore int
	Level      int
	Duration   time.Duration
	// Stats is the record to persist, with BestScore already updated.
	Stats   Stats
	NewBest bool
}
