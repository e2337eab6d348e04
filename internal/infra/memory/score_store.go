package memory

import (
	"context"
	"sync"
	"time"

	"adaptive-quiz-service/internal/domain"
)

// ScoreStore is the in-memory leaderboard log. Entries are append-only; the
// mutex serializes appends so concurrent sessions cannot lose entries.
type ScoreStore struct {
	now func() time.Time

	mu      sync.Mutex
	entries []domain.ScoreEntry
}

func NewScoreStore() *ScoreStore {
	return NewScoreStoreWithClock(time.Now)
}

// NewScoreStoreWithClock allows deterministic timestamps in tests.
func NewScoreStoreWithClock(now func() time.Time) *ScoreStore {
	return &ScoreStore{now: now}
}

func (s *ScoreStore) AddScore(_ context.Context, username, quizTitle string, score, total int) (domain.ScoreEntry, error) {
	entry := domain.NewScoreEntry(s.now().UTC(), username, quizTitle, score, total)

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.mu.Unlock()
	return entry, nil
}

// Top returns entries sorted by percentage descending. The sort is stable:
// equal percentages keep their insertion order.
func (s *ScoreStore) Top(_ context.Context, limit int) ([]domain.ScoreEntry, error) {
	s.mu.Lock()
	entries := make([]domain.ScoreEntry, len(s.entries))
	copy(entries, s.entries)
	s.mu.Unlock()

	return domain.TopEntries(entries, limit), nil
}

// History returns the user's entries in insertion (chronological) order.
func (s *ScoreStore) History(_ context.Context, username string) ([]domain.ScoreEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.ScoreEntry
	for _, entry := range s.entries {
		if entry.Username == username {
			out = append(out, entry)
		}
	}
	return out, nil
}
