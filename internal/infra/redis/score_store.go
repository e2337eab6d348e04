package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"adaptive-quiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

const scoreKey = "leaderboard:entries"

// ScoreStore keeps the leaderboard as a Redis list. RPUSH is atomic on the
// server, which serializes appends across instances; ranking is computed
// in-process so the stable tie-break matches the in-memory store.
type ScoreStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewScoreStore(client *redis.Client) *ScoreStore {
	return &ScoreStore{client: client, now: time.Now}
}

// NewScoreStoreWithClock allows deterministic timestamps in tests.
func NewScoreStoreWithClock(client *redis.Client, now func() time.Time) *ScoreStore {
	return &ScoreStore{client: client, now: now}
}

func (s *ScoreStore) AddScore(ctx context.Context, username, quizTitle string, score, total int) (domain.ScoreEntry, error) {
	entry := domain.NewScoreEntry(s.now().UTC(), username, quizTitle, score, total)
	data, err := json.Marshal(entry)
	if err != nil {
		return domain.ScoreEntry{}, fmt.Errorf("marshal score entry: %w", err)
	}
	if err := s.client.RPush(ctx, scoreKey, data).Err(); err != nil {
		return domain.ScoreEntry{}, fmt.Errorf("append score entry: %w", err)
	}
	return entry, nil
}

func (s *ScoreStore) Top(ctx context.Context, limit int) ([]domain.ScoreEntry, error) {
	entries, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return domain.TopEntries(entries, limit), nil
}

func (s *ScoreStore) History(ctx context.Context, username string) ([]domain.ScoreEntry, error) {
	entries, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.ScoreEntry
	for _, entry := range entries {
		if entry.Username == username {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (s *ScoreStore) all(ctx context.Context) ([]domain.ScoreEntry, error) {
	raw, err := s.client.LRange(ctx, scoreKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read score entries: %w", err)
	}
	entries := make([]domain.ScoreEntry, 0, len(raw))
	for _, item := range raw {
		var entry domain.ScoreEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, fmt.Errorf("unmarshal score entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
