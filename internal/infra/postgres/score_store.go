package postgres

import (
	"context"
	"fmt"
	"time"

	"adaptive-quiz-service/internal/domain"
	"github.com/uptrace/bun"
)

type scoreRow struct {
	bun.BaseModel `bun:"table:scores"`

	ID         int64     `bun:"id,pk,autoincrement"`
	Timestamp  time.Time `bun:"ts"`
	Username   string    `bun:"username"`
	QuizTitle  string    `bun:"quiz_title"`
	Score      int       `bun:"score"`
	Total      int       `bun:"total"`
	Percentage float64   `bun:"percentage"`
}

func (r scoreRow) entry() domain.ScoreEntry {
	return domain.ScoreEntry{
		Timestamp:  r.Timestamp,
		Username:   r.Username,
		QuizTitle:  r.QuizTitle,
		Score:      r.Score,
		Total:      r.Total,
		Percentage: r.Percentage,
	}
}

// ScoreStore persists the leaderboard in Postgres. The serial id records
// insertion order, so ordering by (percentage desc, id asc) reproduces the
// stable tie-break of the in-memory store.
type ScoreStore struct {
	db  *bun.DB
	now func() time.Time
}

func NewScoreStore(db *bun.DB) *ScoreStore {
	return &ScoreStore{db: db, now: time.Now}
}

func (s *ScoreStore) AddScore(ctx context.Context, username, quizTitle string, score, total int) (domain.ScoreEntry, error) {
	entry := domain.NewScoreEntry(s.now().UTC(), username, quizTitle, score, total)
	row := scoreRow{
		Timestamp:  entry.Timestamp,
		Username:   entry.Username,
		QuizTitle:  entry.QuizTitle,
		Score:      entry.Score,
		Total:      entry.Total,
		Percentage: entry.Percentage,
	}
	if _, err := s.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return domain.ScoreEntry{}, fmt.Errorf("append score entry: %w", err)
	}
	return entry, nil
}

func (s *ScoreStore) Top(ctx context.Context, limit int) ([]domain.ScoreEntry, error) {
	var rows []scoreRow
	q := s.db.NewSelect().Model(&rows).OrderExpr("percentage DESC, id ASC")
	if limit >= 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	return toEntries(rows), nil
}

func (s *ScoreStore) History(ctx context.Context, username string) ([]domain.ScoreEntry, error) {
	var rows []scoreRow
	err := s.db.NewSelect().Model(&rows).
		Where("username = ?", username).
		OrderExpr("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("read user history: %w", err)
	}
	return toEntries(rows), nil
}

func toEntries(rows []scoreRow) []domain.ScoreEntry {
	entries := make([]domain.ScoreEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.entry())
	}
	return entries
}
