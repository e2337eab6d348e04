package postgres

import (
	"context"
	"errors"
	"fmt"

	"adaptive-quiz-service/internal/domain"
	"adaptive-quiz-service/internal/qbank"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// QuestionLoader loads question-set JSONB from Postgres and normalizes the
// raw records (letter/text answers become canonical indexes) on the way in.
type QuestionLoader struct {
	pool *pgxpool.Pool
}

func NewQuestionLoader(pool *pgxpool.Pool) *QuestionLoader {
	return &QuestionLoader{pool: pool}
}

func (l *QuestionLoader) LoadQuestions(ctx context.Context, setID string) ([]domain.Question, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM question_sets WHERE id=$1`, setID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrQuestionSetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load question set: %w", err)
	}
	questions, err := qbank.DecodeQuestions(raw)
	if err != nil {
		return nil, fmt.Errorf("question set %q: %w", setID, err)
	}
	return questions, nil
}
