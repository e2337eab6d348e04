package app

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"adaptive-quiz-service/internal/analytics"
	"adaptive-quiz-service/internal/domain"
	"adaptive-quiz-service/internal/qbank"
	"adaptive-quiz-service/internal/quiz"
)

// QuestionRepository loads question sets (from cache/backing store).
type QuestionRepository interface {
	GetQuestions(ctx context.Context, setID string) ([]domain.Question, error)
}

// ScoreStore is the append-only leaderboard log. Appends must be serialized;
// implementations guard the read-modify-write so concurrent sessions cannot
// lose entries.
type ScoreStore interface {
	AddScore(ctx context.Context, username, quizTitle string, score, total int) (domain.ScoreEntry, error)
	Top(ctx context.Context, limit int) ([]domain.ScoreEntry, error)
	History(ctx context.Context, username string) ([]domain.ScoreEntry, error)
}

// QuizService contains the core quiz use cases: browsing the pool, building
// quizzes, and recording scores.
type QuizService struct {
	questions        QuestionRepository
	scores           ScoreStore
	timerPerQuestion int

	mu  sync.Mutex
	rng *rand.Rand
}

func NewQuizService(questions QuestionRepository, scores ScoreStore, timerPerQuestion int) *QuizService {
	return NewQuizServiceWithSeed(questions, scores, timerPerQuestion, time.Now().UnixNano())
}

// NewQuizServiceWithSeed fixes the sampling seed for deterministic tests.
func NewQuizServiceWithSeed(questions QuestionRepository, scores ScoreStore, timerPerQuestion int, seed int64) *QuizService {
	return &QuizService{
		questions:        questions,
		scores:           scores,
		timerPerQuestion: timerPerQuestion,
		rng:              rand.New(rand.NewSource(seed)),
	}
}

// Categories lists the distinct topics available in a question set.
func (s *QuizService) Categories(ctx context.Context, setID string) ([]string, error) {
	pool, err := s.pool(ctx, setID)
	if err != nil {
		return nil, err
	}
	return pool.Categories(), nil
}

// Difficulties lists the distinct tiers present in a question set.
func (s *QuizService) Difficulties(ctx context.Context, setID string) ([]domain.Difficulty, error) {
	pool, err := s.pool(ctx, setID)
	if err != nil {
		return nil, err
	}
	return pool.Difficulties(), nil
}

// CreateQuizByTopic samples a quiz from one topic of the question set.
func (s *QuizService) CreateQuizByTopic(ctx context.Context, setID, title, topic string, count int) (domain.Quiz, error) {
	pool, err := s.pool(ctx, setID)
	if err != nil {
		return domain.Quiz{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return quiz.NewBuilder(pool, s.rng).WithTimer(s.timerPerQuestion).CreateByTopic(title, topic, count)
}

// CreateQuizByDifficulty samples a quiz from one tier of the question set.
func (s *QuizService) CreateQuizByDifficulty(ctx context.Context, setID, title, difficulty string, count int) (domain.Quiz, error) {
	pool, err := s.pool(ctx, setID)
	if err != nil {
		return domain.Quiz{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return quiz.NewBuilder(pool, s.rng).WithTimer(s.timerPerQuestion).CreateByDifficulty(title, difficulty, count)
}

// RecordScore aggregates a finished (or partial) result list and appends one
// leaderboard entry for it.
func (s *QuizService) RecordScore(ctx context.Context, username, quizTitle string, results []domain.SessionResult) (domain.ScoreEntry, error) {
	report := analytics.NewReport(results)
	return s.scores.AddScore(ctx, username, quizTitle, report.Correct(), report.Total())
}

// Top returns the leaderboard sorted by percentage descending.
func (s *QuizService) Top(ctx context.Context, limit int) ([]domain.ScoreEntry, error) {
	return s.scores.Top(ctx, limit)
}

// History returns one user's entries in chronological order.
func (s *QuizService) History(ctx context.Context, username string) ([]domain.ScoreEntry, error) {
	return s.scores.History(ctx, username)
}

func (s *QuizService) pool(ctx context.Context, setID string) (*qbank.Pool, error) {
	questions, err := s.questions.GetQuestions(ctx, setID)
	if err != nil {
		return nil, err
	}
	return qbank.NewPool(questions), nil
}
