package quiz

import (
	"fmt"
	"math/rand"
	"time"

	"adaptive-quiz-service/internal/domain"
	"adaptive-quiz-service/internal/qbank"
	"github.com/google/uuid"
)

// Builder assembles quizzes by sampling the question pool. The randomness
// source is injected so sampling and shuffling are reproducible under test.
type Builder struct {
	pool             *qbank.Pool
	rng              *rand.Rand
	timerPerQuestion int
	now              func() time.Time
}

func NewBuilder(pool *qbank.Pool, rng *rand.Rand) *Builder {
	return &Builder{pool: pool, rng: rng, now: time.Now}
}

// WithTimer sets the per-question time limit in seconds for built quizzes.
// Zero means unlimited.
func (b *Builder) WithTimer(seconds int) *Builder {
	b.timerPerQuestion = seconds
	return b
}

// withClock is test-only for deterministic creation timestamps.
func (b *Builder) withClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// CreateByTopic builds a quiz from questions matching the topic
// (case-insensitive). Returns domain.ErrNoMatchingQuestions when the topic
// has no questions.
func (b *Builder) CreateByTopic(title, topic string, count int) (domain.Quiz, error) {
	candidates := b.pool.FilterByTopic(topic)
	if len(candidates) == 0 {
		return domain.Quiz{}, fmt.Errorf("%w: topic %q", domain.ErrNoMatchingQuestions, topic)
	}
	quiz := b.assemble(title, candidates, count)
	quiz.Category = topic
	quiz.Difficulty = domain.DifficultyMixed
	return quiz, nil
}

// CreateByDifficulty builds a quiz from questions of one tier
// (case-insensitive). Returns domain.ErrNoMatchingQuestions when the tier
// has no questions.
func (b *Builder) CreateByDifficulty(title, difficulty string, count int) (domain.Quiz, error) {
	candidates := b.pool.FilterByDifficulty(difficulty)
	if len(candidates) == 0 {
		return domain.Quiz{}, fmt.Errorf("%w: difficulty %q", domain.ErrNoMatchingQuestions, difficulty)
	}
	quiz := b.assemble(title, candidates, count)
	tier, _ := domain.ParseDifficulty(difficulty)
	quiz.Difficulty = tier
	return quiz, nil
}

// assemble draws count questions without replacement, uniformly over all
// subsets of that size, and shuffles each drawn question's options. Count is
// clamped to the candidate set size.
func (b *Builder) assemble(title string, candidates []domain.Question, count int) domain.Quiz {
	if count > len(candidates) {
		count = len(candidates)
	}
	if count < 1 {
		count = 1
	}

	selected := make([]domain.Question, 0, count)
	for _, idx := range b.rng.Perm(len(candidates))[:count] {
		selected = append(selected, ShuffleOptions(b.rng, candidates[idx]))
	}

	return domain.Quiz{
		ID:               uuid.NewString(),
		Title:            title,
		Questions:        selected,
		TimerPerQuestion: b.timerPerQuestion,
		CreatedAt:        b.now().UTC(),
	}
}
