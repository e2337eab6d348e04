package domain

import (
	"strings"
	"time"
)

// Difficulty is one of the fixed question tiers. Quizzes may additionally be
// tagged Mixed when assembled across tiers.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyMixed  Difficulty = "mixed"
)

// ParseDifficulty matches a tier name case-insensitively.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy, true
	case DifficultyMedium:
		return DifficultyMedium, true
	case DifficultyHard:
		return DifficultyHard, true
	case DifficultyMixed:
		return DifficultyMixed, true
	}
	return "", false
}

// Question is the canonical in-memory form of an MCQ question. AnswerIndex
// always points into Options; source records that encode the answer as a
// letter or as literal option text are resolved at the load boundary.
type Question struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Options     []string   `json:"options"`
	AnswerIndex int        `json:"answer_index"`
	Topic       string     `json:"topic,omitempty"`
	Difficulty  Difficulty `json:"difficulty"`
	Explanation string     `json:"explanation,omitempty"`
}

// Quiz is an immutable, ordered set of shuffled questions assembled for one
// playthrough. It owns copies of its questions, never the pool's originals.
type Quiz struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Questions        []Question `json:"questions"`
	Category         string     `json:"category,omitempty"`
	Difficulty       Difficulty `json:"difficulty"`
	TimerPerQuestion int        `json:"timer_per_question"` // seconds; 0 = unlimited
	CreatedAt        time.Time  `json:"created_at"`
}

// SessionResult records the outcome of one answered question. ChosenIndex is
// nil on skip or timeout. Never mutated after creation.
type SessionResult struct {
	QuestionID   string     `json:"question_id"`
	ChosenIndex  *int       `json:"chosen_index"`
	CorrectIndex int        `json:"correct_index"`
	IsCorrect    bool       `json:"is_correct"`
	TimeTaken    float64    `json:"time_taken"` // seconds
	Difficulty   Difficulty `json:"difficulty"`
}

// ScoreEntry is one recorded score in the append-only leaderboard log.
type ScoreEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	Username   string    `json:"username"`
	QuizTitle  string    `json:"quiz_title"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Percentage float64   `json:"percentage"`
}

// TierStats counts outcomes within one difficulty tier.
type TierStats struct {
	Total   int `json:"total"`
	Correct int `json:"correct"`
}

// PerformanceSummary aggregates a result list for reporting.
type PerformanceSummary struct {
	Total        int                      `json:"total"`
	Correct      int                      `json:"correct"`
	Incorrect    int                      `json:"incorrect"`
	Percentage   float64                  `json:"percentage"`
	AverageTime  float64                  `json:"average_time"`
	ByDifficulty map[Difficulty]TierStats `json:"by_difficulty"`
}
