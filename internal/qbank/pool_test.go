package qbank

import (
	"reflect"
	"testing"

	"adaptive-quiz-service/internal/domain"
)

func testQuestions() []domain.Question {
	return []domain.Question{
		{ID: "1", Text: "a", Options: []string{"x", "y"}, Topic: "Math", Difficulty: domain.DifficultyEasy},
		{ID: "2", Text: "b", Options: []string{"x", "y"}, Topic: "Science", Difficulty: domain.DifficultyHard},
		{ID: "3", Text: "c", Options: []string{"x", "y"}, Topic: "math", Difficulty: domain.DifficultyEasy},
		{ID: "4", Text: "d", Options: []string{"x", "y"}, Difficulty: domain.DifficultyMedium},
	}
}

func TestPoolCategories(t *testing.T) {
	pool := NewPool(testQuestions())
	got := pool.Categories()
	want := []string{"Math", "Science", "math"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestPoolDifficulties(t *testing.T) {
	pool := NewPool(testQuestions())
	got := pool.Difficulties()
	want := []domain.Difficulty{domain.DifficultyEasy, domain.DifficultyHard, domain.DifficultyMedium}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFilterByTopicCaseInsensitive(t *testing.T) {
	pool := NewPool(testQuestions())
	matched := pool.FilterByTopic("MATH")
	if len(matched) != 2 {
		t.Fatalf("expected 2 math questions, got %d", len(matched))
	}
	for _, q := range matched {
		if q.ID != "1" && q.ID != "3" {
			t.Fatalf("unexpected question %q", q.ID)
		}
	}
}

func TestFilterByTopicNoMatch(t *testing.T) {
	pool := NewPool(testQuestions())
	if matched := pool.FilterByTopic("History"); len(matched) != 0 {
		t.Fatalf("expected no matches, got %d", len(matched))
	}
}

func TestFilterByDifficultyCaseInsensitive(t *testing.T) {
	pool := NewPool(testQuestions())
	matched := pool.FilterByDifficulty("EASY")
	if len(matched) != 2 {
		t.Fatalf("expected 2 easy questions, got %d", len(matched))
	}
}
