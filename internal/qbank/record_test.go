package qbank

import (
	"errors"
	"testing"

	"adaptive-quiz-service/internal/domain"
)

func TestNormalizeLetterAnswer(t *testing.T) {
	rec := Record{
		ID:      "q1",
		Text:    "Capital of France?",
		Options: []string{"Rome", "Paris", "Berlin"},
		Answer:  []byte(`"B"`),
		Topic:   "Geography",
	}
	q, err := rec.Normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if q.AnswerIndex != 1 {
		t.Fatalf("expected answer index 1, got %d", q.AnswerIndex)
	}
	if q.Difficulty != domain.DifficultyMedium {
		t.Fatalf("expected default difficulty medium, got %s", q.Difficulty)
	}
}

func TestNormalizeTextAnswer(t *testing.T) {
	rec := Record{
		ID:         "q1",
		Text:       "Capital of France?",
		Options:    []string{"Rome", "Paris", "Berlin"},
		Answer:     []byte(`"Paris"`),
		Difficulty: "Easy",
	}
	q, err := rec.Normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if q.AnswerIndex != 1 {
		t.Fatalf("expected answer index 1, got %d", q.AnswerIndex)
	}
	if q.Difficulty != domain.DifficultyEasy {
		t.Fatalf("expected easy, got %s", q.Difficulty)
	}
}

func TestNormalizeNumericAnswer(t *testing.T) {
	rec := Record{
		ID:      "q1",
		Text:    "Pick the second",
		Options: []string{"first", "second"},
		Answer:  []byte(`1`),
	}
	q, err := rec.Normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if q.AnswerIndex != 1 {
		t.Fatalf("expected answer index 1, got %d", q.AnswerIndex)
	}
}

func TestNormalizeLetterBeatsTextMatch(t *testing.T) {
	// options that are themselves single letters: positional reading wins
	rec := Record{
		ID:      "q1",
		Text:    "Pick",
		Options: []string{"B", "A"},
		Answer:  []byte(`"A"`),
	}
	q, err := rec.Normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if q.AnswerIndex != 0 {
		t.Fatalf("expected positional index 0, got %d", q.AnswerIndex)
	}
}

func TestNormalizeRejectsBadRecords(t *testing.T) {
	cases := map[string]Record{
		"missing text":      {ID: "q1", Options: []string{"a", "b"}, Answer: []byte(`"a"`)},
		"too few options":   {ID: "q1", Text: "x", Options: []string{"a"}, Answer: []byte(`"a"`)},
		"unresolved answer": {ID: "q1", Text: "x", Options: []string{"a", "b"}, Answer: []byte(`"zzz"`)},
		"missing answer":    {ID: "q1", Text: "x", Options: []string{"a", "b"}},
		"index out of range": {
			ID: "q1", Text: "x", Options: []string{"a", "b"}, Answer: []byte(`5`),
		},
	}
	for name, rec := range cases {
		if _, err := rec.Normalize(); !errors.Is(err, domain.ErrBadRecord) {
			t.Fatalf("%s: expected ErrBadRecord, got %v", name, err)
		}
	}
}

func TestDecodeQuestionsAssignsSequentialIDs(t *testing.T) {
	data := []byte(`[
		{"text":"one","options":["a","b"],"answer":"A"},
		{"id":"custom","text":"two","options":["a","b"],"answer":"b"},
		{"text":"three","options":["a","b"],"answer":"B"}
	]`)
	questions, err := DecodeQuestions(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(questions))
	}
	if questions[0].ID != "1" || questions[1].ID != "custom" || questions[2].ID != "3" {
		t.Fatalf("unexpected ids: %q %q %q", questions[0].ID, questions[1].ID, questions[2].ID)
	}
}
