package qbank

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"adaptive-quiz-service/internal/domain"
)

// Record is the raw question shape at the load boundary. The answer field is
// polymorphic in source data: a letter ("B"), literal option text, or a
// numeric index. Normalize resolves all three to a single canonical index so
// the dual representation never travels past the loader.
type Record struct {
	ID          string          `json:"id"`
	Text        string          `json:"text"`
	Options     []string        `json:"options"`
	Answer      json.RawMessage `json:"answer"`
	Topic       string          `json:"topic"`
	Difficulty  string          `json:"difficulty"`
	Explanation string          `json:"explanation"`
}

// Normalize validates the record and returns the canonical question.
func (r Record) Normalize() (domain.Question, error) {
	if strings.TrimSpace(r.Text) == "" {
		return domain.Question{}, fmt.Errorf("%w: question %q has no text", domain.ErrBadRecord, r.ID)
	}
	if len(r.Options) < 2 {
		return domain.Question{}, fmt.Errorf("%w: question %q needs at least 2 options", domain.ErrBadRecord, r.ID)
	}

	idx, err := resolveAnswer(r.Answer, r.Options)
	if err != nil {
		return domain.Question{}, fmt.Errorf("%w: question %q: %v", domain.ErrBadRecord, r.ID, err)
	}

	difficulty := domain.DifficultyMedium
	if r.Difficulty != "" {
		d, ok := domain.ParseDifficulty(r.Difficulty)
		if !ok || d == domain.DifficultyMixed {
			return domain.Question{}, fmt.Errorf("%w: question %q has unknown difficulty %q", domain.ErrBadRecord, r.ID, r.Difficulty)
		}
		difficulty = d
	}

	options := make([]string, len(r.Options))
	copy(options, r.Options)

	return domain.Question{
		ID:          r.ID,
		Text:        r.Text,
		Options:     options,
		AnswerIndex: idx,
		Topic:       r.Topic,
		Difficulty:  difficulty,
		Explanation: r.Explanation,
	}, nil
}

// resolveAnswer maps the polymorphic answer encoding to an option index.
// A single letter is interpreted positionally (A=0, B=1, ...) before text
// matching is attempted, matching how source files were authored.
func resolveAnswer(raw json.RawMessage, options []string) (int, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("answer missing")
	}

	var num int
	if err := json.Unmarshal(raw, &num); err == nil {
		if num < 0 || num >= len(options) {
			return 0, fmt.Errorf("answer index %d out of range", num)
		}
		return num, nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return 0, fmt.Errorf("answer is neither index nor string")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("answer missing")
	}

	if len(text) == 1 && isLetter(text[0]) {
		idx := int(upper(text[0]) - 'A')
		if idx >= 0 && idx < len(options) {
			return idx, nil
		}
	}
	for i, opt := range options {
		if opt == text {
			return i, nil
		}
	}
	return 0, fmt.Errorf("answer %q matches no option", text)
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

// DecodeQuestions parses a JSON array of records into canonical questions.
// Records without an id get a sequential one ("1", "2", ...).
func DecodeQuestions(data []byte) ([]domain.Question, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadRecord, err)
	}
	questions := make([]domain.Question, 0, len(records))
	for i, rec := range records {
		if rec.ID == "" {
			rec.ID = strconv.Itoa(i + 1)
		}
		q, err := rec.Normalize()
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}
