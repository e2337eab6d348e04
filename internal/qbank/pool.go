package qbank

import (
	"sort"
	"strings"

	"adaptive-quiz-service/internal/domain"
)

// Pool is the read-only index of all loaded questions. It owns its copies;
// callers filtering the pool receive fresh slices backed by those copies.
type Pool struct {
	questions []domain.Question
}

func NewPool(questions []domain.Question) *Pool {
	copied := make([]domain.Question, len(questions))
	copy(copied, questions)
	return &Pool{questions: copied}
}

func (p *Pool) Len() int {
	return len(p.questions)
}

// Categories returns the distinct non-empty topics, sorted.
func (p *Pool) Categories() []string {
	seen := make(map[string]struct{})
	var topics []string
	for _, q := range p.questions {
		if q.Topic == "" {
			continue
		}
		if _, ok := seen[q.Topic]; ok {
			continue
		}
		seen[q.Topic] = struct{}{}
		topics = append(topics, q.Topic)
	}
	sort.Strings(topics)
	return topics
}

// Difficulties returns the distinct tiers present, sorted.
func (p *Pool) Difficulties() []domain.Difficulty {
	seen := make(map[domain.Difficulty]struct{})
	var tiers []domain.Difficulty
	for _, q := range p.questions {
		if _, ok := seen[q.Difficulty]; ok {
			continue
		}
		seen[q.Difficulty] = struct{}{}
		tiers = append(tiers, q.Difficulty)
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i] < tiers[j] })
	return tiers
}

// FilterByTopic returns the questions whose topic matches case-insensitively.
func (p *Pool) FilterByTopic(topic string) []domain.Question {
	var matched []domain.Question
	for _, q := range p.questions {
		if q.Topic != "" && strings.EqualFold(q.Topic, topic) {
			matched = append(matched, q)
		}
	}
	return matched
}

// FilterByDifficulty returns the questions of the given tier, matched
// case-insensitively.
func (p *Pool) FilterByDifficulty(difficulty string) []domain.Question {
	var matched []domain.Question
	for _, q := range p.questions {
		if strings.EqualFold(string(q.Difficulty), difficulty) {
			matched = append(matched, q)
		}
	}
	return matched
}
