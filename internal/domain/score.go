package domain

import (
	"sort"
	"time"
)

// NewScoreEntry derives the percentage from score/total, clamped to [0,100]
// and 0 when total is 0.
func NewScoreEntry(ts time.Time, username, quizTitle string, score, total int) ScoreEntry {
	pct := 0.0
	if total > 0 {
		pct = float64(score) / float64(total) * 100
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return ScoreEntry{
		Timestamp:  ts,
		Username:   username,
		QuizTitle:  quizTitle,
		Score:      score,
		Total:      total,
		Percentage: pct,
	}
}

// TopEntries sorts a copy of the entries by percentage descending and
// truncates to limit. The sort is stable so entries with equal percentage
// keep their original order.
func TopEntries(entries []ScoreEntry, limit int) []ScoreEntry {
	sorted := make([]ScoreEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Percentage > sorted[j].Percentage
	})
	if limit >= 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted
}
