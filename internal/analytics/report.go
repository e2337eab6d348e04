// Package analytics computes summary statistics over a session's result
// list. A Report is pure aggregation: it never mutates its input and is safe
// to query repeatedly, including over partial (aborted) sessions.
package analytics

import "adaptive-quiz-service/internal/domain"

type Report struct {
	results []domain.SessionResult
}

func NewReport(results []domain.SessionResult) *Report {
	return &Report{results: results}
}

func (r *Report) Total() int {
	return len(r.results)
}

func (r *Report) Correct() int {
	correct := 0
	for _, res := range r.results {
		if res.IsCorrect {
			correct++
		}
	}
	return correct
}

func (r *Report) Incorrect() int {
	return r.Total() - r.Correct()
}

// Percentage is the correct fraction as 0-100; 0 for an empty result list.
func (r *Report) Percentage() float64 {
	if len(r.results) == 0 {
		return 0
	}
	return float64(r.Correct()) / float64(len(r.results)) * 100
}

// AverageTime is the mean seconds per answered question.
func (r *Report) AverageTime() float64 {
	if len(r.results) == 0 {
		return 0
	}
	var sum float64
	for _, res := range r.results {
		sum += res.TimeTaken
	}
	return sum / float64(len(r.results))
}

// DifficultyBreakdown groups counts and correct answers by tier.
func (r *Report) DifficultyBreakdown() map[domain.Difficulty]domain.TierStats {
	breakdown := make(map[domain.Difficulty]domain.TierStats)
	for _, res := range r.results {
		stats := breakdown[res.Difficulty]
		stats.Total++
		if res.IsCorrect {
			stats.Correct++
		}
		breakdown[res.Difficulty] = stats
	}
	return breakdown
}

// Summary bundles all statistics into one record for transport layers.
func (r *Report) Summary() domain.PerformanceSummary {
	return domain.PerformanceSummary{
		Total:        r.Total(),
		Correct:      r.Correct(),
		Incorrect:    r.Incorrect(),
		Percentage:   r.Percentage(),
		AverageTime:  r.AverageTime(),
		ByDifficulty: r.DifficultyBreakdown(),
	}
}
