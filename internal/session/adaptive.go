package session

import "adaptive-quiz-service/internal/domain"

// recentWindow is how many trailing results the difficulty predicates
// inspect. Fewer logged results than this means no recommendation yet.
const recentWindow = 3

const (
	defaultSuccessThreshold = 0.7
	decreaseThreshold       = 0.3
)

// AdaptiveController observes the session's answer outcomes and recommends
// difficulty-tier changes. It only emits signals; it never alters past
// results or the running quiz.
type AdaptiveController struct {
	successThreshold float64
	results          []domain.SessionResult
}

// NewAdaptiveController creates a controller. A non-positive threshold
// selects the default of 0.7.
func NewAdaptiveController(successThreshold float64) *AdaptiveController {
	if successThreshold <= 0 {
		successThreshold = defaultSuccessThreshold
	}
	return &AdaptiveController{successThreshold: successThreshold}
}

// Log appends one result to the rolling log.
func (a *AdaptiveController) Log(result domain.SessionResult) {
	a.results = append(a.results, result)
}

// ShouldIncrease reports whether recent performance warrants a harder tier.
func (a *AdaptiveController) ShouldIncrease() bool {
	ok, fraction := a.recentFraction()
	return ok && fraction >= a.successThreshold
}

// ShouldDecrease reports whether recent performance warrants an easier tier.
func (a *AdaptiveController) ShouldDecrease() bool {
	ok, fraction := a.recentFraction()
	return ok && fraction < decreaseThreshold
}

func (a *AdaptiveController) recentFraction() (bool, float64) {
	if len(a.results) < recentWindow {
		return false, 0
	}
	recent := a.results[len(a.results)-recentWindow:]
	correct := 0
	for _, r := range recent {
		if r.IsCorrect {
			correct++
		}
	}
	return true, float64(correct) / float64(len(recent))
}

// Summary aggregates everything logged so far, broken down by tier.
func (a *AdaptiveController) Summary() domain.PerformanceSummary {
	summary := domain.PerformanceSummary{
		Total:        len(a.results),
		ByDifficulty: make(map[domain.Difficulty]domain.TierStats),
	}
	for _, r := range a.results {
		stats := summary.ByDifficulty[r.Difficulty]
		stats.Total++
		if r.IsCorrect {
			stats.Correct++
			summary.Correct++
		}
		summary.ByDifficulty[r.Difficulty] = stats
	}
	summary.Incorrect = summary.Total - summary.Correct
	if summary.Total > 0 {
		summary.Percentage = float64(summary.Correct) / float64(summary.Total) * 100
	}
	return summary
}
