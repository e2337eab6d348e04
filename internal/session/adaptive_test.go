package session

import (
	"testing"

	"adaptive-quiz-service/internal/domain"
)

func outcome(correct bool, difficulty domain.Difficulty) domain.SessionResult {
	return domain.SessionResult{IsCorrect: correct, Difficulty: difficulty}
}

func TestNoRecommendationUnderThreeResults(t *testing.T) {
	controller := NewAdaptiveController(0)
	controller.Log(outcome(true, domain.DifficultyEasy))
	controller.Log(outcome(true, domain.DifficultyEasy))

	if controller.ShouldIncrease() {
		t.Fatalf("expected no increase with 2 results")
	}
	if controller.ShouldDecrease() {
		t.Fatalf("expected no decrease with 2 results")
	}
}

func TestShouldIncreaseAtThreshold(t *testing.T) {
	controller := NewAdaptiveController(0)
	controller.Log(outcome(false, domain.DifficultyEasy))
	controller.Log(outcome(true, domain.DifficultyEasy))
	controller.Log(outcome(true, domain.DifficultyEasy))
	controller.Log(outcome(true, domain.DifficultyEasy))

	// last 3 all correct: 1.0 >= 0.7
	if !controller.ShouldIncrease() {
		t.Fatalf("expected increase recommendation")
	}
	if controller.ShouldDecrease() {
		t.Fatalf("unexpected decrease recommendation")
	}
}

func TestTwoOfThreeMeetsDefaultThreshold(t *testing.T) {
	controller := NewAdaptiveController(0)
	controller.Log(outcome(true, domain.DifficultyMedium))
	controller.Log(outcome(true, domain.DifficultyMedium))
	controller.Log(outcome(false, domain.DifficultyMedium))

	// 2/3 ≈ 0.67 < 0.7
	if controller.ShouldIncrease() {
		t.Fatalf("expected no increase at 2/3 with default threshold")
	}
}

func TestShouldDecreaseOnPoorWindow(t *testing.T) {
	controller := NewAdaptiveController(0.7)
	controller.Log(outcome(true, domain.DifficultyHard))
	controller.Log(outcome(false, domain.DifficultyHard))
	controller.Log(outcome(false, domain.DifficultyHard))
	controller.Log(outcome(false, domain.DifficultyHard))

	// last 3 all wrong: 0.0 < 0.3
	if !controller.ShouldDecrease() {
		t.Fatalf("expected decrease recommendation")
	}
}

func TestCustomThreshold(t *testing.T) {
	controller := NewAdaptiveController(0.5)
	controller.Log(outcome(true, domain.DifficultyEasy))
	controller.Log(outcome(true, domain.DifficultyEasy))
	controller.Log(outcome(false, domain.DifficultyEasy))

	// 2/3 >= 0.5
	if !controller.ShouldIncrease() {
		t.Fatalf("expected increase with lowered threshold")
	}
}

func TestSummaryBreakdown(t *testing.T) {
	controller := NewAdaptiveController(0)
	controller.Log(outcome(true, domain.DifficultyEasy))
	controller.Log(outcome(false, domain.DifficultyEasy))
	controller.Log(outcome(true, domain.DifficultyHard))

	summary := controller.Summary()
	if summary.Total != 3 || summary.Correct != 2 || summary.Incorrect != 1 {
		t.Fatalf("unexpected totals: %+v", summary)
	}
	easy := summary.ByDifficulty[domain.DifficultyEasy]
	if easy.Total != 2 || easy.Correct != 1 {
		t.Fatalf("unexpected easy stats: %+v", easy)
	}
	hard := summary.ByDifficulty[domain.DifficultyHard]
	if hard.Total != 1 || hard.Correct != 1 {
		t.Fatalf("unexpected hard stats: %+v", hard)
	}
}
