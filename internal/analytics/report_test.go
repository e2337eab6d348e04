package analytics

import (
	"testing"

	"adaptive-quiz-service/internal/domain"
)

func sampleResults() []domain.SessionResult {
	chosen := 1
	return []domain.SessionResult{
		{QuestionID: "q1", ChosenIndex: &chosen, IsCorrect: true, TimeTaken: 2, Difficulty: domain.DifficultyEasy},
		{QuestionID: "q2", ChosenIndex: &chosen, IsCorrect: false, TimeTaken: 4, Difficulty: domain.DifficultyEasy},
		{QuestionID: "q3", ChosenIndex: nil, IsCorrect: false, TimeTaken: 6, Difficulty: domain.DifficultyHard},
		{QuestionID: "q4", ChosenIndex: &chosen, IsCorrect: true, TimeTaken: 8, Difficulty: domain.DifficultyHard},
	}
}

func TestReportCounts(t *testing.T) {
	report := NewReport(sampleResults())
	if report.Total() != 4 || report.Correct() != 2 || report.Incorrect() != 2 {
		t.Fatalf("unexpected counts: total=%d correct=%d incorrect=%d", report.Total(), report.Correct(), report.Incorrect())
	}
	if report.Correct()+report.Incorrect() != report.Total() {
		t.Fatalf("correct+incorrect must equal total")
	}
	if report.Percentage() != 50 {
		t.Fatalf("expected 50%%, got %v", report.Percentage())
	}
	if report.AverageTime() != 5 {
		t.Fatalf("expected average time 5s, got %v", report.AverageTime())
	}
}

func TestEmptyReport(t *testing.T) {
	report := NewReport(nil)
	if report.Total() != 0 || report.Percentage() != 0 || report.AverageTime() != 0 {
		t.Fatalf("expected zeroed report, got total=%d pct=%v avg=%v", report.Total(), report.Percentage(), report.AverageTime())
	}
}

func TestDifficultyBreakdown(t *testing.T) {
	report := NewReport(sampleResults())
	breakdown := report.DifficultyBreakdown()

	easy := breakdown[domain.DifficultyEasy]
	if easy.Total != 2 || easy.Correct != 1 {
		t.Fatalf("unexpected easy stats: %+v", easy)
	}
	hard := breakdown[domain.DifficultyHard]
	if hard.Total != 2 || hard.Correct != 1 {
		t.Fatalf("unexpected hard stats: %+v", hard)
	}
}

func TestSummaryMatchesAccessors(t *testing.T) {
	report := NewReport(sampleResults())
	summary := report.Summary()
	if summary.Total != report.Total() || summary.Correct != report.Correct() ||
		summary.Percentage != report.Percentage() || summary.AverageTime != report.AverageTime() {
		t.Fatalf("summary disagrees with accessors: %+v", summary)
	}
}
