package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"adaptive-quiz-service/internal/app"
	"adaptive-quiz-service/internal/domain"
	"adaptive-quiz-service/internal/infra/memory"
	"adaptive-quiz-service/internal/session"
)

func newTestService(timer int) *app.QuizService {
	repo := memory.NewQuestionRepository(memory.NewStaticQuestionLoader(map[string][]domain.Question{
		"set-1": {
			{ID: "m1", Text: "1+1?", Options: []string{"2", "3"}, AnswerIndex: 0, Topic: "Math", Difficulty: domain.DifficultyEasy},
			{ID: "m2", Text: "2+2?", Options: []string{"3", "4"}, AnswerIndex: 1, Topic: "Math", Difficulty: domain.DifficultyEasy},
			{ID: "s1", Text: "H2O?", Options: []string{"water", "salt"}, AnswerIndex: 0, Topic: "Science", Difficulty: domain.DifficultyHard},
		},
	}), 5*time.Minute)
	return app.NewQuizServiceWithSeed(repo, memory.NewScoreStore(), timer, 1)
}

func TestBrowsePool(t *testing.T) {
	ctx := context.Background()
	service := newTestService(0)

	categories, err := service.Categories(ctx, "set-1")
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(categories) != 2 || categories[0] != "Math" || categories[1] != "Science" {
		t.Fatalf("unexpected categories %v", categories)
	}

	difficulties, err := service.Difficulties(ctx, "set-1")
	if err != nil {
		t.Fatalf("difficulties: %v", err)
	}
	if len(difficulties) != 2 {
		t.Fatalf("unexpected difficulties %v", difficulties)
	}
}

func TestCreateQuizAndPlay(t *testing.T) {
	ctx := context.Background()
	service := newTestService(0)

	quiz, err := service.CreateQuizByTopic(ctx, "set-1", "Math Sprint", "math", 5)
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	if len(quiz.Questions) != 2 {
		t.Fatalf("expected count clamped to 2, got %d", len(quiz.Questions))
	}

	sess := session.New(quiz)
	if err := sess.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	for sess.State() == session.StateInProgress {
		question, _, err := sess.Current()
		if err != nil {
			t.Fatalf("current: %v", err)
		}
		if _, err := sess.Submit(question.AnswerIndex); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	entry, err := service.RecordScore(ctx, "alice", quiz.Title, sess.Results())
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if entry.Score != 2 || entry.Total != 2 || entry.Percentage != 100 {
		t.Fatalf("unexpected entry %+v", entry)
	}

	top, err := service.Top(ctx, 10)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 1 || top[0].Username != "alice" {
		t.Fatalf("expected alice on leaderboard, got %+v", top)
	}
}

func TestCreateQuizUnknownTopic(t *testing.T) {
	service := newTestService(0)
	_, err := service.CreateQuizByTopic(context.Background(), "set-1", "T", "History", 3)
	if !errors.Is(err, domain.ErrNoMatchingQuestions) {
		t.Fatalf("expected ErrNoMatchingQuestions, got %v", err)
	}
}

func TestCreateQuizUnknownSet(t *testing.T) {
	service := newTestService(0)
	_, err := service.CreateQuizByTopic(context.Background(), "nope", "T", "Math", 3)
	if !errors.Is(err, domain.ErrQuestionSetNotFound) {
		t.Fatalf("expected ErrQuestionSetNotFound, got %v", err)
	}
}

func TestQuizCarriesConfiguredTimer(t *testing.T) {
	service := newTestService(45)
	quiz, err := service.CreateQuizByDifficulty(context.Background(), "set-1", "Easy Run", "easy", 2)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if quiz.TimerPerQuestion != 45 {
		t.Fatalf("expected timer 45, got %d", quiz.TimerPerQuestion)
	}
	if quiz.Difficulty != domain.DifficultyEasy {
		t.Fatalf("expected easy quiz, got %s", quiz.Difficulty)
	}
}
