package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"adaptive-quiz-service/internal/domain"
)

// State is the lifecycle phase of a quiz session.
type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateCompleted
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	}
	return "unknown"
}

// Answer is one user input while a question is pending: either an option
// index or an explicit skip.
type Answer struct {
	Option int
	Skip   bool
}

// Session drives one user through a quiz's questions in order, validating
// answers and collecting one SessionResult per question. The session object
// is owned by its caller and passed by handle; it holds no global state.
type Session struct {
	quiz domain.Quiz
	now  func() time.Time

	mu            sync.Mutex
	state         State
	index         int
	results       []domain.SessionResult
	startedAt     time.Time
	questionStart time.Time
}

func New(quiz domain.Quiz) *Session {
	return NewWithClock(quiz, time.Now)
}

// NewWithClock allows deterministic timestamps in tests.
func NewWithClock(quiz domain.Quiz, now func() time.Time) *Session {
	return &Session{quiz: quiz, now: now}
}

func (s *Session) Quiz() domain.Quiz {
	return s.quiz
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start moves the session into InProgress at the first question.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateNotStarted {
		return fmt.Errorf("%w: cannot start in state %s", domain.ErrSessionState, s.state)
	}
	s.state = StateInProgress
	s.startedAt = s.now()
	s.questionStart = s.startedAt
	return nil
}

// Current returns the pending question and its zero-based position.
func (s *Session) Current() (domain.Question, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return domain.Question{}, 0, fmt.Errorf("%w: no pending question in state %s", domain.ErrSessionState, s.state)
	}
	return s.quiz.Questions[s.index], s.index, nil
}

// Submit validates the selected option against the pending question, records
// the result, and advances. An out-of-range option is rejected without
// advancing so the caller can re-prompt.
func (s *Session) Submit(option int) (domain.SessionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return domain.SessionResult{}, fmt.Errorf("%w: cannot answer in state %s", domain.ErrSessionState, s.state)
	}
	if option < 0 || option >= len(s.quiz.Questions[s.index].Options) {
		return domain.SessionResult{}, fmt.Errorf("%w: option %d", domain.ErrInvalidSelection, option)
	}
	chosen := option
	return s.recordLocked(&chosen), nil
}

// Skip records the pending question as unanswered and advances. Timer expiry
// resolves through this same path.
func (s *Session) Skip() (domain.SessionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return domain.SessionResult{}, fmt.Errorf("%w: cannot skip in state %s", domain.ErrSessionState, s.state)
	}
	return s.recordLocked(nil), nil
}

func (s *Session) recordLocked(chosen *int) domain.SessionResult {
	question := s.quiz.Questions[s.index]
	now := s.now()

	result := domain.SessionResult{
		QuestionID:   question.ID,
		ChosenIndex:  chosen,
		CorrectIndex: question.AnswerIndex,
		IsCorrect:    chosen != nil && *chosen == question.AnswerIndex,
		TimeTaken:    now.Sub(s.questionStart).Seconds(),
		Difficulty:   question.Difficulty,
	}
	s.results = append(s.results, result)

	s.index++
	s.questionStart = now
	if s.index == len(s.quiz.Questions) {
		s.state = StateCompleted
	}
	return result
}

// Abort terminates the session early. Results collected so far remain
// available; partial completion is a normal outcome, not a fault.
func (s *Session) Abort() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return fmt.Errorf("%w: cannot abort in state %s", domain.ErrSessionState, s.state)
	}
	s.state = StateAborted
	return nil
}

// Results returns a copy of the results collected so far.
func (s *Session) Results() []domain.SessionResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.SessionResult, len(s.results))
	copy(out, s.results)
	return out
}

// AwaitAnswer blocks until the pending question is resolved by whichever
// event arrives first: an answer on the channel, expiry of the per-question
// countdown (resolved as a skip), or context cancellation. The losing event
// source is cancelled once the race resolves, so the session advances exactly
// once per question. Invalid selections do not resolve the wait; the caller
// side is expected to re-prompt and send again. A closed answer channel and a
// cancelled context both abort the session before returning.
func (s *Session) AwaitAnswer(ctx context.Context, answers <-chan Answer) (domain.SessionResult, error) {
	if s.State() != StateInProgress {
		return domain.SessionResult{}, fmt.Errorf("%w: cannot wait in state %s", domain.ErrSessionState, s.State())
	}

	var expired <-chan struct{}
	if s.quiz.TimerPerQuestion > 0 {
		countdown := NewCountdown(s.quiz.TimerPerQuestion)
		defer countdown.Stop()
		expired = countdown.Expired()
	}

	for {
		select {
		case <-ctx.Done():
			_ = s.Abort()
			return domain.SessionResult{}, ctx.Err()
		case answer, ok := <-answers:
			if !ok {
				_ = s.Abort()
				return domain.SessionResult{}, fmt.Errorf("%w: answer source closed", domain.ErrSessionState)
			}
			if answer.Skip {
				return s.Skip()
			}
			result, err := s.Submit(answer.Option)
			if err != nil {
				if errors.Is(err, domain.ErrInvalidSelection) {
					continue
				}
				return domain.SessionResult{}, err
			}
			return result, nil
		case <-expired:
			return s.Skip()
		}
	}
}
