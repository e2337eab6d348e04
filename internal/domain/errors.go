package domain

import "errors"

var (
	// ErrNoMatchingQuestions is returned when a topic or difficulty filter
	// yields no candidates. Recoverable; callers retry with other criteria.
	ErrNoMatchingQuestions = errors.New("no matching questions")
	// ErrQuestionSetNotFound indicates the requested question set could not be loaded.
	ErrQuestionSetNotFound = errors.New("question set not found")
	// ErrBadRecord indicates a loaded question record is missing required
	// fields or its answer cannot be resolved to a valid option index.
	ErrBadRecord = errors.New("bad question record")
	// ErrSessionState is returned when an operation is attempted in a session
	// state that forbids it, e.g. answering a completed session.
	ErrSessionState = errors.New("invalid session state")
	// ErrInvalidSelection indicates an answer index outside the current
	// question's options. The session does not advance; callers re-prompt.
	ErrInvalidSelection = errors.New("selection out of range")
)
