package interview

import "errors"

// Rejection conditions surfaced to callers. Handlers map these onto the
// JSON envelope; nothing here ever reaches a candidate as a raw 500.
var (
	ErrSessionNotFound   = errors.New("invalid or expired link")
	ErrSessionExpired    = errors.New("interview session expired")
	ErrAlreadySubmitted  = errors.New("interview already submitted")
	ErrTemplateNotFound  = errors.New("invalid or missing interview template")
	ErrNoQuestions       = errors.New("no questions available")
	ErrDuplicateQuestion = errors.New("duplicate question in binding set")
	ErrQuestionMismatch  = errors.New("invalid session question for this interview")
	ErrActiveSession     = errors.New("an active interview session already exists for this email address")
	ErrInvalidTransition = errors.New("invalid session state transition")

	// ErrUnresolvableQuestion is a data-integrity failure: a bound question
	// with no resolvable text. It is reported, never silently defaulted.
	ErrUnresolvableQuestion = errors.New("session question has no resolvable content")
)
