package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")

	// ErrSummarizerNotConfigured is returned when summarization is requested
	// but no API credential was configured at startup.
	ErrSummarizerNotConfigured = errors.New("summarizer credential not configured")
)

// AuthError wraps a sign-in or sign-out failure. The prior identity state
// is always retained by the caller.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string { return fmt.Sprintf("auth %s: %v", e.Op, e.Err) }

func (e *AuthError) Unwrap() error { return e.Err }
