// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Input errors.
	ErrMalformedRow  = errors.New("malformed input row")
	ErrMissingColumn = errors.New("missing required column")
	ErrNoReviews     = errors.New("no reviews loaded")

	// Scorer errors.
	ErrScorerUnavailable = errors.New("scorer unavailable")
	ErrScorerFailed      = errors.New("scorer failed")

	// Query errors.
	ErrInvalidFilter = errors.New("invalid filter value")
	ErrReadOnlyQuery = errors.New("only read-only queries are allowed")
	ErrUnknownPage   = errors.New("unknown dashboard page")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

