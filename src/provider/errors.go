package provider

import (
	"errors"
	"fmt"
)

var (
	ErrAuthFailed  = errors.New("authentication failed")
	ErrNotFound    = errors.New("not found")
	ErrRateLimited = errors.New("rate limited")
)

// UserError wraps errors with user-friendly messages
type UserError struct {
	Message string
	Hint    string
	Err     error
}

func (e *UserError) Error() string {
	msg := e.Message
	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n\nDetails: %v", e.Err)
	}
	return msg
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// WrapError converts API errors to user-friendly messages
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrInvalidURL):
		return &UserError{
			Message: "Invalid workflow run URL",
			Hint:    "Expected format:\n  - https://github.com/owner/repo/actions/runs/456",
			Err:     err,
		}
	case errors.Is(err, ErrAuthFailed):
		return &UserError{
			Message: "Authentication failed",
			Hint:    "Check that GITHUB_TOKEN is valid and can read Actions data for the repository.",
			Err:     err,
		}
	case errors.Is(err, ErrNotFound):
		return &UserError{
			Message: "Resource not found",
			Hint:    "Check the owner, repository and ID, and that the token has access to the repository.",
			Err:     err,
		}
	case errors.Is(err, ErrRateLimited):
		return &UserError{
			Message: "GitHub API rate limit exceeded",
			Hint:    "Set GITHUB_TOKEN to raise the limit, or wait for the window to reset.",
			Err:     err,
		}
	}

	return err
}
