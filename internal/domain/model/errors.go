package model

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the kind behind every InputError.
var ErrInvalidInput = errors.New("invalid input")

// InputError reports a malformed record found before any scoring begins.
type InputError struct {
	PlayerID string
	Field    string
	Reason   string
}

func (e *InputError) Error() string {
	if e.PlayerID == "" {
		return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid input: player %s: %s: %s", e.PlayerID, e.Field, e.Reason)
}

// Unwrap lets callers match with errors.Is(err, ErrInvalidInput).
func (e *InputError) Unwrap() error { return ErrInvalidInput }
