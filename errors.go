package votive

import (
	"errors"
	"fmt"
)

// ErrInvalidForm classifies every form validation failure.
var ErrInvalidForm = errors.New("invalid form")

// ValidationError rejects a form before anything is composed. Reason is
// meant to be shown to the user as-is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidForm
}

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
