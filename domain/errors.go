package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidNumericInput = errors.New("invalid numeric input")
	ErrInvalidDate         = errors.New("invalid date")
	ErrOutOfRange          = errors.New("value out of range")

	// ErrImageLoad is returned when a seal image is missing or undecodable.
	ErrImageLoad = errors.New("seal image could not be loaded")
	// ErrImageLoadTimeout is returned when the seal images were not ready in time.
	ErrImageLoadTimeout = errors.New("seal image load timed out")

	ErrFontUnavailable = errors.New("font unavailable for locale")
)

// FieldError ties an input error to the form field that caused it.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// IsInputError reports whether err was caused by bad user input.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidNumericInput) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrOutOfRange)
}
