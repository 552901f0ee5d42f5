package domain

import (
	"errors"
	"fmt"
)

// ErrValidation marks user-input failures. Operations that return an error
// wrapping ErrValidation have not mutated any state.
var ErrValidation = errors.New("validation error")

// Invalidf builds an error wrapping ErrValidation.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// IsValidation reports whether err is a user-input validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
