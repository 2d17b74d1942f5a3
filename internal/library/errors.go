package library

import (
	"errors"
	"fmt"
)

// Conditions reported by the store. None of them are fatal: the Library is always left in a
// well-defined state and the caller decides how to present them.
var (
	ErrValidation  = errors.New("invalid input")
	ErrNotFound    = errors.New("library file not found")
	ErrCorruptData = errors.New("library file is corrupt")
	ErrIOFailure   = errors.New("library file i/o failed")
)

// ValidationError describes which input was rejected and why.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func emptyInput(field string) error {
	return &ValidationError{Field: field, Reason: "must not be empty"}
}

// SafeToOverwrite reports whether saving may replace the file that Load reported loadErr
// for. Only a clean load or a missing file qualify; a corrupt or unreadable file would be
// lost.
func SafeToOverwrite(loadErr error) bool {
	return loadErr == nil || errors.Is(loadErr, ErrNotFound)
}
