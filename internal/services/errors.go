// internal/services/errors.go
package services

import (
	"errors"
	"fmt"
)

// Error kinds recovered at the handler boundary and mapped to HTTP statuses.
// Services wrap them with context so callers can both match the kind with
// errors.Is and log the full message.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)

func notFoundErr(resource string, id interface{}) error {
	return fmt.Errorf("%s %v: %w", resource, id, ErrNotFound)
}

func conflictErr(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}

func validationErr(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}
