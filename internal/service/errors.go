package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid PIN")
	ErrNotLoggedIn        = errors.New("no user is logged in")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("forbidden: order does not involve this user")
)

// ValidationError reports malformed input. It is returned before any storage
// is touched and matches ErrValidation with errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
