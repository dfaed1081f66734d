// Package service provides business logic for the application.
package service

import (
	"errors"
	"fmt"
)

// Service errors. Handlers map these to HTTP status codes.
var (
	// Bad request
	ErrInvalidInput = errors.New("invalid input")

	// Conflict
	ErrUsernameTaken      = errors.New("username already exists")
	ErrPlaceExists        = errors.New("place_id already exists")
	ErrPlaceAlreadyInList = errors.New("place is already in the list")
	ErrAlreadyMember      = errors.New("user is already a member of the list")
	ErrLastAdmin          = errors.New("cannot remove the last admin of the list")

	// Authentication
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Authorization
	ErrNotListAdmin  = errors.New("only list admins can do this")
	ErrNotListMember = errors.New("only list members can do this")

	// Not found
	ErrPlaceNotFound     = errors.New("place not found")
	ErrListNotFound      = errors.New("list not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrListPlaceNotFound = errors.New("place is not in the list")
	ErrMemberNotFound    = errors.New("user is not a member of the list")
)

// invalidInput wraps ErrInvalidInput with a client-facing message.
func invalidInput(msg string) error {
	return &InputError{Message: msg}
}

// InputError is a validation failure. It matches ErrInvalidInput with errors.Is.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidInput, e.Message)
}

// Is reports whether target is ErrInvalidInput.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}
