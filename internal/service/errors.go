package service

import (
	"errors"
	"fmt"
)

var (
	ErrEmailTaken    = errors.New("email address already in use")
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials covers both an unknown identifier and a wrong
	// password so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError marks input rejected before any hashing or storage work.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}
