package service

import "errors"

var (
	// ErrValidation rejects a request before any write is attempted.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned on a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
