package auth

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password, so responses cannot be used to probe which usernames exist.
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrDuplicateUsername = errors.New("username is already taken")
	ErrWeakPassword      = errors.New("password does not meet the password policy")
	ErrValidation        = errors.New("invalid input")

	// ErrUserNotFound is returned by UserStore lookups; Authenticate folds it
	// into ErrInvalidCredentials before it reaches a caller.
	ErrUserNotFound = errors.New("user not found")
)
