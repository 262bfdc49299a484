package domain

import "errors"

// Domain errors - business rule violations.
// These errors are part of the domain language.
var (
	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordRequired   = errors.New("a password is required to create a user")
	ErrInvalidRole        = errors.New("unknown role")

	// Shift errors
	ErrAlreadyOnDuty = errors.New("user is already on duty")
	ErrNotOnDuty     = errors.New("user is not on duty")

	// Email errors
	ErrEmailRequired = errors.New("email is required")
	ErrEmailInvalid  = errors.New("email format is invalid")
	ErrEmailExists   = errors.New("email already exists")

	// Username errors
	ErrUsernameRequired = errors.New("username must not be empty")
	ErrUsernameLength   = errors.New("username must be at most 64 characters")
)
