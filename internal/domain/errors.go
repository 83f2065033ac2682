package domain

import "errors"

var (
	// ErrValidation is returned when an entity is constructed or loaded with
	// invalid fields. It is fatal to that construction only; nothing else aborts.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when the requested resource does not exist.
	// Keeping this sentinel in domain allows adapters to map it consistently to 404.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidCredentials hides whether the account or the password failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrLockedOut signals refusal to authenticate after repeated failures,
	// independent of credential correctness.
	ErrLockedOut    = errors.New("account locked")
	ErrInvalidInput = errors.New("invalid input")
)
