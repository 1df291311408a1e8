package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Character errors
	ErrMsgCharacterNotFound = "character not found"
	ErrMsgNoActiveCharacter = "no active character"
	ErrMsgAlreadyExists     = "character already registered"

	// Validation errors
	ErrMsgInvalidValue = "invalid value"

	// Inventory errors
	ErrMsgInvalidResource     = "unrecognized resource"
	ErrMsgInsufficientBalance = "insufficient balance"

	// Shop errors
	ErrMsgInvalidIndex      = "no such shop item"
	ErrMsgInsufficientStock = "insufficient stock"
	ErrMsgInsufficientFunds = "insufficient tokens"

	// Storage errors
	ErrMsgPersistence = "persistence failure"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Character errors
	ErrCharacterNotFound = errors.New(ErrMsgCharacterNotFound)
	ErrNoActiveCharacter = errors.New(ErrMsgNoActiveCharacter)
	ErrAlreadyExists     = errors.New(ErrMsgAlreadyExists)

	// Validation errors
	ErrInvalidValue = errors.New(ErrMsgInvalidValue)

	// Inventory errors
	ErrInvalidResource     = errors.New(ErrMsgInvalidResource)
	ErrInsufficientBalance = errors.New(ErrMsgInsufficientBalance)

	// Shop errors
	ErrInvalidIndex      = errors.New(ErrMsgInvalidIndex)
	ErrInsufficientStock = errors.New(ErrMsgInsufficientStock)
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	// Storage errors
	ErrPersistence = errors.New(ErrMsgPersistence)
)
