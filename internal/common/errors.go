// Package common provides shared utilities and types used across the engine.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Matching preconditions.
	ErrInsufficientData = errors.New("insufficient sale history")
	ErrEmptyCatalog     = errors.New("empty candidate catalog")

	// Storage errors.
	ErrNotFound = errors.New("not found")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// InsufficientDataError reports that an entity does not have enough sale
// records for the requested operation. Matches ErrInsufficientData under
// errors.Is.
type InsufficientDataError struct {
	EntityID string
	Required int
	Actual   int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient sale history for %s: have %d records, need %d",
		e.EntityID, e.Actual, e.Required)
}

func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}

// NewInsufficientDataError creates an InsufficientDataError for an entity.
func NewInsufficientDataError(entityID string, required, actual int) error {
	return &InsufficientDataError{EntityID: entityID, Required: required, Actual: actual}
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
