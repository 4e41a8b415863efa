// Package apperrors holds the error kinds returned by the service layer.
// Controllers map them to HTTP status codes with errors.Is.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorizedUser = errors.New("invalid username or password")
	ErrElementNotFound  = errors.New("element not found")
	ErrEmptyList        = errors.New("no elements found")
	ErrValidation       = errors.New("validation failed")
	ErrRegistration     = errors.New("registration failed")
)

// ElementNotFoundError names the entity and id that could not be resolved.
type ElementNotFoundError struct {
	Entity string
	ID     uint
}

func NewElementNotFound(entity string, id uint) *ElementNotFoundError {
	return &ElementNotFoundError{Entity: entity, ID: id}
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

func (e *ElementNotFoundError) Is(target error) bool {
	return target == ErrElementNotFound
}

// EmptyList returns an ErrEmptyList wrapped with the collection name.
func EmptyList(what string) error {
	return fmt.Errorf("no %s found: %w", what, ErrEmptyList)
}

// Validation returns an ErrValidation wrapped with a reason.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}
