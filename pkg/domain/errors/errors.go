package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidStatusCode  = errors.New("invalid status code")
	ErrInvalidContainer   = errors.New("invalid container name")
	ErrUnknownScenario    = errors.New("unknown scenario")
	ErrInvalidAttackRule  = errors.New("invalid attack rule")
	ErrHistoryUnavailable = errors.New("history store unavailable")
)

type validationError struct {
	Field   string
	Message string
}

func (e *validationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &validationError{Field: field, Message: message}
}

func IsValidationError(err error) bool {
	var v *validationError
	return errors.As(err, &v)
}
