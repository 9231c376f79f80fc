package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation                  = errors.New("validation error")
	ErrInvalidArgument             = errors.New("invalid argument")
	ErrUnknownEnumValue            = errors.New("unknown enum value")
	ErrExternalEstimateUnavailable = errors.New("external estimate unavailable")
)

// NewValidationError reports a malformed or missing input field.
func NewValidationError(field, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrValidation, field, reason)
}

// NewInvalidArgumentError reports an out-of-range numeric parameter.
func NewInvalidArgumentError(param, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidArgument, param, reason)
}

// UnknownEnumValueError is returned when a categorical value falls outside
// its closed enumeration.
type UnknownEnumValueError struct {
	Kind  string
	Value string
}

func (e *UnknownEnumValueError) Error() string {
	return fmt.Sprintf("%s: %s %q", ErrUnknownEnumValue, e.Kind, e.Value)
}

func (e *UnknownEnumValueError) Unwrap() error {
	return ErrUnknownEnumValue
}

// IsClientError reports whether err was caused by bad caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrUnknownEnumValue)
}
