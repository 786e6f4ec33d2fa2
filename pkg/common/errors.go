package common

import (
	"fmt"
)

// Validation failure codes surfaced to API clients.
const (
	CodeInvalidAmount       = "INVALID_AMOUNT"
	CodeBelowMinimum        = "BELOW_MINIMUM"
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	CodeInvalidMethod       = "INVALID_METHOD"
	CodeInvalidDetails      = "INVALID_DETAILS"
	CodeInvalidState        = "INVALID_STATE"
)

// ConfigurationError marks invalid package commission configuration
// (negative rates, rate sum above the cap, non-positive price). It always
// aborts commission creation for the whole purchase.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

func NewConfigurationError(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// ValidationError marks malformed user input. Code identifies the rule,
// Field the offending input.
type ValidationError struct {
	Code   string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Reason)
}

func NewValidationError(code, field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Code: code, Field: field, Reason: fmt.Sprintf(format, args...)}
}

// InsufficientBalanceError carries both figures so the user-facing message
// can report what was available against what was asked.
type InsufficientBalanceError struct {
	Available float64
	Requested float64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("%s: available balance %.2f, requested %.2f", CodeInsufficientBalance, e.Available, e.Requested)
}

// NotFoundError marks a missing referenced entity. For engine internals this
// is a caller precondition bug, not user input.
type NotFoundError struct {
	Entity string
	ID     interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %v", e.Entity, e.ID)
}

func NewNotFoundError(entity string, id interface{}) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}
