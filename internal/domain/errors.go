package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every ValidationError so callers can use errors.Is
var ErrValidation = errors.New("validation failed")

// ValidationError reports a malformed or structurally invalid input field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError builds a ValidationError with a formatted reason
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// WarningCode classifies a ConsistencyWarning
type WarningCode string

const (
	WarnClamped          WarningCode = "clamped"
	WarnFloored          WarningCode = "floored"
	WarnZeroCost         WarningCode = "zero_cost"
	WarnCountMismatch    WarningCode = "count_mismatch"
	WarnSlowerAutomation WarningCode = "slower_automation"
	WarnMultipleIRR      WarningCode = "multiple_irr"
)

// ConsistencyWarning is a non-fatal finding; computation proceeds
type ConsistencyWarning struct {
	Code    WarningCode `yaml:"code" json:"code"`
	Field   string      `yaml:"field" json:"field"`
	Message string      `yaml:"message" json:"message"`
}

func (w ConsistencyWarning) String() string {
	return fmt.Sprintf("[%s] %s: %s", w.Code, w.Field, w.Message)
}
