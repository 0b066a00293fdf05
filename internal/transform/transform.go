package transform

import (
	"fmt"

	"github.com/rgehrsitz/bizcase/internal/domain"
)

// ScenarioTransform is a named what-if edit of scenario inputs. Transforms
// compose: each one receives the output of the previous one.
type ScenarioTransform interface {
	// Apply returns a modified copy; base is never changed.
	Apply(base *domain.ScenarioInputs) (*domain.ScenarioInputs, error)

	// Name returns a short identifier (e.g., "set_coverage").
	Name() string

	// Description returns a human-readable summary of the edit.
	Description() string

	// Validate checks parameters against base without applying.
	Validate(base *domain.ScenarioInputs) error
}

// ApplyTransforms applies transforms in order and returns the final inputs
func ApplyTransforms(base *domain.ScenarioInputs, transforms []ScenarioTransform) (*domain.ScenarioInputs, error) {
	if base == nil {
		return nil, fmt.Errorf("base scenario cannot be nil")
	}

	current := base.Clone()
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := transform.Validate(&current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}
		next, err := transform.Apply(&current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}
		current = *next
	}
	return &current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
