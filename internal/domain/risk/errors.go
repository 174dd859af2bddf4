package risk

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyRiskSet is returned when a simulation is requested with no risks
	ErrEmptyRiskSet = errors.New("risk set cannot be empty")

	// ErrDuplicateRiskID is returned when two risks share an identifier
	ErrDuplicateRiskID = errors.New("duplicate risk identifier")

	// ErrUnknownRiskID is returned when a correlation or modification references
	// a risk that is not part of the set
	ErrUnknownRiskID = errors.New("unknown risk identifier")

	// ErrCoefficientOutOfRange is returned for correlation coefficients outside [-1, 1]
	ErrCoefficientOutOfRange = errors.New("correlation coefficient must be in [-1, 1]")

	// ErrConflictingCoefficient is returned when the same risk pair is supplied
	// twice with different values
	ErrConflictingCoefficient = errors.New("conflicting coefficient for risk pair")

	// ErrSelfCorrelation is returned when a pair correlates a risk with itself
	ErrSelfCorrelation = errors.New("risk cannot be correlated with itself")

	// ErrIterationsBelowFloor is returned when the requested iteration count is
	// below the enforced minimum
	ErrIterationsBelowFloor = errors.New("iteration count below enforced floor")

	// ErrNotPositiveDefinite is returned when a correlation structure cannot be
	// embedded even after the deterministic repair step
	ErrNotPositiveDefinite = errors.New("correlation matrix is not positive definite")
)

// ValidationError reports an invalid parameter detected at construction time.
// It always names the offending parameter so callers can surface actionable
// messages without parsing error strings.
type ValidationError struct {
	Parameter string
	Reason    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Parameter, e.Reason)
}

// NewValidationError creates a validation error for a named parameter.
func NewValidationError(parameter, reason string) *ValidationError {
	return &ValidationError{Parameter: parameter, Reason: reason}
}

// PreconditionError reports a caller error detected before any sampling takes
// place. It wraps a sentinel error so callers can match with errors.Is.
type PreconditionError struct {
	Op     string
	Err    error
	Detail string
}

func (e *PreconditionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %v (%s)", e.Op, e.Err, e.Detail)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// NewPreconditionError creates a precondition error for an operation.
func NewPreconditionError(op string, err error, detail string) *PreconditionError {
	return &PreconditionError{Op: op, Err: err, Detail: detail}
}
