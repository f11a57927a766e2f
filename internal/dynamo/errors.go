package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for trajectory operations.
var (
	// ErrInvalidParameter indicates a numeric input outside its physical domain.
	ErrInvalidParameter = errors.New("dynamo: parameter out of valid domain")

	// ErrInvalidState indicates a state vector with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrStepTooSmall indicates the adaptive timestep collapsed below machine resolution.
	ErrStepTooSmall = errors.New("dynamo: adaptive timestep below minimum")

	// ErrTooManySteps indicates an adaptive run exhausted its step budget.
	ErrTooManySteps = errors.New("dynamo: adaptive step budget exhausted")
	// ErrNoSamples indicates an integration run finished without usable output.
	ErrNoSamples = errors.New("dynamo: integration produced no usable samples")
)

// IntegrationError wraps an integration failure with the step at which it occurred.
type IntegrationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *IntegrationError) Unwrap() error {
	return e.Wrapped
}

// InvalidParameter returns ErrInvalidParameter annotated with the offending field.
func InvalidParameter(name string, value float64, reason string) error {
	return fmt.Errorf("%w: %s=%g %s", ErrInvalidParameter, name, value, reason)
}
