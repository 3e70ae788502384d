// Package network implements trainable function approximators which
// map batches of observations to batches of per-action scores
package network

import (
	"errors"
)

// Approximator is a trainable function from a batch of inputs of shape
// (batch, Features()) to a batch of scores of shape (batch, Outputs()).
// Inputs and outputs are stored in row-major order.
type Approximator interface {
	Features() int
	Outputs() int

	// Forward returns the scores of rows inputs
	Forward(input []float64, rows int) ([]float64, error)

	// FitStep performs a single update of the approximator towards
	// predicting the class targets[i] for input row i, returning the
	// loss before the update
	FitStep(input []float64, targets []int) (float64, error)

	// Clone returns a deep copy of the approximator, sharing no state
	Clone() (Approximator, error)
}

// Error implements errors unique to function approximators
type Error struct {
	Op  string
	Err error
}

// Error satisfies the error interface
func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrShape is reported when inputs or targets do not match the shapes
// an approximator expects
var ErrShape = errors.New("shape mismatch")

// IsShape returns whether or not an error reports a shape mismatch
func IsShape(err error) bool {
	return errors.Is(err, ErrShape)
}
