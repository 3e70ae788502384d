// Package selector implements action selectors, which turn per-action
// scores into a chosen action index
package selector

import (
	"errors"
	"fmt"
)

// Selector selects an action index from a vector of per-action values
type Selector interface {
	Select(values []float64) (int, error)
	Seed(uint64)
}

// Error implements errors unique to action selection
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

// ErrNotDistribution is reported when values given to a Probability
// selector are not a probability distribution
var ErrNotDistribution = errors.New("values are not a probability " +
	"distribution")

// ErrNoValues is reported when selecting from an empty vector
var ErrNoValues = errors.New("no values to select from")

// IsNotDistribution returns whether or not an error reports that
// values were not a probability distribution
func IsNotDistribution(err error) bool {
	return errors.Is(err, ErrNotDistribution)
}

func validateEpsilon(op string, epsilon float64) error {
	if epsilon < 0 || epsilon > 1 {
		return &Error{op, fmt.Errorf("invalid epsilon\n\twant(0 <= ε <= 1)"+
			"\n\thave(%v)", epsilon)}
	}
	return nil
}
