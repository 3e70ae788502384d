package selector

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
)

// EGreedy selects a uniformly random action with probability ε and the
// greedy action otherwise. Ties between greedy actions are broken in
// favour of the lowest index.
type EGreedy struct {
	epsilon float64
	rng     *rand.Rand
}

// NewEGreedy returns a new EGreedy selector
func NewEGreedy(epsilon float64, seed uint64) (*EGreedy, error) {
	if err := validateEpsilon("newEGreedy", epsilon); err != nil {
		return nil, err
	}
	return &EGreedy{epsilon, rand.New(rand.NewSource(seed))}, nil
}

// Seed re-seeds the selector
func (e *EGreedy) Seed(seed uint64) {
	e.rng = rand.New(rand.NewSource(seed))
}

// Epsilon returns the probability of selecting a random action
func (e *EGreedy) Epsilon() float64 {
	return e.epsilon
}

// SetEpsilon sets the probability of selecting a random action
func (e *EGreedy) SetEpsilon(epsilon float64) error {
	if err := validateEpsilon("setEpsilon", epsilon); err != nil {
		return err
	}
	e.epsilon = epsilon
	return nil
}

// Select selects an action ε-greedily with respect to values
func (e *EGreedy) Select(values []float64) (int, error) {
	if len(values) == 0 {
		return 0, &Error{"select", ErrNoValues}
	}

	if e.epsilon > 0 && e.rng.Float64() < e.epsilon {
		return e.rng.Intn(len(values)), nil
	}
	return floats.MaxIdx(values), nil
}

// Random returns a uniformly random action index in [0, n)
func (e *EGreedy) Random(n int) int {
	return e.rng.Intn(n)
}
