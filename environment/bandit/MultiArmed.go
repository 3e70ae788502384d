package bandit

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// MultiArmed is a bandit whose arms pay normally distributed rewards
type MultiArmed struct {
	*bandit
	means []float64
}

// NewMultiArmed returns a new MultiArmed bandit with one arm per mean
// and standard deviation, and steps pulls per episode
func NewMultiArmed(means, stdDevs []float64, steps int,
	seed uint64) (*MultiArmed, error) {
	if len(means) == 0 {
		return nil, fmt.Errorf("newMultiArmed: bandit must have at least " +
			"one arm")
	}
	if len(means) != len(stdDevs) {
		return nil, fmt.Errorf("newMultiArmed: invalid number of standard "+
			"deviations\n\twant(%d)\n\thave(%d)", len(means), len(stdDevs))
	}
	for i, s := range stdDevs {
		if s <= 0 {
			return nil, fmt.Errorf("newMultiArmed: standard deviation of "+
				"arm %d must be positive\n\thave(%v)", i, s)
		}
	}

	m := make([]float64, len(means))
	copy(m, means)
	s := make([]float64, len(stdDevs))
	copy(s, stdDevs)

	b, err := newBandit("MultiArmedBandit", &gaussianArms{means: m,
		stdDevs: s}, steps, seed)
	if err != nil {
		return nil, err
	}
	return &MultiArmed{b, m}, nil
}

// Best returns the arm with the largest mean reward
func (m *MultiArmed) Best() int {
	return floats.MaxIdx(m.means)
}
