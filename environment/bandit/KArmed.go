package bandit

import (
	"fmt"
)

// KArmed is a bandit whose arms pay a reward of 1 with some success
// probability and 0 otherwise
type KArmed struct {
	*bandit
	probs []float64
}

// NewKArmed returns a new KArmed bandit with one arm per success
// probability and steps pulls per episode
func NewKArmed(probs []float64, steps int, seed uint64) (*KArmed, error) {
	if len(probs) == 0 {
		return nil, fmt.Errorf("newKArmed: bandit must have at least one arm")
	}
	for i, p := range probs {
		if p < 0 || p > 1 {
			return nil, fmt.Errorf("newKArmed: invalid probability for arm "+
				"%d\n\twant(0 <= p <= 1)\n\thave(%v)", i, p)
		}
	}

	p := make([]float64, len(probs))
	copy(p, probs)

	b, err := newBandit("KArmedBandit", &bernoulliArms{probs: p}, steps, seed)
	if err != nil {
		return nil, err
	}
	return &KArmed{b, p}, nil
}

// Probs returns the success probability of each arm
func (k *KArmed) Probs() []float64 {
	p := make([]float64, len(k.probs))
	copy(p, k.probs)
	return p
}

// Best returns the arm with the largest success probability
func (k *KArmed) Best() int {
	best := 0
	for i, p := range k.probs {
		if p > k.probs[best] {
			best = i
		}
	}
	return best
}
