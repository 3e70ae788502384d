package selector

import (
	"fmt"

	"github.com/samuelfneumann/rlharness/utils/floatutils"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// Tolerance is the allowed deviation of the sum of a distribution
// from 1
const Tolerance = 1e-6

// Probability samples an action from a probability distribution over
// actions
type Probability struct {
	source rand.Source
}

// NewProbability returns a new Probability selector
func NewProbability(seed uint64) *Probability {
	return &Probability{rand.NewSource(seed)}
}

// Seed re-seeds the selector
func (p *Probability) Seed(seed uint64) {
	p.source = rand.NewSource(seed)
}

// Select samples an action index with probability probs[i]
func (p *Probability) Select(probs []float64) (int, error) {
	if len(probs) == 0 {
		return 0, &Error{"select", ErrNoValues}
	}
	if !floatutils.IsDistribution(probs, Tolerance) {
		return 0, &Error{"select", fmt.Errorf("%w\n\thave(%v)",
			ErrNotDistribution, probs)}
	}

	w := sampleuv.NewWeighted(probs, p.source)
	action, ok := w.Take()
	if !ok {
		return 0, &Error{"select", fmt.Errorf("%w\n\thave(%v)",
			ErrNotDistribution, probs)}
	}
	return action, nil
}
