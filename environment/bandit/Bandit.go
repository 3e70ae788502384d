// Package bandit implements single-state multi-armed bandit
// environments, where each action pulls an arm with its own reward
// distribution
package bandit

import (
	"fmt"

	"github.com/samuelfneumann/rlharness/environment"
	"github.com/samuelfneumann/rlharness/timestep"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultSteps is the default number of pulls in an episode
const DefaultSteps = 20

// arms samples the reward of pulling an arm
type arms interface {
	Len() int
	Pull(arm int) float64
	Seed(uint64)
}

// bandit is a single-state environment. Every observation is the zero
// vector with one element per arm, and the reward of a pull is stored
// until GetReward is called for the resulting observation.
type bandit struct {
	environment.Base
	arms    arms
	ender   environment.StepLimit
	pending timestep.Reward
}

func newBandit(name string, a arms, steps int, seed uint64) (*bandit,
	error) {
	if steps <= 0 {
		return nil, fmt.Errorf("new%v: steps must be positive\n\thave(%d)",
			name, steps)
	}

	space, err := environment.NewBox([]int{a.Len()}, 0, 1, timestep.CPU, seed)
	if err != nil {
		return nil, err
	}
	base, err := environment.NewBase(name, space, a.Len(), 1.0, seed)
	if err != nil {
		return nil, err
	}

	b := &bandit{
		Base:  base,
		arms:  a,
		ender: environment.NewStepLimit(steps),
	}
	b.Seed(seed)
	b.Reset()
	return b, nil
}

// Seed re-seeds the environment's random sources
func (b *bandit) Seed(seed uint64) {
	b.Base.Seed(seed)
	b.arms.Seed(seed + 2)
}

// Reset starts a new episode
func (b *bandit) Reset() timestep.Observation {
	b.pending = 0
	return b.Base.Reset()
}

// UpdateEnviron pulls an arm
func (b *bandit) UpdateEnviron(a timestep.Act) (timestep.Observation, error) {
	if err := b.ValidateAction("updateEnviron", a); err != nil {
		return timestep.Observation{}, err
	}
	b.pending = timestep.Reward(b.arms.Pull(a.Index))
	return timestep.NewObservation(b.ObservationSpec().Generate()), nil
}

// GetReward returns the reward of the latest pull. The observation of a
// bandit carries no information, so the reward cannot be computed from
// it alone.
func (b *bandit) GetReward(timestep.Observation) timestep.Reward {
	return b.pending
}

// StopEpoch returns whether the episode has reached its number of pulls
func (b *bandit) StopEpoch(epoch int) bool {
	return b.ender.End(epoch, b.Observation())
}

// DiscountReward returns 1, bandit episodes are not discounted
func (b *bandit) DiscountReward(timestep.Episode, float64) float64 {
	return 1.0
}

// bernoulliArms pays 1 with some probability and 0 otherwise
type bernoulliArms struct {
	probs []float64
	dists []distuv.Bernoulli
}

func (b *bernoulliArms) Len() int { return len(b.probs) }

func (b *bernoulliArms) Pull(arm int) float64 {
	return b.dists[arm].Rand()
}

func (b *bernoulliArms) Seed(seed uint64) {
	src := rand.NewSource(seed)
	b.dists = make([]distuv.Bernoulli, len(b.probs))
	for i, p := range b.probs {
		b.dists[i] = distuv.Bernoulli{P: p, Src: src}
	}
}

// gaussianArms pays a normally distributed reward
type gaussianArms struct {
	means, stdDevs []float64
	dists          []distuv.Normal
}

func (g *gaussianArms) Len() int { return len(g.means) }

func (g *gaussianArms) Pull(arm int) float64 {
	return g.dists[arm].Rand()
}

func (g *gaussianArms) Seed(seed uint64) {
	src := rand.NewSource(seed)
	g.dists = make([]distuv.Normal, len(g.means))
	for i := range g.means {
		g.dists[i] = distuv.Normal{Mu: g.means[i], Sigma: g.stdDevs[i],
			Src: src}
	}
}
