package environment

import (
	"fmt"

	"github.com/samuelfneumann/rlharness/timestep"
)

// Base implements the bookkeeping shared by all environments: name,
// spaces, discount, the current observation and reward, and the
// observation history of the current episode.
type Base struct {
	name             string
	observationSpace Space
	actionSpace      *Discrete
	gamma            float64
	device           timestep.Device

	observation timestep.Observation
	reward      timestep.Reward
	history     []timestep.Observation
}

// NewBase returns a new Base with the given observation space and
// number of actions. The observation space and the action space are
// seeded with seed and seed+1 respectively.
func NewBase(name string, observationSpace Space, actions int,
	gamma float64, seed uint64) (Base, error) {
	if observationSpace == nil {
		return Base{}, &Error{"newBase", fmt.Errorf("%w: nil observation "+
			"space", ErrShape)}
	}
	if err := validateGamma("newBase", gamma); err != nil {
		return Base{}, err
	}

	actionSpace, err := NewDiscrete(actions, observationSpace.Device(),
		seed+1)
	if err != nil {
		return Base{}, err
	}
	observationSpace.Seed(seed)

	return Base{
		name:             name,
		observationSpace: observationSpace,
		actionSpace:      actionSpace,
		gamma:            gamma,
		device:           observationSpace.Device(),
	}, nil
}

func validateGamma(op string, gamma float64) error {
	if gamma <= 0 || gamma > 1 {
		return &Error{op, fmt.Errorf("%w\n\twant(0 < gamma <= 1)"+
			"\n\thave(%v)", ErrDiscount, gamma)}
	}
	return nil
}

// Name returns the name of the environment
func (b *Base) Name() string { return b.name }

// ObservationSpace returns the width of observations
func (b *Base) ObservationSpace() int { return b.observationSpace.Len() }

// ActionSpace returns the number of actions
func (b *Base) ActionSpace() int { return b.actionSpace.N() }

// ObservationSpec returns the Space of observations
func (b *Base) ObservationSpec() Space { return b.observationSpace }

// ActionSpec returns the Space of actions
func (b *Base) ActionSpec() *Discrete { return b.actionSpace }

// Gamma returns the discount factor
func (b *Base) Gamma() float64 { return b.gamma }

// SetGamma sets the discount factor, which must be in (0, 1]
func (b *Base) SetGamma(gamma float64) error {
	if err := validateGamma("setGamma", gamma); err != nil {
		return err
	}
	b.gamma = gamma
	return nil
}

// Device returns the device observations and actions are bound to
func (b *Base) Device() timestep.Device { return b.device }

// Observation returns the latest observation
func (b *Base) Observation() timestep.Observation { return b.observation }

// Reward returns the latest reward
func (b *Base) Reward() timestep.Reward { return b.reward }

// Life returns the number of steps taken since the last Reset
func (b *Base) Life() int { return len(b.history) }

// History returns the observations of the current episode
func (b *Base) History() []timestep.Observation {
	history := make([]timestep.Observation, len(b.history))
	copy(history, b.history)
	return history
}

// Record stores an observation and its reward as the current ones
func (b *Base) Record(obs timestep.Observation, reward timestep.Reward) {
	b.observation = obs
	b.reward = reward
	b.history = append(b.history, obs)
}

// Reset clears the episode history and sets the current observation to
// a zero placeholder
func (b *Base) Reset() timestep.Observation {
	b.history = b.history[:0]
	b.observation = timestep.NewObservation(b.observationSpace.Generate())
	b.reward = 0
	return b.observation
}

// Seed re-seeds the observation and action spaces
func (b *Base) Seed(seed uint64) {
	b.observationSpace.Seed(seed)
	b.actionSpace.Seed(seed + 1)
}

// Sample returns a uniformly random action
func (b *Base) Sample() timestep.Act {
	return timestep.Act{
		Index:  b.actionSpace.SampleIndex(),
		Device: b.device,
	}
}

// ValidateAction returns an error satisfying IsInvalidAction if the
// action lies outside of the action space
func (b *Base) ValidateAction(op string, act timestep.Act) error {
	if !b.actionSpace.Contains(act.Index) {
		return &Error{op, fmt.Errorf("%w\n\twant(0 <= action < %d)"+
			"\n\thave(%d)", ErrInvalidAction, b.actionSpace.N(), act.Index)}
	}
	return nil
}

// ValidateObservation returns an error satisfying IsShape if the
// observation does not have the width of the observation space
func (b *Base) ValidateObservation(op string, obs timestep.Observation) error {
	if obs.Len() != b.ObservationSpace() {
		return &Error{op, fmt.Errorf("%w: observation width\n\twant(%d)"+
			"\n\thave(%d)", ErrShape, b.ObservationSpace(), obs.Len())}
	}
	return nil
}
