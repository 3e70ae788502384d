// Package environment outlines the interfaces and structs needed to
// implement concrete environments, and the episodic loop that connects
// an environment to an action predictor
package environment

import "github.com/samuelfneumann/rlharness/timestep"

// Environment implements a stateful world which reacts to actions,
// emits rewards, and decides when episodes terminate.
//
// Concrete environments embed a Base, which implements the bookkeeping
// half of the interface, and implement the world dynamics themselves.
type Environment interface {
	Name() string
	ObservationSpace() int // Width of observations
	ActionSpace() int      // Number of actions
	Gamma() float64
	SetGamma(float64) error
	Device() timestep.Device

	// Observation and Reward return the latest observation and reward
	Observation() timestep.Observation
	Reward() timestep.Reward

	// Life returns the number of steps taken since the last Reset
	Life() int

	// Record stores the result of a step as the current observation
	// and reward
	Record(timestep.Observation, timestep.Reward)

	// Seed re-seeds all random sources of the environment
	Seed(uint64)

	// Reset resets the environment between episodes and returns the
	// placeholder observation of the new episode
	Reset() timestep.Observation

	// GetReward computes the reward of an observation
	GetReward(timestep.Observation) timestep.Reward

	// UpdateEnviron applies an action, returning the next observation.
	// Actions outside of the action space are rejected with an error
	// satisfying IsInvalidAction and do not change the world.
	UpdateEnviron(timestep.Act) (timestep.Observation, error)

	// StopEpoch returns whether the episode must terminate at the
	// given epoch counter
	StopEpoch(epoch int) bool

	// DiscountReward returns the multiplier applied to the raw reward
	// sum of an episode
	DiscountReward(ep timestep.Episode, gamma float64) float64

	// Sample returns a uniformly random valid action
	Sample() timestep.Act
}

// Predictor predicts actions to take from observations
type Predictor interface {
	PredictAction(timestep.Observation) (timestep.Act, error)
}

// SeededPredictor is a Predictor whose random source can be re-seeded
type SeededPredictor interface {
	Predictor
	Seed(uint64)
}

// Forker creates independent predictors which can run concurrently
// with each other
type Forker interface {
	Fork(seed uint64) (SeededPredictor, error)
}

// Constructor constructs a new, independent Environment
type Constructor func(seed uint64) (Environment, error)
