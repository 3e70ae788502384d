// Package agent defines the agent interface and the registry of agent
// configurations
package agent

import (
	"github.com/samuelfneumann/rlharness/environment"
	"github.com/samuelfneumann/rlharness/timestep"
)

// Agent is a decision maker bound to an Environment. An Agent predicts
// actions with its Predictor and improves them with its Learner.
type Agent interface {
	environment.Predictor
	Learner

	// Environment returns the environment the agent is bound to
	Environment() environment.Environment
}

// Learner implements a learning algorithm that updates an agent from a
// batch of complete episodes
type Learner interface {
	// Learn performs an update from episodes, returning the loss or
	// convergence measure of the update
	Learn(episodes []timestep.Episode) (float64, error)
}

// Forker is an Agent which can create independent predictors for
// concurrent rollouts
type Forker interface {
	Agent
	environment.Forker
}

// Trainer is an Agent which improves itself from the raw episodes of
// a training epoch, choosing for itself which episodes to learn from
type Trainer interface {
	Agent
	Train(episodes []timestep.Episode) (float64, error)
}
