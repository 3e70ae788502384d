// Package experiment implements functionality for running an experiment
package experiment

import (
	"context"
	"fmt"
	"log"

	"github.com/samuelfneumann/rlharness/agent"
	"github.com/samuelfneumann/rlharness/environment/envconfig"
	"github.com/samuelfneumann/rlharness/experiment/checkpointer"
	"github.com/samuelfneumann/rlharness/experiment/tracker"
)

// Experiment outlines structs that can run experiments. The Run()
// method runs all epochs until the epoch limit is reached or the
// context is cancelled. The RunEpoch() method runs a single epoch.
//
// Experiments send the episodes of each epoch to Trackers, which
// determine which data is saved. New Trackers can be registered with
// an Experiment through the constructor or through an Experiment's
// Register() function. The Save() function saves all tracked data to
// disk, which is usually performed after an experiment has been run.
type Experiment interface {
	Run(ctx context.Context) error

	// RunEpoch returns whether or not the last epoch was run
	RunEpoch(ctx context.Context) (bool, error)

	// Save all tracked data to disk
	Save() error

	// Adds a new tracker.Tracker to the (possibly already running)
	// experiment. Useful if you want to track data only after a
	// specified event.
	Register(t tracker.Tracker)
}

// Type is the type of experiment to run
type Type string

const (
	EpochExp Type = "EpochExperiment"
)

// Config represents a configuration of an experiment
type Config struct {
	Type
	Epochs   int // Number of training epochs
	Episodes int // Number of episodes per epoch

	// Workers is the number of goroutines running the episodes of an
	// epoch. Values above 1 require an agent which can be forked.
	Workers int

	EnvConf   envconfig.Config
	AgentConf agent.TypedConfig
}

// Validate checks a Config to ensure it is a valid configuration
func (c Config) Validate() error {
	if c.Type != EpochExp {
		return fmt.Errorf("validate: no such experiment type %v", c.Type)
	}
	if c.Epochs <= 0 || c.Episodes <= 0 {
		return fmt.Errorf("validate: epochs and episodes must be positive"+
			"\n\thave(%d, %d)", c.Epochs, c.Episodes)
	}
	if c.Workers < 0 {
		return fmt.Errorf("validate: workers must be non-negative"+
			"\n\thave(%d)", c.Workers)
	}
	if err := c.EnvConf.Validate(); err != nil {
		return fmt.Errorf("validate: %v", err)
	}
	if c.AgentConf.Config == nil {
		return fmt.Errorf("validate: no agent configuration")
	}
	if err := c.AgentConf.Validate(); err != nil {
		return fmt.Errorf("validate: %v", err)
	}
	return nil
}

// CreateExp creates the experiment described by the Config, with the
// environment and agent seeded by seed
func (c Config) CreateExp(seed uint64, logger *log.Logger,
	t []tracker.Tracker, check []checkpointer.Checkpointer) (*Epoch, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("createExp: %v", err)
	}

	env, err := c.EnvConf.Create(seed)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create environment: %v",
			err)
	}
	a, err := c.AgentConf.CreateAgent(env, seed)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create agent: %v", err)
	}
	trainer, ok := a.(agent.Trainer)
	if !ok {
		return nil, fmt.Errorf("createExp: agent %v cannot be trained "+
			"by epoch", c.AgentConf.Type)
	}

	exp := NewEpoch(env, trainer, c.Epochs, c.Episodes, logger, t, check)
	if c.Workers > 1 {
		if err := exp.Parallel(c.EnvConf.Constructor(), c.Workers,
			seed); err != nil {
			return nil, fmt.Errorf("createExp: %v", err)
		}
	}
	return exp, nil
}
