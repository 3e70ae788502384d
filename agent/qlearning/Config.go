package qlearning

import (
	"fmt"

	"github.com/samuelfneumann/rlharness/agent"
	"github.com/samuelfneumann/rlharness/environment"
)

func init() {
	// Register Config type so that it can be typed using
	// agent.TypedConfig to help with serialization/deserialization.
	agent.Register(agent.QLearningTabular, &Config{})
}

// Config represents a configuration for the QLearning agent
type Config struct {
	Epsilon float64 // epsilon for behaviour policy

	// Gamma discounts the expected next state value in value
	// iteration. The default of 0 backs up only the mean observed
	// reward of each action.
	Gamma float64

	MaxSweeps int     // maximum value iteration sweeps per call
	Tolerance float64 // value iteration stops when max |ΔV| < Tolerance
}

// DefaultConfig returns the default Config for an environment. Value
// iteration with the default Config sets each action value to the mean
// reward observed for it.
func DefaultConfig(env environment.Environment) Config {
	return Config{
		Epsilon:   0.1,
		Gamma:     0,
		MaxSweeps: 100,
		Tolerance: 1e-6,
	}
}

// CreateAgent creates the agent from the Config
func (c *Config) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {
	q, err := New(env, *c, seed)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// Validate checks a Config to ensure it is a valid configuration
func (c *Config) Validate() error {
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("validate: invalid epsilon\n\twant(0 <= ε <= 1)"+
			"\n\thave(%v)", c.Epsilon)
	}
	if c.Gamma < 0 || c.Gamma > 1 {
		return fmt.Errorf("validate: invalid gamma\n\twant(0 <= γ <= 1)"+
			"\n\thave(%v)", c.Gamma)
	}
	if c.MaxSweeps <= 0 {
		return fmt.Errorf("validate: maxSweeps must be positive\n\thave(%d)",
			c.MaxSweeps)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("validate: tolerance must be non-negative"+
			"\n\thave(%v)", c.Tolerance)
	}
	return nil
}

// Type returns the type of agent that the Config creates
func (c *Config) Type() agent.Type {
	return agent.QLearningTabular
}
