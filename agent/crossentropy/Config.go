package crossentropy

import (
	"fmt"

	"github.com/samuelfneumann/rlharness/agent"
	"github.com/samuelfneumann/rlharness/environment"
	"github.com/samuelfneumann/rlharness/initwfn"
	"github.com/samuelfneumann/rlharness/network"
	"github.com/samuelfneumann/rlharness/solver"
)

func init() {
	// Register Config type so that it can be typed using
	// agent.TypedConfig to help with serialization/deserialization.
	agent.Register(agent.CrossEntropyMLP, &Config{})
}

// Config implements a configuration for the CrossEntropy agent
type Config struct {
	// PercentElite is the percentile of the episode returns above which
	// episodes are imitated
	PercentElite float64

	// Policy neural net
	HiddenSizes []int
	Activations []*network.Activation
	InitWFn     *initwfn.InitWFn
	Solver      *solver.Solver

	// EliteMemory is the number of best elite episodes remembered
	// across calls to Train. If 0, only the newest elites are used.
	EliteMemory int
}

// DefaultConfig returns the default configuration: a single hidden
// layer of 100 ReLU units trained with Adam
func DefaultConfig() Config {
	s, err := solver.NewDefaultAdam(0.01, 1)
	if err != nil {
		panic(fmt.Sprintf("defaultConfig: %v", err))
	}
	return Config{
		PercentElite: 0.7,
		HiddenSizes:  []int{100},
		Activations:  []*network.Activation{network.ReLU()},
		InitWFn:      initwfn.NewGlorotU(1.0),
		Solver:       s,
	}
}

// CreateAgent creates a CrossEntropy agent from the Config
func (c *Config) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {
	ce, err := New(env, *c, seed)
	if err != nil {
		return nil, err
	}
	return ce, nil
}

// Validate checks a Config to ensure it is a valid configuration
func (c *Config) Validate() error {
	if c.PercentElite < 0 || c.PercentElite > 1 {
		return fmt.Errorf("validate: invalid percentElite\n\twant(0 <= p "+
			"<= 1)\n\thave(%v)", c.PercentElite)
	}
	if len(c.HiddenSizes) != len(c.Activations) {
		return fmt.Errorf("validate: invalid number of activations"+
			"\n\twant(%d)\n\thave(%d)", len(c.HiddenSizes), len(c.Activations))
	}
	if c.InitWFn == nil {
		return fmt.Errorf("validate: no weight initializer")
	}
	if c.Solver == nil {
		return fmt.Errorf("validate: no solver")
	}
	if err := c.Solver.Config.Validate(); err != nil {
		return fmt.Errorf("validate: %v", err)
	}
	if c.EliteMemory < 0 {
		return fmt.Errorf("validate: eliteMemory must be non-negative"+
			"\n\thave(%d)", c.EliteMemory)
	}
	return nil
}

// Type returns the type of agent that the Config creates
func (c *Config) Type() agent.Type {
	return agent.CrossEntropyMLP
}
