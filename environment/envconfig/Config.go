// Package envconfig provides configuration structs for configuring
// environments with default parameters. Environment configurations in
// this package are JSON serializable.
package envconfig

import (
	"fmt"

	env "github.com/samuelfneumann/rlharness/environment"
	"github.com/samuelfneumann/rlharness/environment/bandit"
	"github.com/samuelfneumann/rlharness/environment/frozenlake"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	Frozenlake       EnvName = "Frozenlake"
	KArmedBandit     EnvName = "KArmedBandit"
	MultiArmedBandit EnvName = "MultiArmedBandit"
)

// Config implements a specific configuration of a specific environment.
// Fields which do not apply to the configured environment are ignored.
type Config struct {
	Environment EnvName
	Gamma       float64

	// Frozenlake
	MaxSteps int
	Slippery bool
	Map      []string

	// Bandits
	Steps   int
	Probs   []float64
	Means   []float64
	StdDevs []float64
}

// NewFrozenlake returns a Config for the default 4x4 Frozenlake
func NewFrozenlake(gamma float64, slippery bool) Config {
	return Config{
		Environment: Frozenlake,
		Gamma:       gamma,
		MaxSteps:    frozenlake.DefaultMaxSteps,
		Slippery:    slippery,
		Map:         frozenlake.Map4x4,
	}
}

// NewKArmedBandit returns a Config for a KArmed bandit
func NewKArmedBandit(probs []float64) Config {
	return Config{
		Environment: KArmedBandit,
		Gamma:       1.0,
		Steps:       bandit.DefaultSteps,
		Probs:       probs,
	}
}

// Validate returns an error describing whether or not the
// configuration is valid
func (c Config) Validate() error {
	if c.Gamma <= 0 || c.Gamma > 1 {
		return fmt.Errorf("validate: invalid gamma\n\twant(0 < gamma <= 1)"+
			"\n\thave(%v)", c.Gamma)
	}

	switch c.Environment {
	case Frozenlake:
		if c.MaxSteps < 0 {
			return fmt.Errorf("validate: maxSteps must be non-negative"+
				"\n\thave(%d)", c.MaxSteps)
		}

	case KArmedBandit:
		if len(c.Probs) == 0 {
			return fmt.Errorf("validate: %v requires Probs", c.Environment)
		}

	case MultiArmedBandit:
		if len(c.Means) == 0 || len(c.Means) != len(c.StdDevs) {
			return fmt.Errorf("validate: %v requires one StdDev per Mean"+
				"\n\twant(%d)\n\thave(%d)", c.Environment, len(c.Means),
				len(c.StdDevs))
		}

	default:
		return fmt.Errorf("validate: no such environment %v", c.Environment)
	}
	return nil
}

// Create returns the environment described by the Config
func (c Config) Create(seed uint64) (env.Environment, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("create: %v", err)
	}

	switch c.Environment {
	case Frozenlake:
		rows := c.Map
		if len(rows) == 0 {
			rows = frozenlake.Map4x4
		}
		m, err := frozenlake.NewMap(rows)
		if err != nil {
			return nil, err
		}
		maxSteps := c.MaxSteps
		if maxSteps == 0 {
			maxSteps = frozenlake.DefaultMaxSteps
		}
		f, err := frozenlake.New(m, maxSteps, c.Slippery, c.Gamma, seed)
		if err != nil {
			return nil, err
		}
		return f, nil

	case KArmedBandit:
		k, err := bandit.NewKArmed(c.Probs, c.steps(), seed)
		if err != nil {
			return nil, err
		}
		return k, nil

	case MultiArmedBandit:
		b, err := bandit.NewMultiArmed(c.Means, c.StdDevs, c.steps(), seed)
		if err != nil {
			return nil, err
		}
		return b, nil
	}

	panic(fmt.Sprintf("create: cannot create environment %v, no such "+
		"environment", c.Environment))
}

// Constructor returns a function constructing the configured
// environment, suitable for parallel rollouts
func (c Config) Constructor() env.Constructor {
	return c.Create
}

func (c Config) steps() int {
	if c.Steps == 0 {
		return bandit.DefaultSteps
	}
	return c.Steps
}
