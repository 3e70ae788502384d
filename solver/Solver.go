// Package solver implements functionality to wrap Gorgonia Solvers
// so that they can be JSON serialized into configuration files.
package solver

import (
	"encoding/json"
	"fmt"

	G "gorgonia.org/gorgonia"
)

// Type describes different types of solvers that are available
type Type string

// Available solver types
const (
	Adam    Type = "Adam"
	Vanilla Type = "Vanilla"
	RMSProp Type = "RMSProp"
)

// Config implements a Gorgonia Solver configuration and can be used to
// create the Gorgonia Solvers it describes
type Config interface {
	// Create returns a new Gorgonia Solver. Each call returns a solver
	// with fresh internal state.
	Create() G.Solver

	// Validate returns an error describing whether or not the
	// configuration is valid
	Validate() error

	Type() Type
}

// Solver wraps a solver Config so that it can be JSON marshalled and
// unmarshalled into its concrete type
type Solver struct {
	Type
	Config
}

func newSolver(c Config) (*Solver, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &Solver{Type: c.Type(), Config: c}, nil
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (s *Solver) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type   Type
		Config json.RawMessage
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var c Config
	switch raw.Type {
	case Adam:
		c = &AdamConfig{}
	case Vanilla:
		c = &VanillaConfig{}
	case RMSProp:
		c = &RMSPropConfig{}
	default:
		return fmt.Errorf("unmarshalJSON: no such solver %q", raw.Type)
	}

	if err := json.Unmarshal(raw.Config, c); err != nil {
		return fmt.Errorf("unmarshalJSON: %v", err)
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("unmarshalJSON: %v", err)
	}

	s.Type = raw.Type
	s.Config = c
	return nil
}

func validateStepSize(op string, stepSize float64) error {
	if stepSize <= 0 {
		return fmt.Errorf("%v: step size must be positive\n\thave(%v)", op,
			stepSize)
	}
	return nil
}
