// Package initwfn implements seeded weight initialization schemes for
// neural network layers. Initializers are JSON serializable so that
// they can be stored in configuration files.
package initwfn

import (
	"encoding/json"
	"fmt"

	"golang.org/x/exp/rand"
)

// Type describes different types of weight initializers
type Type string

// Available initializer types
const (
	GlorotU  Type = "GlorotU"
	GlorotN  Type = "GlorotN"
	HeU      Type = "HeU"
	HeN      Type = "HeN"
	Uniform  Type = "Uniform"
	Gaussian Type = "Gaussian"
	Constant Type = "Constant"
)

// Config describes a weight initialization scheme
type Config interface {
	// Initialize returns the row-major weights of a layer mapping in
	// inputs to out outputs, sampled from src
	Initialize(src rand.Source, in, out int) []float64

	// Type returns the type of initializer described
	Type() Type
}

// InitWFn wraps a Config so that it can be JSON marshalled and
// unmarshalled into its concrete type
type InitWFn struct {
	Type
	Config
}

// New returns a new InitWFn wrapping c
func New(c Config) *InitWFn {
	return &InitWFn{Type: c.Type(), Config: c}
}

// Initialize returns the row-major weights of a layer mapping in inputs
// to out outputs
func (i *InitWFn) Initialize(src rand.Source, in, out int) []float64 {
	return i.Config.Initialize(src, in, out)
}

// String implements the fmt.Stringer interface
func (i *InitWFn) String() string {
	return fmt.Sprintf("{%v InitWFn: %+v}", i.Type, i.Config)
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (i *InitWFn) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type   Type
		Config json.RawMessage
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var c Config
	switch raw.Type {
	case GlorotU:
		c = &GlorotUConfig{}
	case GlorotN:
		c = &GlorotNConfig{}
	case HeU:
		c = &HeUConfig{}
	case HeN:
		c = &HeNConfig{}
	case Uniform:
		c = &UniformConfig{}
	case Gaussian:
		c = &GaussianConfig{}
	case Constant:
		c = &ConstantConfig{}
	default:
		return fmt.Errorf("unmarshalJSON: no such initializer %q", raw.Type)
	}

	if len(raw.Config) > 0 {
		if err := json.Unmarshal(raw.Config, c); err != nil {
			return fmt.Errorf("unmarshalJSON: %v", err)
		}
	}

	i.Type = raw.Type
	i.Config = c
	return nil
}

func fill(n int, f func() float64) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = f()
	}
	return w
}
