package initwfn

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// UniformConfig implements a configuration of a uniform initialization
// algorithm over [Low, High)
type UniformConfig struct {
	Low, High float64
}

// NewUniform returns a new uniform weight initializer
func NewUniform(low, high float64) *InitWFn {
	return New(&UniformConfig{Low: low, High: high})
}

// Type returns the type of initialization algorithm described by
// the configuration.
func (u *UniformConfig) Type() Type {
	return Uniform
}

// Initialize returns a new set of weights
func (u *UniformConfig) Initialize(src rand.Source, in, out int) []float64 {
	dist := distuv.Uniform{Min: u.Low, Max: u.High, Src: src}
	return fill(in*out, dist.Rand)
}
