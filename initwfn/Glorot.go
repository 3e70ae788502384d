package initwfn

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// GlorotUConfig implements a configuration of the Glorot Uniform
// initialization algorithm: U(-l, l) with l = gain * sqrt(6/(in+out)).
type GlorotUConfig struct {
	Gain float64
}

// NewGlorotU returns a new Glorot Uniform weight initializer
func NewGlorotU(gain float64) *InitWFn {
	return New(&GlorotUConfig{Gain: gain})
}

// Type returns the type of initialization algorithm described by
// the configuration.
func (g *GlorotUConfig) Type() Type {
	return GlorotU
}

// Initialize returns a new set of weights
func (g *GlorotUConfig) Initialize(src rand.Source, in, out int) []float64 {
	limit := g.Gain * math.Sqrt(6.0/float64(in+out))
	dist := distuv.Uniform{Min: -limit, Max: limit, Src: src}
	return fill(in*out, dist.Rand)
}

// GlorotNConfig implements a configuration of the Glorot Normal
// initialization algorithm: N(0, σ²) with σ = gain * sqrt(2/(in+out)).
type GlorotNConfig struct {
	Gain float64
}

// NewGlorotN returns a new Glorot Normal weight initializer.
func NewGlorotN(gain float64) *InitWFn {
	return New(&GlorotNConfig{Gain: gain})
}

// Type returns the type of initialization algorithm described by
// the configuration.
func (g *GlorotNConfig) Type() Type {
	return GlorotN
}

// Initialize returns a new set of weights
func (g *GlorotNConfig) Initialize(src rand.Source, in, out int) []float64 {
	sigma := g.Gain * math.Sqrt(2.0/float64(in+out))
	dist := distuv.Normal{Mu: 0, Sigma: sigma, Src: src}
	return fill(in*out, dist.Rand)
}
