package initwfn

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// HeUConfig implements a configuration of the He Uniform initialization
// algorithm: U(-l, l) with l = gain * sqrt(3/in).
type HeUConfig struct {
	Gain float64
}

// NewHeU returns a new He Uniform weight initializer
func NewHeU(gain float64) *InitWFn {
	return New(&HeUConfig{Gain: gain})
}

// Type returns the type of initialization algorithm described by
// the configuration.
func (h *HeUConfig) Type() Type {
	return HeU
}

// Initialize returns a new set of weights
func (h *HeUConfig) Initialize(src rand.Source, in, out int) []float64 {
	limit := h.Gain * math.Sqrt(3.0/float64(in))
	dist := distuv.Uniform{Min: -limit, Max: limit, Src: src}
	return fill(in*out, dist.Rand)
}

// HeNConfig implements a configuration of the He Normal initialization
// algorithm: N(0, σ²) with σ = gain / sqrt(in).
type HeNConfig struct {
	Gain float64
}

// NewHeN returns a new He Normal weight initializer
func NewHeN(gain float64) *InitWFn {
	return New(&HeNConfig{Gain: gain})
}

// Type returns the type of initialization algorithm described by
// the configuration.
func (h *HeNConfig) Type() Type {
	return HeN
}

// Initialize returns a new set of weights
func (h *HeNConfig) Initialize(src rand.Source, in, out int) []float64 {
	sigma := h.Gain / math.Sqrt(float64(in))
	dist := distuv.Normal{Mu: 0, Sigma: sigma, Src: src}
	return fill(in*out, dist.Rand)
}
