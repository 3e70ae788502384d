package initwfn

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// GaussianConfig implements a configuration of a Gaussian
// initialization algorithm
type GaussianConfig struct {
	Mean, StdDev float64
}

// NewGaussian returns a new Gaussian weight initializer
func NewGaussian(mean, stdDev float64) *InitWFn {
	return New(&GaussianConfig{Mean: mean, StdDev: stdDev})
}

// Type returns the type of initialization algorithm described by
// the configuration.
func (g *GaussianConfig) Type() Type {
	return Gaussian
}

// Initialize returns a new set of weights
func (g *GaussianConfig) Initialize(src rand.Source, in, out int) []float64 {
	dist := distuv.Normal{Mu: g.Mean, Sigma: g.StdDev, Src: src}
	return fill(in*out, dist.Rand)
}
