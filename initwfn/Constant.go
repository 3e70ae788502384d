package initwfn

import "golang.org/x/exp/rand"

// ConstantConfig implements a configuration of an initialization
// algorithm setting all weights to the same value
type ConstantConfig struct {
	Value float64
}

// NewConstant returns a new constant weight initializer
func NewConstant(value float64) *InitWFn {
	return New(&ConstantConfig{Value: value})
}

// NewZeroes returns a new weight initializer setting all weights to 0
func NewZeroes() *InitWFn {
	return NewConstant(0)
}

// Type returns the type of initialization algorithm described by
// the configuration.
func (c *ConstantConfig) Type() Type {
	return Constant
}

// Initialize returns a new set of weights
func (c *ConstantConfig) Initialize(_ rand.Source, in, out int) []float64 {
	v := c.Value
	return fill(in*out, func() float64 { return v })
}
