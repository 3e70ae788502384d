package environment

import (
	"fmt"

	"github.com/samuelfneumann/rlharness/timestep"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"
)

// DType is the element type of the values in a Space
type DType string

const (
	Float64 DType = "float64"
	Int64   DType = "int64"
)

// Space describes the shape, element type, and device of observations
// or actions, and samples values from them. Each Space owns its own
// seeded random source.
type Space interface {
	Shape() []int
	Len() int // Number of elements in the flattened shape
	DType() DType
	Device() timestep.Device

	// Sample returns a random element of the space
	Sample() *mat.VecDense

	// Generate returns a zero-valued placeholder of the flattened shape
	Generate() *mat.VecDense

	// Seed re-seeds the space's random source
	Seed(uint64)
}

// validateShape ensures that a shape has at least one dimension and
// that each dimension is positive. It returns the flattened length.
func validateShape(op string, shape []int) (int, error) {
	if len(shape) < 1 {
		return 0, &Error{op, fmt.Errorf("%w: shape must have at least one "+
			"dimension\n\thave(%v)", ErrShape, shape)}
	}

	size := 1
	for i, dim := range shape {
		if dim <= 0 {
			return 0, &Error{op, fmt.Errorf("%w: dimension %d must be "+
				"positive\n\thave(%v)", ErrShape, i, shape)}
		}
		size *= dim
	}
	return size, nil
}

// Discrete is a Space of a single integer in {0, 1, ..., n-1}, sampled
// uniformly from a categorical distribution
type Discrete struct {
	n      int
	device timestep.Device
	rand   distuv.Categorical
}

// NewDiscrete returns a new Discrete space with n elements
func NewDiscrete(n int, device timestep.Device, seed uint64) (*Discrete,
	error) {
	if _, err := validateShape("newDiscrete", []int{n}); err != nil {
		return nil, err
	}

	d := &Discrete{n: n, device: device}
	d.Seed(seed)
	return d, nil
}

// Seed re-seeds the space's random source
func (d *Discrete) Seed(seed uint64) {
	weights := make([]float64, d.n)
	for i := range weights {
		weights[i] = 1.0 / float64(d.n)
	}
	d.rand = distuv.NewCategorical(weights, rand.NewSource(seed))
}

// N returns the number of elements in the space
func (d *Discrete) N() int { return d.n }

// Shape returns the shape of the space
func (d *Discrete) Shape() []int { return []int{1} }

// Len returns the flattened length of the space
func (d *Discrete) Len() int { return 1 }

// DType returns the element type of the space
func (d *Discrete) DType() DType { return Int64 }

// Device returns the device the space is bound to
func (d *Discrete) Device() timestep.Device { return d.device }

// SampleIndex returns a uniformly random element of the space
func (d *Discrete) SampleIndex() int {
	return int(d.rand.Rand())
}

// Sample returns a uniformly random element of the space as a vector
func (d *Discrete) Sample() *mat.VecDense {
	return mat.NewVecDense(1, []float64{float64(d.SampleIndex())})
}

// Generate returns a zero placeholder
func (d *Discrete) Generate() *mat.VecDense {
	return mat.NewVecDense(1, nil)
}

// Contains returns whether i is an element of the space
func (d *Discrete) Contains(i int) bool {
	return i >= 0 && i < d.n
}

// Box is a Space of real-valued tensors whose elements are bounded by
// per-element intervals, sampled uniformly
type Box struct {
	shape  []int
	bounds []r1.Interval
	device timestep.Device
	rand   *distmv.Uniform
}

// NewBox returns a new Box with the given shape where each element lies
// in [low, high]
func NewBox(shape []int, low, high float64, device timestep.Device,
	seed uint64) (*Box, error) {
	size, err := validateShape("newBox", shape)
	if err != nil {
		return nil, err
	}
	if low > high {
		return nil, &Error{"newBox", fmt.Errorf("%w: low > high"+
			"\n\thave(%v > %v)", ErrShape, low, high)}
	}

	bounds := make([]r1.Interval, size)
	for i := range bounds {
		bounds[i] = r1.Interval{Min: low, Max: high}
	}

	s := make([]int, len(shape))
	copy(s, shape)
	b := &Box{shape: s, bounds: bounds, device: device}
	b.Seed(seed)
	return b, nil
}

// Seed re-seeds the space's random source
func (b *Box) Seed(seed uint64) {
	b.rand = distmv.NewUniform(b.bounds, rand.NewSource(seed))
}

// Shape returns the shape of the space
func (b *Box) Shape() []int {
	shape := make([]int, len(b.shape))
	copy(shape, b.shape)
	return shape
}

// Len returns the flattened length of the space
func (b *Box) Len() int { return len(b.bounds) }

// DType returns the element type of the space
func (b *Box) DType() DType { return Float64 }

// Device returns the device the space is bound to
func (b *Box) Device() timestep.Device { return b.device }

// Sample returns a uniformly random element of the space
func (b *Box) Sample() *mat.VecDense {
	return mat.NewVecDense(len(b.bounds), b.rand.Rand(nil))
}

// Generate returns a zero placeholder
func (b *Box) Generate() *mat.VecDense {
	return mat.NewVecDense(len(b.bounds), nil)
}
