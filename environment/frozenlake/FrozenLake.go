// Package frozenlake implements the Frozenlake grid world, where an
// agent must cross a frozen lake from a start cell to a goal cell
// without falling into holes
package frozenlake

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/rlharness/environment"
	"github.com/samuelfneumann/rlharness/timestep"
	"github.com/samuelfneumann/rlharness/utils/matutils"
	"golang.org/x/exp/rand"
)

// Actions
const (
	Left int = iota
	Down
	Right
	Up
)

// DefaultMaxSteps is the default number of steps before an episode is
// cut off
const DefaultMaxSteps = 100

// FrozenLake is a grid world whose observations are one-hot encodings
// of the agent's cell. The reward is 1 on reaching a goal cell and 0
// otherwise. Episodes end on a hole or goal cell, or at the step cap.
//
// If slippery, the agent moves in the intended direction with
// probability 1/3 and in each perpendicular direction with probability
// 1/3.
type FrozenLake struct {
	environment.Base
	m        *Map
	position int
	slippery bool
	maxSteps int
	ender    environment.Enders
	rng      *rand.Rand
}

// New returns a new FrozenLake on map m
func New(m *Map, maxSteps int, slippery bool, gamma float64,
	seed uint64) (*FrozenLake, error) {
	if maxSteps <= 0 {
		return nil, fmt.Errorf("new: maxSteps must be positive\n\thave(%d)",
			maxSteps)
	}

	space, err := environment.NewBox([]int{m.Cells()}, 0, 1, timestep.CPU,
		seed)
	if err != nil {
		return nil, err
	}
	base, err := environment.NewBase("Frozenlake", space, 4, gamma, seed)
	if err != nil {
		return nil, err
	}

	f := &FrozenLake{
		Base:     base,
		m:        m,
		position: m.Start(),
		slippery: slippery,
		maxSteps: maxSteps,
	}
	f.ender = environment.Enders{
		environment.NewStepLimit(maxSteps),
		environment.NewFunctionEnder(f.terminal),
	}
	f.Seed(seed)
	f.Reset()

	return f, nil
}

// Default returns the non-slippery 4x4 FrozenLake
func Default(gamma float64, seed uint64) (*FrozenLake, error) {
	m, err := NewMap(Map4x4)
	if err != nil {
		panic(fmt.Sprintf("default: %v", err))
	}
	return New(m, DefaultMaxSteps, false, gamma, seed)
}

// Seed re-seeds the environment's random sources
func (f *FrozenLake) Seed(seed uint64) {
	f.Base.Seed(seed)
	f.rng = rand.New(rand.NewSource(seed + 2))
}

// Map returns the map of the environment
func (f *FrozenLake) Map() *Map {
	return f.m
}

// Position returns the index of the agent's cell
func (f *FrozenLake) Position() int {
	return f.position
}

// Coordinates returns the (x, y) coordinates of the agent
func (f *FrozenLake) Coordinates() (int, int) {
	return indToC(f.position, f.m.c)
}

// Reset moves the agent to the start cell. The returned observation is
// the zero placeholder of the observation space.
func (f *FrozenLake) Reset() timestep.Observation {
	f.position = f.m.Start()
	return f.Base.Reset()
}

// UpdateEnviron moves the agent, returning the one-hot encoding of the
// agent's new cell
func (f *FrozenLake) UpdateEnviron(a timestep.Act) (timestep.Observation,
	error) {
	if err := f.ValidateAction("updateEnviron", a); err != nil {
		return timestep.Observation{}, err
	}

	direction := a.Index
	if f.slippery {
		direction = (direction + f.rng.Intn(3) + 3) % 4
	}

	x, y := f.Coordinates()
	switch direction {
	case Left:
		if x > 0 {
			x--
		}
	case Down:
		if y < f.m.r-1 {
			y++
		}
	case Right:
		if x < f.m.c-1 {
			x++
		}
	case Up:
		if y > 0 {
			y--
		}
	}
	f.position = cToInd(x, y, f.m.c)

	return f.observation(), nil
}

// GetReward returns 1 if obs encodes a goal cell and 0 otherwise
func (f *FrozenLake) GetReward(obs timestep.Observation) timestep.Reward {
	if obs.IsNil() {
		return 0
	}
	if i := matutils.HotIndex(obs.Vector()); i >= 0 && f.m.At(i) == Goal {
		return 1
	}
	return 0
}

// StopEpoch returns whether the episode has passed the step cap or the
// agent stands on a hole or goal
func (f *FrozenLake) StopEpoch(epoch int) bool {
	return f.ender.End(epoch, f.Observation())
}

// DiscountReward returns gamma to the power of the episode length
func (f *FrozenLake) DiscountReward(ep timestep.Episode, gamma float64) float64 {
	return math.Pow(gamma, float64(ep.Len()))
}

// terminal returns whether obs encodes a hole or goal cell
func (f *FrozenLake) terminal(obs timestep.Observation) bool {
	i := matutils.HotIndex(obs.Vector())
	return i >= 0 && f.m.Terminal(i)
}

func (f *FrozenLake) observation() timestep.Observation {
	return timestep.NewObservation(matutils.OneHot(f.m.Cells(), f.position))
}
