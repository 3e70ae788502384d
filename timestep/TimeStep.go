// Package timestep implements the records exchanged between an agent and
// an environment during an episode
package timestep

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samuelfneumann/rlharness/utils/matutils"
	"gonum.org/v1/gonum/mat"
)

// Device denotes the compute device that a value is bound to
type Device string

const (
	CPU  Device = "cpu"
	CUDA Device = "cuda"
)

// Observation is an immutable snapshot of the environment state as seen
// by the agent. The zero Observation represents "no observation yet".
type Observation struct {
	value *mat.VecDense
}

// NewObservation returns a new Observation holding a copy of v
func NewObservation(v mat.Vector) Observation {
	if v == nil {
		return Observation{}
	}

	value := mat.NewVecDense(v.Len(), nil)
	value.CopyVec(v)
	return Observation{value}
}

// NewObservationFrom returns a new Observation with the given values,
// which are copied
func NewObservationFrom(values []float64) Observation {
	data := make([]float64, len(values))
	copy(data, values)
	return Observation{mat.NewVecDense(len(data), data)}
}

// IsNil returns whether the Observation holds no value
func (o Observation) IsNil() bool {
	return o.value == nil
}

// Len returns the width of the observation
func (o Observation) Len() int {
	if o.value == nil {
		return 0
	}
	return o.value.Len()
}

// Data returns a copy of the observation's values
func (o Observation) Data() []float64 {
	if o.value == nil {
		return nil
	}
	data := make([]float64, o.value.Len())
	copy(data, o.value.RawVector().Data)
	return data
}

// Vector returns a copy of the observation as a vector
func (o Observation) Vector() *mat.VecDense {
	if o.value == nil {
		return nil
	}
	return mat.VecDenseCopyOf(o.value)
}

// AtVec returns the i-th element of the observation
func (o Observation) AtVec(i int) float64 {
	return o.value.AtVec(i)
}

// Key returns a string uniquely identifying the observation's values,
// suitable for use as a map key
func (o Observation) Key() string {
	if o.value == nil {
		return ""
	}

	var b strings.Builder
	for i := 0; i < o.value.Len(); i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(o.value.AtVec(i), 'g', -1, 64))
	}
	return b.String()
}

func (o Observation) String() string {
	if o.value == nil {
		return "Observation(nil)"
	}
	return fmt.Sprintf("Observation(%v)", matutils.Format(o.value.T()))
}

// Act is an action chosen by an agent, bound to some device
type Act struct {
	Index  int
	Device Device
}

// NewAct returns a new action on the CPU
func NewAct(index int) Act {
	return Act{Index: index, Device: CPU}
}

// Vector returns the action as a single element vector
func (a Act) Vector() *mat.VecDense {
	return mat.NewVecDense(1, []float64{float64(a.Index)})
}

func (a Act) String() string {
	return fmt.Sprintf("Act(%d@%v)", a.Index, a.Device)
}

// Reward is a scalar feedback signal
type Reward float64

// Sum returns the sum of rewards
func Sum(rewards ...Reward) Reward {
	var total Reward
	for _, r := range rewards {
		total += r
	}
	return total
}

// Step is a single transition of an episode. State is the observation
// the action was chosen from, Observation is the resulting observation.
type Step struct {
	State       Observation
	Action      Act
	Observation Observation
	Reward      Reward
}

// NewStep returns a new Step
func NewStep(state Observation, action Act, next Observation,
	reward Reward) Step {
	return Step{
		State:       state,
		Action:      action,
		Observation: next,
		Reward:      reward,
	}
}

func (s Step) String() string {
	str := "Step | Action: %d  |  Reward:  %.2f"
	return fmt.Sprintf(str, s.Action.Index, float64(s.Reward))
}
