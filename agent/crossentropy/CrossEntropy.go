// Package crossentropy implements the cross-entropy method: a policy
// is improved by imitating the actions taken in its best episodes
package crossentropy

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/samuelfneumann/rlharness/agent/selector"
	"github.com/samuelfneumann/rlharness/environment"
	"github.com/samuelfneumann/rlharness/network"
	"github.com/samuelfneumann/rlharness/timestep"
	"github.com/samuelfneumann/rlharness/utils/floatutils"
	"github.com/samuelfneumann/rlharness/utils/matutils"
	"gonum.org/v1/gonum/mat"
)

// CrossEntropy implements the cross-entropy method with a softmax
// policy parameterized by a multi-layered perceptron
type CrossEntropy struct {
	env          environment.Environment
	percentElite float64
	memory       *EliteMemory

	*policy
}

// New creates a new CrossEntropy agent bound to env
func New(env environment.Environment, c Config, seed uint64) (*CrossEntropy,
	error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	net, err := network.NewMLP(env.ObservationSpace(), env.ActionSpace(),
		c.HiddenSizes, c.Activations, c.InitWFn, c.Solver, seed)
	if err != nil {
		return nil, fmt.Errorf("new: could not create policy network: %v",
			err)
	}

	return &CrossEntropy{
		env:          env,
		percentElite: c.PercentElite,
		memory:       NewEliteMemory(c.EliteMemory),
		policy:       newPolicy(net, env.Device(), seed+1),
	}, nil
}

// Environment returns the environment the agent is bound to
func (c *CrossEntropy) Environment() environment.Environment {
	return c.env
}

// Network returns the agent's policy network
func (c *CrossEntropy) Network() *network.MLP {
	return c.net
}

// PercentElite returns the elite percentile of the agent
func (c *CrossEntropy) PercentElite() float64 {
	return c.percentElite
}

// GetElite returns the elite episodes of episodes at the agent's elite
// percentile
func (c *CrossEntropy) GetElite(episodes []timestep.Episode) []timestep.Episode {
	return GetElite(episodes, c.percentElite)
}

// Learn performs a single supervised update of the policy network
// towards the actions taken in the states of episodes. Learning from
// no steps is a no-op with loss 0.
func (c *CrossEntropy) Learn(episodes []timestep.Episode) (float64, error) {
	var rows []mat.Vector
	var targets []int
	for _, ep := range episodes {
		for _, step := range ep.Steps {
			if step.State.IsNil() {
				return 0, &network.Error{Op: "learn", Err: fmt.Errorf("%w: "+
					"step has no state", network.ErrShape)}
			}
			rows = append(rows, step.State.Vector())
			targets = append(targets, step.Action.Index)
		}
	}
	if len(rows) == 0 {
		return 0, nil
	}

	input, err := matutils.Flatten(rows, c.net.Features())
	if err != nil {
		return 0, &network.Error{Op: "learn", Err: fmt.Errorf("%w: %v",
			network.ErrShape, err)}
	}

	loss, err := c.net.FitStep(input, targets)
	if err != nil {
		return 0, fmt.Errorf("learn: %w", err)
	}
	return loss, nil
}

// Train filters episodes to its elites and learns from them. If the
// agent has an elite memory, the elites are first added to the memory
// and the agent learns from the whole memory instead.
func (c *CrossEntropy) Train(episodes []timestep.Episode) (float64, error) {
	elite := c.GetElite(episodes)
	if c.memory.capacity > 0 {
		c.memory.Add(elite)
		elite = c.memory.Episodes()
	}
	return c.Learn(elite)
}

// LearnN rolls out count episodes on the agent's environment and
// trains on them
func (c *CrossEntropy) LearnN(count int) (float64, error) {
	episodes, err := environment.GetMultiEpisodes(c.env, c, count)
	if err != nil {
		return 0, fmt.Errorf("learnN: %w", err)
	}
	return c.Train(episodes)
}

// Memory returns the agent's elite memory
func (c *CrossEntropy) Memory() *EliteMemory {
	return c.memory
}

// Fork returns an independent policy with a copy of the agent's
// network and its own random source
func (c *CrossEntropy) Fork(seed uint64) (environment.SeededPredictor,
	error) {
	return newPolicy(c.net.CloneMLP(), c.device, seed), nil
}

// Save writes the agent's policy network to w
func (c *CrossEntropy) Save(w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(c.net); err != nil {
		return fmt.Errorf("save: %v", err)
	}
	return nil
}

// Load sets the agent's policy network parameters to those read from
// r. The saved network must have the same architecture.
func (c *CrossEntropy) Load(r io.Reader) error {
	var net network.MLP
	if err := gob.NewDecoder(r).Decode(&net); err != nil {
		return fmt.Errorf("load: %v", err)
	}
	if net.Features() != c.net.Features() || net.Outputs() != c.net.Outputs() {
		return &network.Error{Op: "load", Err: fmt.Errorf("%w\n\twant(%d → "+
			"%d)\n\thave(%d → %d)", network.ErrShape, c.net.Features(),
			c.net.Outputs(), net.Features(), net.Outputs())}
	}
	if err := c.net.Set(&net); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	return nil
}

// policy samples actions from the softmax of a network's outputs
type policy struct {
	net      *network.MLP
	selector *selector.Probability
	device   timestep.Device
}

func newPolicy(net *network.MLP, device timestep.Device,
	seed uint64) *policy {
	return &policy{
		net:      net,
		selector: selector.NewProbability(seed),
		device:   device,
	}
}

// Seed re-seeds the policy's random source
func (p *policy) Seed(seed uint64) {
	p.selector.Seed(seed)
}

// PredictAction samples an action for obs
func (p *policy) PredictAction(obs timestep.Observation) (timestep.Act,
	error) {
	scores, err := p.net.Forward(obs.Data(), 1)
	if err != nil {
		return timestep.Act{}, fmt.Errorf("predictAction: %w", err)
	}

	action, err := p.selector.Select(floatutils.Softmax(scores))
	if err != nil {
		return timestep.Act{}, fmt.Errorf("predictAction: %w", err)
	}
	return timestep.Act{Index: action, Device: p.device}, nil
}
