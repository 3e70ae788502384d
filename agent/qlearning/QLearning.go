// Package qlearning implements a tabular Q-learning agent which
// accumulates empirical reward and transition statistics and derives
// action values from them with value iteration
package qlearning

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"

	"github.com/samuelfneumann/rlharness/agent/selector"
	"github.com/samuelfneumann/rlharness/environment"
	"github.com/samuelfneumann/rlharness/timestep"
)

// ErrStateOutOfSpace is reported when an observation does not belong
// to the observation space of the agent's environment
var ErrStateOutOfSpace = errors.New("state outside of observation space")

// QLearning implements a tabular Q-learning agent
type QLearning struct {
	env    environment.Environment
	config Config
	table  *Table
	policy *Policy
	greedy *Policy
}

// New creates a new QLearning agent bound to env
func New(env environment.Environment, c Config, seed uint64) (*QLearning,
	error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	table := NewTable(env.ActionSpace())
	policy, err := newPolicy(table, env, c.Epsilon, seed)
	if err != nil {
		return nil, err
	}
	greedy, err := newPolicy(table, env, 0, seed+1)
	if err != nil {
		return nil, err
	}

	return &QLearning{
		env:    env,
		config: c,
		table:  table,
		policy: policy,
		greedy: greedy,
	}, nil
}

// Environment returns the environment the agent is bound to
func (q *QLearning) Environment() environment.Environment {
	return q.env
}

// Table returns the agent's table
func (q *QLearning) Table() *Table {
	return q.table
}

// Config returns the agent's configuration
func (q *QLearning) Config() Config {
	return q.config
}

// Seed re-seeds the agent's behaviour and greedy policies
func (q *QLearning) Seed(seed uint64) {
	q.policy.Seed(seed)
	q.greedy.Seed(seed + 1)
}

// GetEpsilonAct selects an action ε-greedily with respect to the action
// values of obs. A uniformly random action is returned for states in
// which no action has been taken.
func (q *QLearning) GetEpsilonAct(obs timestep.Observation) (timestep.Act,
	error) {
	return q.policy.PredictAction(obs)
}

// PredictAction selects an action ε-greedily
func (q *QLearning) PredictAction(obs timestep.Observation) (timestep.Act,
	error) {
	return q.GetEpsilonAct(obs)
}

// Update records the outcome of a single step
func (q *QLearning) Update(step timestep.Step) error {
	if err := validateState("update", q.env, step.State); err != nil {
		return err
	}
	if err := validateState("update", q.env, step.Observation); err != nil {
		return err
	}
	if a := step.Action.Index; a < 0 || a >= q.env.ActionSpace() {
		return &environment.Error{Op: "update", Err: fmt.Errorf("%w"+
			"\n\twant(0 <= action < %d)\n\thave(%d)",
			environment.ErrInvalidAction, q.env.ActionSpace(), a)}
	}

	q.table.Add(step.State.Key(), step.Action.Index, float64(step.Reward),
		step.Observation.Key())
	return nil
}

// ValueIteration sweeps the table until the largest state value change
// falls below the configured tolerance or the sweep budget is spent.
// It returns the number of sweeps performed and the last change.
// Exhausting the budget is not an error.
func (q *QLearning) ValueIteration() (sweeps int, delta float64) {
	for sweeps < q.config.MaxSweeps {
		sweeps++
		delta = q.table.Sweep(q.config.Gamma)
		if delta < q.config.Tolerance {
			break
		}
	}
	return sweeps, delta
}

// Learn updates the table with every step of episodes and runs value
// iteration, returning the last value change
func (q *QLearning) Learn(episodes []timestep.Episode) (float64, error) {
	for _, ep := range episodes {
		for _, step := range ep.Steps {
			if err := q.Update(step); err != nil {
				return 0, fmt.Errorf("learn: %w", err)
			}
		}
	}
	_, delta := q.ValueIteration()
	return delta, nil
}

// RunRandom takes steps uniformly random actions in env, recording
// every step in the table. The environment is reset whenever an
// episode ends.
func (q *QLearning) RunRandom(env environment.Environment, steps int) error {
	env.Reset()
	epoch := 1
	for i := 0; i < steps; i++ {
		if env.StopEpoch(epoch) {
			env.Reset()
			epoch = 1
		}
		epoch++

		step, _, err := environment.Step(env, env.Sample(), epoch)
		if err != nil {
			return fmt.Errorf("runRandom: %w", err)
		}
		if err := q.Update(step); err != nil {
			return fmt.Errorf("runRandom: %w", err)
		}
	}
	return nil
}

// PlayEpisode runs n greedy episodes on the agent's environment without
// learning
func (q *QLearning) PlayEpisode(n int) ([]timestep.Episode, error) {
	return environment.GetMultiEpisodes(q.env, q.greedy, n)
}

// Fork returns an ε-greedy policy reading the agent's table, with the
// agent's ε. Forked policies may run concurrently with each other, but
// not with updates to the agent.
func (q *QLearning) Fork(seed uint64) (environment.SeededPredictor, error) {
	return newPolicy(q.table, q.env, q.config.Epsilon, seed)
}

// ForkGreedy returns a greedy policy reading the agent's table
func (q *QLearning) ForkGreedy(seed uint64) (*Policy, error) {
	return newPolicy(q.table, q.env, 0, seed)
}

// Save writes the agent's table to w
func (q *QLearning) Save(w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(q.table); err != nil {
		return fmt.Errorf("save: %v", err)
	}
	return nil
}

// Load replaces the agent's table with the one read from r
func (q *QLearning) Load(r io.Reader) error {
	var table Table
	if err := gob.NewDecoder(r).Decode(&table); err != nil {
		return fmt.Errorf("load: %v", err)
	}
	if table.Actions != q.env.ActionSpace() {
		return fmt.Errorf("load: table has wrong number of actions"+
			"\n\twant(%d)\n\thave(%d)", q.env.ActionSpace(), table.Actions)
	}
	if table.Q == nil {
		table.Q = make(map[string][]float64)
	}
	if table.V == nil {
		table.V = make(map[string]float64)
	}

	*q.table = table
	return nil
}

func validateState(op string, env environment.Environment,
	obs timestep.Observation) error {
	if obs.Len() != env.ObservationSpace() {
		return &environment.Error{Op: op, Err: fmt.Errorf("%w\n\twant(width "+
			"%d)\n\thave(%d)", ErrStateOutOfSpace, env.ObservationSpace(),
			obs.Len())}
	}
	return nil
}

// Policy selects actions ε-greedily with respect to a Table
type Policy struct {
	table *Table
	env   environment.Environment
	rng   *selector.EGreedy
}

func newPolicy(table *Table, env environment.Environment, epsilon float64,
	seed uint64) (*Policy, error) {
	rng, err := selector.NewEGreedy(epsilon, seed)
	if err != nil {
		return nil, err
	}
	return &Policy{table: table, env: env, rng: rng}, nil
}

// Seed re-seeds the policy
func (p *Policy) Seed(seed uint64) {
	p.rng.Seed(seed)
}

// PredictAction selects an action for obs
func (p *Policy) PredictAction(obs timestep.Observation) (timestep.Act,
	error) {
	if err := validateState("predictAction", p.env, obs); err != nil {
		return timestep.Act{}, err
	}

	key := obs.Key()
	if !p.table.Seen(key) {
		return timestep.Act{
			Index:  p.rng.Random(p.table.Actions),
			Device: p.env.Device(),
		}, nil
	}

	action, err := p.rng.Select(p.table.Values(key))
	if err != nil {
		return timestep.Act{}, err
	}
	return timestep.Act{Index: action, Device: p.env.Device()}, nil
}

// Train learns from every episode of a training epoch
func (q *QLearning) Train(episodes []timestep.Episode) (float64, error) {
	return q.Learn(episodes)
}
