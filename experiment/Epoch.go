package experiment

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/samuelfneumann/rlharness/agent"
	"github.com/samuelfneumann/rlharness/environment"
	"github.com/samuelfneumann/rlharness/experiment/checkpointer"
	"github.com/samuelfneumann/rlharness/experiment/tracker"
	"github.com/samuelfneumann/rlharness/timestep"
	"gonum.org/v1/gonum/stat"
)

// Epoch is an Experiment that trains an agent in epochs. In each epoch
// the agent's policy runs a fixed number of episodes, after which the
// agent trains on all episodes of the epoch.
type Epoch struct {
	environment.Environment
	agent agent.Trainer

	maxEpochs    int
	currentEpoch int
	episodes     int

	// Parallel rollouts
	construct environment.Constructor
	forker    environment.Forker
	workers   int
	seed      uint64

	trackers      []tracker.Tracker
	checkpointers []checkpointer.Checkpointer
	logger        *log.Logger
}

// NewEpoch creates and returns a new epoch experiment of a given agent
// on a given environment. If logger is nil, nothing is logged.
func NewEpoch(e environment.Environment, a agent.Trainer, epochs,
	episodes int, logger *log.Logger, t []tracker.Tracker,
	c []checkpointer.Checkpointer) *Epoch {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Epoch{
		Environment:   e,
		agent:         a,
		maxEpochs:     epochs,
		episodes:      episodes,
		trackers:      t,
		checkpointers: c,
		logger:        logger,
	}
}

// Parallel runs the episodes of each epoch on workers goroutines, each
// with its own environment created by construct and its own fork of
// the agent
func (e *Epoch) Parallel(construct environment.Constructor, workers int,
	seed uint64) error {
	forker, ok := e.agent.(environment.Forker)
	if !ok {
		return fmt.Errorf("parallel: agent cannot be forked")
	}
	if workers < 1 {
		return fmt.Errorf("parallel: workers must be positive\n\thave(%d)",
			workers)
	}

	e.construct = construct
	e.forker = forker
	e.workers = workers
	e.seed = seed
	return nil
}

// Register registers a tracker.Tracker with the Experiment so that
// data generated during the experiment can be tracked and saved
func (e *Epoch) Register(t tracker.Tracker) {
	e.trackers = append(e.trackers, t)
}

// Checkpoint adds a checkpointer.Checkpointer to the Experiment, which
// is called after every epoch
func (e *Epoch) Checkpoint(c checkpointer.Checkpointer) {
	e.checkpointers = append(e.checkpointers, c)
}

// CurrentEpoch returns the number of epochs run so far
func (e *Epoch) CurrentEpoch() int {
	return e.currentEpoch
}

// Agent returns the agent being trained
func (e *Epoch) Agent() agent.Trainer {
	return e.agent
}

// RunEpoch runs a single epoch of the experiment
func (e *Epoch) RunEpoch(ctx context.Context) (bool, error) {
	if e.currentEpoch >= e.maxEpochs {
		return true, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	e.currentEpoch++

	episodes, err := e.rollout(ctx)
	if err != nil {
		return false, fmt.Errorf("runEpoch: epoch %d: %w", e.currentEpoch,
			err)
	}

	loss, err := e.agent.Train(episodes)
	if err != nil {
		return false, fmt.Errorf("runEpoch: epoch %d: %w", e.currentEpoch,
			err)
	}

	e.track(episodes, loss)
	if err := e.checkpoint(); err != nil {
		return false, err
	}

	e.logger.Printf("epoch %d/%d: mean return %.4f, loss %.4f",
		e.currentEpoch, e.maxEpochs,
		stat.Mean(timestep.SumRewards(episodes), nil), loss)

	return e.currentEpoch >= e.maxEpochs, nil
}

// Run runs the entire experiment for all epochs. Cancellation of ctx
// is observed between epochs.
func (e *Epoch) Run(ctx context.Context) error {
	ended := false
	for !ended {
		var err error
		if ended, err = e.RunEpoch(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Save saves all the data cached by the Trackers to disk
func (e *Epoch) Save() error {
	for _, t := range e.trackers {
		if err := t.Save(); err != nil {
			return err
		}
	}
	return nil
}

// rollout runs the episodes of the current epoch
func (e *Epoch) rollout(ctx context.Context) ([]timestep.Episode, error) {
	if e.forker == nil {
		episodes := make([]timestep.Episode, 0, e.episodes)
		for i := 0; i < e.episodes; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			ep, err := environment.GetEpisode(e.Environment, e.agent)
			if err != nil {
				return nil, err
			}
			episodes = append(episodes, ep)
		}
		return episodes, nil
	}

	seed := e.seed + uint64((e.currentEpoch-1)*e.episodes)
	return environment.ParallelEpisodes(ctx, e.construct, e.forker,
		e.episodes, e.workers, seed)
}

// track sends the episodes of the current epoch to each Tracker
func (e *Epoch) track(episodes []timestep.Episode, loss float64) {
	for _, t := range e.trackers {
		t.Track(e.currentEpoch, episodes, loss)
	}
}

// checkpoint checkpoints the agent with each Checkpointer
func (e *Epoch) checkpoint() error {
	for _, c := range e.checkpointers {
		if err := c.Checkpoint(e.currentEpoch); err != nil {
			return err
		}
	}
	return nil
}
