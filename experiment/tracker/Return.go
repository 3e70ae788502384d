package tracker

import (
	"github.com/samuelfneumann/rlharness/timestep"
)

// Return tracks and saves the discounted return (SumReward) of every
// episode in an experiment
type Return struct {
	episodeReturns []float64
	filename       string
}

// NewReturn creates and returns a new *Return Tracker
func NewReturn(filename string) *Return {
	return &Return{filename: filename}
}

// Track tracks the return of each episode
func (r *Return) Track(_ int, episodes []timestep.Episode, _ float64) {
	r.episodeReturns = append(r.episodeReturns,
		timestep.SumRewards(episodes)...)
}

// Data returns the return of each tracked episode
func (r *Return) Data() []float64 {
	return copyData(r.episodeReturns)
}

// Save saves the data tracked by the Return Tracker to disk
func (r *Return) Save() error {
	return save(r.filename, r.episodeReturns)
}
