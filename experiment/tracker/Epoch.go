package tracker

import (
	"github.com/samuelfneumann/rlharness/timestep"
	"gonum.org/v1/gonum/stat"
)

// epochMean tracks the mean of some per-episode value over the episodes
// of each epoch
type epochMean struct {
	value    func(timestep.Episode) float64
	means    []float64
	filename string
}

// Track tracks the mean value of the episodes. Epochs without episodes
// are tracked as 0.
func (e *epochMean) Track(_ int, episodes []timestep.Episode, _ float64) {
	if len(episodes) == 0 {
		e.means = append(e.means, 0)
		return
	}

	values := make([]float64, len(episodes))
	for i, ep := range episodes {
		values[i] = e.value(ep)
	}
	e.means = append(e.means, stat.Mean(values, nil))
}

// Data returns the mean of each tracked epoch
func (e *epochMean) Data() []float64 {
	return copyData(e.means)
}

// Save saves the tracked means to disk
func (e *epochMean) Save() error {
	return save(e.filename, e.means)
}

// NewMeanReturn returns a Tracker of the mean episodic return of each
// epoch
func NewMeanReturn(filename string) Tracker {
	return &epochMean{
		value:    func(ep timestep.Episode) float64 { return float64(ep.SumReward) },
		filename: filename,
	}
}

// NewSuccessRate returns a Tracker of the fraction of episodes in each
// epoch which have positive return
func NewSuccessRate(filename string) Tracker {
	return &epochMean{
		value: func(ep timestep.Episode) float64 {
			if ep.SumReward > 0 {
				return 1
			}
			return 0
		},
		filename: filename,
	}
}

// NewEpisodeLength returns a Tracker of the mean episode length of
// each epoch
func NewEpisodeLength(filename string) Tracker {
	return &epochMean{
		value:    func(ep timestep.Episode) float64 { return float64(ep.Len()) },
		filename: filename,
	}
}

// Loss tracks the loss of the update made at each epoch
type Loss struct {
	losses   []float64
	filename string
}

// NewLoss returns a new *Loss Tracker
func NewLoss(filename string) *Loss {
	return &Loss{filename: filename}
}

// Track tracks the loss of an epoch
func (l *Loss) Track(_ int, _ []timestep.Episode, loss float64) {
	l.losses = append(l.losses, loss)
}

// Data returns the loss of each tracked epoch
func (l *Loss) Data() []float64 {
	return copyData(l.losses)
}

// Save saves the tracked losses to disk
func (l *Loss) Save() error {
	return save(l.filename, l.losses)
}
