package environment

import "github.com/samuelfneumann/rlharness/timestep"

// Ender determines when an episode should end, given the current epoch
// counter and the current observation
type Ender interface {
	End(epoch int, obs timestep.Observation) bool
}

// StepLimit implements the Ender interface to end episodes once the
// epoch counter passes some limit
type StepLimit struct {
	episodeSteps int
}

// NewStepLimit creates and returns a new step limit
func NewStepLimit(episodeSteps int) StepLimit {
	return StepLimit{episodeSteps}
}

// End determines whether or not the current episode should be ended.
// Episodes are ended once epoch exceeds the step limit, so that an
// episode run by GetEpisode takes at most episodeSteps steps.
func (s StepLimit) End(epoch int, _ timestep.Observation) bool {
	return epoch > s.episodeSteps
}

// Enders ends an episode whenever any of its Enders would
type Enders []Ender

// End determines whether or not the current episode should be ended
func (e Enders) End(epoch int, obs timestep.Observation) bool {
	for _, ender := range e {
		if ender.End(epoch, obs) {
			return true
		}
	}
	return false
}
