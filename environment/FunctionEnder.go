package environment

import "github.com/samuelfneumann/rlharness/timestep"

// FunctionEnder ends an episode whenever a function of the current
// observation returns true. Nil observations never end an episode.
type FunctionEnder struct {
	end func(timestep.Observation) bool
}

// NewFunctionEnder returns a new FunctionEnder which ends episodes when
// f returns true.
func NewFunctionEnder(f func(timestep.Observation) bool) Ender {
	return &FunctionEnder{f}
}

// End determines whether or not the current episode should be ended
func (f *FunctionEnder) End(_ int, obs timestep.Observation) bool {
	if obs.IsNil() {
		return false
	}
	return f.end(obs)
}
