package environment

import (
	"github.com/samuelfneumann/rlharness/timestep"
)

// Step applies an action to an environment, computes and records the
// reward of the resulting observation, and reports whether the episode
// must terminate at epoch
func Step(env Environment, act timestep.Act, epoch int) (timestep.Step,
	bool, error) {
	state := env.Observation()

	obs, err := env.UpdateEnviron(act)
	if err != nil {
		return timestep.Step{}, false, err
	}
	reward := env.GetReward(obs)
	env.Record(obs, reward)

	return timestep.NewStep(state, act, obs, reward), env.StopEpoch(epoch), nil
}

// IsComplete returns whether the environment's episode must terminate
// at epoch
func IsComplete(env Environment, epoch int) bool {
	return env.StopEpoch(epoch)
}

// GetEpisode resets the environment and runs a single episode to
// termination, choosing actions with p. The returned episode's
// SumReward is the raw reward sum multiplied by the environment's
// DiscountReward at the environment's discount factor.
func GetEpisode(env Environment, p Predictor) (timestep.Episode, error) {
	env.Reset()

	var steps []timestep.Step
	epoch := 1
	for !env.StopEpoch(epoch) {
		epoch++

		act, err := p.PredictAction(env.Observation())
		if err != nil {
			return timestep.Episode{}, &Error{"getEpisode", err}
		}

		step, _, err := Step(env, act, epoch)
		if err != nil {
			return timestep.Episode{}, err
		}
		steps = append(steps, step)
	}

	ep := timestep.Episode{Steps: steps}
	raw := ep.RawReward()
	ep.SumReward = timestep.Reward(raw * env.DiscountReward(ep, env.Gamma()))
	return ep, nil
}

// GetMultiEpisodes runs n independent episodes sequentially
func GetMultiEpisodes(env Environment, p Predictor, n int) (
	[]timestep.Episode, error) {
	episodes := make([]timestep.Episode, 0, n)
	for i := 0; i < n; i++ {
		ep, err := GetEpisode(env, p)
		if err != nil {
			return nil, err
		}
		episodes = append(episodes, ep)
	}
	return episodes, nil
}
