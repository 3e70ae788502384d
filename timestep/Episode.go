package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Episode is an ordered sequence of steps from Reset to termination
// together with its summarized reward. Once built, an Episode is never
// modified.
type Episode struct {
	Steps     []Step
	SumReward Reward
}

// Len returns the number of steps in the episode
func (e Episode) Len() int {
	return len(e.Steps)
}

// RawReward returns the undiscounted sum of step rewards
func (e Episode) RawReward() float64 {
	return floats.Sum(e.Rewards())
}

// Rewards returns the reward of each step in order
func (e Episode) Rewards() []float64 {
	rewards := make([]float64, len(e.Steps))
	for i := range e.Steps {
		rewards[i] = float64(e.Steps[i].Reward)
	}
	return rewards
}

// Actions returns the action index of each step in order
func (e Episode) Actions() []int {
	actions := make([]int, len(e.Steps))
	for i := range e.Steps {
		actions[i] = e.Steps[i].Action.Index
	}
	return actions
}

// Last returns the final step of the episode. Last panics if the
// episode has no steps.
func (e Episode) Last() Step {
	if len(e.Steps) == 0 {
		panic("last: episode has no steps")
	}
	return e.Steps[len(e.Steps)-1]
}

func (e Episode) String() string {
	str := "Episode | Steps: %d  |  Sum Reward:  %.4f"
	return fmt.Sprintf(str, len(e.Steps), float64(e.SumReward))
}

// SumRewards returns the summarized reward of each episode
func SumRewards(episodes []Episode) []float64 {
	rewards := make([]float64, len(episodes))
	for i := range episodes {
		rewards[i] = float64(episodes[i].SumReward)
	}
	return rewards
}
