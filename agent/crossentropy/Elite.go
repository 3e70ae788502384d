package crossentropy

import (
	"sort"

	"github.com/samuelfneumann/rlharness/timestep"
)

// GetElite returns the episodes whose SumReward is strictly greater
// than the p-th percentile of all SumRewards. The threshold is the
// element at index floor(N×p) of the ascending rewards, clamped to
// N - 1, so that p = 1 always returns no episodes and p = 0 returns
// all episodes doing better than the worst one.
func GetElite(episodes []timestep.Episode, p float64) []timestep.Episode {
	if len(episodes) == 0 {
		return []timestep.Episode{}
	}

	rewards := timestep.SumRewards(episodes)
	sort.Float64s(rewards)

	i := int(float64(len(rewards)) * p)
	if i > len(rewards)-1 {
		i = len(rewards) - 1
	} else if i < 0 {
		i = 0
	}
	threshold := rewards[i]

	elite := make([]timestep.Episode, 0, len(episodes)-i)
	for _, ep := range episodes {
		if float64(ep.SumReward) > threshold {
			elite = append(elite, ep)
		}
	}
	return elite
}
