package crossentropy

import (
	"sort"

	"github.com/samuelfneumann/rlharness/timestep"
)

// EliteMemory remembers the episodes with the largest SumReward seen
// so far, up to a fixed capacity
type EliteMemory struct {
	capacity int
	episodes []timestep.Episode
}

// NewEliteMemory returns a new EliteMemory
func NewEliteMemory(capacity int) *EliteMemory {
	return &EliteMemory{capacity: capacity}
}

// Add adds episodes to the memory, evicting the worst episodes if
// the capacity is exceeded. Among equal rewards, older episodes are
// kept first.
func (e *EliteMemory) Add(episodes []timestep.Episode) {
	if e.capacity <= 0 {
		return
	}

	e.episodes = append(e.episodes, episodes...)
	sort.SliceStable(e.episodes, func(i, j int) bool {
		return e.episodes[i].SumReward > e.episodes[j].SumReward
	})
	if len(e.episodes) > e.capacity {
		e.episodes = e.episodes[:e.capacity]
	}
}

// Episodes returns the remembered episodes, best first
func (e *EliteMemory) Episodes() []timestep.Episode {
	episodes := make([]timestep.Episode, len(e.episodes))
	copy(episodes, e.episodes)
	return episodes
}

// Len returns the number of remembered episodes
func (e *EliteMemory) Len() int {
	return len(e.episodes)
}
