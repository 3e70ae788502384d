package qlearning

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Stat accumulates the observed outcomes of taking one action in one
// state
type Stat struct {
	Sum   float64        // sum of rewards
	Count int            // number of visits
	Next  map[string]int // visits per next state
}

// Mean returns the mean observed reward, or 0 if never visited
func (s Stat) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// Table stores the empirical reward and transition statistics of each
// (state, action) pair and the action values derived from them by
// value iteration. States are identified by observation keys.
type Table struct {
	Actions int
	Stats   map[string][]Stat
	Q       map[string][]float64
	V       map[string]float64
}

// NewTable returns a new empty Table for the given number of actions
func NewTable(actions int) *Table {
	return &Table{
		Actions: actions,
		Stats:   make(map[string][]Stat),
		Q:       make(map[string][]float64),
		V:       make(map[string]float64),
	}
}

// Add records that taking action in state gave reward and led to next
func (t *Table) Add(state string, action int, reward float64, next string) {
	stats, ok := t.Stats[state]
	if !ok {
		stats = make([]Stat, t.Actions)
		t.Stats[state] = stats
	}

	s := &stats[action]
	s.Sum += reward
	s.Count++
	if s.Next == nil {
		s.Next = make(map[string]int)
	}
	s.Next[next]++
}

// Seen returns whether any action has been taken in state
func (t *Table) Seen(state string) bool {
	_, ok := t.Stats[state]
	return ok
}

// Values returns the action values of state. Pairs that were never
// visited, or not yet backed up, have value 0.
func (t *Table) Values(state string) []float64 {
	values := make([]float64, t.Actions)
	copy(values, t.Q[state])
	return values
}

// Value returns the state value of state, which is 0 for states in
// which no action has been taken
func (t *Table) Value(state string) float64 {
	return t.V[state]
}

// Len returns the number of states in which an action has been taken
func (t *Table) Len() int {
	return len(t.Stats)
}

// Sweep performs a single synchronous value iteration sweep, setting
//
//	Q(s, a) = mean r(s, a) + γ Σ_s' P(s' | s, a) V(s')
//	V(s)    = max_a Q(s, a)
//
// where P is the empirical transition distribution. It returns the
// largest change of any state value.
func (t *Table) Sweep(gamma float64) float64 {
	states := make([]string, 0, len(t.Stats))
	for s := range t.Stats {
		states = append(states, s)
	}
	sort.Strings(states)

	q := make(map[string][]float64, len(states))
	v := make(map[string]float64, len(states))
	var delta float64

	for _, s := range states {
		values := make([]float64, t.Actions)
		for a, stat := range t.Stats[s] {
			if stat.Count == 0 {
				continue
			}
			values[a] = stat.Mean()
			if gamma > 0 {
				values[a] += gamma * t.expectedValue(stat)
			}
		}

		q[s] = values
		v[s] = floats.Max(values)
		delta = math.Max(delta, math.Abs(v[s]-t.V[s]))
	}

	t.Q = q
	t.V = v
	return delta
}

// expectedValue returns the empirical expectation of the value of the
// next state
func (t *Table) expectedValue(stat Stat) float64 {
	next := make([]string, 0, len(stat.Next))
	for s := range stat.Next {
		next = append(next, s)
	}
	sort.Strings(next)

	var expected float64
	for _, s := range next {
		p := float64(stat.Next[s]) / float64(stat.Count)
		expected += p * t.V[s]
	}
	return expected
}
