package frozenlake

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/rlharness/environment"
	"github.com/samuelfneumann/rlharness/timestep"
	"github.com/samuelfneumann/rlharness/utils/matutils"
)

// script replays a fixed sequence of actions
type script struct {
	actions []int
	i       int
}

func (s *script) PredictAction(timestep.Observation) (timestep.Act, error) {
	a := s.actions[s.i%len(s.actions)]
	s.i++
	return timestep.NewAct(a), nil
}

func TestNewMap(t *testing.T) {
	bad := [][]string{
		{},
		{"SF", "F"},
		{"SFX", "FFG"},
		{"SFF", "FFF"},
		{"SFS", "FFG"},
		{"FFF", "FFG"},
	}
	for _, rows := range bad {
		if _, err := NewMap(rows); err == nil {
			t.Errorf("newMap(%v): expected error", rows)
		}
	}

	m, err := NewMap(Map8x8)
	if err != nil {
		t.Fatal(err)
	}
	if r, c := m.Dims(); r != 8 || c != 8 {
		t.Errorf("dims: want(8, 8) have(%d, %d)", r, c)
	}
}

func TestResetStopEpoch(t *testing.T) {
	env, err := Default(0.9, 0)
	if err != nil {
		t.Fatal(err)
	}

	obs := env.Reset()
	if obs.Len() != 16 || matutils.HotIndex(obs.Vector()) != -1 {
		t.Errorf("reset: expected zero observation of width 16, have(%v)", obs)
	}
	if env.StopEpoch(1) {
		t.Error("stopEpoch: fresh episode should not be complete")
	}
	if env.ObservationSpace() != 16 || env.ActionSpace() != 4 {
		t.Errorf("spaces: want(16, 4) have(%d, %d)", env.ObservationSpace(),
			env.ActionSpace())
	}
}

func TestUpdateEnviron(t *testing.T) {
	env, _ := Default(0.9, 0)
	env.Reset()

	// Walls keep the agent in place
	obs, err := env.UpdateEnviron(timestep.NewAct(Left))
	if err != nil {
		t.Fatal(err)
	}
	if i := matutils.HotIndex(obs.Vector()); i != 0 {
		t.Errorf("updateEnviron: want(0) have(%d)", i)
	}

	obs, _ = env.UpdateEnviron(timestep.NewAct(Right))
	if i := matutils.HotIndex(obs.Vector()); i != 1 {
		t.Errorf("updateEnviron: want(1) have(%d)", i)
	}

	obs, _ = env.UpdateEnviron(timestep.NewAct(Down))
	if i := matutils.HotIndex(obs.Vector()); i != 5 {
		t.Errorf("updateEnviron: want(5) have(%d)", i)
	}
	env.Record(obs, env.GetReward(obs))
	if !env.StopEpoch(2) {
		t.Error("stopEpoch: episode should end in a hole")
	}

	if _, err := env.UpdateEnviron(timestep.NewAct(4)); !environment.IsInvalidAction(err) {
		t.Errorf("updateEnviron: want invalid action, have(%v)", err)
	}
}

func TestGoalEpisode(t *testing.T) {
	env, _ := Default(0.9, 0)

	// Down, down, right, down, right, right reaches the goal in 6 steps
	p := &script{actions: []int{Down, Down, Right, Down, Right, Right}}
	ep, err := environment.GetEpisode(env, p)
	if err != nil {
		t.Fatal(err)
	}

	if ep.Len() != 6 {
		t.Fatalf("getEpisode: want(6 steps) have(%d)", ep.Len())
	}
	if ep.RawReward() != 1 {
		t.Errorf("rawReward: want(1) have(%v)", ep.RawReward())
	}
	want := math.Pow(0.9, 6)
	if math.Abs(float64(ep.SumReward)-want) > 1e-12 {
		t.Errorf("sumReward: want(%v) have(%v)", want, ep.SumReward)
	}
}

func TestStepLimit(t *testing.T) {
	m, _ := NewMap(Map4x4)
	env, err := New(m, 10, false, 1, 0)
	if err != nil {
		t.Fatal(err)
	}

	// Bumping into the top-left corner forever never terminates
	ep, err := environment.GetEpisode(env, &script{actions: []int{Up, Left}})
	if err != nil {
		t.Fatal(err)
	}
	if ep.Len() != 10 {
		t.Errorf("getEpisode: want(10 steps) have(%d)", ep.Len())
	}
	if ep.SumReward != 0 {
		t.Errorf("sumReward: want(0) have(%v)", ep.SumReward)
	}
}

func TestSlipperySeeded(t *testing.T) {
	m, _ := NewMap(Map8x8)
	run := func() []int {
		env, err := New(m, 50, true, 0.99, 7)
		if err != nil {
			t.Fatal(err)
		}
		ep, err := environment.GetEpisode(env, &script{actions: []int{Right, Down}})
		if err != nil {
			t.Fatal(err)
		}
		positions := make([]int, ep.Len())
		for i, step := range ep.Steps {
			positions[i] = matutils.HotIndex(step.Observation.Vector())
		}
		return positions
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("slippery: equally seeded episodes have different lengths")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("slippery: equally seeded episodes diverged at %d", i)
		}
	}
}

func TestRender(t *testing.T) {
	env, _ := Default(0.9, 0)
	img := env.Image()
	if b := img.Bounds(); b.Dx() != 4*CellPixels || b.Dy() != 4*CellPixels {
		t.Errorf("image: wrong bounds %v", b)
	}

	path := filepath.Join(t.TempDir(), "lake.png")
	if err := env.Render(path); err != nil {
		t.Error(err)
	}

	want := "AFFF\nFHFH\nFFFH\nHFFG\n"
	if s := env.String(); s != want {
		t.Errorf("string: want(%q) have(%q)", want, s)
	}
}
