package environment

import (
	"context"
	"math"
	"testing"

	"github.com/samuelfneumann/rlharness/timestep"
	"golang.org/x/exp/rand"
)

// chain is a small environment whose reward equals the index of the
// last action taken
type chain struct {
	Base
	ender Ender
	last  int
}

func newChain(t testing.TB, steps int, seed uint64) *chain {
	space, err := NewBox([]int{2}, 0, 1, timestep.CPU, seed)
	if err != nil {
		t.Fatal(err)
	}
	base, err := NewBase("Chain", space, 3, 0.9, seed)
	if err != nil {
		t.Fatal(err)
	}
	return &chain{Base: base, ender: NewStepLimit(steps)}
}

func (c *chain) Reset() timestep.Observation {
	c.last = 0
	return c.Base.Reset()
}

func (c *chain) GetReward(obs timestep.Observation) timestep.Reward {
	return timestep.Reward(obs.AtVec(0))
}

func (c *chain) UpdateEnviron(a timestep.Act) (timestep.Observation, error) {
	if err := c.ValidateAction("updateEnviron", a); err != nil {
		return timestep.Observation{}, err
	}
	c.last = a.Index
	return timestep.NewObservationFrom([]float64{float64(a.Index), 1}), nil
}

func (c *chain) StopEpoch(epoch int) bool {
	return c.ender.End(epoch, c.Observation())
}

func (c *chain) DiscountReward(ep timestep.Episode, gamma float64) float64 {
	return math.Pow(gamma, float64(ep.Len()))
}

// random predicts uniformly random actions
type random struct {
	n   int
	rng *rand.Rand
}

func (r *random) PredictAction(timestep.Observation) (timestep.Act, error) {
	return timestep.NewAct(r.rng.Intn(r.n)), nil
}

func (r *random) Seed(seed uint64) { r.rng = rand.New(rand.NewSource(seed)) }

type randomForker struct{ n int }

func (f randomForker) Fork(seed uint64) (SeededPredictor, error) {
	r := &random{n: f.n}
	r.Seed(seed)
	return r, nil
}

func TestSpaceShape(t *testing.T) {
	if _, err := NewBox([]int{}, 0, 1, timestep.CPU, 0); !IsShape(err) {
		t.Errorf("newBox: expected shape error for empty shape, have(%v)", err)
	}
	if _, err := NewBox([]int{2, 0}, 0, 1, timestep.CPU, 0); !IsShape(err) {
		t.Errorf("newBox: expected shape error for zero dim, have(%v)", err)
	}
	if _, err := NewDiscrete(0, timestep.CPU, 0); !IsShape(err) {
		t.Errorf("newDiscrete: expected shape error, have(%v)", err)
	}

	box, err := NewBox([]int{2, 3}, -1, 1, timestep.CPU, 1)
	if err != nil {
		t.Fatal(err)
	}
	if box.Len() != 6 {
		t.Errorf("len: want(6) have(%d)", box.Len())
	}
	for i := 0; i < 100; i++ {
		s := box.Sample()
		for j := 0; j < s.Len(); j++ {
			if v := s.AtVec(j); v < -1 || v > 1 {
				t.Fatalf("sample: value out of bounds\n\thave(%v)", v)
			}
		}
	}
	if z := box.Generate(); z.Len() != 6 || z.AtVec(3) != 0 {
		t.Errorf("generate: expected zero vector of length 6")
	}
}

func TestDiscreteSeeding(t *testing.T) {
	a, _ := NewDiscrete(5, timestep.CPU, 42)
	b, _ := NewDiscrete(5, timestep.CPU, 42)
	for i := 0; i < 50; i++ {
		x, y := a.SampleIndex(), b.SampleIndex()
		if x != y {
			t.Fatalf("sample: equally seeded spaces diverged at %d", i)
		}
		if !a.Contains(x) {
			t.Fatalf("sample: %d outside of space", x)
		}
	}
}

func TestInvalidAction(t *testing.T) {
	env := newChain(t, 5, 0)
	env.Reset()

	for _, a := range []int{-1, 3, 100} {
		_, err := env.UpdateEnviron(timestep.NewAct(a))
		if !IsInvalidAction(err) {
			t.Errorf("updateEnviron(%d): want invalid action, have(%v)", a, err)
		}
	}
	if env.Life() != 0 {
		t.Errorf("life: rejected actions should not step\n\thave(%d)",
			env.Life())
	}
}

func TestSetGamma(t *testing.T) {
	env := newChain(t, 5, 0)
	for _, g := range []float64{0, -0.1, 1.1} {
		if err := env.SetGamma(g); err == nil {
			t.Errorf("setGamma(%v): expected error", g)
		}
	}
	if err := env.SetGamma(1); err != nil || env.Gamma() != 1 {
		t.Errorf("setGamma(1): have(%v, %v)", env.Gamma(), err)
	}
}

func TestGetEpisode(t *testing.T) {
	env := newChain(t, 5, 0)
	p := &random{n: 3}
	p.Seed(3)

	if env.Reset(); env.StopEpoch(1) {
		t.Fatal("stopEpoch: fresh episode should not be complete")
	}

	ep, err := GetEpisode(env, p)
	if err != nil {
		t.Fatal(err)
	}
	if ep.Len() != 5 {
		t.Errorf("getEpisode: want(5 steps) have(%d)", ep.Len())
	}
	if env.Life() != 5 {
		t.Errorf("life: want(5) have(%d)", env.Life())
	}

	want := ep.RawReward() * math.Pow(0.9, 5)
	if math.Abs(float64(ep.SumReward)-want) > 1e-12 {
		t.Errorf("sumReward: want(%v) have(%v)", want, ep.SumReward)
	}

	for i, step := range ep.Steps {
		if float64(step.Reward) != float64(step.Action.Index) {
			t.Errorf("step %d: reward should equal action", i)
		}
		if i > 0 && step.State.Key() != ep.Steps[i-1].Observation.Key() {
			t.Errorf("step %d: state is not previous observation", i)
		}
	}
}

func TestGetMultiEpisodes(t *testing.T) {
	env := newChain(t, 3, 0)
	p := &random{n: 3}
	p.Seed(0)

	episodes, err := GetMultiEpisodes(env, p, 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(episodes) != 7 {
		t.Errorf("getMultiEpisodes: want(7) have(%d)", len(episodes))
	}
}

func TestParallelEpisodes(t *testing.T) {
	construct := func(seed uint64) (Environment, error) {
		return newChain(t, 6, seed), nil
	}

	single, err := ParallelEpisodes(context.Background(), construct,
		randomForker{3}, 20, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	multi, err := ParallelEpisodes(context.Background(), construct,
		randomForker{3}, 20, 4, 10)
	if err != nil {
		t.Fatal(err)
	}

	for i := range single {
		a, b := single[i].Actions(), multi[i].Actions()
		if len(a) != len(b) {
			t.Fatalf("episode %d: lengths differ", i)
		}
		for j := range a {
			if a[j] != b[j] {
				t.Fatalf("episode %d: actions differ between worker counts", i)
			}
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ParallelEpisodes(ctx, construct, randomForker{3}, 5, 2,
		0); err == nil {
		t.Error("parallelEpisodes: expected error on cancelled context")
	}
}
