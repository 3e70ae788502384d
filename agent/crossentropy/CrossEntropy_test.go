package crossentropy

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/samuelfneumann/rlharness/agent"
	"github.com/samuelfneumann/rlharness/environment"
	"github.com/samuelfneumann/rlharness/environment/frozenlake"
	"github.com/samuelfneumann/rlharness/network"
	"github.com/samuelfneumann/rlharness/solver"
	"github.com/samuelfneumann/rlharness/timestep"
)

func episodes(rewards ...float64) []timestep.Episode {
	eps := make([]timestep.Episode, len(rewards))
	for i, r := range rewards {
		eps[i] = timestep.Episode{SumReward: timestep.Reward(r)}
	}
	return eps
}

func TestGetElite(t *testing.T) {
	tests := []struct {
		rewards []float64
		p       float64
		want    int
	}{
		{[]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 0.7, 2},
		{[]float64{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}, 0.7, 2},
		{[]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 1.0, 0},
		{[]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 0.0, 9},
		{[]float64{0, 0, 1, 1, 1}, 0.0, 3},
		{[]float64{1, 1, 1, 1}, 0.5, 0},
		{[]float64{0, 0, 0, 1}, 0.7, 1},
		{nil, 0.7, 0},
	}

	for _, test := range tests {
		elite := GetElite(episodes(test.rewards...), test.p)
		if len(elite) != test.want {
			t.Errorf("getElite(%v, %v): want %d elites, have %d",
				test.rewards, test.p, test.want, len(elite))
		}

		// Elites are recomputed from scratch
		again := GetElite(episodes(test.rewards...), test.p)
		if len(again) != len(elite) {
			t.Errorf("getElite: elite set changed between calls")
		}
	}
}

func TestEliteMemory(t *testing.T) {
	m := NewEliteMemory(3)
	m.Add(episodes(1, 5))
	m.Add(episodes(3, 4, 0))

	have := timestep.SumRewards(m.Episodes())
	want := []float64{5, 4, 3}
	if len(have) != len(want) {
		t.Fatalf("memory: want %v, have %v", want, have)
	}
	for i := range want {
		if have[i] != want[i] {
			t.Errorf("memory: want %v, have %v", want, have)
		}
	}

	disabled := NewEliteMemory(0)
	disabled.Add(episodes(1, 2))
	if disabled.Len() != 0 {
		t.Errorf("memory: disabled memory should stay empty")
	}
}

func newTestAgent(t testing.TB, stepSize float64, seed uint64) (*CrossEntropy,
	*frozenlake.FrozenLake) {
	env, err := frozenlake.Default(0.9, seed)
	if err != nil {
		t.Fatal(err)
	}

	c := DefaultConfig()
	c.HiddenSizes = []int{32}
	c.Solver, err = solver.NewDefaultAdam(stepSize, 1)
	if err != nil {
		t.Fatal(err)
	}
	c.EliteMemory = 20

	ce, err := New(env, c, seed)
	if err != nil {
		t.Fatal(err)
	}
	return ce, env
}

func TestLearnDegenerate(t *testing.T) {
	ce, _ := newTestAgent(t, 0.01, 1)

	loss, err := ce.Learn(nil)
	if err != nil || loss != 0 {
		t.Errorf("learn: empty batch should be a no-op, have (%v, %v)",
			loss, err)
	}

	obs := timestep.NewObservationFrom([]float64{1, 0, 0})
	ep := timestep.Episode{Steps: []timestep.Step{
		timestep.NewStep(obs, timestep.NewAct(0), obs, 0),
	}}
	if _, err := ce.Learn([]timestep.Episode{ep}); !network.IsShape(err) {
		t.Errorf("learn: want shape error, have %v", err)
	}
}

func TestConfigJSON(t *testing.T) {
	c := DefaultConfig()
	c.EliteMemory = 5

	data, err := json.Marshal(agent.NewTypedConfig(&c))
	if err != nil {
		t.Fatal(err)
	}

	var typed agent.TypedConfig
	if err := json.Unmarshal(data, &typed); err != nil {
		t.Fatal(err)
	}
	decoded, ok := typed.Config.(*Config)
	if !ok {
		t.Fatalf("unmarshalJSON: want *Config, have %T", typed.Config)
	}
	if decoded.EliteMemory != 5 || decoded.PercentElite != 0.7 {
		t.Errorf("unmarshalJSON: want %+v, have %+v", c, *decoded)
	}
	if err := decoded.Validate(); err != nil {
		t.Error(err)
	}
}

func TestForkSaveLoad(t *testing.T) {
	ce, env := newTestAgent(t, 0.01, 2)

	p1, err := ce.Fork(5)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := ce.Fork(5)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		a1, err := p1.PredictAction(env.Observation())
		if err != nil {
			t.Fatal(err)
		}
		a2, err := p2.PredictAction(env.Observation())
		if err != nil {
			t.Fatal(err)
		}
		if a1 != a2 {
			t.Fatalf("fork: identically seeded forks disagree")
		}
	}

	var buf bytes.Buffer
	if err := ce.Save(&buf); err != nil {
		t.Fatal(err)
	}
	loaded, _ := newTestAgent(t, 0.01, 3)
	if err := loaded.Load(&buf); err != nil {
		t.Fatal(err)
	}

	want, have := ce.Network().Params(), loaded.Network().Params()
	for i := range want {
		for j := range want[i] {
			if want[i][j] != have[i][j] {
				t.Fatalf("load: parameters differ")
			}
		}
	}
}

func successRate(episodes []timestep.Episode) float64 {
	var success float64
	for _, ep := range episodes {
		if ep.SumReward > 0 {
			success++
		}
	}
	return success / float64(len(episodes))
}

// trainFrozenlake runs epochs of count episodes, updating the agent
// with update after each epoch, and checks that the success rate of the
// last 10 epochs is no lower than that of the first 10
func trainFrozenlake(t *testing.T, ce *CrossEntropy, env environment.Environment,
	epochs, count int, update func([]timestep.Episode) (float64, error)) {
	t.Helper()

	rates := make([]float64, 0, epochs)
	for i := 0; i < epochs; i++ {
		eps, err := environment.GetMultiEpisodes(env, ce, count)
		if err != nil {
			t.Fatal(err)
		}
		rates = append(rates, successRate(eps))

		if _, err := update(eps); err != nil {
			t.Fatal(err)
		}
	}

	var first, last float64
	for i := 0; i < 10; i++ {
		first += rates[i]
		last += rates[len(rates)-10+i]
	}
	if last < first {
		t.Errorf("train: success rate decreased\n\tfirst 10 epochs: %v"+
			"\n\tlast 10 epochs: %v", first/10, last/10)
	}
}

func TestFrozenlake(t *testing.T) {
	env, err := frozenlake.Default(0.9, 1)
	if err != nil {
		t.Fatal(err)
	}
	ce, err := New(env, DefaultConfig(), 1)
	if err != nil {
		t.Fatal(err)
	}

	trainFrozenlake(t, ce, env, 100, 100,
		func(eps []timestep.Episode) (float64, error) {
			return ce.Learn(ce.GetElite(eps))
		})
}

func TestFrozenlakeEliteMemory(t *testing.T) {
	epochs, count := 60, 100
	if testing.Short() {
		epochs, count = 30, 50
	}

	ce, env := newTestAgent(t, 0.05, 7)
	trainFrozenlake(t, ce, env, epochs, count, ce.Train)
}
