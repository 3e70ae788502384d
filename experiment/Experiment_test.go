package experiment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samuelfneumann/rlharness/agent"
	"github.com/samuelfneumann/rlharness/agent/qlearning"
	"github.com/samuelfneumann/rlharness/environment/envconfig"
	"github.com/samuelfneumann/rlharness/experiment/checkpointer"
	"github.com/samuelfneumann/rlharness/experiment/tracker"
)

func newConfig(workers int) Config {
	return Config{
		Type:     EpochExp,
		Epochs:   3,
		Episodes: 4,
		Workers:  workers,
		EnvConf:  envconfig.NewKArmedBandit([]float64{0.4, 0.8, 0.3, 0.75}),
		AgentConf: agent.NewTypedConfig(&qlearning.Config{
			Epsilon:   0.1,
			MaxSweeps: 10,
		}),
	}
}

func TestConfigJSON(t *testing.T) {
	data, err := json.Marshal(newConfig(2))
	if err != nil {
		t.Fatal(err)
	}

	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		t.Fatal(err)
	}
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.AgentConf.Config.(*qlearning.Config); !ok {
		t.Errorf("unmarshal: want *qlearning.Config, have %T",
			c.AgentConf.Config)
	}
	if c.Workers != 2 || c.EnvConf.Environment != envconfig.KArmedBandit {
		t.Errorf("unmarshal: have %+v", c)
	}
}

func TestRun(t *testing.T) {
	for _, workers := range []int{0, 3} {
		var logs bytes.Buffer
		logger := log.New(&logs, "", 0)

		dir := t.TempDir()
		success := tracker.NewSuccessRate(filepath.Join(dir, "success.bin"))
		returns := tracker.NewReturn(filepath.Join(dir, "return.bin"))

		exp, err := newConfig(workers).CreateExp(1, logger,
			[]tracker.Tracker{success}, nil)
		if err != nil {
			t.Fatal(err)
		}
		exp.Register(returns)

		q := exp.Agent().(*qlearning.QLearning)
		check, err := checkpointer.NewNStep(2, q,
			checkpointer.EpochFilename(filepath.Join(dir, "q"), ".bin"))
		if err != nil {
			t.Fatal(err)
		}
		exp.Checkpoint(check)

		if err := exp.Run(context.Background()); err != nil {
			t.Fatal(err)
		}
		if err := exp.Save(); err != nil {
			t.Fatal(err)
		}

		if exp.CurrentEpoch() != 3 {
			t.Errorf("run: want 3 epochs, have %d", exp.CurrentEpoch())
		}
		if n := len(success.Data()); n != 3 {
			t.Errorf("run: want 3 tracked epochs, have %d", n)
		}
		if n := len(returns.Data()); n != 12 {
			t.Errorf("run: want 12 tracked episodes, have %d", n)
		}
		if n := strings.Count(logs.String(), "\n"); n != 3 {
			t.Errorf("run: want 3 log lines, have %d", n)
		}
		if err := checkpointer.Restore(q, filepath.Join(dir, "q2.bin")); err != nil {
			t.Errorf("run: checkpoint not written: %v", err)
		}

		// Running past the last epoch does nothing
		ended, err := exp.RunEpoch(context.Background())
		if !ended || err != nil || exp.CurrentEpoch() != 3 {
			t.Errorf("runEpoch: want no-op after last epoch")
		}
	}
}

// actionCounts returns the number of times each action was recorded in
// the agent's table
func actionCounts(q *qlearning.QLearning) []int {
	counts := make([]int, q.Table().Actions)
	for _, stats := range q.Table().Stats {
		for a, stat := range stats {
			counts[a] += stat.Count
		}
	}
	return counts
}

func TestRunExploresWithWorkers(t *testing.T) {
	for _, workers := range []int{1, 4} {
		c := newConfig(workers)
		c.AgentConf = agent.NewTypedConfig(&qlearning.Config{
			Epsilon:   1,
			MaxSweeps: 10,
		})
		exp, err := c.CreateExp(1, nil, nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		q := exp.Agent().(*qlearning.QLearning)

		// After the first epoch the bandit's state has been seen and has
		// a greedy arm
		if _, err := exp.RunEpoch(context.Background()); err != nil {
			t.Fatal(err)
		}
		before := actionCounts(q)

		if _, err := exp.RunEpoch(context.Background()); err != nil {
			t.Fatal(err)
		}
		after := actionCounts(q)

		for a := range after {
			if after[a] <= before[a] {
				t.Errorf("runEpoch: workers %d: arm %d not taken with ε = 1 "+
					"(before %v, after %v)", workers, a, before, after)
			}
		}
	}
}

func TestCancel(t *testing.T) {
	exp, err := newConfig(0).CreateExp(1, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := exp.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("run: want context.Canceled, have %v", err)
	}
	if exp.CurrentEpoch() != 0 {
		t.Errorf("run: no epoch should run after cancellation")
	}
}

func TestParallelRequiresForker(t *testing.T) {
	exp, err := newConfig(0).CreateExp(1, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	exp.agent = trainerOnly{exp.agent}
	if err := exp.Parallel(nil, 2, 1); err == nil {
		t.Errorf("parallel: expected error for agent without Fork")
	}
}

// trainerOnly hides every method of a Trainer other than those of the
// Trainer interface
type trainerOnly struct{ agent.Trainer }
