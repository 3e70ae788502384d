package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/samuelfneumann/rlharness/agent"
	"github.com/samuelfneumann/rlharness/environment/envconfig"
	"github.com/samuelfneumann/rlharness/experiment"
	"github.com/samuelfneumann/rlharness/experiment/checkpointer"
	"github.com/samuelfneumann/rlharness/experiment/plot"
	"github.com/samuelfneumann/rlharness/experiment/tracker"
	"github.com/samuelfneumann/rlharness/timestep"
	"github.com/samuelfneumann/rlharness/utils/progressbar"
	"gonum.org/v1/gonum/stat"
)

// envConfig returns the environment configuration given by the flags
func envConfig() (envconfig.Config, error) {
	switch flags.Env {
	case "frozenlake":
		return envconfig.NewFrozenlake(flags.Gamma, flags.Slippery), nil
	case "bandit":
		return envconfig.NewKArmedBandit(flags.Probs), nil
	}
	return envconfig.Config{}, fmt.Errorf("no such environment %q", flags.Env)
}

// experimentConfig returns the experiment configuration in the file
// given by the config flag, or otherwise the one given by the flags
// with the agent configuration c
func experimentConfig(c agent.Config) (experiment.Config, error) {
	if flags.Config != "" {
		data, err := os.ReadFile(flags.Config)
		if err != nil {
			return experiment.Config{}, err
		}
		var conf experiment.Config
		if err := json.Unmarshal(data, &conf); err != nil {
			return experiment.Config{}, fmt.Errorf("could not decode %v: %v",
				flags.Config, err)
		}
		if conf.AgentConf.Config == nil ||
			conf.AgentConf.Type != c.Type() {
			return experiment.Config{}, fmt.Errorf("configuration %v is "+
				"not for agent %v", flags.Config, c.Type())
		}
		return conf, nil
	}

	env, err := envConfig()
	if err != nil {
		return experiment.Config{}, err
	}
	return experiment.Config{
		Type:      experiment.EpochExp,
		Epochs:    flags.Epochs,
		Episodes:  flags.Episodes,
		Workers:   flags.Workers,
		EnvConf:   env,
		AgentConf: agent.NewTypedConfig(c),
	}, nil
}

// progress is a tracker.Tracker which reports experiment progress on
// a progress bar
type progress struct {
	bar *progressbar.ProgressBar
}

func (p progress) Track(epoch int, episodes []timestep.Episode, loss float64) {
	p.bar.Increment()
	p.bar.SetStatus("epoch %d: success rate %.2f, loss %.4f", epoch,
		successRate(episodes), loss)
}

func (p progress) Data() []float64 { return nil }

func (p progress) Save() error { return nil }

// run runs the experiment c. Before training, setup is called with the
// created experiment if setup is not nil.
func run(c experiment.Config, setup func(*experiment.Epoch) error) (
	*experiment.Epoch, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logFile, err := os.Create(flags.file("log.txt"))
	if err != nil {
		return nil, err
	}
	defer logFile.Close()
	logger := log.New(logFile, "", log.LstdFlags)

	success := tracker.NewSuccessRate(flags.file("success.bin"))
	meanReturn := tracker.NewMeanReturn(flags.file("return.bin"))
	loss := tracker.NewLoss(flags.file("loss.bin"))
	trackers := []tracker.Tracker{success, meanReturn, loss}

	exp, err := c.CreateExp(flags.Seed, logger, trackers, nil)
	if err != nil {
		return nil, err
	}
	logger.Printf("running %v on %v for %d epochs", c.AgentConf.Type,
		c.EnvConf.Environment, c.Epochs)

	if flags.CheckpointEvery > 0 {
		s, ok := exp.Agent().(checkpointer.Serializable)
		if !ok {
			fmt.Fprintf(os.Stderr, "Warning: agent %v cannot be "+
				"checkpointed\n", c.AgentConf.Type)
		} else {
			check, err := checkpointer.NewNStep(flags.CheckpointEvery, s,
				checkpointer.EpochFilename(flags.file("agent"), ".bin"))
			if err != nil {
				return nil, err
			}
			exp.Checkpoint(check)
		}
	}

	if setup != nil {
		if err := setup(exp); err != nil {
			return nil, err
		}
	}

	bar := progressbar.NewProgressBar(50, c.Epochs, 250*time.Millisecond,
		os.Stdout)
	exp.Register(progress{bar})
	bar.Display()
	err = exp.Run(ctx)
	bar.Close()
	if err != nil {
		return nil, err
	}

	if err := exp.Save(); err != nil {
		return nil, err
	}
	if flags.Plot {
		err := plot.Save(flags.file("curves.html"),
			fmt.Sprintf("%v on %v", c.AgentConf.Type, c.EnvConf.Environment),
			plot.Series{Name: "Success rate", Data: success.Data()},
			plot.Series{Name: "Mean return", Data: meanReturn.Data()},
			plot.Series{Name: "Loss", Data: loss.Data()},
		)
		if err != nil {
			return nil, err
		}
	}
	return exp, nil
}

func successRate(episodes []timestep.Episode) float64 {
	if len(episodes) == 0 {
		return 0
	}
	var success int
	for _, ep := range episodes {
		if ep.SumReward > 0 {
			success++
		}
	}
	return float64(success) / float64(len(episodes))
}

// summarize prints a summary of evaluation episodes to w
func summarize(w io.Writer, name string, episodes []timestep.Episode) {
	returns := timestep.SumRewards(episodes)
	mean, std := stat.MeanStdDev(returns, nil)
	rate := successRate(episodes)

	colour := aurora.Red
	if rate >= 0.5 {
		colour = aurora.Green
	}

	fmt.Fprintf(w, "%v\n", aurora.Bold(name))
	fmt.Fprintf(w, "\tepisodes:     %d\n", len(episodes))
	fmt.Fprintf(w, "\tsuccess rate: %v\n", colour(fmt.Sprintf("%.3f", rate)))
	fmt.Fprintf(w, "\treturn:       %.4f ± %.4f\n", mean, std)
}
