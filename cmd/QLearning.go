package cmd

import (
	"fmt"
	"os"

	"github.com/samuelfneumann/rlharness/agent/qlearning"
	"github.com/samuelfneumann/rlharness/experiment"
	"github.com/spf13/cobra"
)

// QLearningCommand returns the command training a tabular Q-learning
// agent
func QLearningCommand() *cobra.Command {
	d := DefaultFlags()
	cmd := &cobra.Command{
		Use:   "qlearning",
		Short: "Train a tabular Q-learning agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := qlearning.Config{
				Epsilon:   flags.Epsilon,
				Gamma:     flags.BackupGamma,
				MaxSweeps: flags.MaxSweeps,
				Tolerance: 1e-6,
			}
			conf, err := experimentConfig(&c)
			if err != nil {
				return err
			}

			// Explore uniformly before training on the agent's own
			// episodes
			explore := func(exp *experiment.Epoch) error {
				q := exp.Agent().(*qlearning.QLearning)
				if err := q.RunRandom(q.Environment(),
					flags.RandomSteps); err != nil {
					return err
				}
				sweeps, delta := q.ValueIteration()
				if delta >= q.Config().Tolerance {
					fmt.Fprintf(os.Stderr, "Warning: value iteration did not "+
						"converge in %d sweeps (Δ = %v)\n", sweeps, delta)
				}
				return nil
			}

			exp, err := run(conf, explore)
			if err != nil {
				return err
			}

			if flags.Eval > 0 {
				q := exp.Agent().(*qlearning.QLearning)
				episodes, err := q.PlayEpisode(flags.Eval)
				if err != nil {
					return err
				}
				summarize(os.Stdout, fmt.Sprintf("%v greedy evaluation",
					conf.AgentConf.Type), episodes)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.Float64Var(&flags.Epsilon, "epsilon", d.Epsilon, "Probability of a random action")
	f.Float64Var(&flags.BackupGamma, "backup-gamma", d.BackupGamma, "Discount of the next state value in value iteration, 0 backs up mean rewards")
	f.IntVar(&flags.RandomSteps, "random-steps", d.RandomSteps, "Number of uniformly random steps before training")
	f.IntVar(&flags.MaxSweeps, "max-sweeps", d.MaxSweeps, "Maximum value iteration sweeps per epoch")

	return cmd
}
