package cmd

import (
	"fmt"
	"os"

	"github.com/samuelfneumann/rlharness/agent/crossentropy"
	"github.com/samuelfneumann/rlharness/environment"
	"github.com/samuelfneumann/rlharness/network"
	"github.com/samuelfneumann/rlharness/solver"
	"github.com/spf13/cobra"
)

// CrossEntropyCommand returns the command training a cross-entropy agent
func CrossEntropyCommand() *cobra.Command {
	d := DefaultFlags()
	cmd := &cobra.Command{
		Use:   "crossentropy",
		Short: "Train a cross-entropy agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := crossentropy.DefaultConfig()
			c.PercentElite = flags.PercentElite
			c.EliteMemory = flags.EliteMemory
			c.HiddenSizes = flags.HiddenSizes
			c.Activations = make([]*network.Activation, len(c.HiddenSizes))
			for i := range c.Activations {
				c.Activations[i] = network.ReLU()
			}

			var err error
			if c.Solver, err = solver.NewDefaultAdam(flags.StepSize,
				1); err != nil {
				return err
			}

			conf, err := experimentConfig(&c)
			if err != nil {
				return err
			}
			exp, err := run(conf, nil)
			if err != nil {
				return err
			}

			if flags.Eval > 0 {
				ce := exp.Agent().(*crossentropy.CrossEntropy)
				episodes, err := environment.GetMultiEpisodes(
					ce.Environment(), ce, flags.Eval)
				if err != nil {
					return err
				}
				summarize(os.Stdout, fmt.Sprintf("%v evaluation",
					conf.AgentConf.Type), episodes)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.Float64Var(&flags.PercentElite, "percent-elite", d.PercentElite, "Percentile of returns above which episodes are imitated")
	f.IntSliceVar(&flags.HiddenSizes, "hidden", d.HiddenSizes, "Hidden layer sizes of the policy network")
	f.Float64Var(&flags.StepSize, "step-size", d.StepSize, "Adam step size")
	f.IntVar(&flags.EliteMemory, "elite-memory", d.EliteMemory, "Number of best elite episodes remembered across epochs")

	return cmd
}
