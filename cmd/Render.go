package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/gosuri/uilive"
	"github.com/samuelfneumann/rlharness/agent/qlearning"
	"github.com/samuelfneumann/rlharness/environment"
	"github.com/samuelfneumann/rlharness/environment/frozenlake"
	"github.com/samuelfneumann/rlharness/experiment/checkpointer"
	"github.com/samuelfneumann/rlharness/timestep"
	"github.com/spf13/cobra"
)

// randomPolicy takes uniformly random actions
type randomPolicy struct {
	env environment.Environment
}

func (r randomPolicy) PredictAction(timestep.Observation) (timestep.Act,
	error) {
	return r.env.Sample(), nil
}

// RenderCommand returns the command playing and rendering a single
// Frozenlake episode
func RenderCommand() *cobra.Command {
	var (
		checkpoint string
		delay      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "render [output.png]",
		Short: "Play a Frozenlake episode and render its last frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := frozenlake.NewMap(frozenlake.Map4x4)
			if err != nil {
				return err
			}
			env, err := frozenlake.New(m, frozenlake.DefaultMaxSteps,
				flags.Slippery, flags.Gamma, flags.Seed)
			if err != nil {
				return err
			}

			var p environment.Predictor = randomPolicy{env}
			if checkpoint != "" {
				q, err := qlearning.New(env, qlearning.DefaultConfig(env),
					flags.Seed)
				if err != nil {
					return err
				}
				if err := checkpointer.Restore(q, checkpoint); err != nil {
					return err
				}
				if p, err = q.ForkGreedy(flags.Seed); err != nil {
					return err
				}
			}

			writer := uilive.New()
			writer.Start()
			defer writer.Stop()

			env.Reset()
			fmt.Fprint(writer, env.Colored())
			writer.Flush()

			var ep timestep.Episode
			epoch := 1
			for !env.StopEpoch(epoch) {
				epoch++
				time.Sleep(delay)

				act, err := p.PredictAction(env.Observation())
				if err != nil {
					return err
				}
				step, _, err := environment.Step(env, act, epoch)
				if err != nil {
					return err
				}
				ep.Steps = append(ep.Steps, step)

				fmt.Fprint(writer, env.Colored())
				writer.Flush()
			}

			ep.SumReward = timestep.Reward(ep.RawReward() *
				env.DiscountReward(ep, env.Gamma()))
			summarize(os.Stdout, "Frozenlake episode",
				[]timestep.Episode{ep})

			return env.Render(args[0])
		},
	}

	cmd.Flags().StringVar(&checkpoint, "checkpoint", "", "Q-learning checkpoint to play greedily, random actions if empty")
	cmd.Flags().DurationVar(&delay, "delay", 200*time.Millisecond, "Delay between rendered steps")

	return cmd
}
