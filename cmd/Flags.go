package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// Flags stores the command line configuration of the harness
type Flags struct {
	SavePath string
	Config   string // Experiment configuration file, overrides flags
	Seed     uint64

	// Experiment
	Epochs          int
	Episodes        int
	Workers         int
	Eval            int
	CheckpointEvery int
	Plot            bool

	// Environment
	Env      string
	Gamma    float64
	Slippery bool
	Probs    []float64

	// Cross-entropy
	PercentElite float64
	HiddenSizes  []int
	StepSize     float64
	EliteMemory  int

	// Q-learning
	Epsilon     float64
	BackupGamma float64
	RandomSteps int
	MaxSweeps   int
}

// DefaultFlags returns the default command line configuration
func DefaultFlags() *Flags {
	return &Flags{
		SavePath: "results",
		Seed:     1,

		Epochs:   100,
		Episodes: 100,
		Workers:  1,
		Eval:     100,
		Plot:     true,

		Env:   "frozenlake",
		Gamma: 0.9,
		Probs: []float64{0.4, 0.8, 0.3, 0.75},

		PercentElite: 0.7,
		HiddenSizes:  []int{100},
		StepSize:     0.01,

		Epsilon:     0.1,
		RandomSteps: 10000,
		MaxSweeps:   100,
	}
}

// Record saves the flags as JSON in the save path
func (f *Flags) Record() error {
	if err := os.MkdirAll(f.SavePath, 0700); err != nil {
		return fmt.Errorf("record: %v", err)
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("record: %v", err)
	}
	return os.WriteFile(filepath.Join(f.SavePath, "flags.json"), data, 0600)
}

// file returns the path of name in the save path
func (f *Flags) file(name string) string {
	return filepath.Join(f.SavePath, name)
}

var flags = DefaultFlags()

// AddFlags adds the persistent flags shared by all commands to cmd
func AddFlags(cmd *cobra.Command) {
	d := DefaultFlags()
	pf := cmd.PersistentFlags()

	pf.StringVar(&flags.SavePath, "save-path", d.SavePath, "Path to save results")
	pf.StringVar(&flags.Config, "config", d.Config, "Experiment configuration JSON file, overrides experiment flags")
	pf.Uint64Var(&flags.Seed, "seed", d.Seed, "Seed of all random sources")

	pf.IntVar(&flags.Epochs, "epochs", d.Epochs, "Number of training epochs")
	pf.IntVar(&flags.Episodes, "episodes", d.Episodes, "Number of episodes per epoch")
	pf.IntVar(&flags.Workers, "workers", d.Workers, "Number of goroutines running episodes")
	pf.IntVar(&flags.Eval, "eval", d.Eval, "Number of evaluation episodes after training")
	pf.IntVar(&flags.CheckpointEvery, "checkpoint-every", d.CheckpointEvery, "Checkpoint the agent every n epochs, 0 to disable")
	pf.BoolVar(&flags.Plot, "plot", d.Plot, "Save HTML training curves")

	pf.StringVar(&flags.Env, "env", d.Env, "Environment, one of frozenlake or bandit")
	pf.Float64Var(&flags.Gamma, "gamma", d.Gamma, "Discount factor of the environment")
	pf.BoolVar(&flags.Slippery, "slippery", d.Slippery, "Whether the frozen lake is slippery")
	pf.Float64SliceVar(&flags.Probs, "probs", d.Probs, "Success probabilities of the bandit arms")
}
