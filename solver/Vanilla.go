package solver

import (
	"fmt"

	G "gorgonia.org/gorgonia"
)

// VanillaConfig describes a configuration of the stochastic gradient
// descent solver. A Clip of 0 disables gradient clipping.
type VanillaConfig struct {
	StepSize float64
	Clip     float64
	Batch    int
}

// NewVanilla returns a new Vanilla Solver
func NewVanilla(stepSize float64, batchSize int) (*Solver, error) {
	return newSolver(&VanillaConfig{StepSize: stepSize, Batch: batchSize})
}

// Create returns a new Gorgonia Vanilla Solver as described by the
// VanillaConfig
func (v *VanillaConfig) Create() G.Solver {
	opts := []G.SolverOpt{
		G.WithLearnRate(v.StepSize),
		G.WithBatchSize(float64(v.Batch)),
	}
	if v.Clip > 0 {
		opts = append(opts, G.WithClip(v.Clip))
	}
	return G.NewVanillaSolver(opts...)
}

// Validate returns an error if the configuration is invalid
func (v *VanillaConfig) Validate() error {
	if err := validateStepSize("validate", v.StepSize); err != nil {
		return err
	}
	if v.Batch <= 0 {
		return fmt.Errorf("validate: batch size must be positive\n\thave(%d)",
			v.Batch)
	}
	return nil
}

// Type returns the type of solver described
func (v *VanillaConfig) Type() Type {
	return Vanilla
}
