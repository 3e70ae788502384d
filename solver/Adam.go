package solver

import (
	"fmt"

	G "gorgonia.org/gorgonia"
)

// AdamConfig describes a configuration of the Adam solver
type AdamConfig struct {
	StepSize float64
	Epsilon  float64 // Smoothing factor
	Beta1    float64
	Beta2    float64
	Batch    int
}

// NewDefaultAdam returns a new Adam Solver with default hyperparameters
func NewDefaultAdam(stepSize float64, batchSize int) (*Solver, error) {
	return NewAdam(stepSize, 1e-8, 0.9, 0.999, batchSize)
}

// NewAdam returns a new Adam Solver
func NewAdam(stepSize, epsilon, beta1, beta2 float64, batchSize int) (*Solver,
	error) {
	return newSolver(&AdamConfig{
		StepSize: stepSize,
		Epsilon:  epsilon,
		Beta1:    beta1,
		Beta2:    beta2,
		Batch:    batchSize,
	})
}

// Create returns a new Gorgonia Adam Solver as described by the
// AdamConfig
func (a *AdamConfig) Create() G.Solver {
	return G.NewAdamSolver(
		G.WithLearnRate(a.StepSize),
		G.WithEps(a.Epsilon),
		G.WithBeta1(a.Beta1),
		G.WithBeta2(a.Beta2),
		G.WithBatchSize(float64(a.Batch)),
	)
}

// Validate returns an error if the configuration is invalid
func (a *AdamConfig) Validate() error {
	if err := validateStepSize("validate", a.StepSize); err != nil {
		return err
	}
	if a.Beta1 < 0 || a.Beta1 >= 1 || a.Beta2 < 0 || a.Beta2 >= 1 {
		return fmt.Errorf("validate: betas must be in [0, 1)\n\thave(%v, %v)",
			a.Beta1, a.Beta2)
	}
	if a.Batch <= 0 {
		return fmt.Errorf("validate: batch size must be positive\n\thave(%d)",
			a.Batch)
	}
	return nil
}

// Type returns the type of solver described
func (a *AdamConfig) Type() Type {
	return Adam
}
