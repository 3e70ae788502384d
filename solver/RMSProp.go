package solver

import (
	"fmt"

	G "gorgonia.org/gorgonia"
)

// RMSPropConfig describes a configuration of the RMSProp solver
type RMSPropConfig struct {
	StepSize float64
	Epsilon  float64
	Rho      float64
	Batch    int
}

// NewRMSProp returns a new RMSProp Solver
func NewRMSProp(stepSize, epsilon, rho float64, batchSize int) (*Solver,
	error) {
	return newSolver(&RMSPropConfig{
		StepSize: stepSize,
		Epsilon:  epsilon,
		Rho:      rho,
		Batch:    batchSize,
	})
}

// Create returns a new Gorgonia RMSProp Solver as described by the
// RMSPropConfig
func (r *RMSPropConfig) Create() G.Solver {
	return G.NewRMSPropSolver(
		G.WithLearnRate(r.StepSize),
		G.WithEps(r.Epsilon),
		G.WithRho(r.Rho),
		G.WithBatchSize(float64(r.Batch)),
	)
}

// Validate returns an error if the configuration is invalid
func (r *RMSPropConfig) Validate() error {
	if err := validateStepSize("validate", r.StepSize); err != nil {
		return err
	}
	if r.Rho <= 0 || r.Rho >= 1 {
		return fmt.Errorf("validate: rho must be in (0, 1)\n\thave(%v)", r.Rho)
	}
	if r.Batch <= 0 {
		return fmt.Errorf("validate: batch size must be positive\n\thave(%d)",
			r.Batch)
	}
	return nil
}

// Type returns the type of solver described
func (r *RMSPropConfig) Type() Type {
	return RMSProp
}
