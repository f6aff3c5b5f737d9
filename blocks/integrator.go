package blocks

import (
	"github.com/Hixos/control"
	"github.com/Hixos/control/numeric"
	"github.com/Hixos/control/params"
)

// IntegratorParams configures an Integrator block.
type IntegratorParams struct {
	Y0 float64 `toml:"y0"`
}

// Integrator integrates its input over simulated time, y = y0 + ∫u dt,
// advancing the quadrature with the given ODE solver.
type Integrator struct {
	control.NoDelay
	name   string
	u      control.Input[float64]
	y      control.Output[float64]
	solver numeric.Solver
	state  []float64
}

// NewIntegrator returns an integrator starting from y0. A nil solver
// defaults to forward Euler.
func NewIntegrator(name string, y0 float64, solver numeric.Solver) *Integrator {
	if solver == nil {
		solver = numeric.ForwardEuler{}
	}
	return &Integrator{
		name:   name,
		y:      control.NewOutput[float64](),
		solver: solver,
		state:  []float64{y0},
	}
}

// NewIntegratorFromStore reads the initial value from the parameter store,
// falling back to y0.
func NewIntegratorFromStore(name string, store *params.Store, y0 float64, solver numeric.Solver) (*Integrator, error) {
	p, err := params.Block(store, name, IntegratorParams{Y0: y0})
	if err != nil {
		return nil, err
	}
	return NewIntegrator(name, p.Y0, solver), nil
}

func (b *Integrator) Name() string { return b.name }

func (b *Integrator) Inputs() map[string]control.InputPort {
	return map[string]control.InputPort{"u": &b.u}
}

func (b *Integrator) Outputs() map[string]control.OutputPort {
	return map[string]control.OutputPort{"y": &b.y}
}

func (b *Integrator) Step(k control.StepInfo) (control.StepResult, error) {
	u := b.u.Get()
	b.state = b.solver.Solve(func(float64, []float64) []float64 {
		return []float64{u}
	}, k.T, k.Dt, b.state)
	b.y.Set(b.state[0])
	return control.Continue, nil
}
