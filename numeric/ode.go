// Package numeric provides fixed-step ODE solvers for blocks that carry
// continuous state, such as plant models and integrators. The simulation
// engine itself stays strictly discrete; solvers only advance block-local
// state across one dt.
package numeric

import (
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Func is the right-hand side of a first-order ODE system y' = f(t, y).
type Func func(t float64, y []float64) []float64

// Solver advances the state of an ODE system by one fixed step dt.
type Solver interface {
	Solve(f Func, t0, dt float64, y0 []float64) []float64
}

// ForwardEuler is the first-order explicit Euler scheme. Cheap, and accurate
// enough for small dt.
type ForwardEuler struct{}

// Solve returns y0 + dt*f(t0, y0).
func (ForwardEuler) Solve(f Func, t0, dt float64, y0 []float64) []float64 {
	y := slices.Clone(y0)
	floats.AddScaled(y, dt, f(t0, y0))
	return y
}

// RungeKutta4 is the classical fourth-order Runge-Kutta scheme.
type RungeKutta4 struct{}

// Solve advances y0 by one RK4 step.
func (RungeKutta4) Solve(f Func, t0, dt float64, y0 []float64) []float64 {
	k1 := f(t0, y0)
	k2 := f(t0+dt/2, addScaled(y0, dt/2, k1))
	k3 := f(t0+dt/2, addScaled(y0, dt/2, k2))
	k4 := f(t0+dt, addScaled(y0, dt, k3))

	y := slices.Clone(y0)
	floats.AddScaled(y, dt/6, k1)
	floats.AddScaled(y, dt/3, k2)
	floats.AddScaled(y, dt/3, k3)
	floats.AddScaled(y, dt/6, k4)
	return y
}

func addScaled(y []float64, alpha float64, k []float64) []float64 {
	r := slices.Clone(y)
	floats.AddScaled(r, alpha, k)
	return r
}
