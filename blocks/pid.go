package blocks

import (
	"github.com/Hixos/control"
	"github.com/Hixos/control/params"
)

// PIDParams are the proportional, integral and derivative gains plus the
// initial value of the integral accumulator.
type PIDParams[T Float] struct {
	Kp   T `toml:"kp"`
	Ki   T `toml:"ki"`
	Kd   T `toml:"kd"`
	Acc0 T `toml:"acc0"`
}

// PID is a discrete PID controller: it reads the error on u and produces the
// command y = kp*e + ki*∫e dt + kd*de/dt, with backward-difference
// derivative and rectangular integration.
type PID[T Float] struct {
	control.NoDelay
	name   string
	u      control.Input[T]
	y      control.Output[T]
	params PIDParams[T]

	acc     T
	lastErr T
}

// NewPID returns a PID controller with the given gains.
func NewPID[T Float](name string, p PIDParams[T]) *PID[T] {
	return &PID[T]{
		name:   name,
		y:      control.NewOutput[T](),
		params: p,
		acc:    p.Acc0,
	}
}

// NewPIDFromStore reads the gains from the parameter store, falling back to
// def.
func NewPIDFromStore[T Float](name string, store *params.Store, def PIDParams[T]) (*PID[T], error) {
	p, err := params.Block(store, name, def)
	if err != nil {
		return nil, err
	}
	return NewPID(name, p), nil
}

func (b *PID[T]) Name() string { return b.name }

func (b *PID[T]) Inputs() map[string]control.InputPort {
	return map[string]control.InputPort{"u": &b.u}
}

func (b *PID[T]) Outputs() map[string]control.OutputPort {
	return map[string]control.OutputPort{"y": &b.y}
}

func (b *PID[T]) Step(k control.StepInfo) (control.StepResult, error) {
	dt := T(k.Dt)
	e := b.u.Get()
	der := (e - b.lastErr) / dt
	integ := b.acc + e*dt

	b.y.Set(e*b.params.Kp + der*b.params.Kd + integ*b.params.Ki)

	b.lastErr = e
	b.acc = integ
	return control.Continue, nil
}
