package blocks

import (
	"github.com/pkg/errors"

	"github.com/Hixos/control"
	"github.com/Hixos/control/params"
)

// DelayParams configures a Delay block. The number of initial values fixes
// the delay length.
type DelayParams[T any] struct {
	InitialValues []T `toml:"initial_values"`
}

// Delay emits its input delayed by n steps, where n is the number of initial
// values it was constructed with: y(k) = u(k-n) once the initial values have
// drained. It declares Delay() == n, which is what lets the builder accept
// feedback loops running through it.
//
// On the first step (k == 1) the input signal has not been produced yet —
// the scheduler may legally run a delay block before its producer — so the
// block only starts sampling its input from k == 2 on.
type Delay[T any] struct {
	name   string
	u      control.Input[T]
	y      control.Output[T]
	buffer []T
	index  int
}

// NewDelay returns a delay line primed with the given initial values. At
// least one is required: a zero-length delay would not break any loop.
func NewDelay[T any](name string, initial ...T) *Delay[T] {
	if len(initial) == 0 {
		panic(errors.Errorf("blocks: delay %q needs at least one initial value", name))
	}
	buf := make([]T, len(initial))
	copy(buf, initial)
	return &Delay[T]{name: name, y: control.NewOutput[T](), buffer: buf}
}

// NewDelayFromStore reads the initial values from the parameter store,
// falling back to def.
func NewDelayFromStore[T any](name string, store *params.Store, def ...T) (*Delay[T], error) {
	p, err := params.Block(store, name, DelayParams[T]{InitialValues: def})
	if err != nil {
		return nil, err
	}
	if len(p.InitialValues) == 0 {
		return nil, errors.Errorf("blocks: delay %q needs at least one initial value", name)
	}
	return NewDelay(name, p.InitialValues...), nil
}

func (b *Delay[T]) Name() string { return b.name }

func (b *Delay[T]) Inputs() map[string]control.InputPort {
	return map[string]control.InputPort{"u": &b.u}
}

func (b *Delay[T]) Outputs() map[string]control.OutputPort {
	return map[string]control.OutputPort{"y": &b.y}
}

// Delay implements the Block delay declaration: the output lags the input
// by the buffer length.
func (b *Delay[T]) Delay() int { return len(b.buffer) }

func (b *Delay[T]) Step(k control.StepInfo) (control.StepResult, error) {
	n := len(b.buffer)
	if k.K > 1 {
		// Sample into the slot just behind the read cursor: it comes up
		// for reading only after the other n-1 slots have drained, so the
		// sampled value (itself one step old) surfaces with an exact
		// n-step lag.
		b.buffer[(b.index+n-1)%n] = b.u.Get()
	}
	b.y.Set(b.buffer[b.index])
	b.index = (b.index + 1) % n
	return control.Continue, nil
}
