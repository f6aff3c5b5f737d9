package control

import (
	"reflect"

	"github.com/pkg/errors"
)

// InputPort is the type-erased view of an Input that the Builder uses to
// bind ports to signals.
type InputPort interface {
	// Connect binds the port to a signal, verifying type identity.
	// Rebinding an already bound port is an error.
	Connect(s *Signal) error
	// SignalType returns the value type the port accepts.
	SignalType() reflect.Type
}

// OutputPort is the type-erased view of an Output. Every output owns its
// signal cell from construction; wiring only gives the cell a global name.
type OutputPort interface {
	// Signal returns the signal cell owned by the port.
	Signal() *Signal
	// SignalType returns the value type the port produces.
	SignalType() reflect.Type
}

// Input is a read-only, typed view of a signal. The zero value is unbound;
// the Builder binds it during Build.
type Input[T any] struct {
	sig *Signal
	c   *cell[T]
}

// Connect implements InputPort. The type check happens once here, so Get
// does not need to re-check on the hot path.
func (in *Input[T]) Connect(s *Signal) error {
	if in.sig != nil {
		return errors.Errorf("input already connected to signal %q", in.sig.Name())
	}
	c, ok := s.cell.(*cell[T])
	if !ok {
		return &TypeError{
			Signal: s.name,
			Want:   reflect.TypeFor[T]().String(),
			Got:    s.typ.String(),
		}
	}
	in.sig = s
	in.c = c
	return nil
}

// SignalType implements InputPort.
func (in *Input[T]) SignalType() reflect.Type { return reflect.TypeFor[T]() }

// SignalName returns the name of the connected signal, or "" if unbound.
func (in *Input[T]) SignalName() string {
	if in.sig == nil {
		return ""
	}
	return in.sig.Name()
}

// Get returns the value produced on the connected signal during the current
// step. It panics if the port is unbound or the signal has never been
// written: a built System schedules producers ahead of their zero-delay
// consumers, so this only trips on a contract violation.
func (in *Input[T]) Get() T {
	if in.c == nil {
		panic("control: read from unconnected input")
	}
	if !in.c.valid {
		panic("control: signal " + in.sig.name + " read before first write")
	}
	return in.c.value
}

// Peek returns the current value without panicking; ok is false while the
// signal has not been written yet. Blocks that legally run before their
// producer (delay blocks on their first step, probes) use this.
func (in *Input[T]) Peek() (v T, ok bool) {
	if in.c == nil || !in.c.valid {
		return v, false
	}
	return in.c.value, true
}

// Output is a write-capable, typed view of the signal it owns. Use NewOutput
// to construct one; the zero value has no cell and panics on Set.
type Output[T any] struct {
	sig *Signal
	c   *cell[T]
}

// NewOutput creates an output port owning a fresh, unnamed signal.
func NewOutput[T any]() Output[T] {
	s := NewSignal[T]()
	return Output[T]{sig: s, c: s.cell.(*cell[T])}
}

// Set publishes a value on the owned signal.
func (out *Output[T]) Set(v T) {
	if out.c == nil {
		panic("control: set on uninitialized output, use NewOutput")
	}
	out.c.value = v
	out.c.valid = true
}

// Signal implements OutputPort.
func (out *Output[T]) Signal() *Signal {
	if out.sig == nil {
		panic("control: uninitialized output, use NewOutput")
	}
	return out.sig
}

// SignalType implements OutputPort.
func (out *Output[T]) SignalType() reflect.Type { return reflect.TypeFor[T]() }

// SignalName returns the global name of the owned signal, or "" before
// wiring.
func (out *Output[T]) SignalName() string {
	if out.sig == nil {
		return ""
	}
	return out.sig.Name()
}
