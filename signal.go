package control

import (
	"reflect"
)

// A Signal is a named, typed value slot shared between the single block
// output that produces it and any number of block inputs that consume it.
// The concrete value type is fixed at creation; reads and writes through
// the generic accessors re-validate it.
//
// Signals are created by output ports during block construction and live as
// long as the System built around them.
type Signal struct {
	name string
	typ  reflect.Type
	cell any // *cell[T], T matching typ
}

// cell is the actual storage location. valid is false until the producer
// writes the first value.
type cell[T any] struct {
	value T
	valid bool
}

// NewSignal creates an empty signal holding values of type T.
func NewSignal[T any]() *Signal {
	return &Signal{
		typ:  reflect.TypeFor[T](),
		cell: &cell[T]{},
	}
}

// Name returns the global name the signal was registered under, or "" if the
// signal has not been wired yet.
func (s *Signal) Name() string { return s.name }

// Type returns the type of the values carried by the signal.
func (s *Signal) Type() reflect.Type { return s.typ }

func (s *Signal) setName(name string) { s.name = name }

// Read returns the signal's current value. ok is false if no value has been
// written yet. Requesting a type other than the signal's own returns a
// *TypeError: wiring validation makes this unreachable in a built System,
// so a non-nil error denotes a programming error.
func Read[T any](s *Signal) (v T, ok bool, err error) {
	c, cok := s.cell.(*cell[T])
	if !cok {
		return v, false, &TypeError{
			Signal: s.name,
			Want:   reflect.TypeFor[T]().String(),
			Got:    s.typ.String(),
		}
	}
	return c.value, c.valid, nil
}

// Write stores a value in the signal, making it visible to all connected
// inputs. Same type contract as Read.
func Write[T any](s *Signal, v T) error {
	c, ok := s.cell.(*cell[T])
	if !ok {
		return &TypeError{
			Signal: s.name,
			Want:   reflect.TypeFor[T]().String(),
			Got:    s.typ.String(),
		}
	}
	c.value = v
	c.valid = true
	return nil
}
