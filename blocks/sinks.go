package blocks

import (
	"fmt"
	"io"
	"os"

	"github.com/Hixos/control"
)

// Print writes its input to a writer, one line per step.
type Print[T any] struct {
	control.NoDelay
	name string
	u    control.Input[T]
	w    io.Writer
}

// NewPrint returns a sink printing to standard output.
func NewPrint[T any](name string) *Print[T] {
	return NewPrintTo[T](name, os.Stdout)
}

// NewPrintTo returns a sink printing to w.
func NewPrintTo[T any](name string, w io.Writer) *Print[T] {
	return &Print[T]{name: name, w: w}
}

func (b *Print[T]) Name() string { return b.name }

func (b *Print[T]) Inputs() map[string]control.InputPort {
	return map[string]control.InputPort{"u": &b.u}
}

func (b *Print[T]) Outputs() map[string]control.OutputPort { return nil }

func (b *Print[T]) Step(k control.StepInfo) (control.StepResult, error) {
	_, err := fmt.Fprintf(b.w, "t: %.2f %s->%s = %v\n", k.T, b.name, b.u.SignalName(), b.u.Get())
	return control.Continue, err
}

// ProbeFunc receives the probed signal's value once per step. ok is false
// while the signal has not been written yet, which can happen when the probe
// taps the output of a delay-declaring block scheduled after it.
type ProbeFunc[T any] func(signal string, v T, ok bool, k control.StepInfo)

// Probe taps a signal and hands every observed value to a callback. It is
// the building brick for recorders and plotting consumers.
type Probe[T any] struct {
	control.NoDelay
	name string
	u    control.Input[T]
	fn   ProbeFunc[T]
}

// NewProbe returns a sink invoking fn at every step.
func NewProbe[T any](name string, fn ProbeFunc[T]) *Probe[T] {
	return &Probe[T]{name: name, fn: fn}
}

func (b *Probe[T]) Name() string { return b.name }

func (b *Probe[T]) Inputs() map[string]control.InputPort {
	return map[string]control.InputPort{"u": &b.u}
}

func (b *Probe[T]) Outputs() map[string]control.OutputPort { return nil }

func (b *Probe[T]) Step(k control.StepInfo) (control.StepResult, error) {
	v, ok := b.u.Peek()
	b.fn(b.u.SignalName(), v, ok, k)
	return control.Continue, nil
}
