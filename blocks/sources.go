package blocks

import (
	"github.com/Hixos/control"
	"github.com/Hixos/control/params"
)

// ConstantParams configures a Constant block.
type ConstantParams[T any] struct {
	C T `toml:"c"`
}

// Constant emits a fixed value on its output y at every step.
type Constant[T any] struct {
	control.NoDelay
	name string
	y    control.Output[T]
	c    T
}

// NewConstant returns a source block producing c forever.
func NewConstant[T any](name string, c T) *Constant[T] {
	return &Constant[T]{name: name, y: control.NewOutput[T](), c: c}
}

// NewConstantFromStore reads the constant from the parameter store, falling
// back to def.
func NewConstantFromStore[T any](name string, store *params.Store, def T) (*Constant[T], error) {
	p, err := params.Block(store, name, ConstantParams[T]{C: def})
	if err != nil {
		return nil, err
	}
	return NewConstant(name, p.C), nil
}

func (b *Constant[T]) Name() string { return b.name }

func (b *Constant[T]) Inputs() map[string]control.InputPort { return nil }

func (b *Constant[T]) Outputs() map[string]control.OutputPort {
	return map[string]control.OutputPort{"y": &b.y}
}

func (b *Constant[T]) Step(control.StepInfo) (control.StepResult, error) {
	b.y.Set(b.c)
	return control.Continue, nil
}

// Generator emits the value of a user function of the current step on its
// output y. Use it for references, test stimuli or waveforms:
//
//	blocks.NewGenerator("sine", func(k control.StepInfo) float64 {
//		return math.Sin(2 * math.Pi * k.T)
//	})
type Generator[T any] struct {
	control.NoDelay
	name string
	y    control.Output[T]
	fn   func(k control.StepInfo) T
}

// NewGenerator returns a source block producing fn(k) at every step.
func NewGenerator[T any](name string, fn func(k control.StepInfo) T) *Generator[T] {
	return &Generator[T]{name: name, y: control.NewOutput[T](), fn: fn}
}

func (b *Generator[T]) Name() string { return b.name }

func (b *Generator[T]) Inputs() map[string]control.InputPort { return nil }

func (b *Generator[T]) Outputs() map[string]control.OutputPort {
	return map[string]control.OutputPort{"y": &b.y}
}

func (b *Generator[T]) Step(k control.StepInfo) (control.StepResult, error) {
	b.y.Set(b.fn(k))
	return control.Continue, nil
}
