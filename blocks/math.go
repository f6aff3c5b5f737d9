package blocks

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/Hixos/control"
	"github.com/Hixos/control/params"
)

// AddParams configures an Add block with one gain per input.
type AddParams[T Number] struct {
	Gains []T `toml:"gains"`
}

// Add produces the weighted sum of its inputs: y = g1*u1 + g2*u2 + ...
// The input ports are named u1..un.
type Add[T Number] struct {
	control.NoDelay
	name  string
	u     []control.Input[T]
	gains []T
	y     control.Output[T]
}

// NewAdd returns an n-input adder with unit gains.
func NewAdd[T Number](name string, n int) *Add[T] {
	gains := make([]T, n)
	for i := range gains {
		gains[i] = 1
	}
	return NewAddWithGains(name, gains)
}

// NewAddWithGains returns a len(gains)-input adder applying gains[i] to
// input u<i+1>.
func NewAddWithGains[T Number](name string, gains []T) *Add[T] {
	return &Add[T]{
		name:  name,
		u:     make([]control.Input[T], len(gains)),
		gains: gains,
		y:     control.NewOutput[T](),
	}
}

// NewAddFromStore reads the gains from the parameter store, falling back to
// def. The stored gain count must match the default's.
func NewAddFromStore[T Number](name string, store *params.Store, def AddParams[T]) (*Add[T], error) {
	p, err := params.Block(store, name, def)
	if err != nil {
		return nil, err
	}
	if len(p.Gains) != len(def.Gains) {
		return nil, errors.Errorf("block %q: expected %d gains, got %d", name, len(def.Gains), len(p.Gains))
	}
	return NewAddWithGains(name, p.Gains), nil
}

func (b *Add[T]) Name() string { return b.name }

func (b *Add[T]) Inputs() map[string]control.InputPort {
	m := make(map[string]control.InputPort, len(b.u))
	for i := range b.u {
		m["u"+strconv.Itoa(i+1)] = &b.u[i]
	}
	return m
}

func (b *Add[T]) Outputs() map[string]control.OutputPort {
	return map[string]control.OutputPort{"y": &b.y}
}

func (b *Add[T]) Step(control.StepInfo) (control.StepResult, error) {
	var sum T
	for i := range b.u {
		sum += b.gains[i] * b.u[i].Get()
	}
	b.y.Set(sum)
	return control.Continue, nil
}

// GainParams configures a Gain block.
type GainParams[T Number] struct {
	K T `toml:"k"`
}

// Gain scales its single input: y = k*u.
type Gain[T Number] struct {
	control.NoDelay
	name string
	u    control.Input[T]
	y    control.Output[T]
	k    T
}

// NewGain returns a block producing y = k*u.
func NewGain[T Number](name string, k T) *Gain[T] {
	return &Gain[T]{name: name, y: control.NewOutput[T](), k: k}
}

// NewGainFromStore reads the gain from the parameter store, falling back to
// def.
func NewGainFromStore[T Number](name string, store *params.Store, def T) (*Gain[T], error) {
	p, err := params.Block(store, name, GainParams[T]{K: def})
	if err != nil {
		return nil, err
	}
	return NewGain(name, p.K), nil
}

func (b *Gain[T]) Name() string { return b.name }

func (b *Gain[T]) Inputs() map[string]control.InputPort {
	return map[string]control.InputPort{"u": &b.u}
}

func (b *Gain[T]) Outputs() map[string]control.OutputPort {
	return map[string]control.OutputPort{"y": &b.y}
}

func (b *Gain[T]) Step(control.StepInfo) (control.StepResult, error) {
	b.y.Set(b.k * b.u.Get())
	return control.Continue, nil
}
