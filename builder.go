package control

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/pkg/errors"
)

// C maps a block's local port names to global signal names. One C describes
// the input side of a block, another the output side:
//
//	b.AddBlock(add, control.C{"u1": "c1", "u2": "c2"}, control.C{"y": "sum"})
type C map[string]string

type blockData struct {
	block   Block
	inputs  map[string]string // port -> signal
	outputs map[string]string // port -> signal
}

// Builder accumulates blocks and their wiring, validates connectivity and
// type compatibility, and turns the result into a runnable System.
//
// A Builder moves one way: blocks are added while it is open, then a single
// successful Build seals it.
type Builder struct {
	signals map[string]*Signal
	blocks  map[string]*blockData
	order   []string // block registration order, for deterministic iteration
	built   bool
	log     *slog.Logger
}

// A BuilderOption customizes a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the structured logger used for build and step diagnostics.
// The default is slog.Default().
func WithLogger(l *slog.Logger) BuilderOption {
	return func(b *Builder) { b.log = l }
}

// NewBuilder returns an empty, open Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		signals: make(map[string]*Signal),
		blocks:  make(map[string]*blockData),
		log:     slog.Default(),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// AddBlock registers a block along with its port-to-signal wiring. inputs
// and outputs map the block's local port names to global signal names; every
// declared port must appear exactly once. Output signals are claimed
// immediately, so a second producer for the same signal name is rejected
// here. Input signals are only resolved at Build time, allowing a consumer
// to be registered before its producer.
//
// On error nothing is registered.
func (b *Builder) AddBlock(blk Block, inputs, outputs C) error {
	if b.built {
		return errors.New("builder already built")
	}
	name := blk.Name()
	if _, ok := b.blocks[name]; ok {
		return &DuplicateBlockNameError{Block: name}
	}

	data := &blockData{
		block:   blk,
		inputs:  make(map[string]string, len(inputs)),
		outputs: make(map[string]string, len(outputs)),
	}
	if err := b.connectInputs(data, inputs); err != nil {
		return err
	}
	outs, err := b.connectOutputs(data, outputs)
	if err != nil {
		return err
	}
	// All checks passed: claim the output signals and register the block.
	for port, signal := range data.outputs {
		s := outs[port].Signal()
		s.setName(signal)
		b.signals[signal] = s
	}
	b.blocks[name] = data
	b.order = append(b.order, name)
	b.log.Debug("block registered",
		"block", name, "inputs", len(data.inputs), "outputs", len(data.outputs))
	return nil
}

func (b *Builder) connectInputs(data *blockData, conns C) error {
	name := data.block.Name()
	ports := data.block.Inputs()
	for _, port := range slices.Sorted(maps.Keys(conns)) {
		if _, ok := ports[port]; !ok {
			return &UnknownPortError{Block: name, Port: port}
		}
		data.inputs[port] = conns[port]
	}
	var missing []string
	for port := range ports {
		if _, ok := data.inputs[port]; !ok {
			missing = append(missing, port)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return &UnconnectedPortsError{Block: name, Ports: missing}
	}
	return nil
}

func (b *Builder) connectOutputs(data *blockData, conns C) (map[string]OutputPort, error) {
	name := data.block.Name()
	ports := data.block.Outputs()
	for _, port := range slices.Sorted(maps.Keys(conns)) {
		signal := conns[port]
		if _, ok := ports[port]; !ok {
			return nil, &UnknownPortError{Block: name, Port: port}
		}
		if _, taken := b.signals[signal]; taken {
			return nil, &MultipleProducersError{Block: name, Port: port, Signal: signal}
		}
		if _, taken := producerOf(data.outputs, signal); taken {
			// two ports of this same block wired to one signal
			return nil, &MultipleProducersError{Block: name, Port: port, Signal: signal}
		}
		data.outputs[port] = signal
	}
	var missing []string
	for port := range ports {
		if _, ok := data.outputs[port]; !ok {
			missing = append(missing, port)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return nil, &UnconnectedPortsError{Block: name, Ports: missing}
	}
	return ports, nil
}

func producerOf(outputs map[string]string, signal string) (port string, ok bool) {
	for p, s := range outputs {
		if s == signal {
			return p, true
		}
	}
	return "", false
}

// Build seals the builder and produces a System. It resolves and binds every
// recorded input wiring (type-checking each binding), constructs the
// dependency graph, and topologically sorts the blocks so that every
// zero-delay consumer runs strictly after its producer. The full, unfiltered
// graph is retained on the System for diagnostics only.
//
// name identifies the system in diagnostics and in the parameter store.
func (b *Builder) Build(name string, params Parameters) (*System, error) {
	if b.built {
		return nil, errors.New("builder already built")
	}

	for _, bname := range b.order {
		data := b.blocks[bname]
		ports := data.block.Inputs()
		for _, port := range slices.Sorted(maps.Keys(data.inputs)) {
			signal := data.inputs[port]
			s, ok := b.signals[signal]
			if !ok {
				return nil, &UnknownSignalError{Block: bname, Port: port, Signal: signal}
			}
			if err := ports[port].Connect(s); err != nil {
				return nil, errors.Wrapf(err, "binding port %s.%s", bname, port)
			}
		}
	}

	full := b.buildGraph(true)
	sched := b.buildGraph(false)
	b.log.Debug("dependency graph built",
		"system", name, "blocks", len(b.order), "dot", full.dot(name))

	order, err := sched.topoSort()
	if err != nil {
		return nil, err
	}
	b.log.Debug("execution order computed", "system", name, "order", order)

	blocks := make([]Block, len(order))
	for i, n := range order {
		blocks[i] = b.blocks[n].block
	}
	b.built = true
	return &System{
		name:    name,
		signals: b.signals,
		blocks:  blocks,
		full:    full,
		params:  params,
		step:    StepInfo{K: 1, T: 0, Dt: params.Dt},
		log:     b.log,
	}, nil
}

// buildGraph constructs the block dependency graph. With withDelayed set,
// every producer-consumer signal relation becomes an edge (the diagnostic
// view); otherwise edges into consumers that declare a positive delay are
// left out, which is the graph the scheduler sorts.
func (b *Builder) buildGraph(withDelayed bool) *graph {
	g := newGraph()
	for _, name := range b.order {
		g.addNode(name)
	}
	for _, producer := range b.order {
		pd := b.blocks[producer]
		for _, port := range slices.Sorted(maps.Keys(pd.outputs)) {
			signal := pd.outputs[port]
			for _, consumer := range b.order {
				cd := b.blocks[consumer]
				if !consumes(cd, signal) {
					continue
				}
				if withDelayed || cd.block.Delay() == 0 {
					g.addEdge(producer, consumer, signal)
				}
			}
		}
	}
	return g
}

func consumes(data *blockData, signal string) bool {
	for _, s := range data.inputs {
		if s == signal {
			return true
		}
	}
	return false
}
