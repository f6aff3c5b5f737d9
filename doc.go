/*
Package control provides the necessary tools to assemble discrete-time
block-diagram simulations and run them, in the spirit of control-system and
signal-processing simulators.

A simulation is a set of named blocks exchanging values through named, typed
signals. Each block exposes input and output ports; a Builder wires ports to
signals, validates the wiring, orders the blocks so that every block reads
inputs already produced during the current step, and finally produces an
immutable System that is advanced one step at a time:

	b := control.NewBuilder()
	b.AddBlock(blocks.NewConstant("c1", 3.0), nil, control.C{"y": "c1"})
	b.AddBlock(blocks.NewConstant("c2", 4.0), nil, control.C{"y": "c2"})
	b.AddBlock(blocks.NewAdd[float64]("add", 2),
		control.C{"u1": "c1", "u2": "c2"}, control.C{"y": "sum"})

	sys, err := b.Build("demo", control.Parameters{Dt: 0.01})
	if err != nil {
		// bad wiring: duplicate block, unconnected port, type error, cycle...
	}
	for {
		res, err := sys.Step()
		if err != nil || res == control.Stop {
			break
		}
	}

Feedback loops are legal as long as at least one block on every loop declares
a positive Delay, stating that its output does not depend on the current
step's input. Loops without such a block are rejected at build time.
*/
package control
