package control

// StepResult is returned by a block's Step to drive the simulation loop.
type StepResult int

const (
	// Continue lets the simulation proceed to the next step.
	Continue StepResult = iota
	// Stop requests termination. The in-flight step still completes: every
	// remaining block of the current tick runs before the System reports it.
	Stop
)

func (r StepResult) String() string {
	switch r {
	case Continue:
		return "Continue"
	case Stop:
		return "Stop"
	}
	return "StepResult(unknown)"
}

// StepInfo carries the simulation time state handed to every block.
//
// K is the 1-based step counter: the first call to System.Step invokes every
// block with K == 1. Delay blocks rely on this convention to skip sampling
// their input on the very first step, before any producer has written.
type StepInfo struct {
	K  int
	T  float64
	Dt float64
}

// Block is the contract every computational unit must satisfy to take part
// in a simulation. The Builder and System only ever interact with blocks
// through this interface.
type Block interface {
	// Name returns the block's stable identity, used as the graph node key
	// and in error messages. Must be unique within a Builder.
	Name() string
	// Inputs enumerates the block's bindable input ports by local name.
	Inputs() map[string]InputPort
	// Outputs enumerates the block's output ports by local name.
	Outputs() map[string]OutputPort
	// Delay returns how many steps stale the block's outputs are allowed to
	// be relative to its current-step inputs. A positive delay states that
	// the outputs do not combinationally depend on this step's inputs, which
	// legally breaks feedback loops.
	Delay() int
	// Step advances the block by one step: read inputs, update private
	// state, write outputs. An error aborts the remainder of the tick.
	Step(k StepInfo) (StepResult, error)
}

// NoDelay provides the Delay method for the common case of purely
// combinational blocks. Embed it to declare a zero delay.
type NoDelay struct{}

// Delay implements the Block delay declaration.
func (NoDelay) Delay() int { return 0 }
