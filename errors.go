package control

import (
	"fmt"
	"strings"
)

// Build-time wiring errors. They are all structural and non-retryable: the
// caller must fix the wiring and rebuild. Each carries the offending block,
// port and signal names so a misconfiguration can be diagnosed without
// inspecting the graph. Match them with errors.As.

// DuplicateBlockNameError is returned by AddBlock when a block with the same
// name was already registered.
type DuplicateBlockNameError struct {
	Block string
}

func (e *DuplicateBlockNameError) Error() string {
	return fmt.Sprintf("a block named %q is already present in the system", e.Block)
}

// UnknownPortError is returned when a connection names a port the block does
// not declare.
type UnknownPortError struct {
	Block string
	Port  string
}

func (e *UnknownPortError) Error() string {
	return fmt.Sprintf("no port named %q in block %q", e.Port, e.Block)
}

// UnknownSignalError is returned by Build when an input is wired to a signal
// name that no output produces.
type UnknownSignalError struct {
	Block  string
	Port   string
	Signal string
}

func (e *UnknownSignalError) Error() string {
	return fmt.Sprintf("could not connect port %q of block %q: no signal named %q",
		e.Port, e.Block, e.Signal)
}

// MultipleProducersError is returned when an output is wired to a signal
// that already has a producer. The first producer's binding is unaffected.
type MultipleProducersError struct {
	Block  string
	Port   string
	Signal string
}

func (e *MultipleProducersError) Error() string {
	return fmt.Sprintf("cannot connect output %q of block %q to signal %q: the signal already has a producer",
		e.Port, e.Block, e.Signal)
}

// UnconnectedPortsError is returned when declared ports of a block are left
// without a wiring entry.
type UnconnectedPortsError struct {
	Block string
	Ports []string
}

func (e *UnconnectedPortsError) Error() string {
	return fmt.Sprintf("ports [%s] of block %q have not been connected",
		strings.Join(e.Ports, ", "), e.Block)
}

// TypeError is returned when a port's value type does not match the signal's
// declared type, or when a Signal accessor requests the wrong type.
type TypeError struct {
	Signal string
	Want   string
	Got    string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("expected signal %q to be a %q, but it is a %q",
		e.Signal, e.Want, e.Got)
}

// CycleError is returned by Build when the delay-filtered dependency graph
// contains a cycle, naming one block on it.
type CycleError struct {
	Block string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("system contains a cycle through block %q: break it with a delay block", e.Block)
}
