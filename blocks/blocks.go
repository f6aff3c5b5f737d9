// Package blocks provides a library of ready-made simulation blocks:
// sources (Constant, Generator), arithmetic (Add, Gain), feedback helpers
// (Delay), controllers (PID, Integrator) and sinks (Print, Probe).
//
// Blocks that take parameters come in two flavours: a plain constructor and
// a FromStore variant reading effective values from a params.Store.
package blocks

// Number is the constraint satisfied by the numeric signal payloads the
// arithmetic blocks operate on.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Float constrains blocks that need fractional arithmetic, such as PID.
type Float interface {
	~float32 | ~float64
}
