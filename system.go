package control

import (
	"log/slog"

	"github.com/pkg/errors"
)

// Parameters configure a built System.
type Parameters struct {
	// Dt is the fixed simulated-time increment per step.
	Dt float64 `toml:"dt"`
	// MaxIter makes Step report Stop after this many steps. 0 runs
	// unbounded.
	MaxIter int `toml:"max_iter"`
}

// System is a runnable simulation: the blocks in execution order plus the
// step and time state. Build one with Builder.Build.
//
// A System is single-threaded: one logical thread runs the full ordered
// block list per tick, and the build-time single-producer invariant plus the
// topological order stand in for any locking.
type System struct {
	name    string
	signals map[string]*Signal
	blocks  []Block
	full    *graph // all signal edges, diagnostics only
	params  Parameters
	step    StepInfo
	log     *slog.Logger
}

// Name returns the system name given at build time.
func (s *System) Name() string { return s.name }

// Len returns the number of blocks in the system.
func (s *System) Len() int { return len(s.blocks) }

// Time returns the current step counter and simulated time. The returned
// StepInfo is the one the next Step call will hand to the blocks.
func (s *System) Time() StepInfo { return s.step }

// Signal looks up a wired signal by its global name.
func (s *System) Signal(name string) (*Signal, bool) {
	sig, ok := s.signals[name]
	return sig, ok
}

// BlockOrder returns the block names in execution order.
func (s *System) BlockOrder() []string {
	names := make([]string, len(s.blocks))
	for i, b := range s.blocks {
		names[i] = b.Name()
	}
	return names
}

// Dot renders the full dependency graph, including delay-broken edges, in
// Graphviz dot syntax. This is a read-only projection for visualization
// tooling; scheduling never uses it.
func (s *System) Dot() string {
	return s.full.dot(s.name)
}

// Step runs every block once, in execution order, then advances the step
// counter and the simulated time.
//
// A block returning Stop does not cut the tick short: the remaining blocks
// still run, and Stop is reported once the tick completes. A block returning
// an error does abort the tick immediately; signal values already written
// earlier in the tick are not rolled back. Stop is also reported once
// MaxIter steps have run.
//
// Stop is advisory: the System keeps no terminal state and the caller
// decides whether to call Step again.
func (s *System) Step() (StepResult, error) {
	stop := false
	for _, b := range s.blocks {
		res, err := b.Step(s.step)
		if err != nil {
			return Stop, errors.Wrapf(err, "block %q failed at step %d", b.Name(), s.step.K)
		}
		if res == Stop {
			stop = true
		}
	}
	s.step.K++
	s.step.T += s.step.Dt

	if stop || (s.params.MaxIter > 0 && s.step.K > s.params.MaxIter) {
		return Stop, nil
	}
	return Continue, nil
}

// Run calls Step until it reports Stop or fails, returning the number of
// completed steps.
func (s *System) Run() (int, error) {
	n := 0
	for {
		res, err := s.Step()
		if err != nil {
			return n, err
		}
		n++
		if res == Stop {
			return n, nil
		}
	}
}
