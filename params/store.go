// Package params provides a TOML-backed parameter store for simulations.
//
// Parameters live in one file per store, keyed by system name:
//
//	[cart.params]
//	dt = 0.01
//	max_iter = 1000
//
//	[cart.blocks.pid_vel]
//	kp = 4.0
//
// Code supplies defaults; values present in the file override them field by
// field. Every effective value handed out is remembered, and Save writes
// them all back, so a first run against a missing file materializes a
// complete, editable parameter file.
package params

import (
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/Hixos/control"
)

// Store holds the parameters of a single named system.
type Store struct {
	path   string
	system string

	md        toml.MetaData
	params    toml.Primitive
	hasParams bool
	blocks    map[string]toml.Primitive

	outParams any
	outBlocks map[string]any
}

type fileSystemTable struct {
	Params toml.Primitive            `toml:"params"`
	Blocks map[string]toml.Primitive `toml:"blocks"`
}

// NewStore opens the parameter store backed by path for the named system.
// A missing file is not an error: every lookup then returns its default.
func NewStore(path, system string) (*Store, error) {
	s := &Store{
		path:      path,
		system:    system,
		blocks:    make(map[string]toml.Primitive),
		outBlocks: make(map[string]any),
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	var root map[string]toml.Primitive
	md, err := toml.DecodeFile(path, &root)
	if err != nil {
		return nil, errors.Wrapf(err, "loading parameter file %s", path)
	}
	s.md = md
	prim, ok := root[system]
	if !ok {
		return s, nil
	}
	var tab fileSystemTable
	if err := md.PrimitiveDecode(prim, &tab); err != nil {
		return nil, errors.Wrapf(err, "parameter table %q", system)
	}
	s.hasParams = md.IsDefined(system, "params")
	s.params = tab.Params
	if tab.Blocks != nil {
		s.blocks = tab.Blocks
	}
	return s, nil
}

// Path returns the file the store reads from and saves to.
func (s *Store) Path() string { return s.path }

// Block returns the effective parameters for the named block: def overridden
// by whatever the file defines under [<system>.blocks.<name>]. The result is
// recorded for Save.
func Block[T any](s *Store, name string, def T) (T, error) {
	p := def
	if prim, ok := s.blocks[name]; ok {
		if err := s.md.PrimitiveDecode(prim, &p); err != nil {
			return def, errors.Wrapf(err, "parameters for block %q", name)
		}
	}
	s.outBlocks[name] = p
	return p, nil
}

// System returns the effective system parameters from [<system>.params],
// recording them for Save.
func System(s *Store, def control.Parameters) (control.Parameters, error) {
	p := def
	if s.hasParams {
		if err := s.md.PrimitiveDecode(s.params, &p); err != nil {
			return def, errors.Wrapf(err, "parameters for system %q", s.system)
		}
	}
	s.outParams = p
	return p, nil
}

// Save writes every effective value handed out so far back to the store's
// file, overwriting it.
func (s *Store) Save() error {
	sys := make(map[string]any, 2)
	if s.outParams != nil {
		sys["params"] = s.outParams
	}
	sys["blocks"] = s.outBlocks

	f, err := os.Create(s.path)
	if err != nil {
		return errors.Wrapf(err, "saving parameter file %s", s.path)
	}
	if err := toml.NewEncoder(f).Encode(map[string]any{s.system: sys}); err != nil {
		f.Close()
		return errors.Wrapf(err, "saving parameter file %s", s.path)
	}
	return errors.Wrapf(f.Close(), "saving parameter file %s", s.path)
}
