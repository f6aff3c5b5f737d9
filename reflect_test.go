package control_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hixos/control"
)

type taggedBlock struct {
	control.NoDelay
	In   control.Input[float64]    `io:"in"`
	Refs [2]control.Input[float64] `io:"in,ref"`
	Out  control.Output[float64]   `io:"out,y"`

	gain float64 // untagged, not a port
}

func TestPorts(t *testing.T) {
	blk := &taggedBlock{Out: control.NewOutput[float64](), gain: 1}
	ins, outs := control.Ports(blk)

	require.Len(t, ins, 3)
	assert.Contains(t, ins, "in")
	assert.Contains(t, ins, "ref1")
	assert.Contains(t, ins, "ref2")
	require.Len(t, outs, 1)
	assert.Contains(t, outs, "y")

	// the maps must point at the struct's own fields
	require.NoError(t, ins["in"].Connect(control.NewSignal[float64]()))
	assert.Error(t, blk.In.Connect(control.NewSignal[float64]()), "already bound through the map")

	blk.Out.Set(2.5)
	v, ok, err := control.Read[float64](outs["y"].Signal())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2.5, v)
}

func TestPortsMisuse(t *testing.T) {
	type badDir struct {
		In control.Input[int] `io:"sideways"`
	}
	type notAPort struct {
		X int `io:"in"`
	}
	assert.Panics(t, func() { control.Ports(taggedBlock{}) }, "non-pointer")
	assert.Panics(t, func() { control.Ports(&badDir{}) })
	assert.Panics(t, func() { control.Ports(&notAPort{}) })
}
