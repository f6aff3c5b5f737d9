package control_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hixos/control"
)

func TestInputConnect(t *testing.T) {
	s := control.NewSignal[int]()
	var in control.Input[int]
	require.NoError(t, in.Connect(s))

	// rebinding is rejected
	err := in.Connect(control.NewSignal[int]())
	assert.ErrorContains(t, err, "already connected")
}

func TestInputConnectTypeMismatch(t *testing.T) {
	s := control.NewSignal[int]()
	var in control.Input[float64]
	err := in.Connect(s)
	var te *control.TypeError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "float64", te.Want)
	assert.Equal(t, "int", te.Got)
}

func TestInputGetPanics(t *testing.T) {
	var in control.Input[int]
	assert.Panics(t, func() { in.Get() }, "unconnected")

	require.NoError(t, in.Connect(control.NewSignal[int]()))
	assert.Panics(t, func() { in.Get() }, "connected but never written")
}

func TestInputPeek(t *testing.T) {
	s := control.NewSignal[int]()
	var in control.Input[int]

	_, ok := in.Peek()
	assert.False(t, ok, "unconnected")

	require.NoError(t, in.Connect(s))
	_, ok = in.Peek()
	assert.False(t, ok, "unwritten")

	require.NoError(t, control.Write(s, 42))
	v, ok := in.Peek()
	assert.True(t, ok)
	assert.Equal(t, 42, v)
	assert.Equal(t, 42, in.Get())
}

func TestOutput(t *testing.T) {
	out := control.NewOutput[int]()
	assert.Equal(t, "", out.SignalName(), "unnamed until wired")

	out.Set(7)
	v, ok, err := control.Read[int](out.Signal())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 7, v)
}

func TestOutputZeroValuePanics(t *testing.T) {
	var out control.Output[int]
	assert.Panics(t, func() { out.Set(1) })
	assert.Panics(t, func() { out.Signal() })
}
