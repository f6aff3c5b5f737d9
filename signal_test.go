package control_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hixos/control"
)

func TestSignalReadWrite(t *testing.T) {
	s := control.NewSignal[float64]()
	assert.Equal(t, reflect.TypeOf(0.0), s.Type())
	assert.Equal(t, "", s.Name())

	_, ok, err := control.Read[float64](s)
	require.NoError(t, err)
	assert.False(t, ok, "no value written yet")

	require.NoError(t, control.Write(s, 3.5))
	v, ok, err := control.Read[float64](s)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3.5, v)
}

func TestSignalTypeMismatch(t *testing.T) {
	s := control.NewSignal[float64]()

	_, _, err := control.Read[string](s)
	var te *control.TypeError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "string", te.Want)
	assert.Equal(t, "float64", te.Got)

	err = control.Write(s, "nope")
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "string", te.Want)
}
