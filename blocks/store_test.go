package blocks_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hixos/control"
	"github.com/Hixos/control/blocks"
	"github.com/Hixos/control/params"
)

func storeWith(t *testing.T, content string) *params.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "params.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	s, err := params.NewStore(path, "sys")
	require.NoError(t, err)
	return s
}

func TestFromStoreOverrides(t *testing.T) {
	s := storeWith(t, `
[sys.blocks.ref]
c = 9.0

[sys.blocks.pid]
kp = 3.0

[sys.blocks.g]
k = 7.0

[sys.blocks.d]
initial_values = [1.0, 2.0]
`)

	ref, err := blocks.NewConstantFromStore("ref", s, 1.0)
	require.NoError(t, err)
	_, err = ref.Step(control.StepInfo{K: 1, Dt: 1})
	require.NoError(t, err)
	assert.Equal(t, 9.0, output[float64](t, ref, "y"))

	pid, err := blocks.NewPIDFromStore("pid", s, blocks.PIDParams[float64]{Kp: 1, Ki: 2})
	require.NoError(t, err)
	sigs := bind[float64](t, pid)
	require.NoError(t, control.Write(sigs["u"], 1.0))
	_, err = pid.Step(control.StepInfo{K: 1, Dt: 1})
	require.NoError(t, err)
	// kp overridden to 3, ki kept from the default
	assert.Equal(t, 5.0, output[float64](t, pid, "y"))

	g, err := blocks.NewGainFromStore("g", s, 1.0)
	require.NoError(t, err)
	sigs = bind[float64](t, g)
	require.NoError(t, control.Write(sigs["u"], 2.0))
	_, err = g.Step(control.StepInfo{K: 1, Dt: 1})
	require.NoError(t, err)
	assert.Equal(t, 14.0, output[float64](t, g, "y"))

	d, err := blocks.NewDelayFromStore[float64]("d", s, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Delay(), "delay length follows the stored initial values")
}

func TestFromStoreDefaults(t *testing.T) {
	s := storeWith(t, "")

	c, err := blocks.NewConstantFromStore("ref", s, 4)
	require.NoError(t, err)
	_, err = c.Step(control.StepInfo{K: 1, Dt: 1})
	require.NoError(t, err)
	assert.Equal(t, 4, output[int](t, c, "y"))
}

func TestAddFromStoreGainCount(t *testing.T) {
	s := storeWith(t, `
[sys.blocks.a]
gains = [1.0, 2.0, 3.0]
`)
	_, err := blocks.NewAddFromStore("a", s, blocks.AddParams[float64]{Gains: []float64{1, 1}})
	assert.ErrorContains(t, err, "expected 2 gains, got 3")

	a, err := blocks.NewAddFromStore("a2", s, blocks.AddParams[float64]{Gains: []float64{1, -2}})
	require.NoError(t, err)
	sigs := bind[float64](t, a)
	require.NoError(t, control.Write(sigs["u1"], 10.0))
	require.NoError(t, control.Write(sigs["u2"], 3.0))
	_, err = a.Step(control.StepInfo{K: 1, Dt: 1})
	require.NoError(t, err)
	assert.Equal(t, 4.0, output[float64](t, a, "y"))
}

func TestDelayFromStoreNeedsInitialValues(t *testing.T) {
	s := storeWith(t, `
[sys.blocks.d]
initial_values = []
`)
	_, err := blocks.NewDelayFromStore[float64]("d", s)
	assert.ErrorContains(t, err, "at least one initial value")
}
