package blocks_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hixos/control"
	"github.com/Hixos/control/blocks"
)

// stepDelay runs one delay step the way the scheduler does: the delay goes
// first, then the producer writes this step's input value.
func stepDelay(t *testing.T, d *blocks.Delay[float64], src *control.Signal, k int) float64 {
	t.Helper()
	_, err := d.Step(control.StepInfo{K: k, T: float64(k - 1), Dt: 1})
	require.NoError(t, err)
	v, ok, err := control.Read[float64](d.Outputs()["y"].Signal())
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, control.Write(src, float64(k)))
	return v
}

func TestDelayLag(t *testing.T) {
	for _, n := range []int{1, 2, 3} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			d := blocks.NewDelay("d", make([]float64, n)...)
			assert.Equal(t, n, d.Delay())

			src := control.NewSignal[float64]()
			require.NoError(t, d.Inputs()["u"].Connect(src))

			// with u(k) = k the output must be u(k-n) = k-n once the
			// initial values have drained
			for k := 1; k <= 6; k++ {
				want := 0.0
				if k > n {
					want = float64(k - n)
				}
				assert.Equal(t, want, stepDelay(t, d, src, k), "step %d", k)
			}
		})
	}
}

func TestDelayInitialValues(t *testing.T) {
	d := blocks.NewDelay("d", 10.0, 20.0, 30.0)
	src := control.NewSignal[float64]()
	require.NoError(t, d.Inputs()["u"].Connect(src))

	want := []float64{10, 20, 30, 1, 2, 3}
	for k := 1; k <= len(want); k++ {
		assert.Equal(t, want[k-1], stepDelay(t, d, src, k), "step %d", k)
	}
}

func TestDelayNeedsInitialValue(t *testing.T) {
	assert.Panics(t, func() { blocks.NewDelay[float64]("d") })
}
