package simplot_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hixos/control"
	"github.com/Hixos/control/blocks"
	"github.com/Hixos/control/simplot"
)

func TestRecordAndSave(t *testing.T) {
	b := control.NewBuilder()
	require.NoError(t, b.AddBlock(blocks.NewGenerator("g", func(k control.StepInfo) float64 {
		return float64(k.K)
	}), nil, control.C{"y": "/g"}))

	s := simplot.NewSignals()
	require.NoError(t, simplot.AddPlotter[float64](b, "/g", s))

	sys, err := b.Build("plot", control.Parameters{Dt: 0.5, MaxIter: 4})
	require.NoError(t, err)
	n, err := sys.Run()
	require.NoError(t, err)
	require.Equal(t, 4, n)

	require.Equal(t, 1, s.Len())
	ts, vs := s.Samples(0)
	assert.Equal(t, []float64{0, 0.5, 1, 1.5}, ts)
	assert.Equal(t, []float64{1, 2, 3, 4}, vs)

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, s.Save(path))
	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, fi.Size())
}

func TestAddPlotterSameSignalTwice(t *testing.T) {
	b := control.NewBuilder()
	require.NoError(t, b.AddBlock(blocks.NewConstant("c", 1.0), nil, control.C{"y": "/c"}))

	s := simplot.NewSignals()
	require.NoError(t, simplot.AddPlotter[float64](b, "/c", s))
	// the generated probe names stay unique, so this must not collide
	require.NoError(t, simplot.AddPlotter[float64](b, "/c", s))
	assert.Equal(t, 2, s.Len())

	_, err := b.Build("plot", control.Parameters{Dt: 1})
	require.NoError(t, err)
}
