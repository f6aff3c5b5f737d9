// Package simplot records simulation signals and renders them as
// time-series plots. It plugs into a system purely through probe blocks:
// the engine never knows it is being plotted.
package simplot

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/Hixos/control"
	"github.com/Hixos/control/blocks"
)

// Signals collects the time series recorded by plotter blocks added with
// AddPlotter. Populate it during a run, then Save the result.
type Signals struct {
	series []*series
}

type series struct {
	name string
	xys  plotter.XYs
}

// NewSignals returns an empty recorder set.
func NewSignals() *Signals { return &Signals{} }

// Len returns the number of tracked signals.
func (s *Signals) Len() int { return len(s.series) }

// Samples returns the recorded (t, value) pairs for the i-th tracked signal.
func (s *Signals) Samples(i int) ([]float64, []float64) {
	sr := s.series[i]
	ts := make([]float64, len(sr.xys))
	vs := make([]float64, len(sr.xys))
	for j, xy := range sr.xys {
		ts[j] = xy.X
		vs[j] = xy.Y
	}
	return ts, vs
}

// AddPlotter registers a probe block recording the named signal at every
// step. The block name is generated deterministically from the signal name
// and the recorder count, so the same wiring builds identically twice.
func AddPlotter[T blocks.Number](b *control.Builder, signal string, s *Signals) error {
	name := "plot_" + strings.ReplaceAll(signal, "/", "_") + "_" + strconv.Itoa(len(s.series))
	sr := &series{name: signal}
	s.series = append(s.series, sr)

	p := blocks.NewProbe(name, func(_ string, v T, ok bool, k control.StepInfo) {
		if !ok {
			return
		}
		sr.xys = append(sr.xys, plotter.XY{X: k.T, Y: float64(v)})
	})
	return b.AddBlock(p, control.C{"u": signal}, nil)
}

// Save renders every recorded series into a single chart at path. The image
// format follows the file extension (.png, .svg, .pdf, ...).
func (s *Signals) Save(path string) error {
	p := plot.New()
	p.Title.Text = "signals"
	p.X.Label.Text = "t [s]"
	p.Legend.Top = true

	for i, sr := range s.series {
		l, err := plotter.NewLine(sr.xys)
		if err != nil {
			return errors.Wrapf(err, "series %q", sr.name)
		}
		l.Color = plotutil.Color(i)
		l.Dashes = plotutil.Dashes(i)
		p.Add(l)
		p.Legend.Add(sr.name, l)
	}
	return errors.Wrapf(p.Save(8*vg.Inch, 6*vg.Inch, path), "saving plot %s", path)
}
