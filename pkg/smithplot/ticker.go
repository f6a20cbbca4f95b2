package smithplot

import (
	"math/cmplx"

	"gonum.org/v1/plot"

	"github.com/ha1tch/smith-toolkit/pkg/smith"
)

// RealTicker places the chart's resistance ticks along a display-space
// axis: each tick sits at the real part of its Möbius image. Minor ticks
// carry empty labels.
type RealTicker struct {
	Chart *smith.Chart
	Minor bool
}

// Ticks implements plot.Ticker.
func (t RealTicker) Ticks(min, max float64) []plot.Tick {
	var f smith.RealFormatter
	var ticks []plot.Tick
	add := func(x float64, label string) {
		pos := real(t.Chart.Moebius(complex(x, 0)))
		if pos >= min && pos <= max {
			ticks = append(ticks, plot.Tick{Value: pos, Label: label})
		}
	}
	for _, x := range t.Chart.XTicks() {
		add(x, f.Format(x))
	}
	if t.Minor {
		for _, x := range t.Chart.XMinorTicks() {
			add(x, "")
		}
	}
	return ticks
}

// ImagTicker places reactance ticks on a vertical axis at the height where
// their circle meets the boundary.
type ImagTicker struct {
	Chart *smith.Chart
}

// Ticks implements plot.Ticker.
func (t ImagTicker) Ticks(min, max float64) []plot.Tick {
	f := smith.ImagFormatter{Infinity: t.Chart.Params().InfinitySymbol}
	var ticks []plot.Tick
	for _, y := range t.Chart.YTicks() {
		w := t.Chart.Moebius(complex(0, y))
		if cmplx.IsNaN(w) {
			continue
		}
		pos := imag(w)
		if pos >= min && pos <= max {
			ticks = append(ticks, plot.Tick{Value: pos, Label: f.Format(y)})
		}
	}
	return ticks
}
