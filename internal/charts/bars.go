package charts

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/pdiddy/research-charts/internal/aggregate"
	"github.com/pdiddy/research-charts/pkg/types"
)

// barWidth spreads n bars over most of span, leaving gaps between them.
func barWidth(span vg.Length, n int) vg.Length {
	if n < 1 {
		n = 1
	}
	return span * 0.7 / vg.Length(n) * 0.8
}

// addVerticalBars adds one viridis-coloured bar per count at x = 0..n-1.
func addVerticalBars(p *plot.Plot, counts []types.Count, fig figure) error {
	if len(counts) == 0 {
		p.X.Min, p.X.Max = -0.5, 0.5
		p.Y.Min, p.Y.Max = 0, 1
		return nil
	}
	colors := viridis(len(counts))
	width := barWidth(fig.w, len(counts))
	for i, c := range counts {
		bar, err := newBar(c, width, colors[i])
		if err != nil {
			return err
		}
		bar.XMin = float64(i)
		p.Add(bar)
	}
	p.NominalX(aggregate.Labels(counts)...)
	p.Y.Min = 0
	return nil
}

// addHorizontalBars adds one bar per count with the first count on top,
// coloured light to dark.
func addHorizontalBars(p *plot.Plot, counts []types.Count, fig figure) error {
	n := len(counts)
	colors := viridisReversed(n)
	width := barWidth(fig.h, n)
	labels := make([]string, n)
	for i, c := range counts {
		bar, err := newBar(c, width, colors[i])
		if err != nil {
			return err
		}
		bar.Horizontal = true
		bar.XMin = float64(n - 1 - i)
		labels[n-1-i] = c.Label
		p.Add(bar)
	}
	p.NominalY(labels...)
	p.X.Min = 0
	return nil
}

func newBar(c types.Count, width vg.Length, fill color.Color) (*plotter.BarChart, error) {
	bar, err := plotter.NewBarChart(plotter.Values{float64(c.Count)}, width)
	if err != nil {
		return nil, fmt.Errorf("building bar %q: %w", c.Label, err)
	}
	bar.Color = fill
	bar.LineStyle.Width = 0
	return bar, nil
}
