package charts

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot/plotter"

	"github.com/pdiddy/research-charts/internal/aggregate"
	"github.com/pdiddy/research-charts/internal/dataset"
)

// Evolution renders yearly article counts of the most frequent research
// areas as stacked areas. It skips when the cross-tabulation is empty.
func (r *Renderer) Evolution(ds *dataset.Dataset, outDir string) (Outcome, error) {
	evo := aggregate.AreaEvolution(ds.Articles(), r.cfg.TopAreas)
	if evo.Empty() {
		return skipped(ChartEvolution, "no yearly area counts"), nil
	}

	fig := inches(15, 8)
	p := newPlot(fmt.Sprintf("Evolución de las Top %d Áreas de Investigación", r.cfg.TopAreas), "Año", "Número de Artículos")
	p.X.Tick.Marker = integerTicks{max: maxYearTicks}
	p.Legend.Top = true
	p.Legend.Left = true

	colors := viridis(len(evo.Areas))
	base := make([]float64, len(evo.Years))
	for i, area := range evo.Areas {
		band := stackBand(evo.Years, base, evo.Counts[i])
		poly, err := plotter.NewPolygon(band)
		if err != nil {
			return Outcome{}, fmt.Errorf("building area %q: %w", area, err)
		}
		poly.Color = colors[i]
		poly.LineStyle.Width = 0
		p.Add(poly)
		p.Legend.Add(area, poly)
	}
	p.Y.Min = 0

	path := filepath.Join(outDir, FileEvolution)
	if err := savePlot(p, fig, r.cfg.DPI, path); err != nil {
		return Outcome{}, err
	}
	return rendered(ChartEvolution, path), nil
}

// stackBand returns the outline of one stacked layer: its top edge left to
// right, then base right to left. base is advanced to the new top.
func stackBand(years []int, base []float64, counts []int) plotter.XYs {
	n := len(years)
	band := make(plotter.XYs, 0, 2*n)
	top := make([]float64, n)
	for j, y := range years {
		top[j] = base[j] + float64(counts[j])
		band = append(band, plotter.XY{X: float64(y), Y: top[j]})
	}
	for j := n - 1; j >= 0; j-- {
		band = append(band, plotter.XY{X: float64(years[j]), Y: base[j]})
	}
	copy(base, top)
	return band
}
