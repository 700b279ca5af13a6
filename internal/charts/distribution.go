package charts

import (
	"path/filepath"

	"github.com/pdiddy/research-charts/internal/aggregate"
	"github.com/pdiddy/research-charts/internal/dataset"
)

// Distribution renders one bar per research area, tallest first. An empty
// dataset still produces the file, with no bars.
func (r *Renderer) Distribution(ds *dataset.Dataset, outDir string) (Outcome, error) {
	counts := aggregate.AreaCounts(ds.Articles())

	fig := inches(12, 8)
	p := newPlot("Distribución de Artículos por Área de Investigación",
		"Área de Investigación", "Número de Artículos")
	if err := addVerticalBars(p, counts, fig); err != nil {
		return Outcome{}, err
	}
	rotateXTicks(p)

	path := filepath.Join(outDir, FileDistribution)
	if err := savePlot(p, fig, r.cfg.DPI, path); err != nil {
		return Outcome{}, err
	}
	return rendered(ChartDistribution, path), nil
}
