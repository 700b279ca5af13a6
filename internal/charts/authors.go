package charts

import (
	"fmt"
	"path/filepath"

	"github.com/pdiddy/research-charts/internal/aggregate"
	"github.com/pdiddy/research-charts/internal/dataset"
)

// Authors renders the most prolific authors as horizontal bars. It skips
// when no article lists an author.
func (r *Renderer) Authors(ds *dataset.Dataset, outDir string) (Outcome, error) {
	counts := aggregate.AuthorCounts(ds.Articles())
	if len(counts) == 0 {
		return skipped(ChartAuthors, "no author names"), nil
	}

	fig := inches(12, 10)
	p := newPlot(fmt.Sprintf("Top %d Autores con Más Publicaciones", r.cfg.TopAuthors), "Publicaciones", "Autor")
	if err := addHorizontalBars(p, aggregate.Top(counts, r.cfg.TopAuthors), fig); err != nil {
		return Outcome{}, err
	}

	path := filepath.Join(outDir, FileAuthors)
	if err := savePlot(p, fig, r.cfg.DPI, path); err != nil {
		return Outcome{}, err
	}
	return rendered(ChartAuthors, path), nil
}
