package charts

import (
	"fmt"
	"path/filepath"

	"github.com/pdiddy/research-charts/internal/aggregate"
	"github.com/pdiddy/research-charts/internal/dataset"
)

// Keywords renders a word cloud of keyword frequencies and a bar chart of
// the most frequent keywords. It skips when no article has a usable keyword.
func (r *Renderer) Keywords(ds *dataset.Dataset, outDir string) (Outcome, error) {
	counts := aggregate.KeywordCounts(ds.Articles())
	if len(counts) == 0 {
		return skipped(ChartKeywords, "no keywords"), nil
	}

	cloud := drawCloud("Nube de Palabras Clave", aggregate.Top(counts, r.cfg.MaxCloudWords), inches(15, 7), r.cfg.DPI)
	cloudPath := filepath.Join(outDir, FileKeywordCloud)
	if err := writePNG(cloud, cloudPath); err != nil {
		return Outcome{}, err
	}

	top := aggregate.Top(counts, r.cfg.TopKeywords)
	fig := inches(12, 10)
	p := newPlot(fmt.Sprintf("Top %d Palabras Clave", r.cfg.TopKeywords), "Frecuencia", "Keyword")
	if err := addHorizontalBars(p, top, fig); err != nil {
		return Outcome{}, err
	}

	barsPath := filepath.Join(outDir, FileKeywordBars)
	if err := savePlot(p, fig, r.cfg.DPI, barsPath); err != nil {
		return Outcome{}, err
	}
	return rendered(ChartKeywords, cloudPath, barsPath), nil
}
