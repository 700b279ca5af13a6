package charts

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/pdiddy/research-charts/internal/aggregate"
	"github.com/pdiddy/research-charts/internal/dataset"
	"github.com/pdiddy/research-charts/pkg/types"
)

// Bubble areas in square points for the smallest and largest counts.
const (
	minBubbleArea = 100.0
	maxBubbleArea = 2000.0
)

// bubbleLayout positions author-topic counts on a categorical grid.
type bubbleLayout struct {
	authors []string
	topics  []string
	points  plotter.XYs
	radii   []vg.Length
	topicOf []int
}

// layoutBubbles maps each (author, topic) to grid cells in order of first
// appearance and scales bubble areas linearly between minBubbleArea and
// maxBubbleArea. When all counts are equal every bubble gets minBubbleArea.
func layoutBubbles(rows []types.AuthorTopic) bubbleLayout {
	var l bubbleLayout
	authorIdx := make(map[string]int)
	topicIdx := make(map[string]int)
	lo, hi := math.MaxInt, math.MinInt
	for _, row := range rows {
		if _, ok := authorIdx[row.Author]; !ok {
			authorIdx[row.Author] = len(l.authors)
			l.authors = append(l.authors, row.Author)
		}
		if _, ok := topicIdx[row.Topic]; !ok {
			topicIdx[row.Topic] = len(l.topics)
			l.topics = append(l.topics, row.Topic)
		}
		lo = min(lo, row.Publications)
		hi = max(hi, row.Publications)
	}

	for _, row := range rows {
		t := topicIdx[row.Topic]
		l.points = append(l.points, plotter.XY{X: float64(authorIdx[row.Author]), Y: float64(t)})
		l.topicOf = append(l.topicOf, t)

		frac := 0.0
		if hi > lo {
			frac = float64(row.Publications-lo) / float64(hi-lo)
		}
		area := minBubbleArea + frac*(maxBubbleArea-minBubbleArea)
		l.radii = append(l.radii, vg.Points(math.Sqrt(area/math.Pi)))
	}
	return l
}

// Specialization renders the top authors against the research areas they
// publish in, bubble size by publication count and colour by area. It skips
// when no author-topic pair survives.
func (r *Renderer) Specialization(ds *dataset.Dataset, outDir string) (Outcome, error) {
	rows := aggregate.AuthorTopics(ds.Articles(), r.cfg.TopBubbleAuthors)
	if len(rows) == 0 {
		return skipped(ChartSpecialization, "not enough author data for the bubble chart"), nil
	}
	l := layoutBubbles(rows)

	fig := inches(16, 10)
	p := newPlot(fmt.Sprintf("Especialización de los Top %d Autores (Burbujas)", r.cfg.TopBubbleAuthors),
		"Autor", "Área de Investigación")
	p.Title.TextStyle.Font.Size = vg.Points(18)

	grid := plotter.NewGrid()
	dashedGrid(&grid.Vertical)
	dashedGrid(&grid.Horizontal)
	p.Add(grid)

	colors := viridis(len(l.topics))
	fill, err := plotter.NewScatter(l.points)
	if err != nil {
		return Outcome{}, fmt.Errorf("building bubbles: %w", err)
	}
	fill.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  withAlpha(colors[l.topicOf[i]], 204),
			Radius: l.radii[i],
			Shape:  draw.CircleGlyph{},
		}
	}
	edge, err := plotter.NewScatter(l.points)
	if err != nil {
		return Outcome{}, fmt.Errorf("building bubble edges: %w", err)
	}
	edge.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  color.Gray{Y: 128},
			Radius: l.radii[i],
			Shape:  draw.RingGlyph{},
		}
	}
	p.Add(fill, edge)

	for i, topic := range l.topics {
		p.Legend.Add(topic, &plotter.Scatter{GlyphStyle: draw.GlyphStyle{
			Color:  withAlpha(colors[i], 204),
			Radius: vg.Points(5),
			Shape:  draw.CircleGlyph{},
		}})
	}
	p.Legend.Top = true

	p.NominalX(l.authors...)
	p.NominalY(l.topics...)
	rotateXTicks(p)
	p.X.Min, p.X.Max = -0.5, float64(len(l.authors))-0.5
	p.Y.Min, p.Y.Max = -0.5, float64(len(l.topics))-0.5

	path := filepath.Join(outDir, FileSpecialization)
	if err := savePlot(p, fig, r.cfg.DPI, path); err != nil {
		return Outcome{}, err
	}
	return rendered(ChartSpecialization, path), nil
}
