package charts

import (
	"io"
	"path/filepath"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot/plotter"

	"github.com/pdiddy/research-charts/internal/aggregate"
	"github.com/pdiddy/research-charts/internal/dataset"
)

// maxYearTicks bounds the labelled years on the time axis.
const maxYearTicks = 20

const (
	timelineTitle  = "Volumen de Publicaciones por Año"
	timelineXLabel = "Año de Publicación"
	timelineYLabel = "Número de Artículos"
)

// Timeline renders publications per year, after the configured minimum
// year, as a line with point markers. When no year qualifies the file
// still holds the titled, empty frame.
func (r *Renderer) Timeline(ds *dataset.Dataset, outDir string) (Outcome, error) {
	path := filepath.Join(outDir, FileTimeline)
	years := aggregate.YearCounts(ds.Articles(), r.cfg.MinYear)
	if len(years) == 0 {
		if err := r.emptyTimeline(path); err != nil {
			return Outcome{}, err
		}
		return rendered(ChartTimeline, path), nil
	}

	xs := make([]float64, len(years))
	ys := make([]float64, len(years))
	maxCount := 0
	for i, y := range years {
		xs[i] = float64(y.Year)
		ys[i] = float64(y.Count)
		maxCount = max(maxCount, y.Count)
	}

	line := toDrawing(viridis(1)[0])
	grid := chart.Style{
		StrokeColor:     drawing.ColorFromHex("cccccc"),
		StrokeWidth:     0.5,
		StrokeDashArray: []float64{3, 3},
	}

	width, height := inches(12, 6).pixels(r.cfg.DPI)
	graph := chart.Chart{
		Title:      timelineTitle,
		TitleStyle: chart.Style{FontSize: 16},
		Width:      width,
		Height:     height,
		DPI:        float64(r.cfg.DPI),
		Background: chart.Style{
			Padding: chart.Box{Top: 60, Left: 30, Right: 40, Bottom: 30},
		},
		XAxis: chart.XAxis{
			Name:           timelineXLabel,
			NameStyle:      chart.Style{FontSize: 12},
			Ticks:          yearTicks(years[0].Year, years[len(years)-1].Year),
			GridMajorStyle: grid,
		},
		YAxis: chart.YAxis{
			Name:           timelineYLabel,
			NameStyle:      chart.Style{FontSize: 12},
			Ticks:          countTicks(maxCount),
			GridMajorStyle: grid,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "publicaciones",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: line,
					StrokeWidth: 2,
					DotColor:    line,
					DotWidth:    4,
				},
			},
		},
	}

	err := writeFileAtomic(path, func(w io.Writer) error {
		return graph.Render(chart.PNG, w)
	})
	if err != nil {
		return Outcome{}, err
	}
	return rendered(ChartTimeline, path), nil
}

// emptyTimeline draws the titled frame with unit axes. go-chart refuses a
// series without points, so this one is drawn with gonum.
func (r *Renderer) emptyTimeline(path string) error {
	p := newPlot(timelineTitle, timelineXLabel, timelineYLabel)
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	grid := plotter.NewGrid()
	dashedGrid(&grid.Vertical)
	dashedGrid(&grid.Horizontal)
	p.Add(grid)
	return savePlot(p, inches(12, 6), r.cfg.DPI, path)
}

// yearTicks labels the years from first to last. A single year is padded
// by one on each side so the axis has a non-zero range.
func yearTicks(first, last int) []chart.Tick {
	if first == last {
		first--
		last++
	}
	var ticks []chart.Tick
	for _, t := range (integerTicks{max: maxYearTicks}).Ticks(float64(first), float64(last)) {
		ticks = append(ticks, chart.Tick{Value: t.Value, Label: t.Label})
	}
	if ticks[len(ticks)-1].Value != float64(last) {
		ticks = append(ticks, chart.Tick{Value: float64(last), Label: strconv.Itoa(last)})
	}
	return ticks
}

// countTicks labels the count axis from zero to just above maxCount.
func countTicks(maxCount int) []chart.Tick {
	top := maxCount + 1
	step := 1
	for top/step > 10 {
		step *= 2
	}
	var ticks []chart.Tick
	for v := 0; ; v += step {
		ticks = append(ticks, chart.Tick{Value: float64(v), Label: strconv.Itoa(v)})
		if v >= top {
			break
		}
	}
	return ticks
}
