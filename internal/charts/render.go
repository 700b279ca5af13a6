package charts

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/pdiddy/research-charts/pkg/types"
)

// Output file names. They are stable across runs.
const (
	FileDistribution   = "1_distribucion_areas.png"
	FileTimeline       = "2_publicaciones_por_año.png"
	FileKeywordCloud   = "3a_nube_keywords.png"
	FileKeywordBars    = "3b_barras_keywords.png"
	FileEvolution      = "4_evolucion_areas.png"
	FileAuthors        = "5_top_autores.png"
	FileSpecialization = "6_especializacion_autores_burbujas.png"
)

// figure is a canvas size in inches.
type figure struct {
	w, h vg.Length
}

func inches(w, h float64) figure {
	return figure{w: vg.Length(w) * vg.Inch, h: vg.Length(h) * vg.Inch}
}

// pixels returns the raster size of f at dpi.
func (f figure) pixels(dpi int) (int, int) {
	return int(math.Round(float64(f.w/vg.Inch) * float64(dpi))), int(math.Round(float64(f.h/vg.Inch) * float64(dpi)))
}

// Renderer draws the charts with the sizes and limits in cfg.
type Renderer struct {
	cfg types.ChartsConfig
}

// NewRenderer returns a Renderer for cfg.
func NewRenderer(cfg types.ChartsConfig) *Renderer {
	return &Renderer{cfg: cfg}
}

// newPlot returns a plot with a bold title and axis labels.
func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Title.TextStyle.Font.Weight = xfont.WeightBold
	p.Title.Padding = vg.Points(8)
	p.X.Label.Text = xLabel
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.Text = yLabel
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	return p
}

// rotateXTicks slants category labels so long names stay legible.
func rotateXTicks(p *plot.Plot) {
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
}

// integerTicks labels whole numbers only, thinning them to at most max ticks.
type integerTicks struct {
	max int
}

func (t integerTicks) Ticks(min, max float64) []plot.Tick {
	lo, hi := int(math.Ceil(min)), int(math.Floor(max))
	if hi < lo {
		return nil
	}
	step := 1
	if limit := t.max; limit > 0 {
		for (hi-lo)/step+1 > limit {
			step++
		}
	}
	var ticks []plot.Tick
	for v := lo; v <= hi; v += step {
		ticks = append(ticks, plot.Tick{Value: float64(v), Label: strconv.Itoa(v)})
	}
	return ticks
}

// dashedGrid styles c as a light dashed grid line.
func dashedGrid(c *draw.LineStyle) {
	c.Color = color.Gray{Y: 200}
	c.Width = vg.Points(0.5)
	c.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
}

// savePlot draws p on a canvas of size fig at dpi and writes it to path as PNG.
func savePlot(p *plot.Plot, fig figure, dpi int, path string) error {
	c := vgimg.NewWith(
		vgimg.UseWH(fig.w, fig.h),
		vgimg.UseDPI(dpi),
		vgimg.UseBackgroundColor(color.White),
	)
	p.Draw(draw.New(c))
	return writePNG(c, path)
}

// writePNG encodes c to path.
func writePNG(c *vgimg.Canvas, path string) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		_, err := vgimg.PngCanvas{Canvas: c}.WriteTo(w)
		return err
	})
}

// writeFileAtomic writes to a temporary file in the target directory, then
// renames it over path.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".chart-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if err := write(tmp); err != nil {
		cleanup()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		cleanup()
		return fmt.Errorf("setting mode of %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming %s: %w", path, err)
	}
	return nil
}
