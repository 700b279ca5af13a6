package charts

import (
	"image/color"
	"math"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/pdiddy/research-charts/pkg/types"
)

const (
	// cloudAspect is the width:height ratio of the word area.
	cloudAspect = 2.0
	// cloudPadding separates neighbouring words.
	cloudPadding = vg.Length(2)
	// cloudShrink is the factor a word's size is reduced by when it does not fit.
	cloudShrink = 0.9
	// spiralStep is the radial growth of the placement spiral per radian.
	spiralStep = vg.Length(3)
)

// cloudWord is one placed word.
type cloudWord struct {
	Text string
	Size vg.Length
	Rect vg.Rectangle
}

// measureFunc returns the width and height of txt at font size.
type measureFunc func(txt string, size vg.Length) (vg.Length, vg.Length)

// layoutCloud places words, most frequent first, on an outward spiral from
// the centre of area. Sizes scale with frequency relative to the most
// frequent word; a word that does not fit is shrunk until it does or falls
// below minSize, in which case it is left out. The layout is deterministic.
func layoutCloud(words []types.Count, area vg.Rectangle, measure measureFunc, maxSize, minSize vg.Length) []cloudWord {
	if len(words) == 0 || area.Size().X <= 0 || area.Size().Y <= 0 {
		return nil
	}
	top := float64(words[0].Count)
	center := rectCenter(area)
	aspect := area.Size().X / area.Size().Y
	limit := float64(area.Size().Y) * 0.75

	var placed []cloudWord
	for _, w := range words {
		size := maxSize * vg.Length(0.5*float64(w.Count)/top+0.5)
		for size >= minSize {
			wd, ht := measure(w.Label, size)
			if rect, ok := findSpot(center, aspect, limit, wd, ht, area, placed); ok {
				placed = append(placed, cloudWord{Text: w.Label, Size: size, Rect: rect})
				break
			}
			size *= cloudShrink
		}
	}
	return placed
}

// findSpot walks an ellipse-shaped spiral until a wd×ht box fits inside area without
// touching any placed word.
func findSpot(center vg.Point, aspect vg.Length, limit float64, wd, ht vg.Length, area vg.Rectangle, placed []cloudWord) (vg.Rectangle, bool) {
	if wd > area.Size().X || ht > area.Size().Y {
		return vg.Rectangle{}, false
	}
	for theta := 0.0; ; theta += 0.1 {
		r := spiralStep * vg.Length(theta)
		if float64(r) > limit {
			return vg.Rectangle{}, false
		}
		c := vg.Point{
			X: center.X + r*aspect*vg.Length(math.Cos(theta)),
			Y: center.Y + r*vg.Length(math.Sin(theta)),
		}
		rect := vg.Rectangle{
			Min: vg.Point{X: c.X - wd/2, Y: c.Y - ht/2},
			Max: vg.Point{X: c.X + wd/2, Y: c.Y + ht/2},
		}
		if inside(rect, area) && !collides(rect, placed) {
			return rect, true
		}
	}
}

func rectCenter(r vg.Rectangle) vg.Point {
	return vg.Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

func inside(r, area vg.Rectangle) bool {
	return r.Min.X >= area.Min.X && r.Min.Y >= area.Min.Y &&
		r.Max.X <= area.Max.X && r.Max.Y <= area.Max.Y
}

func collides(r vg.Rectangle, placed []cloudWord) bool {
	for _, p := range placed {
		if r.Min.X < p.Rect.Max.X+cloudPadding && p.Rect.Min.X < r.Max.X+cloudPadding &&
			r.Min.Y < p.Rect.Max.Y+cloudPadding && p.Rect.Min.Y < r.Max.Y+cloudPadding {
			return true
		}
	}
	return false
}

// cloudFont is the face used for cloud words.
var cloudFont = font.Font{Typeface: plot.DefaultFont.Typeface, Variant: plot.DefaultFont.Variant, Weight: xfont.WeightBold}

func textStyle(fnt font.Font, size vg.Length, c color.Color) text.Style {
	return text.Style{
		Color:   c,
		Font:    font.From(fnt, size),
		Handler: plot.DefaultTextHandler,
		XAlign:  draw.XCenter,
		YAlign:  draw.YCenter,
	}
}

func measureText(fnt font.Font) measureFunc {
	return func(txt string, size vg.Length) (vg.Length, vg.Length) {
		sty := textStyle(fnt, size, color.Black)
		return sty.Width(txt), sty.Height(txt)
	}
}

// drawCloud renders a titled word cloud of counts on a canvas of size fig.
func drawCloud(title string, counts []types.Count, fig figure, dpi int) *vgimg.Canvas {
	c := vgimg.NewWith(
		vgimg.UseWH(fig.w, fig.h),
		vgimg.UseDPI(dpi),
		vgimg.UseBackgroundColor(color.White),
	)
	dc := draw.New(c)

	titleStyle := textStyle(cloudFont, vg.Points(16), color.Black)
	titleStyle.YAlign = draw.YTop
	pad := vg.Points(12)
	dc.FillText(titleStyle, vg.Point{X: rectCenter(dc.Rectangle).X, Y: dc.Max.Y - pad}, title)

	// Largest cloudAspect:1 box centred below the title.
	avail := vg.Rectangle{
		Min: vg.Point{X: dc.Min.X + pad, Y: dc.Min.Y + pad},
		Max: vg.Point{X: dc.Max.X - pad, Y: dc.Max.Y - 2*pad - titleStyle.Height(title)},
	}
	w, h := avail.Size().X, avail.Size().Y
	if w > h*cloudAspect {
		w = h * cloudAspect
	} else {
		h = w / cloudAspect
	}
	mid := rectCenter(avail)
	area := vg.Rectangle{
		Min: vg.Point{X: mid.X - w/2, Y: mid.Y - h/2},
		Max: vg.Point{X: mid.X + w/2, Y: mid.Y + h/2},
	}

	words := layoutCloud(counts, area, measureText(cloudFont), h/5, vg.Points(4))
	colors := viridis(len(words))
	for i, word := range words {
		dc.FillText(textStyle(cloudFont, word.Size, colors[i]), rectCenter(word.Rect), word.Text)
	}
	return c
}
