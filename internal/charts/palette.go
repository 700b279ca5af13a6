package charts

import (
	"image/color"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// viridisStops are evenly spaced samples of the viridis colour map.
var viridisStops = []colorful.Color{
	mustHex("#440154"),
	mustHex("#482878"),
	mustHex("#3e4989"),
	mustHex("#31688e"),
	mustHex("#26828e"),
	mustHex("#1f9e89"),
	mustHex("#35b779"),
	mustHex("#6ece58"),
	mustHex("#b5de2b"),
	mustHex("#fde725"),
}

// mustHex parses a #rrggbb literal.
func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// viridisAt returns the colour at t in [0, 1], blending neighbouring stops in Lab.
func viridisAt(t float64) colorful.Color {
	switch {
	case t <= 0:
		return viridisStops[0]
	case t >= 1:
		return viridisStops[len(viridisStops)-1]
	}
	pos := t * float64(len(viridisStops)-1)
	i := int(pos)
	return viridisStops[i].BlendLab(viridisStops[i+1], pos-float64(i)).Clamped()
}

// viridis returns n colours sampled from the interior of the map, dark to light.
// The end points are skipped so a single series is not drawn in near-black.
func viridis(n int) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		out[i] = viridisAt(float64(i+1) / float64(n+1))
	}
	return out
}

// viridisReversed is viridis(n) from light to dark.
func viridisReversed(n int) []color.Color {
	out := viridis(n)
	slices.Reverse(out)
	return out
}

// withAlpha returns c with its alpha channel replaced.
func withAlpha(c color.Color, a uint8) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = a
	return n
}

// toDrawing converts c for the go-chart renderer.
func toDrawing(c color.Color) drawing.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return drawing.Color{R: n.R, G: n.G, B: n.B, A: n.A}
}
