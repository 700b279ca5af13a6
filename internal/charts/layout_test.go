package charts

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/pdiddy/research-charts/pkg/types"
)

// fixedMeasure treats every rune as a square of the font size.
func fixedMeasure(txt string, size vg.Length) (vg.Length, vg.Length) {
	return size * vg.Length(len([]rune(txt))), size
}

func TestLayoutCloud(t *testing.T) {
	area := vg.Rectangle{Max: vg.Point{X: 400, Y: 200}}
	words := []types.Count{{Label: "brain", Count: 10}, {Label: "memory", Count: 5}, {Label: "cortex", Count: 1}}

	placed := layoutCloud(words, area, fixedMeasure, 40, 4)
	require.Len(t, placed, 3)
	assert.Equal(t, "brain", placed[0].Text)
	assert.Equal(t, vg.Length(40), placed[0].Size)
	assert.Greater(t, placed[0].Size, placed[1].Size)
	assert.Greater(t, placed[1].Size, placed[2].Size)

	for i, w := range placed {
		assert.True(t, inside(w.Rect, area), w.Text)
		assert.False(t, collides(w.Rect, placed[:i]), w.Text)
	}

	again := layoutCloud(words, area, fixedMeasure, 40, 4)
	assert.Equal(t, placed, again)
}

func TestLayoutCloudDropsWordsThatNeverFit(t *testing.T) {
	area := vg.Rectangle{Max: vg.Point{X: 100, Y: 50}}
	words := []types.Count{{Label: "fits", Count: 2}, {Label: "averyveryveryveryveryveryveryverylongword", Count: 1}}

	placed := layoutCloud(words, area, fixedMeasure, 20, 4)
	require.Len(t, placed, 1)
	assert.Equal(t, "fits", placed[0].Text)

	assert.Nil(t, layoutCloud(nil, area, fixedMeasure, 20, 4))
	assert.Nil(t, layoutCloud(words, vg.Rectangle{}, fixedMeasure, 20, 4))
}

func TestStackBand(t *testing.T) {
	years := []int{2000, 2001, 2002}
	base := make([]float64, 3)

	first := stackBand(years, base, []int{1, 2, 0})
	assert.Equal(t, plotter.XYs{
		{X: 2000, Y: 1}, {X: 2001, Y: 2}, {X: 2002, Y: 0},
		{X: 2002, Y: 0}, {X: 2001, Y: 0}, {X: 2000, Y: 0},
	}, first)
	assert.Equal(t, []float64{1, 2, 0}, base)

	second := stackBand(years, base, []int{3, 0, 1})
	assert.Equal(t, plotter.XY{X: 2000, Y: 4}, second[0])
	assert.Equal(t, plotter.XY{X: 2000, Y: 1}, second[5])
	assert.Equal(t, []float64{4, 2, 1}, base)
}

func TestYearTicks(t *testing.T) {
	single := yearTicks(2005, 2005)
	require.Len(t, single, 3)
	assert.Equal(t, "2004", single[0].Label)
	assert.Equal(t, "2006", single[2].Label)

	wide := yearTicks(1991, 2030)
	assert.LessOrEqual(t, len(wide), maxYearTicks+1)
	assert.Equal(t, 1991.0, wide[0].Value)
	assert.Equal(t, 2030.0, wide[len(wide)-1].Value)
}

func TestCountTicks(t *testing.T) {
	ticks := countTicks(3)
	assert.Equal(t, "0", ticks[0].Label)
	assert.Equal(t, 4.0, ticks[len(ticks)-1].Value)

	ticks = countTicks(95)
	assert.LessOrEqual(t, len(ticks), 12)
	assert.GreaterOrEqual(t, ticks[len(ticks)-1].Value, 96.0)
}

func TestIntegerTicks(t *testing.T) {
	ticks := integerTicks{max: 5}.Ticks(0.5, 20)
	require.NotEmpty(t, ticks)
	assert.LessOrEqual(t, len(ticks), 5)
	assert.Equal(t, 1.0, ticks[0].Value)
	for _, tk := range ticks {
		assert.Equal(t, math.Trunc(tk.Value), tk.Value)
	}
	assert.Empty(t, integerTicks{}.Ticks(0.2, 0.8))
}

func TestViridis(t *testing.T) {
	colors := viridis(5)
	require.Len(t, colors, 5)
	assert.NotEqual(t, colors[0], colors[4])

	rev := viridisReversed(5)
	assert.Equal(t, colors[0], rev[4])
	assert.Equal(t, colors[4], rev[0])

	_, _, _, a := withAlpha(colors[0], 204).RGBA()
	assert.Equal(t, uint32(204)*0x101, a)
	assert.Equal(t, uint8(255), toDrawing(colors[2]).A)

	assert.Equal(t, "#440154", viridisAt(0).Hex())
	assert.Equal(t, "#fde725", viridisAt(1).Hex())
	assert.Panics(t, func() { mustHex("viridis") })
}

func TestLayoutBubbles(t *testing.T) {
	rows := []types.AuthorTopic{
		{Author: "Ann Lee", Topic: "Neurociencia", Publications: 4},
		{Author: "Ann Lee", Topic: "Inmunología", Publications: 1},
		{Author: "Bob Stone", Topic: "Neurociencia", Publications: 2},
	}
	l := layoutBubbles(rows)

	assert.Equal(t, []string{"Ann Lee", "Bob Stone"}, l.authors)
	assert.Equal(t, []string{"Neurociencia", "Inmunología"}, l.topics)
	assert.Equal(t, []int{0, 1, 0}, l.topicOf)
	assert.Equal(t, plotter.XY{X: 1, Y: 0}, l.points[2])

	area := func(r vg.Length) float64 { return math.Pi * float64(r) * float64(r) }
	assert.InDelta(t, maxBubbleArea, area(l.radii[0]), 1e-6)
	assert.InDelta(t, minBubbleArea, area(l.radii[1]), 1e-6)
	assert.InDelta(t, minBubbleArea+(maxBubbleArea-minBubbleArea)/3, area(l.radii[2]), 1e-6)
}

func TestLayoutBubblesEqualCounts(t *testing.T) {
	l := layoutBubbles([]types.AuthorTopic{
		{Author: "A", Topic: "X", Publications: 3},
		{Author: "B", Topic: "Y", Publications: 3},
	})
	for _, r := range l.radii {
		assert.InDelta(t, minBubbleArea, math.Pi*float64(r)*float64(r), 1e-6)
	}
}
