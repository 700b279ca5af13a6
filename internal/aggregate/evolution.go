package aggregate

import (
	"slices"

	"github.com/pdiddy/research-charts/pkg/types"
)

// Evolution is a (year, area) cross-tabulation. Counts[i][j] is the number
// of articles in Areas[i] published in Years[j]; absent cells are zero.
type Evolution struct {
	Years  []int    `json:"years" yaml:"years"`
	Areas  []string `json:"areas" yaml:"areas"`
	Counts [][]int  `json:"counts" yaml:"counts"`
}

// Empty reports whether the table has no cells.
func (e *Evolution) Empty() bool {
	return e == nil || len(e.Years) == 0 || len(e.Areas) == 0
}

// Totals returns the per-year column sums.
func (e *Evolution) Totals() []int {
	out := make([]int, len(e.Years))
	for _, row := range e.Counts {
		for j, v := range row {
			out[j] += v
		}
	}
	return out
}

// AreaEvolution cross-tabulates years against the topN most frequent areas.
// Years ascend; areas are sorted alphabetically.
func AreaEvolution(articles []types.Article, topN int) *Evolution {
	top := Labels(Top(AreaCounts(articles), topN))
	keep := make(map[string]bool, len(top))
	for _, a := range top {
		keep[a] = true
	}

	cells := make(map[string]map[int]int)
	yearSet := make(map[int]bool)
	for _, a := range articles {
		if !keep[a.ResearchArea] {
			continue
		}
		row, ok := cells[a.ResearchArea]
		if !ok {
			row = make(map[int]int)
			cells[a.ResearchArea] = row
		}
		row[a.Year]++
		yearSet[a.Year] = true
	}

	e := &Evolution{}
	for y := range yearSet {
		e.Years = append(e.Years, y)
	}
	slices.Sort(e.Years)
	for area := range cells {
		e.Areas = append(e.Areas, area)
	}
	slices.Sort(e.Areas)

	e.Counts = make([][]int, len(e.Areas))
	for i, area := range e.Areas {
		e.Counts[i] = make([]int, len(e.Years))
		for j, y := range e.Years {
			e.Counts[i][j] = cells[area][y]
		}
	}
	return e
}
