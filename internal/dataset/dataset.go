// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset loads the article metadata table and cleans it into the
// read-only Dataset every chart is computed from.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/pdiddy/research-charts/pkg/types"
)

// Required column names.
const (
	ColYear         = "year"
	ColResearchArea = "research_area"
	ColKeywords     = "keywords"
	ColAuthors      = "authors"
)

// ErrNotFound reports that the source path does not name a readable file.
var ErrNotFound = errors.New("source not found")

// Stats counts what cleaning kept and dropped.
type Stats struct {
	Rows        int `json:"rows" yaml:"rows"`
	DroppedYear int `json:"dropped_year" yaml:"dropped_year"`
	DroppedArea int `json:"dropped_area" yaml:"dropped_area"`
	Relabeled   int `json:"relabeled" yaml:"relabeled"`
	Kept        int `json:"kept" yaml:"kept"`
}

// Dataset is the cleaned, ordered article collection. It is never mutated
// after construction.
type Dataset struct {
	source   string
	articles []types.Article
	stats    Stats
}

// New builds a Dataset from already cleaned articles. The slice is copied.
func New(articles []types.Article) *Dataset {
	a := slices.Clone(articles)
	return &Dataset{articles: a, stats: Stats{Rows: len(a), Kept: len(a)}}
}

// Source returns the path the dataset was loaded from, if any.
func (d *Dataset) Source() string { return d.source }

// Stats returns the cleaning counters.
func (d *Dataset) Stats() Stats { return d.stats }

// Len returns the number of articles.
func (d *Dataset) Len() int { return len(d.articles) }

// Articles returns a copy of the articles in source order.
func (d *Dataset) Articles() []types.Article {
	return slices.Clone(d.articles)
}

// Load reads the table at path and cleans it with labels. A path that does
// not exist, or names a directory, yields an error matching ErrNotFound.
func Load(path string, labels Labels) (*Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}

	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	raw, err := parseArticles(t)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	articles, stats := Clean(raw, labels)
	return &Dataset{source: path, articles: articles, stats: stats}, nil
}

func parseArticles(t *table) ([]types.Article, error) {
	cols, err := t.columns(ColYear, ColResearchArea, ColKeywords, ColAuthors)
	if err != nil {
		return nil, err
	}

	articles := make([]types.Article, 0, len(t.rows))
	for _, row := range t.rows {
		var a types.Article
		if v, ok := cell(row, cols[ColYear]); ok {
			a.Year, a.HasYear = parseYear(v)
		}
		a.ResearchArea, a.HasResearchArea = cell(row, cols[ColResearchArea])
		a.Keywords, a.HasKeywords = cell(row, cols[ColKeywords])
		a.Authors, a.HasAuthors = cell(row, cols[ColAuthors])
		articles = append(articles, a)
	}
	return articles, nil
}

// parseYear accepts any finite number and truncates it toward zero.
func parseYear(v string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

// isExcludedArea reports whether area means "could not classify".
func isExcludedArea(area string) bool {
	return area == "Error" || area == "unclassified"
}

// Clean drops articles without a year or with a missing or excluded
// research area, then relabels the remaining areas. The input is not modified.
func Clean(raw []types.Article, labels Labels) ([]types.Article, Stats) {
	stats := Stats{Rows: len(raw)}
	out := make([]types.Article, 0, len(raw))
	for _, a := range raw {
		if !a.HasYear {
			stats.DroppedYear++
			continue
		}
		if !a.HasResearchArea || isExcludedArea(a.ResearchArea) {
			stats.DroppedArea++
			continue
		}
		if labels.Has(a.ResearchArea) {
			a.ResearchArea = labels.Label(a.ResearchArea)
			stats.Relabeled++
		}
		out = append(out, a)
	}
	stats.Kept = len(out)
	return out, stats
}
