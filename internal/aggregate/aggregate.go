// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate derives the summary views the charts are drawn from.
// Every function is a pure computation over cleaned articles; counts are
// ordered by descending frequency with ties kept in first-seen order.
package aggregate

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/research-charts/pkg/types"
)

// MissingAuthors is the placeholder some sources write when no author was found.
const MissingAuthors = "no encontrados"

// keywordSeparator splits a keyword cell into tokens.
var keywordSeparator = regexp.MustCompile(`[;,]`)

// stopKeyword reports whether a lower-cased token carries no topical meaning.
func stopKeyword(tok string) bool {
	switch tok {
	case "keywords", "key words", "no encontradas", "introduction", "results", "conclusions", "methods":
		return true
	}
	return false
}

// counter accumulates counts and remembers first-seen order.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(label string) {
	if _, ok := c.counts[label]; !ok {
		c.order = append(c.order, label)
	}
	c.counts[label]++
}

// ranked returns the counts ordered by descending count, stable on ties.
func (c *counter) ranked() []types.Count {
	out := make([]types.Count, len(c.order))
	for i, label := range c.order {
		out[i] = types.Count{Label: label, Count: c.counts[label]}
	}
	slices.SortStableFunc(out, func(a, b types.Count) int {
		return b.Count - a.Count
	})
	return out
}

// Top returns at most n leading entries of counts.
func Top(counts []types.Count, n int) []types.Count {
	if n < 0 {
		n = 0
	}
	if len(counts) > n {
		return counts[:n]
	}
	return counts
}

// Labels returns the labels of counts in order.
func Labels(counts []types.Count) []string {
	out := make([]string, len(counts))
	for i, c := range counts {
		out[i] = c.Label
	}
	return out
}

// AreaCounts counts articles per research area.
func AreaCounts(articles []types.Article) []types.Count {
	c := newCounter()
	for _, a := range articles {
		c.add(a.ResearchArea)
	}
	return c.ranked()
}

// YearCounts counts articles per year for years after minYear, in ascending year order.
func YearCounts(articles []types.Article, minYear int) []types.YearCount {
	counts := make(map[int]int)
	for _, a := range articles {
		if a.Year > minYear {
			counts[a.Year]++
		}
	}
	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	slices.Sort(years)

	out := make([]types.YearCount, len(years))
	for i, y := range years {
		out[i] = types.YearCount{Year: y, Count: counts[y]}
	}
	return out
}

// KeywordTokens splits a keyword cell into lower-cased tokens, dropping
// stop words and tokens of two characters or fewer.
func KeywordTokens(cell string) []string {
	var out []string
	for _, part := range keywordSeparator.Split(strings.ToLower(cell), -1) {
		tok := strings.TrimSpace(part)
		if tok == "" || stopKeyword(tok) || utf8.RuneCountInString(tok) <= 2 {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// KeywordCounts counts keyword tokens across all articles with keywords.
func KeywordCounts(articles []types.Article) []types.Count {
	c := newCounter()
	for _, a := range articles {
		if !a.HasKeywords {
			continue
		}
		for _, tok := range KeywordTokens(a.Keywords) {
			c.add(tok)
		}
	}
	return c.ranked()
}

// AuthorNames splits an author cell into title-cased names. A cell holding
// only the MissingAuthors placeholder yields no names.
func AuthorNames(cell string) []string {
	lower := strings.ToLower(strings.TrimSpace(cell))
	if lower == "" || lower == MissingAuthors {
		return nil
	}
	var out []string
	for _, part := range strings.Split(lower, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		out = append(out, titleName(name))
	}
	return out
}

// titleName upper-cases the first letter of every run of letters and
// lower-cases the rest, so "o'brien j.a." becomes "O'Brien J.A.".
func titleName(name string) string {
	title := cases.Title(language.Und)
	var b strings.Builder
	b.Grow(len(name))
	for len(name) > 0 {
		i := strings.IndexFunc(name, unicode.IsLetter)
		if i < 0 {
			b.WriteString(name)
			break
		}
		b.WriteString(name[:i])
		name = name[i:]
		j := strings.IndexFunc(name, func(r rune) bool { return !unicode.IsLetter(r) })
		if j < 0 {
			j = len(name)
		}
		b.WriteString(title.String(name[:j]))
		name = name[j:]
	}
	return b.String()
}

// AuthorCounts counts publications per author name.
func AuthorCounts(articles []types.Article) []types.Count {
	c := newCounter()
	for _, a := range articles {
		if !a.HasAuthors {
			continue
		}
		for _, name := range AuthorNames(a.Authors) {
			c.add(name)
		}
	}
	return c.ranked()
}
