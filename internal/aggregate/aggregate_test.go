package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-charts/internal/dataset"
	"github.com/pdiddy/research-charts/pkg/types"
)

func article(year int, area string) types.Article {
	return types.Article{Year: year, HasYear: true, ResearchArea: area, HasResearchArea: true}
}

func withKeywords(a types.Article, kw string) types.Article {
	a.Keywords, a.HasKeywords = kw, true
	return a
}

func withAuthors(a types.Article, au string) types.Article {
	a.Authors, a.HasAuthors = au, true
	return a
}

func TestAreaCounts(t *testing.T) {
	tests := []struct {
		name     string
		articles []types.Article
		want     []types.Count
	}{
		{
			name: "descending by count",
			articles: []types.Article{
				article(2000, "B"), article(2000, "A"), article(2001, "A"), article(2002, "A"),
			},
			want: []types.Count{{Label: "A", Count: 3}, {Label: "B", Count: 1}},
		},
		{
			name: "ties keep first-seen order",
			articles: []types.Article{
				article(2000, "C"), article(2000, "A"), article(2000, "B"), article(2000, "A"), article(2000, "B"),
			},
			want: []types.Count{{Label: "A", Count: 2}, {Label: "B", Count: 2}, {Label: "C", Count: 1}},
		},
		{
			name: "empty",
			want: []types.Count{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AreaCounts(tt.articles))
		})
	}
}

func TestYearCounts(t *testing.T) {
	articles := []types.Article{
		article(2005, "A"), article(1990, "A"), article(1985, "A"), article(2001, "B"), article(2005, "B"),
	}
	got := YearCounts(articles, 1990)
	assert.Equal(t, []types.YearCount{{Year: 2001, Count: 1}, {Year: 2005, Count: 2}}, got)

	assert.Empty(t, YearCounts(articles, 2010))
}

func TestKeywordTokens(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Microgravity; Bone Loss, ISS", []string{"microgravity", "bone loss", "iss"}},
		{"Keywords; results;METHODS, key words", nil},
		{"ab, abc,  ; ,x", []string{"abc"}},
		{"No encontradas", nil},
		{"ósea", []string{"ósea"}},
		{"", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KeywordTokens(tt.in), tt.in)
	}
}

func TestKeywordCounts(t *testing.T) {
	articles := []types.Article{
		withKeywords(article(2000, "A"), "spaceflight; bone"),
		withKeywords(article(2000, "A"), "Bone, muscle"),
		article(2000, "A"),
		withKeywords(article(2000, "A"), "introduction"),
	}
	want := []types.Count{
		{Label: "bone", Count: 2},
		{Label: "spaceflight", Count: 1},
		{Label: "muscle", Count: 1},
	}
	assert.Equal(t, want, KeywordCounts(articles))

	assert.Empty(t, KeywordCounts([]types.Article{article(2000, "A")}))
}

func TestAuthorNames(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"smith j, DOE A", []string{"Smith J", "Doe A"}},
		{"  No Encontrados  ", nil},
		{"no encontrados", nil},
		{"Ann,, Bob ,", []string{"Ann", "Bob"}},
		{"smith j.a.", []string{"Smith J.A."}},
		{"o'brien k", []string{"O'Brien K"}},
		{"garcía-lópez m, mcdonald 3rd", []string{"García-López M", "Mcdonald 3Rd"}},
		{"", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AuthorNames(tt.in), tt.in)
	}
}

func TestAuthorCounts(t *testing.T) {
	articles := []types.Article{
		withAuthors(article(2000, "A"), "Smith, Doe"),
		withAuthors(article(2000, "A"), "NO ENCONTRADOS"),
		withAuthors(article(2000, "B"), "doe"),
		article(2000, "B"),
	}
	want := []types.Count{{Label: "Doe", Count: 2}, {Label: "Smith", Count: 1}}
	assert.Equal(t, want, AuthorCounts(articles))

	only := []types.Article{withAuthors(article(2000, "A"), " no encontrados ")}
	assert.Empty(t, AuthorCounts(only))
}

func TestAreaEvolution(t *testing.T) {
	articles := []types.Article{
		article(2001, "Zeta"), article(2001, "Alpha"), article(2003, "Alpha"),
		article(2003, "Zeta"), article(2003, "Zeta"), article(2002, "Rare"),
	}
	e := AreaEvolution(articles, 2)
	require.False(t, e.Empty())
	assert.Equal(t, []int{2001, 2003}, e.Years)
	assert.Equal(t, []string{"Alpha", "Zeta"}, e.Areas)
	assert.Equal(t, [][]int{{1, 1}, {1, 2}}, e.Counts)
	assert.Equal(t, []int{2, 3}, e.Totals())

	assert.True(t, AreaEvolution(nil, 7).Empty())
}

func TestAuthorTopics(t *testing.T) {
	articles := []types.Article{
		withAuthors(article(2000, "Bio"), "ann, bob"),
		withAuthors(article(2001, "Bio"), "Ann"),
		withAuthors(article(2002, "Geo"), "Ann, Cy"),
		withAuthors(article(2002, "Geo"), "no encontrados"),
		article(2002, "Geo"),
	}
	got := AuthorTopics(articles, 2)
	want := []types.AuthorTopic{
		{Author: "Ann", Topic: "Bio", Publications: 2},
		{Author: "Ann", Topic: "Geo", Publications: 1},
		{Author: "Bob", Topic: "Bio", Publications: 1},
	}
	assert.Equal(t, want, got)

	assert.Empty(t, AuthorTopics([]types.Article{article(2000, "A")}, 15))
}

func TestTop(t *testing.T) {
	counts := []types.Count{{Label: "a", Count: 3}, {Label: "b", Count: 2}, {Label: "c", Count: 1}}
	assert.Len(t, Top(counts, 2), 2)
	assert.Len(t, Top(counts, 10), 3)
	assert.Empty(t, Top(counts, -1))
	assert.Equal(t, []string{"a", "b", "c"}, Labels(counts))
}

func TestCompute(t *testing.T) {
	ds := dataset.New([]types.Article{
		withKeywords(withAuthors(article(2001, "A"), "Ann"), "bone"),
		withKeywords(withAuthors(article(2002, "B"), "Ann, Bob"), "bone; muscle"),
	})
	cfg := types.DefaultChartsConfig()
	cfg.TopKeywords = 1

	s := Compute(ds, cfg)
	assert.Equal(t, 2, s.Stats.Kept)
	assert.Len(t, s.Areas, 2)
	assert.Len(t, s.Years, 2)
	assert.Equal(t, []types.Count{{Label: "bone", Count: 2}}, s.Keywords)
	assert.Equal(t, []types.Count{{Label: "Ann", Count: 2}, {Label: "Bob", Count: 1}}, s.Authors)
	assert.Len(t, s.AuthorTopics, 3)
	assert.Equal(t, []string{"A", "B"}, s.Evolution.Areas)
}
