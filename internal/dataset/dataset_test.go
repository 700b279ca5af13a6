// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/research-charts/pkg/types"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func areas(d *Dataset) []string {
	var out []string
	for _, a := range d.Articles() {
		out = append(out, a.ResearchArea)
	}
	return out
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantAreas []string
		wantYears []int
		wantStats Stats
	}{
		{
			name: "drops non-numeric and missing years",
			content: "year,research_area,keywords,authors\n" +
				"2001,neuroscience,a;b,Ann\n" +
				"abc,neuroscience,,\n" +
				",neuroscience,,\n" +
				"2003.7,immunology,,\n",
			wantAreas: []string{"Neurociencia", "Inmunología"},
			wantYears: []int{2001, 2003},
			wantStats: Stats{Rows: 4, DroppedYear: 2, Relabeled: 2, Kept: 2},
		},
		{
			name: "drops missing and excluded areas",
			content: "year,research_area,keywords,authors\n" +
				"2001,,k,a\n" +
				"2002,Error,k,a\n" +
				"2003,unclassified,k,a\n" +
				"2004,NaN,k,a\n" +
				"2005,plant_biology,k,a\n",
			wantAreas: []string{"Biología Vegetal"},
			wantYears: []int{2005},
			wantStats: Stats{Rows: 5, DroppedArea: 4, Relabeled: 1, Kept: 1},
		},
		{
			name: "unmapped codes pass through",
			content: "year,research_area,keywords,authors\n" +
				"2010,astrobiology,k,a\n" +
				"2011,cell_biology,k,a\n",
			wantAreas: []string{"astrobiology", "Biología Celular"},
			wantYears: []int{2010, 2011},
			wantStats: Stats{Rows: 2, Relabeled: 1, Kept: 2},
		},
		{
			name: "column order and extra columns do not matter",
			content: "title,authors,keywords,research_area,year\n" +
				"T,\"Doe, J\",x,microbiome,2020\n",
			wantAreas: []string{"Microbioma"},
			wantYears: []int{2020},
			wantStats: Stats{Rows: 1, Relabeled: 1, Kept: 1},
		},
		{
			name:      "header only",
			content:   "year,research_area,keywords,authors\n",
			wantStats: Stats{},
		},
		{
			name:      "byte order mark before header",
			content:   "\ufeffyear,research_area,keywords,authors\n1999,other,,\n",
			wantAreas: []string{"Otra"},
			wantYears: []int{1999},
			wantStats: Stats{Rows: 1, Relabeled: 1, Kept: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, t.TempDir(), "articles.csv", tt.content)
			d, err := Load(path, DefaultLabels())
			require.NoError(t, err)

			assert.Equal(t, tt.wantAreas, areas(d))
			var years []int
			for _, a := range d.Articles() {
				years = append(years, a.Year)
				assert.True(t, a.HasYear)
			}
			assert.Equal(t, tt.wantYears, years)
			assert.Equal(t, tt.wantStats, d.Stats())
			assert.Equal(t, path, d.Source())
		})
	}
}

func TestLoadNotFound(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.csv"), DefaultLabels())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Load(dir, DefaultLabels())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadMissingColumn(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "articles.csv", "year,keywords\n2001,x\n")
	_, err := Load(path, DefaultLabels())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "research_area")
	assert.Contains(t, err.Error(), "authors")
}

func TestLoadBlankCells(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "articles.csv",
		"year,research_area,keywords,authors\n"+
			"2001,   ,brain,Smith\n"+
			"2002,neuroscience, NA ,\n"+
			"  ,neuroscience,,\n")
	d, err := Load(path, DefaultLabels())
	require.NoError(t, err)
	assert.Equal(t, []string{"   ", "Neurociencia"}, areas(d))

	second := d.Articles()[1]
	assert.True(t, second.HasKeywords)
	assert.Equal(t, " NA ", second.Keywords)
	assert.False(t, second.HasAuthors)
	assert.Equal(t, 1, d.Stats().DroppedYear)
}

func TestLoadTSV(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "articles.tsv",
		"year\tresearch_area\tkeywords\tauthors\n2015\tneuroscience\tbrain, sleep\tA, B\n")
	d, err := Load(path, DefaultLabels())
	require.NoError(t, err)
	require.Equal(t, 1, d.Len())
	a := d.Articles()[0]
	assert.Equal(t, "brain, sleep", a.Keywords)
	assert.Equal(t, "A, B", a.Authors)
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"year", "research_area", "keywords", "authors"},
		{2018, "bone_health", "bone", "Smith"},
		{"n/a", "bone_health", "bone", "Smith"},
		{2019, "unclassified", "", ""},
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}
	path := filepath.Join(t.TempDir(), "articles.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	d, err := Load(path, DefaultLabels())
	require.NoError(t, err)
	assert.Equal(t, []string{"Salud Ósea"}, areas(d))
	assert.Equal(t, 2018, d.Articles()[0].Year)
}

func TestCleanDoesNotModifyInput(t *testing.T) {
	raw := []types.Article{
		{Year: 2000, HasYear: true, ResearchArea: "immunology", HasResearchArea: true},
	}
	out, _ := Clean(raw, DefaultLabels())
	assert.Equal(t, "Inmunología", out[0].ResearchArea)
	assert.Equal(t, "immunology", raw[0].ResearchArea)
}

func TestDatasetIsReadOnly(t *testing.T) {
	d := New([]types.Article{{Year: 2000, HasYear: true, ResearchArea: "A", HasResearchArea: true}})
	got := d.Articles()
	got[0].ResearchArea = "changed"
	assert.Equal(t, "A", d.Articles()[0].ResearchArea)
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"2001", 2001, true},
		{" 2001 ", 2001, true},
		{"2001.9", 2001, true},
		{"1e3", 1000, true},
		{"abc", 0, false},
		{"inf", 0, false},
		{"NaN", 0, false},
		{"1e20", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseYear(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestDefaultLabels(t *testing.T) {
	l := DefaultLabels()
	assert.Equal(t, 22, l.Len())
	assert.Equal(t, "Sistema Cardiovascular", l.Label("cardiovascular_system"))
	assert.Equal(t, "not_a_code", l.Label("not_a_code"))

	m := l.Map()
	m["neuroscience"] = "changed"
	assert.Equal(t, "Neurociencia", DefaultLabels().Label("neuroscience"))
}

func TestParseLabelsRejectsEmpty(t *testing.T) {
	_, err := ParseLabels([]byte("a: \"\"\n"))
	assert.Error(t, err)

	var zero Labels
	assert.Equal(t, "x", zero.Label("x"))
}
