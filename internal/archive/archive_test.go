package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-charts/internal/aggregate"
	"github.com/pdiddy/research-charts/internal/charts"
	"github.com/pdiddy/research-charts/internal/dataset"
	"github.com/pdiddy/research-charts/pkg/types"
)

const sampleCSV = "year,research_area,keywords,authors\n" +
	"2001,neuroscience,brain;memory,Ann Lee\n" +
	"2002,immunology,t cells,\n" +
	"2003,neuroscience,cortex,Bob Stone\n" +
	"2004,plant_biology,roots,Ann Lee\n"

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(types.ArchiveConfig{Dir: filepath.Join(t.TempDir(), "archive")}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func loadCSV(t *testing.T, content string) *dataset.Dataset {
	t.Helper()
	path := filepath.Join(t.TempDir(), "articles.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	ds, err := dataset.Load(path, dataset.DefaultLabels())
	require.NoError(t, err)
	return ds
}

func TestOpenCreatesDatabase(t *testing.T) {
	store := testStore(t)
	assert.FileExists(t, filepath.Join(store.Dir(), dbFile))

	_, err := Open(types.ArchiveConfig{}, nil)
	assert.Error(t, err)
}

func TestIngest(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)
	ds := loadCSV(t, sampleCSV)
	var buf bytes.Buffer

	res, err := store.Ingest(ctx, ds, &buf)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Articles)
	assert.False(t, res.Skipped)
	assert.False(t, res.Updated)
	assert.Contains(t, buf.String(), "stored")

	counts, err := store.AreaCounts(ctx, ds.Source())
	require.NoError(t, err)
	assert.Equal(t, []types.Count{
		{Label: "Neurociencia", Count: 2},
		{Label: "Inmunología", Count: 1},
		{Label: "Biología Vegetal", Count: 1},
	}, counts)
	assert.Equal(t, aggregate.AreaCounts(ds.Articles()), counts)

	res, err = store.Ingest(ctx, ds, &buf)
	require.NoError(t, err)
	assert.True(t, res.Skipped)

	sources, err := store.Sources(ctx)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, ds.Source(), sources[0].Path)
	assert.Equal(t, 4, sources[0].Kept)
}

func TestIngestUpdatesChangedSource(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)
	ds := loadCSV(t, sampleCSV)

	_, err := store.Ingest(ctx, ds, &bytes.Buffer{})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(ds.Source(), []byte("year,research_area,keywords,authors\n2010,immunology,,\n"), 0o644))
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(ds.Source(), later, later))
	updated, err := dataset.Load(ds.Source(), dataset.DefaultLabels())
	require.NoError(t, err)

	res, err := store.Ingest(ctx, updated, &bytes.Buffer{})
	require.NoError(t, err)
	assert.True(t, res.Updated)
	assert.Equal(t, 1, res.Articles)

	counts, err := store.AreaCounts(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []types.Count{{Label: "Inmunología", Count: 1}}, counts)
}

func TestIngestWithoutSource(t *testing.T) {
	store := testStore(t)
	_, err := store.Ingest(context.Background(), dataset.New(nil), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestRecordRun(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	summary := charts.Summary{
		Rendered: 1,
		Skipped:  1,
		Failed:   1,
		Outcomes: []charts.Outcome{
			{Chart: charts.ChartKeywords, Skipped: true, Reason: "no keywords"},
			{Chart: charts.ChartDistribution, Files: []string{"out/1_distribucion_areas.png"}},
		},
		Failures: []charts.ChartFailure{{Chart: charts.ChartTimeline, Err: errors.New("disk full")}},
	}
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first, err := store.RecordRun(ctx, "articles.csv", "out", started, summary)
	require.NoError(t, err)
	second, err := store.RecordRun(ctx, "articles.csv", "out", started.Add(time.Minute), charts.Summary{})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	runs, err := store.Runs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Empty(t, runs[0].Charts)

	got := runs[1]
	assert.Equal(t, first, got.ID)
	assert.True(t, started.Equal(got.StartedAt))
	assert.Equal(t, 1, got.Failed)
	assert.Equal(t, []RunChart{
		{Chart: charts.ChartDistribution, Status: StatusRendered, Files: []string{"out/1_distribucion_areas.png"}},
		{Chart: charts.ChartTimeline, Status: StatusFailed, Reason: "disk full"},
		{Chart: charts.ChartKeywords, Status: StatusSkipped, Reason: "no keywords"},
	}, got.Charts)

	limited, err := store.Runs(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestRunsCorruptFiles(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	summary := charts.Summary{
		Rendered: 1,
		Outcomes: []charts.Outcome{{Chart: charts.ChartDistribution, Files: []string{"out/1_distribucion_areas.png"}}},
	}
	_, err := store.RecordRun(ctx, "articles.csv", "out", time.Now(), summary)
	require.NoError(t, err)

	_, err = store.db.ExecContext(ctx, `UPDATE run_charts SET files = '["out/1_dist'`)
	require.NoError(t, err)

	_, err = store.Runs(ctx, 0)
	assert.ErrorContains(t, err, "decoding files of chart distribution")
}

func TestExport(t *testing.T) {
	ds := loadCSV(t, sampleCSV)
	snap := aggregate.Compute(ds, types.DefaultChartsConfig())
	dir := t.TempDir()

	path, err := Export(dir, FormatYAML, snap)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "summary.yaml"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var fromYAML aggregate.Snapshot
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	assert.Equal(t, snap.Areas, fromYAML.Areas)

	path, err = Export(dir, FormatJSON, snap)
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	var fromJSON aggregate.Snapshot
	require.NoError(t, json.Unmarshal(data, &fromJSON))
	assert.Equal(t, snap.AuthorTopics, fromJSON.AuthorTopics)

	_, err = Export(dir, "csv", snap)
	assert.Error(t, err)
}
