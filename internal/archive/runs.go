package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/research-charts/internal/charts"
)

// Chart statuses stored per run.
const (
	StatusRendered = "rendered"
	StatusSkipped  = "skipped"
	StatusFailed   = "failed"
)

// Run is one recorded render run.
type Run struct {
	ID        string     `json:"id" yaml:"id"`
	StartedAt time.Time  `json:"started_at" yaml:"started_at"`
	Source    string     `json:"source" yaml:"source"`
	OutputDir string     `json:"output_dir" yaml:"output_dir"`
	Rendered  int        `json:"rendered" yaml:"rendered"`
	Skipped   int        `json:"skipped" yaml:"skipped"`
	Failed    int        `json:"failed" yaml:"failed"`
	Charts    []RunChart `json:"charts,omitempty" yaml:"charts,omitempty"`
}

// RunChart is the stored outcome of one chart in a run.
type RunChart struct {
	Chart  string   `json:"chart" yaml:"chart"`
	Status string   `json:"status" yaml:"status"`
	Files  []string `json:"files,omitempty" yaml:"files,omitempty"`
	Reason string   `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// RecordRun stores the outcome of a render run and returns its ID.
func (s *Store) RecordRun(ctx context.Context, source, outputDir string, started time.Time, summary charts.Summary) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, source, output_dir, rendered, skipped, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, started.UTC().Format(time.RFC3339Nano), source, outputDir,
		summary.Rendered, summary.Skipped, summary.Failed,
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_charts (run_id, chart, status, files, reason) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, rc := range runCharts(summary) {
		filesJSON, err := json.Marshal(rc.Files)
		if err != nil {
			return "", fmt.Errorf("encoding files of chart %s: %w", rc.Chart, err)
		}
		if _, err := stmt.ExecContext(ctx, id, rc.Chart, rc.Status, string(filesJSON), rc.Reason); err != nil {
			return "", fmt.Errorf("inserting chart %s: %w", rc.Chart, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	s.log.Info("run recorded", zap.String("run", id), zap.Int("charts", summary.Total()))
	return id, nil
}

// runCharts flattens a summary into per-chart rows in render order.
func runCharts(summary charts.Summary) []RunChart {
	byChart := make(map[string]RunChart, summary.Total())
	for _, o := range summary.Outcomes {
		rc := RunChart{Chart: o.Chart, Status: StatusRendered, Files: o.Files}
		if o.Skipped {
			rc.Status, rc.Reason = StatusSkipped, o.Reason
		}
		byChart[o.Chart] = rc
	}
	for _, f := range summary.Failures {
		byChart[f.Chart] = RunChart{Chart: f.Chart, Status: StatusFailed, Reason: f.Err.Error()}
	}

	var out []RunChart
	for _, name := range charts.Names() {
		if rc, ok := byChart[name]; ok {
			out = append(out, rc)
			delete(byChart, name)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(byChart)) {
		out = append(out, byChart[name])
	}
	return out
}

// Runs returns the most recent runs, newest first, with their chart
// outcomes. A limit of zero uses the store default.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, source, output_dir, rendered, skipped, failed
		 FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}

	var runs []Run
	for rows.Next() {
		var (
			r  Run
			ts string
		)
		if err := rows.Scan(&r.ID, &ts, &r.Source, &r.OutputDir, &r.Rendered, &r.Skipped, &r.Failed); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, ts)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range runs {
		rc, err := s.runCharts(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Charts = rc
	}
	return runs, nil
}

func (s *Store) runCharts(ctx context.Context, runID string) ([]RunChart, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT chart, status, files, reason FROM run_charts WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying charts of run %s: %w", runID, err)
	}
	defer rows.Close()

	var out []RunChart
	for rows.Next() {
		var (
			rc        RunChart
			filesJSON string
		)
		if err := rows.Scan(&rc.Chart, &rc.Status, &filesJSON, &rc.Reason); err != nil {
			return nil, fmt.Errorf("scanning chart: %w", err)
		}
		if err := json.Unmarshal([]byte(filesJSON), &rc.Files); err != nil {
			return nil, fmt.Errorf("decoding files of chart %s in run %s: %w", rc.Chart, runID, err)
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}
