// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package charts renders the article charts as PNG files. Each chart is a
// Renderer method that reads a cleaned dataset and either writes its files
// or reports a skip when its aggregate is empty. Run drives them in order.
package charts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/research-charts/internal/dataset"
	"github.com/pdiddy/research-charts/pkg/types"
)

// ErrUnknownChart is returned when a chart selection names no known chart.
var ErrUnknownChart = errors.New("unknown chart")

// transform renders one chart into outDir.
type transform func(r *Renderer, ds *dataset.Dataset, outDir string) (Outcome, error)

type step struct {
	name    string
	message string
	run     transform
}

// steps lists the charts in render order.
var steps = []step{
	{ChartDistribution, "Chart 1: research area distribution", (*Renderer).Distribution},
	{ChartTimeline, "Chart 2: publications over time", (*Renderer).Timeline},
	{ChartKeywords, "Chart 3: frequent keywords", (*Renderer).Keywords},
	{ChartEvolution, "Chart 4: research area evolution", (*Renderer).Evolution},
	{ChartAuthors, "Chart 5: most prolific authors", (*Renderer).Authors},
	{ChartSpecialization, "Chart 6: author specialization (bubbles)", (*Renderer).Specialization},
}

// Names returns the chart names in render order.
func Names() []string {
	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.name
	}
	return names
}

// ChartFailure records a chart that returned an error.
type ChartFailure struct {
	Chart string
	Err   error
}

// Summary holds the outcome of a render run.
type Summary struct {
	Rendered int
	Skipped  int
	Failed   int
	Outcomes []Outcome
	Failures []ChartFailure
}

// Total returns the number of charts attempted.
func (s Summary) Total() int {
	return s.Rendered + s.Skipped + s.Failed
}

// HasFailures reports whether any chart failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Err joins the chart failures, or returns nil.
func (s Summary) Err() error {
	errs := make([]error, len(s.Failures))
	for i, f := range s.Failures {
		errs[i] = fmt.Errorf("%s: %w", f.Chart, f.Err)
	}
	return errors.Join(errs...)
}

// Files returns every file written during the run.
func (s Summary) Files() []string {
	var files []string
	for _, o := range s.Outcomes {
		files = append(files, o.Files...)
	}
	return files
}

// Options selects which charts Run renders. An empty Only renders all.
type Options struct {
	Only []string
}

func (o Options) selected() (map[string]bool, error) {
	if len(o.Only) == 0 {
		return nil, nil
	}
	known := Names()
	sel := make(map[string]bool, len(o.Only))
	var unknown []string
	for _, name := range o.Only {
		name = strings.ToLower(strings.TrimSpace(name))
		if !slices.Contains(known, name) {
			unknown = append(unknown, name)
			continue
		}
		sel[name] = true
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s (known: %s)", ErrUnknownChart, strings.Join(unknown, ", "), strings.Join(known, ", "))
	}
	return sel, nil
}

// Run renders the selected charts of ds into cfg.OutputDir, one at a time in
// the fixed order, printing a status line before each. A chart that fails is
// recorded and the run continues with the next one. Run returns an error
// only when the run cannot start or ctx is cancelled; chart failures are
// reported through the Summary.
func Run(ctx context.Context, ds *dataset.Dataset, cfg types.ChartsConfig, opts Options, w io.Writer, log *zap.Logger) (Summary, error) {
	var summary Summary
	if err := cfg.Validate(); err != nil {
		return summary, err
	}
	sel, err := opts.selected()
	if err != nil {
		return summary, err
	}
	if err := ensureDir(cfg.OutputDir, w); err != nil {
		return summary, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	r := NewRenderer(cfg)
	for _, s := range steps {
		if sel != nil && !sel[s.name] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("render cancelled before %s: %w", s.name, err)
		}

		fmt.Fprintf(w, "Generating %s...\n", s.message)
		log.Debug("rendering chart", zap.String("chart", s.name), zap.Int("articles", ds.Len()))

		out, err := s.run(r, ds, cfg.OutputDir)
		switch {
		case err != nil:
			fmt.Fprintf(w, "failed:  %s (%v)\n", s.name, err)
			log.Error("chart failed", zap.String("chart", s.name), zap.Error(err))
			summary.Failed++
			summary.Failures = append(summary.Failures, ChartFailure{Chart: s.name, Err: err})
		case out.Skipped:
			fmt.Fprintf(w, "Warning: skipped %s (%s)\n", s.name, out.Reason)
			log.Info("chart skipped", zap.String("chart", s.name), zap.String("reason", out.Reason))
			summary.Skipped++
			summary.Outcomes = append(summary.Outcomes, out)
		default:
			log.Info("chart rendered", zap.String("chart", s.name), zap.Strings("files", out.Files))
			summary.Rendered++
			summary.Outcomes = append(summary.Outcomes, out)
		}
	}

	fmt.Fprintf(w, "\nRender summary: %d rendered, %d skipped, %d failed (total: %d)\n",
		summary.Rendered, summary.Skipped, summary.Failed, summary.Total())
	if !summary.HasFailures() {
		fmt.Fprintf(w, "All charts have been generated and saved to %s.\n", cfg.OutputDir)
	}
	return summary, nil
}

// ensureDir creates dir when it does not exist, reporting the creation on w.
func ensureDir(dir string, w io.Writer) error {
	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return fmt.Errorf("output path %s is not a directory", dir)
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("checking output directory %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	fmt.Fprintf(w, "Directory '%s' created.\n", dir)
	return nil
}
