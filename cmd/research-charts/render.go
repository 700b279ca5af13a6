package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/research-charts/internal/archive"
	"github.com/pdiddy/research-charts/internal/charts"
	"github.com/pdiddy/research-charts/internal/dataset"
	"github.com/pdiddy/research-charts/pkg/types"
)

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := chartsConfig()
	if err != nil {
		return err
	}
	only, _ := cmd.Flags().GetStringSlice("only")
	record, _ := cmd.Flags().GetBool("archive")

	ds, err := loadDataset(cfg.InputPath, os.Stdout)
	if err != nil {
		return err
	}

	started := time.Now()
	summary, err := charts.Run(cmd.Context(), ds, cfg, charts.Options{Only: only}, os.Stdout, logger)
	if err != nil {
		return err
	}

	logger.Debug("render finished", zap.Strings("files", summary.Files()), zap.Int("failed", summary.Failed))

	if record {
		if err := recordRun(cmd, ds, cfg, started, summary); err != nil {
			return err
		}
	}

	if summary.HasFailures() {
		return fmt.Errorf("%d chart(s) failed: %w", summary.Failed, summary.Err())
	}
	return nil
}

// loadDataset loads and cleans the article table at path, reporting the
// outcome on w. A missing file is reported and returned as-is.
func loadDataset(path string, w io.Writer) (*dataset.Dataset, error) {
	ds, err := dataset.Load(path, dataset.DefaultLabels())
	if errors.Is(err, dataset.ErrNotFound) {
		fmt.Fprintf(w, "Error: file '%s' not found.\n", path)
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	st := ds.Stats()
	fmt.Fprintf(w, "Loaded %s: %d rows, %d kept (%d without a usable year, %d without a usable area).\n",
		path, st.Rows, st.Kept, st.DroppedYear, st.DroppedArea)
	logger.Debug("dataset loaded",
		zap.String("source", path),
		zap.Int("rows", st.Rows),
		zap.Int("kept", st.Kept),
		zap.Int("relabeled", st.Relabeled))
	return ds, nil
}

func recordRun(cmd *cobra.Command, ds *dataset.Dataset, cfg types.ChartsConfig, started time.Time, summary charts.Summary) error {
	store, err := archive.Open(archiveConfig(), logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.Ingest(cmd.Context(), ds, os.Stdout); err != nil {
		return err
	}
	id, err := store.RecordRun(cmd.Context(), ds.Source(), cfg.OutputDir, started, summary)
	if err != nil {
		return err
	}
	fmt.Printf("Recorded run %s in %s\n", id, store.Dir())
	return nil
}
