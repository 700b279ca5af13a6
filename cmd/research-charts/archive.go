// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-charts/internal/archive"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage the SQLite archive of articles and runs (store, runs, areas, sources)",
	Long: `Archive keeps cleaned articles and render runs in a local SQLite
database. Use subcommands to store the current table, list recorded runs,
or count articles per research area.`,
}

// --- store subcommand ---

var archiveStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Store the cleaned article table in the archive",
	Long: `Store loads and cleans the article table and writes its articles to
the archive. A table whose file has not changed since the last store is
skipped.`,
	RunE: runArchiveStore,
}

func runArchiveStore(cmd *cobra.Command, args []string) error {
	cfg, err := chartsConfig()
	if err != nil {
		return err
	}
	ds, err := loadDataset(cfg.InputPath, os.Stdout)
	if err != nil {
		return err
	}

	store, err := archive.Open(archiveConfig(), logger)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Ingest(cmd.Context(), ds, os.Stdout)
	return err
}

// --- runs subcommand ---

var archiveRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded render runs, newest first",
	RunE:  runArchiveRuns,
}

func runArchiveRuns(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := archive.Open(archiveConfig(), logger)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Runs(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-8s  %-7s  %-6s  %s\n",
		"Run", "Started", "Rendered", "Skipped", "Failed", "Source")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, r := range runs {
		fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-8d  %-7d  %-6d  %s\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime), r.Rendered, r.Skipped, r.Failed, r.Source)
	}
	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
	return nil
}

// --- areas subcommand ---

var archiveAreasCmd = &cobra.Command{
	Use:   "areas",
	Short: "Count archived articles per research area",
	Long: `Areas counts the archived articles per research area, most frequent
first. Use --source to restrict the count to one stored table.`,
	RunE: runArchiveAreas,
}

func runArchiveAreas(cmd *cobra.Command, args []string) error {
	source, _ := cmd.Flags().GetString("source")

	store, err := archive.Open(archiveConfig(), logger)
	if err != nil {
		return err
	}
	defer store.Close()

	counts, err := store.AreaCounts(cmd.Context(), source)
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		fmt.Println("No articles archived.")
		return nil
	}
	printCounts(os.Stdout, "Research areas", counts)
	return nil
}

// --- sources subcommand ---

var archiveSourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the article tables stored in the archive",
	RunE:  runArchiveSources,
}

func runArchiveSources(cmd *cobra.Command, args []string) error {
	store, err := archive.Open(archiveConfig(), logger)
	if err != nil {
		return err
	}
	defer store.Close()

	sources, err := store.Sources(cmd.Context())
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		fmt.Println("No tables stored.")
		return nil
	}
	for _, src := range sources {
		fmt.Printf("%s  %d rows, %d kept, stored %s\n",
			src.Path, src.Rows, src.Kept, src.IngestedAt.Local().Format(time.DateTime))
	}
	return nil
}

func init() {
	archiveRunsCmd.Flags().Int("limit", 0, "maximum runs to list (default from archive.max_results)")
	archiveRunsCmd.Flags().Bool("json", false, "output as JSON")
	archiveAreasCmd.Flags().String("source", "", "restrict to one stored table path")

	archiveCmd.AddCommand(archiveStoreCmd)
	archiveCmd.AddCommand(archiveRunsCmd)
	archiveCmd.AddCommand(archiveAreasCmd)
	archiveCmd.AddCommand(archiveSourcesCmd)
	rootCmd.AddCommand(archiveCmd)
}
