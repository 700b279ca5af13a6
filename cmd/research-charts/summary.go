package main

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-charts/internal/aggregate"
	"github.com/pdiddy/research-charts/internal/archive"
	"github.com/pdiddy/research-charts/internal/dataset"
	"github.com/pdiddy/research-charts/pkg/types"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the aggregates behind the charts",
	Long: `Summary loads and cleans the article table and prints the aggregates
each chart is drawn from: area counts, publications per year, top keywords,
top authors and author specialization. With --format it writes them to
summary.yaml or summary.json in the output directory instead.`,
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().String("format", "", "write an export file instead of printing (yaml or json)")
	summaryCmd.Flags().Bool("labels", false, "print the research-area label table and exit")

	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	if showLabels, _ := cmd.Flags().GetBool("labels"); showLabels {
		printLabels(os.Stdout, dataset.DefaultLabels())
		return nil
	}

	cfg, err := chartsConfig()
	if err != nil {
		return err
	}
	ds, err := loadDataset(cfg.InputPath, os.Stdout)
	if err != nil {
		return err
	}
	snap := aggregate.Compute(ds, cfg)

	format, _ := cmd.Flags().GetString("format")
	if format != "" {
		path, err := archive.Export(cfg.OutputDir, strings.ToLower(format), snap)
		if err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", path)
		return nil
	}

	printSnapshot(os.Stdout, snap)
	return nil
}

func printSnapshot(w io.Writer, snap aggregate.Snapshot) {
	printCounts(w, "Research areas", snap.Areas)

	years := make([]types.Count, len(snap.Years))
	for i, y := range snap.Years {
		years[i] = types.Count{Label: strconv.Itoa(y.Year), Count: y.Count}
	}
	printCounts(w, "Publications per year", years)
	printCounts(w, "Top keywords", snap.Keywords)
	printEvolution(w, snap.Evolution)
	printCounts(w, "Top authors", snap.Authors)

	fmt.Fprintf(w, "\nAuthor specialization\n%s\n", strings.Repeat("-", 21))
	if len(snap.AuthorTopics) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, at := range snap.AuthorTopics {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", at.Author, at.Topic, at.Publications)
	}
	tw.Flush()
}

func printCounts(w io.Writer, title string, counts []types.Count) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
	if len(counts) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range counts {
		fmt.Fprintf(tw, "%s\t%d\n", c.Label, c.Count)
	}
	tw.Flush()
}

func printEvolution(w io.Writer, evo *aggregate.Evolution) {
	title := "Top area evolution"
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
	if evo.Empty() {
		fmt.Fprintln(w, "(none)")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "year")
	for _, area := range evo.Areas {
		fmt.Fprintf(tw, "\t%s", area)
	}
	fmt.Fprint(tw, "\ttotal\n")
	totals := evo.Totals()
	for j, year := range evo.Years {
		fmt.Fprintf(tw, "%d", year)
		for i := range evo.Areas {
			fmt.Fprintf(tw, "\t%d", evo.Counts[i][j])
		}
		fmt.Fprintf(tw, "\t%d\n", totals[j])
	}
	tw.Flush()
}

func printLabels(w io.Writer, labels dataset.Labels) {
	m := labels.Map()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, code := range slices.Sorted(maps.Keys(m)) {
		fmt.Fprintf(tw, "%s\t%s\n", code, m[code])
	}
	tw.Flush()
}
