// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the research-charts CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/research-charts/internal/dataset"
	"github.com/pdiddy/research-charts/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in PersistentPreRunE from --verbose.
var logger = zap.NewNop()

// rootCmd renders every chart when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "research-charts",
	Short: "Render exploratory charts from a research-article table",
	Long: `research-charts loads a table of research articles (year, research area,
keywords, authors), cleans it, and renders six exploratory charts as PNG files:
area distribution, publications per year, keyword cloud and bars, area
evolution, most prolific authors and author specialization.

Run without arguments to read nasa_articles.csv and write the charts to
graficos_analisis/. Flags, a research-charts.yaml config file and
RESEARCH_CHARTS_* environment variables override the defaults.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := newLogger(verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	RunE: runRender,
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := types.DefaultChartsConfig()
	archiveDefaults := types.DefaultArchiveConfig()

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./research-charts.yaml or ~/.config/research-charts/config.yaml)")
	pf.BoolP("verbose", "v", false, "enable debug logging on stderr")
	pf.StringP("input", "i", defaults.InputPath, "article table (.csv, .tsv or .xlsx)")
	pf.StringP("output-dir", "o", defaults.OutputDir, "directory receiving the chart files")
	pf.String("archive-dir", archiveDefaults.Dir, "directory holding the SQLite archive")

	f := rootCmd.Flags()
	f.Int("dpi", defaults.DPI, "raster resolution of the charts")
	f.Int("min-year", defaults.MinYear, "only years after this one appear in the time-series chart")
	f.StringSlice("only", nil, "render only these charts (distribution, timeline, keywords, evolution, authors, specialization)")
	f.Bool("archive", false, "store the dataset and record the run in the archive")

	bindFlag("input", pf.Lookup("input"))
	bindFlag("output_dir", pf.Lookup("output-dir"))
	bindFlag("archive.dir", pf.Lookup("archive-dir"))
	bindFlag("dpi", f.Lookup("dpi"))
	bindFlag("min_year", f.Lookup("min-year"))

	viper.SetDefault("top_keywords", defaults.TopKeywords)
	viper.SetDefault("max_cloud_words", defaults.MaxCloudWords)
	viper.SetDefault("top_areas", defaults.TopAreas)
	viper.SetDefault("top_authors", defaults.TopAuthors)
	viper.SetDefault("top_bubble_authors", defaults.TopBubbleAuthors)
	viper.SetDefault("archive.max_results", archiveDefaults.MaxResults)
}

func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", key, err))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("research-charts")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "research-charts"))
		}
	}

	viper.SetEnvPrefix("RESEARCH_CHARTS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// chartsConfig resolves the chart settings from defaults, config file,
// environment and flags.
func chartsConfig() (types.ChartsConfig, error) {
	cfg := types.DefaultChartsConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	return cfg, cfg.Validate()
}

// archiveConfig resolves the archive settings.
func archiveConfig() types.ArchiveConfig {
	return types.ArchiveConfig{
		Dir:        viper.GetString("archive.dir"),
		MaxResults: viper.GetInt("archive.max_results"),
	}
}

// newLogger builds the diagnostic logger. It writes console-encoded entries
// to stderr at warn level, or debug level when verbose.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return l, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logger.Sync()
	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints err once. A missing input table has already been
// reported by loadDataset.
func reportError(w io.Writer, err error) {
	if errors.Is(err, dataset.ErrNotFound) {
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
