package types

import (
	"errors"
	"fmt"
)

// ChartsConfig holds settings for loading the article table and rendering charts.
type ChartsConfig struct {
	// InputPath is the article table to read (.csv, .tsv or .xlsx).
	InputPath string `json:"input" yaml:"input" mapstructure:"input"`

	// OutputDir receives the rendered PNG files. Created if absent.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// DPI is the raster resolution of every chart (default 300).
	DPI int `json:"dpi" yaml:"dpi" mapstructure:"dpi"`

	// MinYear excludes years at or below it from the time-series chart (default 1990).
	MinYear int `json:"min_year" yaml:"min_year" mapstructure:"min_year"`

	// TopKeywords is the number of bars in the keyword chart (default 25).
	TopKeywords int `json:"top_keywords" yaml:"top_keywords" mapstructure:"top_keywords"`

	// MaxCloudWords caps the words placed in the word cloud (default 200).
	MaxCloudWords int `json:"max_cloud_words" yaml:"max_cloud_words" mapstructure:"max_cloud_words"`

	// TopAreas is the number of research areas in the evolution chart (default 7).
	TopAreas int `json:"top_areas" yaml:"top_areas" mapstructure:"top_areas"`

	// TopAuthors is the number of bars in the author chart (default 20).
	TopAuthors int `json:"top_authors" yaml:"top_authors" mapstructure:"top_authors"`

	// TopBubbleAuthors is the number of authors in the specialization chart (default 15).
	TopBubbleAuthors int `json:"top_bubble_authors" yaml:"top_bubble_authors" mapstructure:"top_bubble_authors"`
}

// DefaultChartsConfig returns the settings used when nothing is overridden.
func DefaultChartsConfig() ChartsConfig {
	return ChartsConfig{
		InputPath:        "nasa_articles.csv",
		OutputDir:        "graficos_analisis",
		DPI:              300,
		MinYear:          1990,
		TopKeywords:      25,
		MaxCloudWords:    200,
		TopAreas:         7,
		TopAuthors:       20,
		TopBubbleAuthors: 15,
	}
}

// Validate reports every invalid setting at once.
func (c ChartsConfig) Validate() error {
	var errs []error
	if c.InputPath == "" {
		errs = append(errs, errors.New("input path is empty"))
	}
	if c.OutputDir == "" {
		errs = append(errs, errors.New("output directory is empty"))
	}
	if c.DPI <= 0 {
		errs = append(errs, fmt.Errorf("invalid dpi %d: must be positive", c.DPI))
	}
	for name, v := range map[string]int{
		"top_keywords":       c.TopKeywords,
		"max_cloud_words":    c.MaxCloudWords,
		"top_areas":          c.TopAreas,
		"top_authors":        c.TopAuthors,
		"top_bubble_authors": c.TopBubbleAuthors,
	} {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("invalid %s %d: must be positive", name, v))
		}
	}
	return errors.Join(errs...)
}

// ArchiveConfig holds settings for the SQLite archive of articles and runs.
type ArchiveConfig struct {
	// Dir is the directory holding the archive database and exports.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults bounds listing queries such as recent runs (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// DefaultArchiveConfig returns the archive settings used when nothing is overridden.
func DefaultArchiveConfig() ArchiveConfig {
	return ArchiveConfig{Dir: "archive", MaxResults: 20}
}
