// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-charts/internal/aggregate"
)

// Export formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

const exportBase = "summary"

// Export writes snap to dir/summary.<format> and returns the path written.
func Export(dir, format string, snap aggregate.Snapshot) (string, error) {
	switch format {
	case FormatYAML:
		return ExportYAML(dir, snap)
	case FormatJSON:
		return ExportJSON(dir, snap)
	default:
		return "", fmt.Errorf("unsupported export format %q (want %s or %s)", format, FormatYAML, FormatJSON)
	}
}

// ExportYAML writes snap to dir/summary.yaml.
func ExportYAML(dir string, snap aggregate.Snapshot) (string, error) {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return writeExport(dir, FormatYAML, data)
}

// ExportJSON writes snap to dir/summary.json.
func ExportJSON(dir string, snap aggregate.Snapshot) (string, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return writeExport(dir, FormatJSON, data)
}

func writeExport(dir, ext string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(dir, exportBase+"."+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
