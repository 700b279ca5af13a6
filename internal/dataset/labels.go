package dataset

import (
	_ "embed"
	"fmt"
	"maps"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed labels.yaml
var labelsYAML []byte

// Labels maps research-area codes to display labels. The zero value maps nothing.
type Labels struct {
	m map[string]string
}

// ParseLabels reads a flat YAML mapping of code to label.
func ParseLabels(data []byte) (Labels, error) {
	var m map[string]string
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Labels{}, fmt.Errorf("parsing labels: %w", err)
	}
	for code, label := range m {
		if code == "" || label == "" {
			return Labels{}, fmt.Errorf("parsing labels: empty code or label in %q: %q", code, label)
		}
	}
	return Labels{m: m}, nil
}

var defaultLabels = sync.OnceValue(func() Labels {
	l, err := ParseLabels(labelsYAML)
	if err != nil {
		panic(err)
	}
	return l
})

// DefaultLabels returns the built-in research-area label table.
func DefaultLabels() Labels {
	return defaultLabels()
}

// Label returns the display label for code, or code itself when unmapped.
func (l Labels) Label(code string) string {
	if label, ok := l.m[code]; ok {
		return label
	}
	return code
}

// Has reports whether code has a label.
func (l Labels) Has(code string) bool {
	_, ok := l.m[code]
	return ok
}

// Len returns the number of mapped codes.
func (l Labels) Len() int {
	return len(l.m)
}

// Map returns a copy of the table.
func (l Labels) Map() map[string]string {
	return maps.Clone(l.m)
}
