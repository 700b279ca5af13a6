package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// table is a header row plus data rows. Rows may be shorter than the header.
type table struct {
	header []string
	rows   [][]string
}

// readTable reads a delimited or spreadsheet file selected by extension.
func readTable(path string) (*table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readXLSX(path)
	case ".tsv", ".tab":
		return readDelimited(path, '\t')
	default:
		return readDelimited(path, ',')
	}
}

func readDelimited(path string, comma rune) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	// Spreadsheet exports often start with a UTF-8 or UTF-16 BOM.
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	r := csv.NewReader(transform.NewReader(f, dec))
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("reading %s: no header row", path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	t := &table{header: header}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

func readXLSX(path string) (*table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q of %s: %w", sheet, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("reading %s: no header row", path)
	}
	return &table{header: rows[0], rows: rows[1:]}, nil
}

// columns resolves the index of each named column, ignoring case and
// surrounding whitespace.
func (t *table) columns(names ...string) (map[string]int, error) {
	idx := make(map[string]int, len(names))
	for i, h := range t.header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, seen := idx[key]; !seen {
			idx[key] = i
		}
	}
	out := make(map[string]int, len(names))
	var missing []string
	for _, n := range names {
		i, ok := idx[n]
		if !ok {
			missing = append(missing, n)
			continue
		}
		out[n] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required column(s): %s", strings.Join(missing, ", "))
	}
	return out, nil
}

// cell returns the value at column i of row, and false when the cell is
// absent or holds one of the usual missing-value markers.
func cell(row []string, i int) (string, bool) {
	if i >= len(row) {
		return "", false
	}
	v := row[i]
	if isMissing(v) {
		return "", false
	}
	return v, true
}

// isMissing matches the tokens spreadsheet and dataframe tools write for
// missing values. Matching is exact: a cell of blanks is a value.
func isMissing(v string) bool {
	switch v {
	case "", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
		"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None", "n/a", "nan", "null":
		return true
	}
	return false
}
