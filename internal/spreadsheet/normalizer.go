// Package spreadsheet ingests bulk recipient uploads: CSV or xlsx files
// with arbitrary column headers, normalized into canonical fields with
// flexible date and email handling.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/proofdeck/proofdeck-api/type/shared"
	"github.com/xuri/excelize/v2"
)

// Row is one normalized data row. Number is the row's position in the
// uploaded file counting the header as row 1, so the first data row is
// 2 — matching what the issuer sees in their spreadsheet program.
type Row struct {
	Number int
	Fields map[string]string
	Extras *shared.OrderedFields
}

// Get returns the trimmed value of a canonical column.
func (r Row) Get(canonical string) string {
	return r.Fields[canonical]
}

// Table is a fully normalized upload.
type Table struct {
	Columns []string
	Rows    []Row
}

// Read parses an uploaded tabular file and normalizes its headers. It
// fails outright when the file cannot be parsed, is empty, or is
// missing required columns; per-row problems (bad dates, blank fields)
// are left for the batch coordinator to report row by row.
func Read(reader io.Reader, filename string) (*Table, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("the uploaded file is empty or unreadable")
	}

	var records [][]string
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx", ".xlsm":
		records, err = readExcel(data)
	case ".xls", ".ods":
		return nil, fmt.Errorf("legacy %s files are not supported, please re-export as XLSX or CSV", ext)
	default:
		records, err = readCSV(data)
	}
	if err != nil {
		return nil, err
	}

	return normalize(records)
}

func readCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = detectDelimiter(data)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading file, please ensure it is a valid CSV: %w", err)
	}
	return records, nil
}

func readExcel(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error reading file, please ensure it is a valid spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("the uploaded spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// detectDelimiter picks the most frequent candidate separator on the
// header line, defaulting to a comma.
func detectDelimiter(data []byte) rune {
	line, _, _ := bytes.Cut(data, []byte("\n"))
	best, bestCount := ',', 0
	for _, candidate := range []rune{',', ';', '\t', '|'} {
		if n := bytes.Count(line, []byte(string(candidate))); n > bestCount {
			best, bestCount = candidate, n
		}
	}
	return best
}

func normalize(records [][]string) (*Table, error) {
	// Skip leading fully-empty rows before the header.
	headerIdx := -1
	for i, rec := range records {
		if !rowEmpty(rec) {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return nil, fmt.Errorf("the uploaded file is empty or unreadable")
	}

	type column struct {
		name      string
		canonical bool
	}
	columns := make([]column, len(records[headerIdx]))
	seen := make(map[string]bool)
	var names []string
	for i, raw := range records[headerIdx] {
		name, canonical := NormalizeHeader(raw)
		if canonical && seen[name] {
			// Two headers mapping to the same canonical field: the
			// first one wins, the duplicate passes through opaquely.
			canonical = false
		}
		seen[name] = true
		columns[i] = column{name: name, canonical: canonical}
		names = append(names, name)
	}

	var missing []string
	for _, req := range RequiredColumns {
		found := false
		for _, c := range columns {
			if c.canonical && c.name == req {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("file missing required columns: %s", strings.Join(missing, ", "))
	}

	table := &Table{Columns: names}
	for i := headerIdx + 1; i < len(records); i++ {
		rec := records[i]
		if rowEmpty(rec) {
			continue
		}

		row := Row{
			Number: i + 1,
			Fields: make(map[string]string),
			Extras: shared.NewOrderedFields(),
		}
		for j, col := range columns {
			if j >= len(rec) {
				break
			}
			value := strings.TrimSpace(rec[j])
			if col.name == "" {
				continue
			}
			if col.canonical {
				row.Fields[col.name] = value
			} else if value != "" {
				row.Extras.Set(col.name, value)
			}
		}
		table.Rows = append(table.Rows, row)
	}

	if len(table.Rows) == 0 {
		return nil, fmt.Errorf("the uploaded file has no data rows")
	}

	return table, nil
}

func rowEmpty(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
