package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Row is one CSV record keyed by header column name.
type Row map[string]string

// Get returns the first non-blank value among the given column names.
// The two filing eras name the same column differently, so lookups
// carry both spellings. Literal "nan" cells read as blank.
func (r Row) Get(keys ...string) string {
	for _, key := range keys {
		value := strings.TrimSpace(r[key])
		if value != "" && value != "nan" {
			return value
		}
	}
	return ""
}

// ReadCSVFile reads a state extract CSV into rows keyed by header. The
// extracts are latin-1 encoded and full of quoting defects, so parsing
// is lenient: lazy quotes, variable field counts, and records that
// still fail to parse are skipped rather than failing the file.
func ReadCSVFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(f))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	rows := make([]Row, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed record inside an otherwise readable file.
			continue
		}

		row := make(Row, len(header))
		for i, value := range record {
			if i >= len(header) {
				break
			}
			row[header[i]] = value
		}
		rows = append(rows, row)
	}
	return rows, nil
}
