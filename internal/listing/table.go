// Package listing reads, normalizes, and writes tab-separated paper listings.
package listing

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Canonical column names used by the enrichment and annotation passes.
const (
	ColumnLink              = "link"
	ColumnJournal           = "journal"
	ColumnAuthors           = "authors"
	ColumnYear              = "year"
	ColumnDOI               = "doi"
	ColumnCitationCount     = "citation_count"
	ColumnGenderFirstAuthor = "gender_first_author"
	ColumnGenderLastAuthor  = "gender_last_author"
	ColumnProportionMale    = "proportion_male_in_authors"
)

// DefaultSkipRows is the number of comment rows following the header of a raw listing.
const DefaultSkipRows = 5

// ErrEmptyListing is returned when a listing has no header row.
var ErrEmptyListing = errors.New("listing has no header row")

// Table is an in-memory tab-separated listing.
// An empty cell is a missing value.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the index of the first column with the given name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Value returns the cell at row/column. ok is false when the column does not
// exist or the cell is missing.
func (t *Table) Value(row int, column string) (value string, ok bool) {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return "", false
	}
	value = t.Rows[row][idx]
	return value, value != ""
}

// Column returns a copy of all values of a column, or nil if it does not exist.
func (t *Table) Column(name string) []string {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out
}

// SetColumn overwrites a column in place, or appends it when it does not exist.
func (t *Table) SetColumn(name string, values []string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %s: got %d values for %d rows", name, len(values), len(t.Rows))
	}

	idx := t.ColumnIndex(name)
	if idx < 0 {
		t.Columns = append(t.Columns, name)
		for i := range t.Rows {
			t.Rows[i] = append(t.Rows[i], values[i])
		}
		return nil
	}

	for i := range t.Rows {
		t.Rows[i][idx] = values[i]
	}
	return nil
}

// RenameColumn renames every column called old. It reports whether any matched.
func (t *Table) RenameColumn(old, new string) bool {
	renamed := false
	for i, c := range t.Columns {
		if c == old {
			t.Columns[i] = new
			renamed = true
		}
	}
	return renamed
}

// DropColumn removes every column called name. It reports whether any matched.
func (t *Table) DropColumn(name string) bool {
	keep := make([]int, 0, len(t.Columns))
	for i, c := range t.Columns {
		if c != name {
			keep = append(keep, i)
		}
	}
	if len(keep) == len(t.Columns) {
		return false
	}

	t.Columns = pick(t.Columns, keep)
	for i, row := range t.Rows {
		t.Rows[i] = pick(row, keep)
	}
	return true
}

func pick(values []string, idx []int) []string {
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = values[j]
	}
	return out
}

// Read parses a tab-separated listing. The first non-blank line is the
// header; the skipRows physical lines directly after it are discarded, blank
// or not. Short rows are padded with missing values and long rows are
// truncated to the header width.
func Read(r io.Reader, skipRows int) (*Table, error) {
	br := bufio.NewReader(r)

	headerLine, err := readHeaderLine(br)
	if err != nil {
		return nil, err
	}
	header, err := newTSVReader(strings.NewReader(headerLine)).Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	// Comment rows are counted by line, not by record: csv drops blank lines.
	for range skipRows {
		if _, err := br.ReadString('\n'); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("skipping comment rows: %w", err)
		}
	}

	reader := newTSVReader(br)
	t := &Table{Columns: append([]string(nil), header...)}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", t.Len()+1, err)
		}

		row := make([]string, len(header))
		copy(row, record)
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

func newTSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1 // Allow ragged rows
	reader.LazyQuotes = true
	return reader
}

// readHeaderLine returns the first non-blank line of br.
func readHeaderLine(br *bufio.Reader) (string, error) {
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("reading header: %w", err)
		}
		if strings.TrimRight(line, "\r\n") != "" {
			return line, nil
		}
		if err == io.EOF {
			return "", ErrEmptyListing
		}
	}
}

// ReadFile reads a listing from disk.
func ReadFile(path string, skipRows int) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening listing: %w", err)
	}
	defer f.Close()

	t, err := Read(f, skipRows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Write serializes the table as tab-separated values with a header row.
func (t *Table) Write(w io.Writer) error {
	writer := csv.NewWriter(w)
	writer.Comma = '\t'

	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFile writes the table to path through a temporary file and a rename,
// so an interrupted write leaves any previous file intact.
func WriteFile(path string, t *Table) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := t.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing listing: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing listing: %w", err)
	}
	return nil
}
