package listing

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// YearLayout is how parsed years are written back: a year-only date.
const YearLayout = "2006-01-02"

// ErrMissingYear is returned when a listing has no year column.
var ErrMissingYear = errors.New("listing has no year column")

// YearError reports a year cell that could not be parsed.
type YearError struct {
	Row   int // 1-based data row
	Value string
}

func (e *YearError) Error() string {
	return fmt.Sprintf("row %d: cannot parse year %q", e.Row, e.Value)
}

var columnReplacer = strings.NewReplacer(" ", "_", "(", "", ")", "", "?", "")

// SanitizeColumn lowercases a header, turns spaces into underscores, and
// strips parentheses and question marks.
//
// "Is it open access? (Y/N)" becomes "is_it_open_access_y/n".
func SanitizeColumn(name string) string {
	return columnReplacer.Replace(strings.ToLower(strings.TrimSpace(name)))
}

// SanitizeColumns sanitizes every header of the table in place.
func SanitizeColumns(t *Table) {
	for i, c := range t.Columns {
		t.Columns[i] = SanitizeColumn(c)
	}
}

// ParseYear parses the year column as a year-only date. Missing cells are
// left empty; anything else that is not a four-digit year or a date written
// by a previous run is an error.
func ParseYear(t *Table) error {
	idx := t.ColumnIndex(ColumnYear)
	if idx < 0 {
		return ErrMissingYear
	}

	for i, row := range t.Rows {
		raw := strings.TrimSpace(row[idx])
		if raw == "" {
			continue
		}
		year, err := parseYearValue(raw)
		if err != nil {
			return &YearError{Row: i + 1, Value: raw}
		}
		row[idx] = year.Format(YearLayout)
	}
	return nil
}

func parseYearValue(s string) (time.Time, error) {
	if len(s) == 4 {
		return time.Parse("2006", s)
	}
	d, err := time.Parse(YearLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), nil
}

// NormalizeStats counts the mapping's effect on the headers.
type NormalizeStats struct {
	Renamed int `json:"renamed"`
	Dropped int `json:"dropped"`
}

// NormalizeListing reads a raw listing and returns it with sanitized headers,
// the mapping applied, and the year column parsed.
func NormalizeListing(r io.Reader, m Mapping, skipRows int) (*Table, NormalizeStats, error) {
	t, err := Read(r, skipRows)
	if err != nil {
		return nil, NormalizeStats{}, err
	}

	SanitizeColumns(t)
	var stats NormalizeStats
	stats.Renamed, stats.Dropped = m.Apply(t)

	if err := ParseYear(t); err != nil {
		return nil, NormalizeStats{}, err
	}
	return t, stats, nil
}

// NormalizeFile is NormalizeListing for a file on disk.
func NormalizeFile(path string, m Mapping, skipRows int) (*Table, NormalizeStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NormalizeStats{}, fmt.Errorf("opening listing: %w", err)
	}
	defer f.Close()

	t, stats, err := NormalizeListing(f, m, skipRows)
	if err != nil {
		return nil, NormalizeStats{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, stats, nil
}
