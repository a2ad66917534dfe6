// Package export writes annotated listings to spreadsheet formats.
package export

import (
	"fmt"
	"strconv"

	"github.com/matsen/paperstats/internal/listing"
	"github.com/matsen/paperstats/internal/stats"
	"github.com/xuri/excelize/v2"
)

const (
	PapersSheet  = "Papers"
	SummarySheet = "Summary"
)

// numericColumns are written as numbers when their cell parses.
var numericColumns = map[string]bool{
	listing.ColumnCitationCount:  true,
	listing.ColumnProportionMale: true,
}

// WriteXLSX writes t to an Excel workbook at path. When s is non-nil a
// second sheet carries the summary counts.
func WriteXLSX(path string, t *listing.Table, s *stats.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", PapersSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if err := writePapers(f, t); err != nil {
		return err
	}

	if s != nil {
		if _, err := f.NewSheet(SummarySheet); err != nil {
			return fmt.Errorf("creating summary sheet: %w", err)
		}
		if err := writeSummary(f, s); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writePapers(f *excelize.File, t *listing.Table) error {
	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(PapersSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for r, row := range t.Rows {
		values := make([]any, len(row))
		for c, v := range row {
			values[c] = cellValue(t.Columns[c], v)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(PapersSheet, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", r+1, err)
		}
	}

	if len(t.Columns) > 0 {
		if err := f.AutoFilter(PapersSheet, autoFilterRange(len(t.Columns), len(t.Rows)+1), nil); err != nil {
			return fmt.Errorf("adding filter: %w", err)
		}
	}
	return nil
}

func cellValue(column, v string) any {
	if !numericColumns[column] {
		return v
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	if x, err := strconv.ParseFloat(v, 64); err == nil {
		return x
	}
	return v
}

func autoFilterRange(cols, rows int) string {
	last, _ := excelize.CoordinatesToCellName(cols, rows)
	return "A1:" + last
}

func writeSummary(f *excelize.File, s *stats.Summary) error {
	row := 1
	put := func(values ...any) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		row++
		return f.SetSheetRow(SummarySheet, cell, &values)
	}

	mean := any("n/a")
	if s.MeanProportionMale != nil {
		mean = *s.MeanProportionMale
	}
	totals := [][]any{
		{"papers", s.Papers},
		{"with_citation_count", s.WithCitationCount},
		{"total_citations", s.TotalCitations},
		{"mean_proportion_male", mean},
	}
	for _, v := range totals {
		if err := put(v...); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}

	sections := []struct {
		title  string
		counts []stats.Count
	}{
		{"year", s.ByYear},
		{"journal", s.ByJournal},
		{"gender_first_author", s.FirstAuthorGender},
		{"gender_last_author", s.LastAuthorGender},
	}
	for _, sec := range sections {
		row++ // blank separator
		if err := put(sec.title, "count"); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
		for _, c := range sec.counts {
			if err := put(c.Key, c.Count); err != nil {
				return fmt.Errorf("writing summary: %w", err)
			}
		}
	}
	return nil
}
