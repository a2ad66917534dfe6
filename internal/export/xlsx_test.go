package export

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matsen/paperstats/internal/listing"
	"github.com/matsen/paperstats/internal/stats"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	table := &listing.Table{
		Columns: []string{"link", "journal", "citation_count", "proportion_male_in_authors"},
		Rows: [][]string{
			{"https://doi.org/10.1/a", "MRM", "12", "0.5"},
			{"https://example.com", "Web", "n/a", "n/a"},
		},
	}
	mean := 0.5
	summary := &stats.Summary{
		Papers:             2,
		MeanProportionMale: &mean,
		ByYear:             []stats.Count{{Key: "2020", Count: 2}},
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := WriteXLSX(path, table, summary); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); !reflect.DeepEqual(got, []string{PapersSheet, SummarySheet}) {
		t.Errorf("sheets = %v", got)
	}

	rows, err := f.GetRows(PapersSheet)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"link", "journal", "citation_count", "proportion_male_in_authors"},
		{"https://doi.org/10.1/a", "MRM", "12", "0.5"},
		{"https://example.com", "Web", "n/a", "n/a"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %q, want %q", rows, want)
	}

	typ, err := f.GetCellType(PapersSheet, "C2")
	if err != nil {
		t.Fatal(err)
	}
	if typ == excelize.CellTypeSharedString || typ == excelize.CellTypeInlineString {
		t.Errorf("citation_count cell type = %v, want numeric", typ)
	}

	papers, _ := f.GetCellValue(SummarySheet, "B1")
	if papers != "2" {
		t.Errorf("summary papers = %q, want 2", papers)
	}
}

func TestWriteXLSX_NoSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	table := &listing.Table{Columns: []string{"link"}, Rows: [][]string{{"a"}}}
	if err := WriteXLSX(path, table, nil); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if got := f.GetSheetList(); !reflect.DeepEqual(got, []string{PapersSheet}) {
		t.Errorf("sheets = %v", got)
	}
}

func TestCellValue(t *testing.T) {
	tests := []struct {
		column string
		in     string
		want   any
	}{
		{"citation_count", "12", 12},
		{"citation_count", "n/a", "n/a"},
		{"proportion_male_in_authors", "0.25", 0.25},
		{"journal", "12", "12"},
	}
	for _, tt := range tests {
		if got := cellValue(tt.column, tt.in); got != tt.want {
			t.Errorf("cellValue(%q, %q) = %v (%T), want %v", tt.column, tt.in, got, got, tt.want)
		}
	}
}
