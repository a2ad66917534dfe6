package stats

import (
	"context"
	"reflect"
	"testing"

	"github.com/matsen/paperstats/internal/listing"
)

func annotatedTable() *listing.Table {
	return &listing.Table{
		Columns: []string{
			"link", "journal", "authors", "year", "doi", "citation_count",
			"gender_first_author", "gender_last_author", "proportion_male_in_authors",
		},
		Rows: [][]string{
			{"a", "MRM", "x", "2020-01-01", "10.1/a", "12", "male", "male", "1.0"},
			{"b", "MRM", "x", "2020-01-01", "10.1/b", "3", "female", "male", "0.5"},
			{"c", "NeuroImage", "x", "2019-01-01", "10.1/c", "n/a", "female", "unknown", "0.0"},
			{"d", "", "", "", "", "n/a", "n/a", "n/a", "n/a"},
		},
	}
}

func TestSummarizeTable(t *testing.T) {
	s, err := SummarizeTable(context.Background(), annotatedTable())
	if err != nil {
		t.Fatalf("SummarizeTable() error = %v", err)
	}

	if s.Papers != 4 {
		t.Errorf("Papers = %d, want 4", s.Papers)
	}
	if s.WithCitationCount != 2 || s.TotalCitations != 15 {
		t.Errorf("citations = %d rows / %d total, want 2 / 15", s.WithCitationCount, s.TotalCitations)
	}
	if s.MeanProportionMale == nil || *s.MeanProportionMale != 0.5 {
		t.Errorf("MeanProportionMale = %v, want 0.5", s.MeanProportionMale)
	}

	tests := []struct {
		name string
		got  []Count
		want []Count
	}{
		{"ByYear", s.ByYear, []Count{{"2019", 1}, {"2020", 2}}},
		{"ByJournal", s.ByJournal, []Count{{"MRM", 2}, {"NeuroImage", 1}}},
		{"FirstAuthorGender", s.FirstAuthorGender, []Count{{"female", 2}, {"male", 1}, {"n/a", 1}}},
		{"LastAuthorGender", s.LastAuthorGender, []Count{{"male", 2}, {"n/a", 1}, {"unknown", 1}}},
	}
	for _, tt := range tests {
		if !reflect.DeepEqual(tt.got, tt.want) {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestSummarizeTable_Empty(t *testing.T) {
	s, err := SummarizeTable(context.Background(), &listing.Table{Columns: []string{"link"}})
	if err != nil {
		t.Fatalf("SummarizeTable() error = %v", err)
	}
	if s.Papers != 0 || s.MeanProportionMale != nil {
		t.Errorf("summary = %+v", s)
	}
	if len(s.ByYear) != 0 || s.ByYear == nil {
		t.Errorf("ByYear = %#v, want empty non-nil", s.ByYear)
	}
}

func TestLoad_Replaces(t *testing.T) {
	ctx := context.Background()
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error = %v", err)
	}
	defer d.Close()

	if _, err := d.Load(ctx, annotatedTable()); err != nil {
		t.Fatal(err)
	}
	small := &listing.Table{
		Columns: []string{"link", "year"},
		Rows:    [][]string{{"z", "2021"}},
	}
	n, err := d.Load(ctx, small)
	if err != nil || n != 1 {
		t.Fatalf("Load() = %d, %v", n, err)
	}

	s, err := d.Summarize(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if s.Papers != 1 || !reflect.DeepEqual(s.ByYear, []Count{{"2021", 1}}) {
		t.Errorf("summary after reload = %+v", s)
	}
}
