package gender

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMaleProportion(t *testing.T) {
	tests := []struct {
		name   string
		labels []Label
		want   float64
		wantOK bool
	}{
		{"male female unknown", []Label{Male, Female, Unknown}, 0.5, true},
		{"all unknown", []Label{Unknown, Unknown}, 0, false},
		{"empty", nil, 0, false},
		{"mostly male counts as male", []Label{MostlyMale, Female}, 0.5, true},
		{"female is not male", []Label{Female, MostlyFemale}, 0, true},
		{"andy counts in the denominator", []Label{Male, Andy, Andy, Unknown}, 1.0 / 3.0, true},
		{"all male", []Label{Male, Male}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MaleProportion(tt.labels)
			if ok != tt.wantOK {
				t.Fatalf("MaleProportion() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("MaleProportion() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatProportion(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0.5, "0.5"},
		{1, "1.0"},
		{0, "0.0"},
		{1.0 / 3.0, "0.3333333333333333"},
	}

	for _, tt := range tests {
		if got := FormatProportion(tt.input); got != tt.want {
			t.Errorf("FormatProportion(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseLabel(t *testing.T) {
	for _, l := range Labels {
		got, err := ParseLabel(" " + strings.ToUpper(string(l)) + " ")
		if err != nil || got != l {
			t.Errorf("ParseLabel(%q) = %q, %v", l, got, err)
		}
	}
	if _, err := ParseLabel("robot"); err == nil {
		t.Error("ParseLabel(robot) should fail")
	}
}

func TestDetector_Default(t *testing.T) {
	d := NewDetector()
	if d.Len() == 0 {
		t.Fatal("built-in table is empty")
	}

	tests := []struct {
		name string
		want Label
	}{
		{"Viktor", Male},
		{"Peter", Male},
		{"peter", Male},
		{"Maria", Female},
		{"Jurgen", Male},
		{"Jürgen", Male},
		{"Kim", Andy},
		{"J.", Unknown},
		{"Zyxwv", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Guess(tt.name); got != tt.want {
				t.Errorf("Guess(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestParseTable(t *testing.T) {
	input := "# comment\n\nJosé\tmale\nAlex\tandy\nalex\tmostly_female\n"
	d, err := ParseTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTable() error = %v", err)
	}
	if d.Len() != 2 {
		t.Errorf("Len() = %d, want 2", d.Len())
	}
	if got := d.Guess("JOSE"); got != Male {
		t.Errorf("Guess(JOSE) = %q, want male", got)
	}
	if got := d.Guess("Alex"); got != MostlyFemale {
		t.Errorf("Guess(Alex) = %q, want later entry mostly_female", got)
	}
}

func TestParseTable_Errors(t *testing.T) {
	inputs := []string{
		"Anna female\n",
		"Anna\trobot\n",
	}
	for _, in := range inputs {
		if _, err := ParseTable(strings.NewReader(in)); err == nil {
			t.Errorf("ParseTable(%q) should fail", in)
		}
	}
}

func TestLoadDetector(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.tsv")
	if err := os.WriteFile(path, []byte("Viktor\tfemale\n"), 0644); err != nil {
		t.Fatal(err)
	}

	d, err := LoadDetector(path)
	if err != nil {
		t.Fatalf("LoadDetector() error = %v", err)
	}
	if got := d.Guess("Viktor"); got != Female {
		t.Errorf("Guess(Viktor) = %q, want female from custom table", got)
	}

	if _, err := LoadDetector(filepath.Join(t.TempDir(), "missing.tsv")); err == nil {
		t.Error("LoadDetector(missing) should fail")
	}
}
