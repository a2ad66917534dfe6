package author

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseAuthors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "semicolon with ORCID token",
			input: "Pfaffenrot, Viktor, 0000-0002-3404-5018; Koopmans, Peter J.",
			want:  []string{"Pfaffenrot, Viktor", "Koopmans, Peter J."},
		},
		{
			name:  "dot delimiter",
			input: "Smith, John . Doe, Jane A.",
			want:  []string{"Smith, John", "Doe, Jane A."},
		},
		{
			name:  "pipe delimiter",
			input: "Smith, John | Doe, Jane",
			want:  []string{"Smith, John", "Doe, Jane"},
		},
		{
			name:  "dot wins over semicolon",
			input: "Smith, John; Roe . Doe, Jane",
			want:  []string{"Smith", "Doe, Jane"},
		},
		{
			name:  "pipe wins over semicolon",
			input: "Smith; John | Doe, Jane",
			want:  []string{"Doe, Jane"},
		},
		{
			name:  "comma fallback is one token per name",
			input: "Smith, Doe, Roe",
			want:  []string{"Smith", "Doe", "Roe"},
		},
		{
			name:  "single name",
			input: "Smith",
			want:  []string{"Smith"},
		},
		{
			name:  "numeric only entry is omitted",
			input: "0000-0002-3404-5018; Koopmans, Peter",
			want:  []string{"Koopmans, Peter"},
		},
		{
			name:  "tokens with inner spaces and no period are dropped",
			input: "van Dyke, Anna | Lee, Bo",
			want:  []string{"Anna", "Lee, Bo"},
		},
		{
			name:  "unicode letters are alphabetic",
			input: "Müller, Jörg | Øster, Åse",
			want:  []string{"Müller, Jörg", "Øster, Åse"},
		},
		{
			name:  "nothing qualifies",
			input: "12345",
			want:  []string{},
		},
		{
			name:  "empty string",
			input: "",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAuthors(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseAuthors(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAuthors_DotDelimiterSplitsExactly(t *testing.T) {
	inputs := []string{
		"A, B . C, D . E, F",
		"Smith, J. . Doe, K.; extra",
		"Alpha . Beta | Gamma",
	}
	for _, in := range inputs {
		parts := strings.Split(in, " . ")
		got := ParseAuthors(in)
		if len(got) > len(parts) {
			t.Errorf("ParseAuthors(%q) returned %d names from %d parts", in, len(got), len(parts))
		}
		for _, name := range got {
			for _, tok := range strings.Split(name, ", ") {
				if !isAlpha(tok) && !strings.Contains(tok, ".") {
					t.Errorf("ParseAuthors(%q) kept token %q", in, tok)
				}
			}
		}
	}
}

func TestSurname(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Pfaffenrot, Viktor", "Viktor"},
		{"Koopmans, Peter J.", "Peter"},
		{"Smith", "Smith"},
		{"Doe, J.", "J."},
		{"Doe, Jane, Extra", "Jane"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Surname(tt.input); got != tt.want {
				t.Errorf("Surname(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSurnames(t *testing.T) {
	got := Surnames(ParseAuthors("Pfaffenrot, Viktor, 0000-0002-3404-5018; Koopmans, Peter J."))
	want := []string{"Viktor", "Peter"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Surnames() = %v, want %v", got, want)
	}
}
