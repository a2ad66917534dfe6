// Package gender guesses a gender label from a first name using a name table.
package gender

import (
	"fmt"
	"strconv"
	"strings"
)

// Label is a gender guess from a closed vocabulary.
type Label string

const (
	Male         Label = "male"
	MostlyMale   Label = "mostly_male"
	Female       Label = "female"
	MostlyFemale Label = "mostly_female"
	Andy         Label = "andy" // androgynous
	Unknown      Label = "unknown"
	NotAvailable Label = "n/a" // no usable author field
)

// Labels lists every valid label.
var Labels = []Label{Male, MostlyMale, Female, MostlyFemale, Andy, Unknown, NotAvailable}

// ParseLabel validates a label string.
func ParseLabel(s string) (Label, error) {
	l := Label(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range Labels {
		if l == valid {
			return l, nil
		}
	}
	return "", fmt.Errorf("invalid gender label: %q (valid: %v)", s, Labels)
}

// IsMale reports whether the label counts as male for the male proportion.
func (l Label) IsMale() bool {
	return l == Male || l == MostlyMale
}

// Guesser guesses a gender label for a single name.
type Guesser interface {
	Guess(name string) Label
}

// MaleProportion returns the share of male or mostly-male labels among the
// labels that are not unknown. ok is false when no such label exists.
func MaleProportion(labels []Label) (proportion float64, ok bool) {
	known, male := 0, 0
	for _, l := range labels {
		if l == Unknown {
			continue
		}
		known++
		if l.IsMale() {
			male++
		}
	}
	if known == 0 {
		return 0, false
	}
	return float64(male) / float64(known), true
}

// FormatProportion renders a male proportion the way the output listing
// stores floats: shortest representation, always with a decimal point.
func FormatProportion(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
