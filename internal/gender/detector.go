package gender

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

//go:embed names.tsv
var defaultTable []byte

// Detector is a table-backed Guesser. Lookups ignore case and accents.
type Detector struct {
	names map[string]Label
}

// NewDetector returns a Detector loaded with the built-in name table.
func NewDetector() *Detector {
	d, err := ParseTable(bytes.NewReader(defaultTable))
	if err != nil {
		panic(fmt.Sprintf("built-in gender table: %v", err))
	}
	return d
}

// LoadDetector returns a Detector loaded from a name table file.
func LoadDetector(path string) (*Detector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening gender table: %w", err)
	}
	defer f.Close()

	d, err := ParseTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// ParseTable reads "name<TAB>label" lines. Blank lines and lines starting
// with '#' are ignored; later entries override earlier ones.
func ParseTable(r io.Reader) (*Detector, error) {
	d := &Detector{names: make(map[string]Label)}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, rawLabel, found := strings.Cut(line, "\t")
		if !found {
			return nil, fmt.Errorf("line %d: expected name<TAB>label", lineNum)
		}
		label, err := ParseLabel(rawLabel)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		d.Add(name, label)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading gender table: %w", err)
	}

	return d, nil
}

// Add registers or replaces a name.
func (d *Detector) Add(name string, label Label) {
	d.names[foldName(name)] = label
}

// Len returns the number of known names.
func (d *Detector) Len() int {
	return len(d.names)
}

// Guess returns the label for a first name, or Unknown if it is not in the table.
func (d *Detector) Guess(name string) Label {
	key := foldName(name)
	if key == "" {
		return Unknown
	}
	if label, ok := d.names[key]; ok {
		return label
	}
	return Unknown
}

// foldName lowercases a name and strips combining marks, so "José" and
// "jose" share a key.
func foldName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.TrimSpace(name))
	if err != nil {
		folded = strings.TrimSpace(name)
	}
	return strings.ToLower(folded)
}
