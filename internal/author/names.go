// Package author parses the free-text author fields found in paper listings.
package author

import (
	"strings"
	"unicode"
)

// Name delimiters in priority order. The first one present in a field wins;
// delimiters are never mixed within one field.
const (
	dotDelimiter       = " . "
	pipeDelimiter      = " | "
	semicolonDelimiter = "; "
	commaDelimiter     = ", "
)

// ParseAuthors splits a raw author field into individual names.
//
// Supported formats:
//   - "Doe, Jane . Roe, Rick"         (" . " separated)
//   - "Doe, Jane | Roe, Rick"         (" | " separated)
//   - "Doe, Jane; Roe, Rick"          ("; " separated)
//   - "Doe, Roe"                      (", " separated, one token per name)
//
// Within each name, tokens are split on ", " and kept only if they are purely
// alphabetic or contain a period, which drops ORCID numbers and other
// accession artifacts. Names left with no tokens are omitted.
func ParseAuthors(raw string) []string {
	var names []string
	switch {
	case strings.Contains(raw, dotDelimiter):
		names = strings.Split(raw, dotDelimiter)
	case strings.Contains(raw, pipeDelimiter):
		names = strings.Split(raw, pipeDelimiter)
	case strings.Contains(raw, semicolonDelimiter):
		// Split on the bare semicolon; the residual leading space is trimmed
		// per token below.
		names = strings.Split(raw, ";")
	default:
		names = strings.Split(raw, commaDelimiter)
	}

	authors := make([]string, 0, len(names))
	for _, name := range names {
		if cleaned := cleanName(name); cleaned != "" {
			authors = append(authors, cleaned)
		}
	}
	return authors
}

// cleanName filters the comma-separated tokens of a single name.
func cleanName(name string) string {
	tokens := strings.Split(name, commaDelimiter)
	kept := tokens[:0]
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if isAlpha(tok) || strings.Contains(tok, ".") {
			kept = append(kept, tok)
		}
	}
	return strings.Join(kept, commaDelimiter)
}

// isAlpha reports whether s is non-empty and made only of letters.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Surname returns the token of a parsed name that is used for gender lookup.
//
// For "Last, Given" it returns the given name. A given-name token containing a
// period ("Peter J.") is cut at its first space, so "Peter J." yields "Peter"
// while a bare initial "J." is returned as is. A name without a comma is
// returned unchanged.
func Surname(name string) string {
	tokens := strings.Split(name, commaDelimiter)
	if len(tokens) < 2 {
		return tokens[0]
	}

	given := tokens[1]
	if !strings.Contains(given, ".") {
		return given
	}
	first, _, _ := strings.Cut(given, " ")
	return first
}

// Surnames applies Surname to each parsed name.
func Surnames(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = Surname(n)
	}
	return out
}
