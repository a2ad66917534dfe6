package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/matsen/paperstats/internal/stats"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DOIResult is one entry of the doi command output.
type DOIResult struct {
	Link  string `json:"link"`
	DOI   string `json:"doi"`
	IsDOI bool   `json:"is_doi"`
	URL   string `json:"url,omitempty"`
}

// AuthorsResult is the output of the authors command.
type AuthorsResult struct {
	Raw      string   `json:"raw"`
	Names    []string `json:"names"`
	Surnames []string `json:"surnames"`
}

// GenderResult is one entry of the gender command output.
type GenderResult struct {
	Name   string `json:"name"`
	Gender string `json:"gender"`
}

// NormalizeResult is the output of the normalize command when writing a file.
type NormalizeResult struct {
	Input   string   `json:"input"`
	Output  string   `json:"output"`
	Rows    int      `json:"rows"`
	Renamed int      `json:"renamed"`
	Dropped int      `json:"dropped"`
	Columns []string `json:"columns"`
}

// ExportResult is the output of the export command.
type ExportResult struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Rows   int    `json:"rows"`
}

// printCountsHuman prints a titled list of counts.
func printCountsHuman(title string, counts []stats.Count) {
	fmt.Printf("\n%s:\n", title)
	if len(counts) == 0 {
		fmt.Println("  (none)")
		return
	}
	width := 0
	for _, c := range counts {
		width = max(width, len(c.Key))
	}
	for _, c := range counts {
		fmt.Printf("  %-*s %d\n", width, c.Key, c.Count)
	}
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// formatColumns joins column names for human output.
func formatColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
