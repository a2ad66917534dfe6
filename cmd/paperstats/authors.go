package main

import (
	"strings"

	"github.com/matsen/paperstats/internal/author"
	"github.com/spf13/cobra"
)

var authorsCmd = &cobra.Command{
	Use:   "authors <raw>",
	Short: "Parse a raw author field into names",
	Long: `Split a raw author field into names and show the token used for the
gender lookup of each.

Accepted delimiters, in priority order: " . ", " | ", ";", ", ".
Tokens that are neither alphabetic nor contain a period (ORCIDs, IDs) are dropped.

Examples:
  paperstats authors "Pfaffenrot, Viktor, 0000-0002-3404-5018; Koopmans, Peter J."
  paperstats authors "Smith, Anna | Doe, John" --human`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAuthors,
}

func init() {
	rootCmd.AddCommand(authorsCmd)
}

func runAuthors(cmd *cobra.Command, args []string) error {
	raw := strings.Join(args, " ")
	names := author.ParseAuthors(raw)
	result := AuthorsResult{
		Raw:      raw,
		Names:    names,
		Surnames: author.Surnames(names),
	}

	if humanOutput {
		if len(names) == 0 {
			outputHuman("No names found\n")
			return nil
		}
		for i, n := range result.Names {
			outputHuman("%d. %s  [%s]\n", i+1, n, result.Surnames[i])
		}
		return nil
	}
	return outputJSON(result)
}
