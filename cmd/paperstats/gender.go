package main

import (
	"github.com/spf13/cobra"
)

var genderCmd = &cobra.Command{
	Use:   "gender <name>...",
	Short: "Guess the gender of given names",
	Long: `Look up given names in the gender table.

The built-in table is used unless gender_table is set in the config.
Results are one of: male, mostly_male, female, mostly_female, andy, unknown.

The built-in table only covers a few hundred common given names. For real
listings point gender_table at a full dictionary (one name<TAB>label per
line, # comments allowed); otherwise most names come back unknown.

Examples:
  paperstats gender Viktor Anna Kim
  paperstats gender Jürgen --human`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGender,
}

func init() {
	rootCmd.AddCommand(genderCmd)
}

func runGender(cmd *cobra.Command, args []string) error {
	guesser := mustLoadGuesser(mustLoadGlobalConfig())

	results := make([]GenderResult, 0, len(args))
	for _, name := range args {
		results = append(results, GenderResult{Name: name, Gender: string(guesser.Guess(name))})
	}

	if humanOutput {
		for _, r := range results {
			outputHuman("%s: %s\n", r.Name, r.Gender)
		}
		return nil
	}
	return outputJSON(results)
}
