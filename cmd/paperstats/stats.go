package main

import (
	"github.com/matsen/paperstats/internal/config"
	"github.com/matsen/paperstats/internal/listing"
	"github.com/matsen/paperstats/internal/stats"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats [file]",
	Short: "Summarize an annotated listing",
	Long: `Summarize an annotated listing: papers per year and journal, citation
totals, first/last author gender distributions and the mean male proportion.

The listing defaults to <data-dir>/paper_listing_updated.tsv.

Examples:
  paperstats stats
  paperstats stats out.tsv --human`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

// mustReadAnnotated reads an annotated listing, defaulting to the run output.
func mustReadAnnotated(args []string) (string, *listing.Table) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		cfg := mustLoadGlobalConfig()
		path = config.UpdatedListingPath(cfg.ResolveDataDir())
	}

	t, err := listing.ReadFile(path, 0)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	return path, t
}

func runStats(cmd *cobra.Command, args []string) error {
	_, t := mustReadAnnotated(args)

	s, err := stats.SummarizeTable(cmd.Context(), t)
	if err != nil {
		exitWithError(ExitError, "summarizing listing: %v", err)
	}

	if humanOutput {
		outputHuman("Papers: %d\n", s.Papers)
		outputHuman("Citations: %d (over %d papers with a count)\n", s.TotalCitations, s.WithCitationCount)
		if s.MeanProportionMale != nil {
			outputHuman("Mean male proportion: %.3f\n", *s.MeanProportionMale)
		} else {
			outputHuman("Mean male proportion: n/a\n")
		}
		printCountsHuman("By year", s.ByYear)
		printCountsHuman("By journal", s.ByJournal)
		printCountsHuman("First author gender", s.FirstAuthorGender)
		printCountsHuman("Last author gender", s.LastAuthorGender)
		return nil
	}
	return outputJSON(s)
}
