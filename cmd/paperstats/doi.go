package main

import (
	"github.com/matsen/paperstats/internal/doi"
	"github.com/spf13/cobra"
)

var doiCmd = &cobra.Command{
	Use:   "doi <link>...",
	Short: "Derive DOIs from links",
	Long: `Show the DOI derived from each link, as the enrichment step would.

Examples:
  paperstats doi https://doi.org/10.1002/mrm.28000
  paperstats doi "https://www.biorxiv.org/content/10.1101/2020.01.01.123456v1" --human`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDOI,
}

func init() {
	rootCmd.AddCommand(doiCmd)
}

func runDOI(cmd *cobra.Command, args []string) error {
	results := make([]DOIResult, 0, len(args))
	for _, link := range args {
		d := doi.FromLink(link)
		r := DOIResult{Link: link, DOI: d, IsDOI: doi.IsDOI(d)}
		if r.IsDOI {
			r.URL = doi.URL(d)
		}
		results = append(results, r)
	}

	if humanOutput {
		for _, r := range results {
			if r.IsDOI {
				outputHuman("%s\n", r.DOI)
			} else {
				outputHuman("%s (not a DOI)\n", r.DOI)
			}
		}
		return nil
	}
	return outputJSON(results)
}
