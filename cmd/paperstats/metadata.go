package main

import (
	"github.com/matsen/paperstats/internal/config"
	"github.com/matsen/paperstats/internal/doi"
	"github.com/matsen/paperstats/internal/opencitations"
	"github.com/spf13/cobra"
)

var metadataCmd = &cobra.Command{
	Use:   "metadata <doi-or-link>",
	Short: "Fetch COCI metadata for a DOI",
	Long: `Fetch the OpenCitations COCI metadata record for a DOI.

Links are converted to DOIs first. Requires an access token
(OPENCITATIONS_TOKEN, 'token' in the config, or token.txt in the data dir).

Examples:
  paperstats metadata 10.1002/mrm.28000
  paperstats metadata https://doi.org/10.1002/mrm.28000 --human`,
	Args: cobra.ExactArgs(1),
	RunE: runMetadata,
}

func init() {
	rootCmd.AddCommand(metadataCmd)
}

func runMetadata(cmd *cobra.Command, args []string) error {
	d := doi.FromLink(args[0])
	if !doi.IsDOI(d) {
		exitWithError(ExitError, "not a DOI: %s", args[0])
	}

	cfg := mustLoadGlobalConfig()
	token := mustLoadToken(cfg, cfg.ResolveDataDir())
	client := newClient(cfg, token)

	md, err := client.FetchMetadata(cmd.Context(), d)
	if err != nil {
		switch {
		case opencitations.IsNotFound(err):
			exitWithError(ExitCOCINotFound, "no COCI metadata for %s", d)
		case opencitations.IsAuthError(err):
			exitWithError(ExitCOCIAuthError, "%v\n\nCheck %s or your token file", err, config.EnvToken)
		default:
			exitWithError(ExitCOCIAPIError, "%v", err)
		}
	}

	if humanOutput {
		outputHuman("DOI:        %s\n", d)
		if md.Title != "" {
			outputHuman("Title:      %s\n", truncateString(md.Title, 70))
		}
		outputHuman("Journal:    %s\n", md.SourceTitle)
		outputHuman("Year:       %s\n", md.Year)
		outputHuman("Authors:    %s\n", md.Author)
		outputHuman("Citations:  %s\n", md.CitationCount)
		return nil
	}
	return outputJSON(md)
}
