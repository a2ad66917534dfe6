package main

import (
	"errors"
	"os"

	"github.com/matsen/paperstats/internal/listing"
	"github.com/spf13/cobra"
)

var normalizeOpts runOptions

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Normalize listing headers and apply the column mapping",
	Long: `Read the raw listing, sanitize its headers, apply the column mapping
and parse the year column, without any network access.

Without --output the normalized listing is written to stdout as TSV.

Examples:
  paperstats normalize > normalized.tsv
  paperstats normalize --output /tmp/normalized.tsv
  paperstats normalize --input listing.tsv --mapping mapping.yml`,
	Args: cobra.NoArgs,
	RunE: runNormalize,
}

func init() {
	addListingFlags(normalizeCmd, &normalizeOpts, "File to write (default: TSV to stdout)")
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	cfg := mustLoadGlobalConfig()
	normalizeOpts.skipSet = cmd.Flags().Changed("skip-rows")

	// Normalization always starts from the raw listing.
	opts := normalizeOpts
	opts.noEnrich = false
	rc := resolveRunConfig(cfg, opts)

	mapping, err := listing.LoadMapping(rc.MappingPath)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	t, norm, err := listing.NormalizeFile(rc.InputPath, mapping, rc.SkipRows)
	if err != nil {
		var yearErr *listing.YearError
		if errors.As(err, &yearErr) || errors.Is(err, listing.ErrMissingYear) || errors.Is(err, listing.ErrEmptyListing) {
			exitWithError(ExitDataError, "%v", err)
		}
		exitWithError(ExitError, "%v", err)
	}
	logger.Info().
		Str("input", rc.InputPath).
		Int("rows", t.Len()).
		Int("renamed", norm.Renamed).
		Int("dropped", norm.Dropped).
		Msg("listing normalized")

	if normalizeOpts.output == "" {
		return t.Write(os.Stdout)
	}

	if err := listing.WriteFile(normalizeOpts.output, t); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		outputHuman("Wrote %d papers to %s\n", t.Len(), normalizeOpts.output)
		outputHuman("Columns: %s\n", formatColumns(t.Columns))
		return nil
	}
	return outputJSON(NormalizeResult{
		Input:   rc.InputPath,
		Output:  normalizeOpts.output,
		Rows:    t.Len(),
		Renamed: norm.Renamed,
		Dropped: norm.Dropped,
		Columns: t.Columns,
	})
}
