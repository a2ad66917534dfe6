package main

import (
	"errors"
	"fmt"

	"github.com/matsen/paperstats/internal/config"
	"github.com/matsen/paperstats/internal/listing"
	"github.com/matsen/paperstats/internal/pipeline"
	"github.com/spf13/cobra"
)

// runOptions holds the path flags shared by run and normalize.
type runOptions struct {
	input    string
	output   string
	mapping  string
	skipRows int
	skipSet  bool
	noEnrich bool
}

var runOpts runOptions

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Normalize, enrich and annotate the paper listing",
	Long: `Run the full pipeline over the paper listing.

Steps:
  1. Read the listing, skipping the comment rows after the header
  2. Normalize headers and apply the column mapping
  3. Look up every DOI in OpenCitations COCI (skipped with --no-enrich)
  4. Write the enriched listing
  5. Guess first/last author gender and the male proportion
  6. Write the annotated listing

By default the raw listing is data/paper_listing.tsv and the output is
data/paper_listing_updated.tsv. With --no-enrich the previous output is
re-read (no skipped rows) and only re-annotated.

The built-in gender table only covers a few hundred common given names, so
most authors of a real listing come back unknown. Set gender_table in the
config to a full dictionary (name<TAB>label per line) for real runs.

Examples:
  paperstats run
  paperstats run --no-enrich
  paperstats run --input listing.tsv --mapping mapping.yml --skip-rows 0`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	addListingFlags(runCmd, &runOpts, "Listing to write (default <data-dir>/paper_listing_updated.tsv)")
	runCmd.Flags().BoolVar(&runOpts.noEnrich, "no-enrich", false, "Skip the metadata lookup and only annotate genders")
	rootCmd.AddCommand(runCmd)
}

func addListingFlags(cmd *cobra.Command, opts *runOptions, outputHelp string) {
	cmd.Flags().StringVar(&opts.input, "input", "", "Listing to read (default depends on mode)")
	cmd.Flags().StringVar(&opts.output, "output", "", outputHelp)
	cmd.Flags().StringVar(&opts.mapping, "mapping", "", "Column mapping file, JSON or YAML (default <data-dir>/paper_listing.json)")
	cmd.Flags().IntVar(&opts.skipRows, "skip-rows", listing.DefaultSkipRows, "Comment rows following the header")
}

// resolveRunConfig fills unset paths from the data directory. The raw
// listing is used when enriching, the previous output otherwise.
func resolveRunConfig(cfg *config.GlobalConfig, opts runOptions) pipeline.RunConfig {
	dataDir := cfg.ResolveDataDir()
	enrich := !opts.noEnrich

	rc := pipeline.RunConfig{
		Enrich:      enrich,
		InputPath:   opts.input,
		OutputPath:  opts.output,
		MappingPath: opts.mapping,
		SkipRows:    opts.skipRows,
	}

	if rc.OutputPath == "" {
		rc.OutputPath = config.UpdatedListingPath(dataDir)
	}
	if rc.MappingPath == "" {
		rc.MappingPath = cfg.ResolveMappingPath(dataDir)
	}
	if rc.InputPath == "" {
		if enrich {
			rc.InputPath = config.ListingPath(dataDir)
		} else {
			rc.InputPath = config.UpdatedListingPath(dataDir)
		}
	}
	if !opts.skipSet {
		if enrich {
			rc.SkipRows = cfg.SkipRowsOr(listing.DefaultSkipRows)
		} else {
			rc.SkipRows = 0
		}
	}
	return rc
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := mustLoadGlobalConfig()
	runOpts.skipSet = cmd.Flags().Changed("skip-rows")
	rc := resolveRunConfig(cfg, runOpts)

	runner := &pipeline.Runner{
		Guesser: mustLoadGuesser(cfg),
		Logger:  logger,
	}
	if rc.Enrich {
		rc.Token = mustLoadToken(cfg, cfg.ResolveDataDir())
		runner.Fetcher = newClient(cfg, rc.Token)
	}

	res, err := runner.Run(cmd.Context(), rc)
	if err != nil {
		var yearErr *listing.YearError
		switch {
		case errors.Is(err, pipeline.ErrMissingToken):
			exitWithError(ExitConfigError, "%v", err)
		case errors.As(err, &yearErr), errors.Is(err, listing.ErrMissingYear), errors.Is(err, listing.ErrEmptyListing):
			exitWithError(ExitDataError, "%v", err)
		default:
			exitWithError(ExitError, "%v", err)
		}
	}

	if humanOutput {
		outputHuman("Read %d papers from %s\n", res.Rows, res.Input)
		outputHuman("Columns renamed: %d, dropped: %d\n", res.Renamed, res.Dropped)
		if res.Enriched != nil {
			outputHuman("Metadata found for %d of %d papers (%d with a DOI)\n",
				res.Enriched.Enriched, res.Enriched.Rows, res.Enriched.WithDOI)
		}
		outputHuman("Wrote %s\n", res.Output)
		outputHuman("Columns: %s\n", formatColumns(res.Columns))
		return nil
	}
	return outputJSON(res)
}

// describeRun is used by config to show where run would read and write.
func describeRun(rc pipeline.RunConfig) string {
	return fmt.Sprintf("%s (skip %d) -> %s", rc.InputPath, rc.SkipRows, rc.OutputPath)
}
