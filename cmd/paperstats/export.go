package main

import (
	"github.com/matsen/paperstats/internal/export"
	"github.com/matsen/paperstats/internal/stats"
	"github.com/spf13/cobra"
)

var (
	exportXLSX      string
	exportNoSummary bool
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export an annotated listing to Excel",
	Long: `Write an annotated listing to an .xlsx workbook.

The workbook has a Papers sheet with every column and, unless
--no-summary is given, a Summary sheet with the stats command's counts.

Examples:
  paperstats export --xlsx papers.xlsx
  paperstats export out.tsv --xlsx papers.xlsx --no-summary`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportXLSX, "xlsx", "", "Workbook to write (required)")
	exportCmd.Flags().BoolVar(&exportNoSummary, "no-summary", false, "Omit the Summary sheet")
	exportCmd.MarkFlagRequired("xlsx")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	path, t := mustReadAnnotated(args)

	var summary *stats.Summary
	if !exportNoSummary {
		s, err := stats.SummarizeTable(cmd.Context(), t)
		if err != nil {
			exitWithError(ExitError, "summarizing listing: %v", err)
		}
		summary = s
	}

	if err := export.WriteXLSX(exportXLSX, t, summary); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	logger.Info().Str("output", exportXLSX).Int("rows", t.Len()).Msg("workbook written")

	if humanOutput {
		outputHuman("Exported %d papers to %s\n", t.Len(), exportXLSX)
		return nil
	}
	return outputJSON(ExportResult{Input: path, Output: exportXLSX, Rows: t.Len()})
}
