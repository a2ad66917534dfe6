// Package main provides the paperstats CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/matsen/paperstats/internal/config"
	"github.com/matsen/paperstats/internal/gender"
	"github.com/matsen/paperstats/internal/logging"
	"github.com/matsen/paperstats/internal/opencitations"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	logLevel    string
	logFormat   string
)

// logger is configured in the root PersistentPreRun and writes to stderr.
var logger = zerolog.Nop()

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "paperstats",
	Short: "Enrich a paper listing with citation metadata and author gender statistics",
	Long: `paperstats maintains a tab-separated listing of papers.

It normalizes column headers with a mapping file, looks up journal, authors
and citation counts in the OpenCitations COCI index, and annotates each paper
with first/last author gender guesses and the male proportion of its authors.

All commands output JSON by default. Use --human for readable output.
Progress is logged to stderr.

Environment Variables:
  OPENCITATIONS_TOKEN  COCI access token (overrides token.txt)
  PAPERSTATS_DATA_DIR  Directory holding the listing, mapping and token
  LOG_LEVEL            Log level (debug, info, warn, error)`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

func init() {
	// Load .env file if present (for OPENCITATIONS_TOKEN)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error, off)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (console or json)")
	rootCmd.Version = Version
}

func setupLogging(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		return err
	}

	lc := logging.DefaultConfig()
	lc.Level = cfg.ResolveLogLevel()
	if logLevel != "" {
		lc.Level = logLevel
	}
	if cfg.LogFormat != "" {
		lc.Format = cfg.LogFormat
	}
	if logFormat != "" {
		lc.Format = logFormat
	}

	logger = logging.New(lc)
	return nil
}

// mustLoadGlobalConfig loads the global config, exits on error.
func mustLoadGlobalConfig() *config.GlobalConfig {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustLoadToken resolves the COCI access token, exits if none is configured.
func mustLoadToken(cfg *config.GlobalConfig, dataDir string) string {
	token, err := cfg.ResolveToken(dataDir)
	if err != nil {
		exitWithError(ExitConfigError, "%v\n\nSet %s, add 'token' to %s, or create %s",
			err, config.EnvToken, config.GlobalConfigPath(), config.TokenPath(dataDir))
	}
	return token
}

// newClient builds a COCI client from the global config.
func newClient(cfg *config.GlobalConfig, token string) *opencitations.Client {
	timeout, _ := cfg.TimeoutDuration() // validated on load
	return opencitations.NewClient(
		opencitations.WithToken(token),
		opencitations.WithTimeout(timeout),
		opencitations.WithRateLimit(cfg.RateLimit),
	)
}

// mustLoadGuesser returns the configured gender table or the built-in one.
func mustLoadGuesser(cfg *config.GlobalConfig) gender.Guesser {
	if cfg.GenderTable == "" {
		return gender.NewDetector()
	}
	d, err := gender.LoadDetector(cfg.GenderTable)
	if err != nil {
		exitWithError(ExitConfigError, "loading gender table: %v", err)
	}
	return d
}
