package main

import (
	"github.com/matsen/paperstats/internal/config"
	"github.com/matsen/paperstats/internal/opencitations"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	Long: `Show the configuration paperstats would use, after applying the global
config file, environment variables and .env.

The token itself is never printed, only whether one was found.

Config file: ~/.config/paperstats/config.yml (respects XDG_CONFIG_HOME)

Keys:
  data_dir      Directory holding the listing, mapping and token (default: data)
  token         COCI access token
  token_file    Token file (default: <data_dir>/token.txt)
  mapping_file  Column mapping, JSON or YAML (default: <data_dir>/paper_listing.json)
  gender_table  TSV of name<TAB>label replacing the built-in table
  skip_rows     Comment rows after the header of the raw listing (default: 5)
  timeout       COCI request timeout, e.g. 30s
  rate_limit    Maximum COCI requests per second (default: unlimited)
  log_level     trace, debug, info, warn, error, off
  log_format    console or json`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// ConfigResponse is the response for the config command.
type ConfigResponse struct {
	ConfigPath  string  `json:"config_path"`
	DataDir     string  `json:"data_dir"`
	Listing     string  `json:"listing"`
	Output      string  `json:"output"`
	Mapping     string  `json:"mapping"`
	TokenFound  bool    `json:"token_found"`
	GenderTable string  `json:"gender_table"`
	SkipRows    int     `json:"skip_rows"`
	Timeout     string  `json:"timeout"`
	RateLimit   float64 `json:"rate_limit"`
	LogLevel    string  `json:"log_level"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := mustLoadGlobalConfig()
	dataDir := cfg.ResolveDataDir()
	rc := resolveRunConfig(cfg, runOptions{})

	_, tokenErr := cfg.ResolveToken(dataDir)

	timeout, _ := cfg.TimeoutDuration()
	if timeout == 0 {
		timeout = opencitations.DefaultTimeout
	}

	genderTable := cfg.GenderTable
	if genderTable == "" {
		genderTable = "(built-in)"
	}

	resp := ConfigResponse{
		ConfigPath:  config.GlobalConfigPath(),
		DataDir:     dataDir,
		Listing:     rc.InputPath,
		Output:      rc.OutputPath,
		Mapping:     rc.MappingPath,
		TokenFound:  tokenErr == nil,
		GenderTable: genderTable,
		SkipRows:    rc.SkipRows,
		Timeout:     timeout.String(),
		RateLimit:   cfg.RateLimit,
		LogLevel:    cfg.ResolveLogLevel(),
	}

	if humanOutput {
		outputHuman("config:       %s\n", resp.ConfigPath)
		outputHuman("data_dir:     %s\n", resp.DataDir)
		outputHuman("run:          %s\n", describeRun(rc))
		outputHuman("mapping:      %s\n", resp.Mapping)
		outputHuman("token:        %s\n", map[bool]string{true: "found", false: "missing"}[resp.TokenFound])
		outputHuman("gender_table: %s\n", resp.GenderTable)
		outputHuman("timeout:      %s\n", resp.Timeout)
		if resp.RateLimit > 0 {
			outputHuman("rate_limit:   %g/s\n", resp.RateLimit)
		} else {
			outputHuman("rate_limit:   unlimited\n")
		}
		outputHuman("log_level:    %s\n", resp.LogLevel)
		return nil
	}
	return outputJSON(resp)
}
