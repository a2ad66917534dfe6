package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/matsen/paperstats/internal/gender"
	"github.com/matsen/paperstats/internal/listing"
	"github.com/rs/zerolog"
)

// ErrMissingToken is returned when enrichment is requested without a token.
var ErrMissingToken = errors.New("enrichment requires an access token")

// RunConfig describes one pipeline run.
type RunConfig struct {
	Enrich      bool   // query the metadata service before annotating
	InputPath   string // listing to read
	OutputPath  string // annotated listing to write
	MappingPath string // column mapping (JSON or YAML)
	SkipRows    int    // comment rows following the header
	Token       string // metadata service token, required when Enrich is set
}

// Validate checks the configuration before any file is touched.
func (c RunConfig) Validate() error {
	if c.InputPath == "" {
		return errors.New("input path is required")
	}
	if c.OutputPath == "" {
		return errors.New("output path is required")
	}
	if c.MappingPath == "" {
		return errors.New("mapping path is required")
	}
	if c.SkipRows < 0 {
		return fmt.Errorf("skip rows must be non-negative, got %d", c.SkipRows)
	}
	if c.Enrich && c.Token == "" {
		return ErrMissingToken
	}
	return nil
}

// Result summarizes a completed run.
type Result struct {
	Input    string       `json:"input"`
	Output   string       `json:"output"`
	Rows     int          `json:"rows"`
	Columns  []string     `json:"columns"`
	Renamed  int          `json:"renamed"`
	Dropped  int          `json:"dropped"`
	Enriched *EnrichStats `json:"enrichment,omitempty"`
}

// Runner executes normalize, optional enrichment, and gender annotation.
type Runner struct {
	Fetcher MetadataFetcher
	Guesser gender.Guesser
	Logger  zerolog.Logger
}

// Run normalizes the input, enriches it when cfg.Enrich is set and writes
// the output, then annotates genders and writes the output again.
func (r *Runner) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Enrich && r.Fetcher == nil {
		return nil, errors.New("enrichment requires a metadata fetcher")
	}
	if r.Guesser == nil {
		return nil, errors.New("annotation requires a gender guesser")
	}

	mapping, err := listing.LoadMapping(cfg.MappingPath)
	if err != nil {
		return nil, err
	}

	t, norm, err := listing.NormalizeFile(cfg.InputPath, mapping, cfg.SkipRows)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Input:   cfg.InputPath,
		Output:  cfg.OutputPath,
		Rows:    t.Len(),
		Renamed: norm.Renamed,
		Dropped: norm.Dropped,
	}
	r.Logger.Info().
		Str("input", cfg.InputPath).
		Int("rows", t.Len()).
		Int("renamed", norm.Renamed).
		Int("dropped", norm.Dropped).
		Msg("listing normalized")

	if cfg.Enrich {
		enricher := &Enricher{Fetcher: r.Fetcher, Logger: r.Logger}
		stats, err := enricher.Enrich(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("enriching listing: %w", err)
		}
		res.Enriched = &stats
		if err := listing.WriteFile(cfg.OutputPath, t); err != nil {
			return nil, err
		}
		r.Logger.Info().
			Int("enriched", stats.Enriched).
			Int("no_metadata", stats.NoMetadata).
			Str("output", cfg.OutputPath).
			Msg("enriched listing written")
	}

	annotator := &Annotator{Guesser: r.Guesser, Logger: r.Logger}
	if err := annotator.Annotate(t); err != nil {
		return nil, fmt.Errorf("annotating listing: %w", err)
	}
	if err := listing.WriteFile(cfg.OutputPath, t); err != nil {
		return nil, err
	}
	r.Logger.Info().Str("output", cfg.OutputPath).Msg("annotated listing written")

	res.Columns = t.Columns
	return res, nil
}
