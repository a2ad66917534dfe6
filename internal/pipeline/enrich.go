// Package pipeline wires normalization, metadata enrichment and gender
// annotation of a paper listing.
package pipeline

import (
	"context"

	"github.com/matsen/paperstats/internal/doi"
	"github.com/matsen/paperstats/internal/listing"
	"github.com/matsen/paperstats/internal/opencitations"
	"github.com/rs/zerolog"
)

// NotAvailable marks a derived cell that could not be computed.
const NotAvailable = "n/a"

// MetadataFetcher looks up citation metadata for a DOI.
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, doi string) (*opencitations.Metadata, error)
}

// Enricher fills journal, authors and citation counts from a MetadataFetcher.
type Enricher struct {
	Fetcher MetadataFetcher
	Logger  zerolog.Logger
}

// EnrichStats counts how enrichment went.
type EnrichStats struct {
	Rows       int `json:"rows"`
	WithDOI    int `json:"with_doi"`
	Enriched   int `json:"enriched"`
	NoMetadata int `json:"no_metadata"`
}

// Enrich processes every row in order, setting the doi, journal, authors
// and citation_count columns. A failed lookup only affects its own row;
// the only error returned is context cancellation.
func (e *Enricher) Enrich(ctx context.Context, t *listing.Table) (EnrichStats, error) {
	n := t.Len()
	stats := EnrichStats{Rows: n}

	dois := make([]string, n)
	journals := make([]string, n)
	authors := make([]string, n)
	counts := make([]string, n)

	for i := range n {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		link, _ := t.Value(i, listing.ColumnLink)
		journals[i], _ = t.Value(i, listing.ColumnJournal)
		authors[i], _ = t.Value(i, listing.ColumnAuthors)

		d := doi.FromLink(link)
		dois[i] = d

		log := e.Logger.With().Int("row", i).Str("link", link).Str("doi", d).Logger()

		if doi.IsDOI(d) {
			stats.WithDOI++
		}

		md, err := e.lookup(ctx, d)
		if err != nil {
			if ctx.Err() != nil {
				return stats, ctx.Err()
			}
			log.Warn().Err(err).Msg("metadata lookup failed")
		}

		if md == nil {
			counts[i] = NotAvailable
			stats.NoMetadata++
			log.Debug().Msg("no metadata")
			continue
		}

		if md.SourceTitle != "" {
			journals[i] = md.SourceTitle
		}
		authors[i] = md.Author
		counts[i] = md.CitationCount.String()
		stats.Enriched++
		log.Info().Str("journal", journals[i]).Str("citation_count", counts[i]).Msg("metadata")
	}

	for _, col := range []struct {
		name   string
		values []string
	}{
		{listing.ColumnDOI, dois},
		{listing.ColumnJournal, journals},
		{listing.ColumnAuthors, authors},
		{listing.ColumnCitationCount, counts},
	} {
		if err := t.SetColumn(col.name, col.values); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

// lookup returns nil metadata without an error when d is not a DOI.
func (e *Enricher) lookup(ctx context.Context, d string) (*opencitations.Metadata, error) {
	if !doi.IsDOI(d) {
		return nil, nil
	}
	md, err := e.Fetcher.FetchMetadata(ctx, d)
	if err != nil {
		return nil, err
	}
	return md, nil
}
