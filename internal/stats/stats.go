// Package stats summarizes an annotated listing with SQL over an in-memory
// SQLite database.
package stats

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/matsen/paperstats/internal/listing"
	_ "modernc.org/sqlite"
)

// DB wraps an in-memory SQLite database holding one listing.
type DB struct {
	db *sql.DB
}

// Count is the number of papers sharing a key.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Summary describes an annotated listing.
type Summary struct {
	Papers             int      `json:"papers"`
	WithCitationCount  int      `json:"with_citation_count"`
	TotalCitations     int      `json:"total_citations"`
	MeanProportionMale *float64 `json:"mean_proportion_male"` // nil when no row has a proportion
	ByYear             []Count  `json:"by_year"`
	ByJournal          []Count  `json:"by_journal"`
	FirstAuthorGender  []Count  `json:"first_author_gender"`
	LastAuthorGender   []Count  `json:"last_author_gender"`
}

// OpenMemory creates an empty in-memory database.
func OpenMemory() (*DB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS papers (
			idx INTEGER PRIMARY KEY,
			link TEXT,
			doi TEXT,
			journal TEXT,
			year TEXT,
			citation_count INTEGER,
			gender_first TEXT,
			gender_last TEXT,
			proportion_male REAL
		);

		CREATE INDEX IF NOT EXISTS idx_papers_year ON papers(year);
		CREATE INDEX IF NOT EXISTS idx_papers_journal ON papers(journal);
	`

	_, err := db.Exec(schema)
	return err
}

// Load replaces the database contents with the rows of t.
// It returns the number of rows inserted.
func (d *DB) Load(ctx context.Context, t *listing.Table) (int, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM papers"); err != nil {
		return 0, fmt.Errorf("clearing papers table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO papers (
			idx, link, doi, journal, year,
			citation_count, gender_first, gender_last, proportion_male
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i := range t.Len() {
		cell := func(col string) any {
			v, ok := t.Value(i, col)
			if !ok {
				return nil
			}
			return v
		}

		_, err := stmt.ExecContext(ctx,
			i,
			cell(listing.ColumnLink),
			cell(listing.ColumnDOI),
			cell(listing.ColumnJournal),
			yearOf(t, i),
			intOrNull(t, i, listing.ColumnCitationCount),
			cell(listing.ColumnGenderFirstAuthor),
			cell(listing.ColumnGenderLastAuthor),
			floatOrNull(t, i, listing.ColumnProportionMale),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return t.Len(), nil
}

// yearOf returns the four-digit year of a normalized year cell.
func yearOf(t *listing.Table, row int) any {
	v, ok := t.Value(row, listing.ColumnYear)
	if !ok {
		return nil
	}
	v = strings.TrimSpace(v)
	if len(v) < 4 {
		return nil
	}
	if _, err := strconv.Atoi(v[:4]); err != nil {
		return nil
	}
	return v[:4]
}

func intOrNull(t *listing.Table, row int, col string) any {
	v, ok := t.Value(row, col)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return nil
	}
	return n
}

func floatOrNull(t *listing.Table, row int, col string) any {
	v, ok := t.Value(row, col)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return nil
	}
	return f
}

// Summarize computes the summary of the loaded listing.
func (d *DB) Summarize(ctx context.Context) (*Summary, error) {
	s := &Summary{}

	var mean sql.NullFloat64
	err := d.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COUNT(citation_count),
			COALESCE(SUM(citation_count), 0),
			AVG(proportion_male)
		FROM papers
	`).Scan(&s.Papers, &s.WithCitationCount, &s.TotalCitations, &mean)
	if err != nil {
		return nil, fmt.Errorf("querying totals: %w", err)
	}
	if mean.Valid {
		s.MeanProportionMale = &mean.Float64
	}

	groups := []struct {
		dst   *[]Count
		query string
	}{
		{&s.ByYear, `
			SELECT year, COUNT(*) FROM papers
			WHERE year IS NOT NULL
			GROUP BY year ORDER BY year`},
		{&s.ByJournal, `
			SELECT journal, COUNT(*) AS n FROM papers
			WHERE journal IS NOT NULL
			GROUP BY journal ORDER BY n DESC, journal`},
		{&s.FirstAuthorGender, `
			SELECT COALESCE(gender_first, 'n/a') AS g, COUNT(*) AS n FROM papers
			GROUP BY g ORDER BY n DESC, g`},
		{&s.LastAuthorGender, `
			SELECT COALESCE(gender_last, 'n/a') AS g, COUNT(*) AS n FROM papers
			GROUP BY g ORDER BY n DESC, g`},
	}
	for _, g := range groups {
		counts, err := d.counts(ctx, g.query)
		if err != nil {
			return nil, err
		}
		*g.dst = counts
	}

	return s, nil
}

func (d *DB) counts(ctx context.Context, query string) ([]Count, error) {
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying counts: %w", err)
	}
	defer rows.Close()

	counts := []Count{}
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Key, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// SummarizeTable loads t into a fresh in-memory database and summarizes it.
func SummarizeTable(ctx context.Context, t *listing.Table) (*Summary, error) {
	d, err := OpenMemory()
	if err != nil {
		return nil, err
	}
	defer d.Close()

	if _, err := d.Load(ctx, t); err != nil {
		return nil, err
	}
	return d.Summarize(ctx)
}
