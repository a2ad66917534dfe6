package pipeline

import (
	"github.com/matsen/paperstats/internal/author"
	"github.com/matsen/paperstats/internal/gender"
	"github.com/matsen/paperstats/internal/listing"
	"github.com/rs/zerolog"
)

// Annotator appends per-row gender guesses for the author list.
type Annotator struct {
	Guesser gender.Guesser
	Logger  zerolog.Logger
}

// Annotation is the gender result for one row.
type Annotation struct {
	First      gender.Label
	Last       gender.Label
	Proportion string
}

var notAvailable = Annotation{
	First:      gender.NotAvailable,
	Last:       gender.NotAvailable,
	Proportion: NotAvailable,
}

// AnnotateAuthors guesses the gender of every author in raw. A missing
// field or one with no parseable names yields n/a everywhere.
func (a *Annotator) AnnotateAuthors(raw string, present bool) Annotation {
	if !present {
		return notAvailable
	}
	names := author.ParseAuthors(raw)
	if len(names) == 0 {
		return notAvailable
	}

	labels := make([]gender.Label, len(names))
	for i, surname := range author.Surnames(names) {
		labels[i] = a.Guesser.Guess(surname)
	}

	ann := Annotation{
		First:      labels[0],
		Last:       labels[len(labels)-1],
		Proportion: NotAvailable,
	}
	if p, ok := gender.MaleProportion(labels); ok {
		ann.Proportion = gender.FormatProportion(p)
	}
	return ann
}

// Annotate sets gender_first_author, gender_last_author and
// proportion_male_in_authors on every row.
func (a *Annotator) Annotate(t *listing.Table) error {
	n := t.Len()
	first := make([]string, n)
	last := make([]string, n)
	prop := make([]string, n)

	for i := range n {
		raw, ok := t.Value(i, listing.ColumnAuthors)
		ann := a.AnnotateAuthors(raw, ok)
		first[i], last[i], prop[i] = string(ann.First), string(ann.Last), ann.Proportion

		a.Logger.Debug().
			Int("row", i).
			Str("first", first[i]).
			Str("last", last[i]).
			Str("proportion", prop[i]).
			Msg("gender")
	}

	if err := t.SetColumn(listing.ColumnGenderFirstAuthor, first); err != nil {
		return err
	}
	if err := t.SetColumn(listing.ColumnGenderLastAuthor, last); err != nil {
		return err
	}
	return t.SetColumn(listing.ColumnProportionMale, prop)
}
