package forms

import (
	"slices"

	"github.com/farellandr/fyyur/internal/models"
)

// States is the closed set of state codes accepted by the venue and artist
// forms.
var States = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL",
	"GA", "HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME",
	"MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND", "OH",
	"OK", "OR", "MD", "MA", "MI", "MN", "MS", "MO", "PA", "RI",
	"SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI",
	"WY",
}

// Genres is the closed set of genres accepted by the forms, in display order.
var Genres = models.GenreChoices

func IsState(s string) bool {
	return slices.Contains(States, s)
}

func IsGenre(s string) bool {
	return slices.Contains(Genres, s)
}

// NormalizeGenres drops duplicates and unknown names and returns the rest in
// enumeration order, so equal selections always compare equal.
func NormalizeGenres(selected []string) []string {
	out := make([]string, 0, len(selected))
	for _, g := range Genres {
		if slices.Contains(selected, g) {
			out = append(out, g)
		}
	}
	return out
}
