package store

import (
	"slices"
)

// Change carries one field of an update command. Unset changes leave the
// stored column untouched.
type Change[T any] struct {
	Value T
	Set   bool
}

func Set[T any](v T) Change[T] {
	return Change[T]{Value: v, Set: true}
}

type VenueInput struct {
	Name               string
	City               string
	State              string
	Address            string
	Phone              string
	ImageLink          string
	FacebookLink       string
	Website            *string
	SeekingTalent      bool
	SeekingDescription string
	Genres             []string
}

type ArtistInput struct {
	Name               string
	City               string
	State              string
	Phone              string
	ImageLink          string
	FacebookLink       string
	Website            *string
	SeekingVenue       bool
	SeekingDescription *string
	Genres             []string
}

// VenueChanges is the update command for a venue. Build it with DiffVenue so
// it only names fields whose value actually differs.
type VenueChanges struct {
	Name               Change[string]
	City               Change[string]
	State              Change[string]
	Address            Change[string]
	Phone              Change[string]
	ImageLink          Change[string]
	FacebookLink       Change[string]
	Website            Change[*string]
	SeekingTalent      Change[bool]
	SeekingDescription Change[string]
	Genres             Change[[]string]
}

type ArtistChanges struct {
	Name               Change[string]
	City               Change[string]
	State              Change[string]
	Phone              Change[string]
	ImageLink          Change[string]
	FacebookLink       Change[string]
	Website            Change[*string]
	SeekingVenue       Change[bool]
	SeekingDescription Change[*string]
	Genres             Change[[]string]
}

// columnSet accumulates column assignments and the field names touched.
type columnSet struct {
	columns map[string]any
	fields  []string
}

func newColumnSet() *columnSet {
	return &columnSet{columns: map[string]any{}}
}

func addColumn[T any](cs *columnSet, column string, c Change[T]) {
	if c.Set {
		cs.columns[column] = c.Value
		cs.fields = append(cs.fields, column)
	}
}

func (v VenueChanges) columnSet() *columnSet {
	cs := newColumnSet()
	addColumn(cs, "name", v.Name)
	addColumn(cs, "city", v.City)
	addColumn(cs, "state", v.State)
	addColumn(cs, "address", v.Address)
	addColumn(cs, "phone", v.Phone)
	addColumn(cs, "image_link", v.ImageLink)
	addColumn(cs, "facebook_link", v.FacebookLink)
	addColumn(cs, "website", v.Website)
	addColumn(cs, "seeking_talent", v.SeekingTalent)
	addColumn(cs, "seeking_description", v.SeekingDescription)
	return cs
}

// Fields lists the changed field names, genres included.
func (v VenueChanges) Fields() []string {
	fields := v.columnSet().fields
	if v.Genres.Set {
		fields = append(fields, "genres")
	}
	return fields
}

func (v VenueChanges) Empty() bool {
	return len(v.Fields()) == 0
}

func (a ArtistChanges) columnSet() *columnSet {
	cs := newColumnSet()
	addColumn(cs, "name", a.Name)
	addColumn(cs, "city", a.City)
	addColumn(cs, "state", a.State)
	addColumn(cs, "phone", a.Phone)
	addColumn(cs, "image_link", a.ImageLink)
	addColumn(cs, "facebook_link", a.FacebookLink)
	addColumn(cs, "website", a.Website)
	addColumn(cs, "seeking_venue", a.SeekingVenue)
	addColumn(cs, "seeking_description", a.SeekingDescription)
	return cs
}

func (a ArtistChanges) Fields() []string {
	fields := a.columnSet().fields
	if a.Genres.Set {
		fields = append(fields, "genres")
	}
	return fields
}

func (a ArtistChanges) Empty() bool {
	return len(a.Fields()) == 0
}

func diff[T comparable](current, next T) Change[T] {
	if current == next {
		return Change[T]{}
	}
	return Set(next)
}

func diffOptional(current, next *string) Change[*string] {
	switch {
	case current == nil && next == nil:
		return Change[*string]{}
	case current != nil && next != nil && *current == *next:
		return Change[*string]{}
	}
	return Set(next)
}

func diffGenres(current, next []string) Change[[]string] {
	if slices.Equal(current, next) {
		return Change[[]string]{}
	}
	return Set(slices.Clone(next))
}
