// Package forms binds and validates the venue, artist and show forms. Rules
// live in `binding` struct tags checked by gin's validator engine; the
// custom rules are installed by RegisterValidators. A form that binds
// cleanly converts into the matching store command.
package forms

import (
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"

	"github.com/farellandr/fyyur/internal/models"
	"github.com/farellandr/fyyur/internal/store"
)

type VenueForm struct {
	Name               string   `form:"name" binding:"notblank,max=120"`
	City               string   `form:"city" binding:"notblank,max=120"`
	State              string   `form:"state" binding:"required,usstate"`
	Address            string   `form:"address" binding:"notblank,max=120"`
	Phone              string   `form:"phone" binding:"required,phone"`
	ImageLink          string   `form:"image_link" binding:"omitempty,url,max=500"`
	FacebookLink       string   `form:"facebook_link" binding:"omitempty,url,max=120"`
	Website            string   `form:"website" binding:"omitempty,url"`
	Genres             []string `form:"genres" binding:"required,min=1,dive,genre"`
	SeekingTalent      string   `form:"seeking_talent" binding:"omitempty,oneof=y on true 1 n off false 0"`
	SeekingDescription string   `form:"seeking_description" binding:"max=400"`
}

type ArtistForm struct {
	Name               string   `form:"name" binding:"notblank,max=120"`
	City               string   `form:"city" binding:"notblank,max=120"`
	State              string   `form:"state" binding:"required,usstate"`
	Phone              string   `form:"phone" binding:"required,phone"`
	ImageLink          string   `form:"image_link" binding:"omitempty,url,max=500"`
	FacebookLink       string   `form:"facebook_link" binding:"omitempty,url,max=120"`
	Website            string   `form:"website" binding:"omitempty,url"`
	Genres             []string `form:"genres" binding:"required,min=1,dive,genre"`
	SeekingVenue       string   `form:"seeking_venue" binding:"omitempty,oneof=y on true 1 n off false 0"`
	SeekingDescription string   `form:"seeking_description" binding:"max=400"`
}

type ShowForm struct {
	ArtistID  string `form:"artist_id" binding:"required,uuid"`
	VenueID   string `form:"venue_id" binding:"required,uuid"`
	StartTime string `form:"start_time" binding:"required,starttime"`
}

// Bind decodes the submitted form into dst and validates it. A nil result
// means dst is valid.
func Bind(c *gin.Context, dst any) FieldErrors {
	RegisterValidators()
	if err := c.ShouldBindWith(dst, binding.Form); err != nil {
		return Explain(err)
	}
	return nil
}

// Checked reports whether a checkbox value means "on".
func Checked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "y", "on", "true", "1":
		return true
	}
	return false
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func checkbox(b bool) string {
	if b {
		return "y"
	}
	return ""
}

func (f VenueForm) Input() store.VenueInput {
	return store.VenueInput{
		Name:               strings.TrimSpace(f.Name),
		City:               strings.TrimSpace(f.City),
		State:              f.State,
		Address:            strings.TrimSpace(f.Address),
		Phone:              strings.TrimSpace(f.Phone),
		ImageLink:          strings.TrimSpace(f.ImageLink),
		FacebookLink:       strings.TrimSpace(f.FacebookLink),
		Website:            optional(f.Website),
		SeekingTalent:      Checked(f.SeekingTalent),
		SeekingDescription: strings.TrimSpace(f.SeekingDescription),
		Genres:             NormalizeGenres(f.Genres),
	}
}

// VenueFormFrom pre-fills the edit form with a stored venue.
func VenueFormFrom(v *models.Venue) VenueForm {
	return VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		FacebookLink:       v.FacebookLink,
		Website:            deref(v.Website),
		Genres:             v.GenreNames(),
		SeekingTalent:      checkbox(v.SeekingTalent),
		SeekingDescription: v.SeekingDescription,
	}
}

func (f ArtistForm) Input() store.ArtistInput {
	return store.ArtistInput{
		Name:               strings.TrimSpace(f.Name),
		City:               strings.TrimSpace(f.City),
		State:              f.State,
		Phone:              strings.TrimSpace(f.Phone),
		ImageLink:          strings.TrimSpace(f.ImageLink),
		FacebookLink:       strings.TrimSpace(f.FacebookLink),
		Website:            optional(f.Website),
		SeekingVenue:       Checked(f.SeekingVenue),
		SeekingDescription: optional(f.SeekingDescription),
		Genres:             NormalizeGenres(f.Genres),
	}
}

func ArtistFormFrom(a *models.Artist) ArtistForm {
	return ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		ImageLink:          a.ImageLink,
		FacebookLink:       a.FacebookLink,
		Website:            deref(a.Website),
		Genres:             a.GenreNames(),
		SeekingVenue:       checkbox(a.SeekingVenue),
		SeekingDescription: deref(a.SeekingDescription),
	}
}

// Input converts a validated show form. It only fails if called on a form
// that did not pass Bind.
func (f ShowForm) Input() (store.ShowInput, error) {
	venueID, err := uuid.Parse(strings.TrimSpace(f.VenueID))
	if err != nil {
		return store.ShowInput{}, err
	}
	artistID, err := uuid.Parse(strings.TrimSpace(f.ArtistID))
	if err != nil {
		return store.ShowInput{}, err
	}
	start, err := ParseStartTime(f.StartTime)
	if err != nil {
		return store.ShowInput{}, err
	}
	return store.ShowInput{VenueID: venueID, ArtistID: artistID, StartTime: start}, nil
}

// Has reports whether selected contains choice; templates use it to mark
// checked genres and selected states.
func Has(selected []string, choice string) bool {
	return slices.Contains(selected, choice)
}
