package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/farellandr/fyyur/internal/models"
	"github.com/farellandr/fyyur/internal/showtime"
	"github.com/farellandr/fyyur/internal/store"
)

// Summary is one row of a listing or search result.
type Summary struct {
	ID               uuid.UUID
	Name             string
	URL              string
	NumUpcomingShows int
}

type AreaView struct {
	City   string
	State  string
	Venues []Summary
}

type SearchResults struct {
	Term  string
	Count int
	Data  []Summary
}

// ShowCard is a show as listed on a venue or artist page: it names and
// links to the other side of the booking.
type ShowCard struct {
	URL       string
	Name      string
	ImageLink string
	StartTime time.Time
}

type VenueDetail struct {
	ID                 uuid.UUID
	Name               string
	Genres             []string
	Address            string
	City               string
	State              string
	Phone              string
	Website            string
	FacebookLink       string
	SeekingTalent      bool
	SeekingDescription string
	ImageLink          string
	PastShows          []ShowCard
	UpcomingShows      []ShowCard
	PastShowsCount     int
	UpcomingShowsCount int
}

type ArtistDetail struct {
	ID                 uuid.UUID
	Name               string
	Genres             []string
	City               string
	State              string
	Phone              string
	Website            string
	FacebookLink       string
	SeekingVenue       bool
	SeekingDescription string
	ImageLink          string
	PastShows          []ShowCard
	UpcomingShows      []ShowCard
	PastShowsCount     int
	UpcomingShowsCount int
}

type ShowRow struct {
	VenueID         uuid.UUID
	VenueName       string
	ArtistID        uuid.UUID
	ArtistName      string
	ArtistImageLink string
	StartTime       time.Time
}

type Option struct {
	ID   uuid.UUID
	Name string
}

func venuePath(id uuid.UUID) string  { return "/venues/" + id.String() }
func artistPath(id uuid.UUID) string { return "/artists/" + id.String() }

func venueSummaries(venues []models.Venue, now time.Time) []Summary {
	out := make([]Summary, 0, len(venues))
	for _, v := range venues {
		out = append(out, Summary{
			ID:               v.ID,
			Name:             v.Name,
			URL:              venuePath(v.ID),
			NumUpcomingShows: showtime.CountUpcoming(v.Shows, now),
		})
	}
	return out
}

func artistSummaries(artists []models.Artist, now time.Time) []Summary {
	out := make([]Summary, 0, len(artists))
	for _, a := range artists {
		out = append(out, Summary{
			ID:               a.ID,
			Name:             a.Name,
			URL:              artistPath(a.ID),
			NumUpcomingShows: showtime.CountUpcoming(a.Shows, now),
		})
	}
	return out
}

func areaViews(areas []store.Area, now time.Time) []AreaView {
	out := make([]AreaView, 0, len(areas))
	for _, a := range areas {
		out = append(out, AreaView{City: a.City, State: a.State, Venues: venueSummaries(a.Venues, now)})
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// artistCards renders a venue's shows, each pointing at its artist.
func artistCards(shows []models.Show) []ShowCard {
	out := make([]ShowCard, 0, len(shows))
	for _, s := range shows {
		card := ShowCard{URL: artistPath(s.ArtistID), Name: s.Name, StartTime: s.StartTime}
		if s.Artist != nil {
			card.Name = s.Artist.Name
			card.ImageLink = s.Artist.ImageLink
		}
		out = append(out, card)
	}
	return out
}

// venueCards renders an artist's shows, each pointing at its venue.
func venueCards(shows []models.Show) []ShowCard {
	out := make([]ShowCard, 0, len(shows))
	for _, s := range shows {
		card := ShowCard{URL: venuePath(s.VenueID), Name: s.Name, StartTime: s.StartTime}
		if s.Venue != nil {
			card.Name = s.Venue.Name
			card.ImageLink = s.Venue.ImageLink
		}
		out = append(out, card)
	}
	return out
}

func venueDetail(v *models.Venue, now time.Time) VenueDetail {
	past, upcoming := showtime.Partition(v.Shows, now)
	return VenueDetail{
		ID:                 v.ID,
		Name:               v.Name,
		Genres:             v.GenreNames(),
		Address:            v.Address,
		City:               v.City,
		State:              v.State,
		Phone:              v.Phone,
		Website:            deref(v.Website),
		FacebookLink:       v.FacebookLink,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
		ImageLink:          v.ImageLink,
		PastShows:          artistCards(past),
		UpcomingShows:      artistCards(upcoming),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}
}

func artistDetail(a *models.Artist, now time.Time) ArtistDetail {
	past, upcoming := showtime.Partition(a.Shows, now)
	return ArtistDetail{
		ID:                 a.ID,
		Name:               a.Name,
		Genres:             a.GenreNames(),
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Website:            deref(a.Website),
		FacebookLink:       a.FacebookLink,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: deref(a.SeekingDescription),
		ImageLink:          a.ImageLink,
		PastShows:          venueCards(past),
		UpcomingShows:      venueCards(upcoming),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}
}

func showRows(shows []models.Show) []ShowRow {
	out := make([]ShowRow, 0, len(shows))
	for _, s := range shows {
		row := ShowRow{VenueID: s.VenueID, ArtistID: s.ArtistID, StartTime: s.StartTime}
		if s.Venue != nil {
			row.VenueName = s.Venue.Name
		}
		if s.Artist != nil {
			row.ArtistName = s.Artist.Name
			row.ArtistImageLink = s.Artist.ImageLink
		}
		out = append(out, row)
	}
	return out
}

func venueOptions(venues []models.Venue) []Option {
	out := make([]Option, 0, len(venues))
	for _, v := range venues {
		out = append(out, Option{ID: v.ID, Name: v.Name})
	}
	return out
}

func artistOptions(artists []models.Artist) []Option {
	out := make([]Option, 0, len(artists))
	for _, a := range artists {
		out = append(out, Option{ID: a.ID, Name: a.Name})
	}
	return out
}
