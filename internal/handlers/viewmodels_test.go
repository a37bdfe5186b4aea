package handlers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farellandr/fyyur/internal/models"
)

func TestVenueDetail_SplitsShowsAroundNow(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	artist := &models.Artist{ID: uuid.New(), Name: "Guns N Petals", ImageLink: "https://example.com/gnp.png"}
	website := "https://example.com"
	venue := &models.Venue{
		ID:      uuid.New(),
		Name:    "The Musical Hop",
		Website: &website,
		Genres:  []models.Genre{{Name: "Jazz"}, {Name: "Reggae"}},
		Shows: []models.Show{
			{ArtistID: artist.ID, Artist: artist, StartTime: now.Add(-time.Hour)},
			{ArtistID: artist.ID, Artist: artist, StartTime: now},
			{ArtistID: artist.ID, Artist: artist, StartTime: now.Add(48 * time.Hour)},
		},
	}

	d := venueDetail(venue, now)
	assert.Equal(t, []string{"Jazz", "Reggae"}, d.Genres)
	assert.Equal(t, website, d.Website)
	assert.Equal(t, 1, d.PastShowsCount)
	assert.Equal(t, 2, d.UpcomingShowsCount)
	assert.Len(t, d.PastShows, d.PastShowsCount)
	assert.Len(t, d.UpcomingShows, d.UpcomingShowsCount)

	require.NotEmpty(t, d.UpcomingShows)
	card := d.UpcomingShows[0]
	assert.Equal(t, "Guns N Petals", card.Name)
	assert.Equal(t, "/artists/"+artist.ID.String(), card.URL)
	assert.Equal(t, now, card.StartTime)
}

func TestArtistDetail_LinksVenues(t *testing.T) {
	now := time.Now()
	venue := &models.Venue{ID: uuid.New(), Name: "Park Square Live Music & Coffee"}
	artist := &models.Artist{
		ID:    uuid.New(),
		Name:  "The Wild Sax Band",
		Shows: []models.Show{{VenueID: venue.ID, Venue: venue, StartTime: now.Add(time.Hour)}},
	}

	d := artistDetail(artist, now)
	assert.Empty(t, d.SeekingDescription)
	assert.Zero(t, d.PastShowsCount)
	require.Len(t, d.UpcomingShows, 1)
	assert.Equal(t, "/venues/"+venue.ID.String(), d.UpcomingShows[0].URL)
	assert.Equal(t, venue.Name, d.UpcomingShows[0].Name)
}

func TestSummaries_CountUpcoming(t *testing.T) {
	now := time.Now()
	venues := []models.Venue{{
		ID:   uuid.New(),
		Name: "The Dueling Pianos Bar",
		Shows: []models.Show{
			{StartTime: now.Add(-time.Hour)},
			{StartTime: now.Add(time.Hour)},
		},
	}}

	s := venueSummaries(venues, now)
	require.Len(t, s, 1)
	assert.Equal(t, 1, s[0].NumUpcomingShows)
	assert.Equal(t, venuePath(venues[0].ID), s[0].URL)
}

func TestShowRows_ToleratesMissingRelations(t *testing.T) {
	rows := showRows([]models.Show{{VenueID: uuid.New(), ArtistID: uuid.New()}})
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].VenueName)
	assert.Empty(t, rows[0].ArtistName)
}
