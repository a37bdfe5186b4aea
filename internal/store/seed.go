package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SampleVenues, SampleArtists and sampleShows form the demo data set loaded
// by SeedSample.
var SampleVenues = []VenueInput{
	{
		Name:               "The Musical Hop",
		City:               "San Francisco",
		State:              "CA",
		Address:            "1015 Folsom Street",
		Phone:              "123-123-1234",
		ImageLink:          "https://images.unsplash.com/photo-1543900694-133f37abaaa5?w=400",
		FacebookLink:       "https://www.facebook.com/TheMusicalHop",
		Website:            strPtr("https://www.themusicalhop.com"),
		SeekingTalent:      true,
		SeekingDescription: "We are on the lookout for a local artist to play every two weeks. Please call us.",
		Genres:             []string{"Classical", "Folk", "Jazz", "Reggae"},
	},
	{
		Name:         "The Dueling Pianos Bar",
		City:         "New York",
		State:        "NY",
		Address:      "335 Delancey Street",
		Phone:        "914-003-1132",
		ImageLink:    "https://images.unsplash.com/photo-1497032205916-ac775f0649ae?w=400",
		FacebookLink: "https://www.facebook.com/theduelingpianos",
		Website:      strPtr("https://www.theduelingpianos.com"),
		Genres:       []string{"Classical", "Hip-Hop", "R&B"},
	},
	{
		Name:         "Park Square Live Music & Coffee",
		City:         "San Francisco",
		State:        "CA",
		Address:      "34 Whiskey Moore Ave",
		Phone:        "415-000-1234",
		ImageLink:    "https://images.unsplash.com/photo-1485686531765-ba63b07845a7?w=400",
		FacebookLink: "https://www.facebook.com/ParkSquareLiveMusicAndCoffee",
		Website:      strPtr("https://www.parksquarelivemusicandcoffee.com"),
		Genres:       []string{"Classical", "Folk", "Jazz", "Rock n Roll"},
	},
}

var SampleArtists = []ArtistInput{
	{
		Name:               "Guns N Petals",
		City:               "San Francisco",
		State:              "CA",
		Phone:              "326-123-5000",
		ImageLink:          "https://images.unsplash.com/photo-1549213783-8284d0336c4f?w=300",
		FacebookLink:       "https://www.facebook.com/GunsNPetals",
		Website:            strPtr("https://www.gunsnpetalsband.com"),
		SeekingVenue:       true,
		SeekingDescription: strPtr("Looking for shows to perform at in the San Francisco Bay Area!"),
		Genres:             []string{"Rock n Roll"},
	},
	{
		Name:         "Matt Quevedo",
		City:         "New York",
		State:        "NY",
		Phone:        "300-400-5000",
		ImageLink:    "https://images.unsplash.com/photo-1495223153807-b916f75de8c5?w=334",
		FacebookLink: "https://www.facebook.com/mattquevedo923251523",
		Genres:       []string{"Jazz"},
	},
	{
		Name:      "The Wild Sax Band",
		City:      "San Francisco",
		State:     "CA",
		Phone:     "432-325-5432",
		ImageLink: "https://images.unsplash.com/photo-1558369981-f9ca78462e61?w=794",
		Genres:    []string{"Classical", "Jazz"},
	},
}

// sampleShows pairs indexes into SampleVenues and SampleArtists.
var sampleShows = []struct {
	venue, artist int
	start         time.Time
}{
	{0, 0, time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC)},
	{2, 1, time.Date(2019, 6, 15, 23, 0, 0, 0, time.UTC)},
	{2, 2, time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)},
	{2, 2, time.Date(2035, 4, 8, 20, 0, 0, 0, time.UTC)},
	{2, 2, time.Date(2035, 4, 15, 20, 0, 0, 0, time.UTC)},
}

// SeedSample loads the demo data set unless any venue already exists. It
// reports whether rows were inserted.
func (s *Store) SeedSample() (bool, error) {
	counts, err := s.Counts()
	if err != nil {
		return false, err
	}
	if counts.Venues > 0 {
		return false, nil
	}

	venueIDs := make([]uuid.UUID, len(SampleVenues))
	for i, in := range SampleVenues {
		v, err := s.CreateVenue(in)
		if err != nil {
			return false, fmt.Errorf("seed venue %q: %w", in.Name, err)
		}
		venueIDs[i] = v.ID
	}

	var shows []ShowInput
	for i, in := range SampleArtists {
		a, err := s.CreateArtist(in)
		if err != nil {
			return false, fmt.Errorf("seed artist %q: %w", in.Name, err)
		}
		for _, sh := range sampleShows {
			if sh.artist == i {
				shows = append(shows, ShowInput{VenueID: venueIDs[sh.venue], ArtistID: a.ID, StartTime: sh.start})
			}
		}
	}
	for _, in := range shows {
		if _, err := s.CreateShow(in); err != nil {
			return false, fmt.Errorf("seed show: %w", err)
		}
	}
	return true, nil
}

func strPtr(s string) *string {
	return &s
}
