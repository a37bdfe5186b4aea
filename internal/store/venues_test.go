package store

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateVenue_AddsExactlyOneRow(t *testing.T) {
	st, _ := newTestStore(t)
	in := venueInput("Mohawk")
	in.Website = strPtr("https://mohawkaustin.com")
	in.SeekingTalent = true
	in.SeekingDescription = "Weekend slots open"

	before, err := st.Counts()
	require.NoError(t, err)

	created, err := st.CreateVenue(in)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	after, err := st.Counts()
	require.NoError(t, err)
	assert.Equal(t, before.Venues+1, after.Venues)

	got, err := st.GetVenue(created.ID)
	require.NoError(t, err)
	assert.Equal(t, in.Name, got.Name)
	assert.Equal(t, in.City, got.City)
	assert.Equal(t, in.State, got.State)
	assert.Equal(t, in.Address, got.Address)
	assert.Equal(t, in.Phone, got.Phone)
	assert.Equal(t, in.ImageLink, got.ImageLink)
	assert.Equal(t, in.FacebookLink, got.FacebookLink)
	require.NotNil(t, got.Website)
	assert.Equal(t, *in.Website, *got.Website)
	assert.True(t, got.SeekingTalent)
	assert.Equal(t, in.SeekingDescription, got.SeekingDescription)
	assert.Equal(t, []string{"Blues", "Jazz"}, got.GenreNames())
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCreateVenue_GenresFollowEnumerationOrder(t *testing.T) {
	st, _ := newTestStore(t)
	in := venueInput("Antone's")
	in.Genres = []string{"Soul", "Blues", "Blues", "Alternative"}

	created, err := st.CreateVenue(in)
	require.NoError(t, err)

	got, err := st.GetVenue(created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alternative", "Blues", "Soul"}, got.GenreNames())
}

func TestCreateVenue_InvalidGenresWriteNothing(t *testing.T) {
	for name, genres := range map[string][]string{
		"empty":   nil,
		"unknown": {"Jazz", "Polka"},
	} {
		t.Run(name, func(t *testing.T) {
			st, _ := newTestStore(t)
			in := venueInput("Nowhere")
			in.Genres = genres

			_, err := st.CreateVenue(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidGenres))

			counts, err := st.Counts()
			require.NoError(t, err)
			assert.Zero(t, counts.Venues)
		})
	}
}

func TestGetVenue_UsesRequestedID(t *testing.T) {
	st := seededStore(t)
	venues, err := st.ListVenues()
	require.NoError(t, err)
	require.Len(t, venues, 3)

	for _, v := range venues {
		got, err := st.GetVenue(v.ID)
		require.NoError(t, err)
		assert.Equal(t, v.ID, got.ID)
		assert.Equal(t, v.Name, got.Name)
	}
}

func TestGetVenue_NotFound(t *testing.T) {
	st, _ := newTestStore(t)

	_, err := st.GetVenue(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetVenue_PreloadsShowArtists(t *testing.T) {
	st := seededStore(t)
	venues, err := st.SearchVenues("Park Square")
	require.NoError(t, err)
	require.Len(t, venues, 1)

	got, err := st.GetVenue(venues[0].ID)
	require.NoError(t, err)
	require.Len(t, got.Shows, 4)
	for _, s := range got.Shows {
		require.NotNil(t, s.Artist)
		assert.NotEmpty(t, s.Artist.Name)
	}
}

func TestListVenues_NewestFirst(t *testing.T) {
	st, db := newTestStore(t)
	old, err := st.CreateVenue(venueInput("Old Venue"))
	require.NoError(t, err)
	recent, err := st.CreateVenue(venueInput("Recent Venue"))
	require.NoError(t, err)
	require.NoError(t, db.Exec("UPDATE venues SET created_at = ? WHERE id = ?", time.Now().Add(-time.Hour), old.ID).Error)

	venues, err := st.ListVenues()
	require.NoError(t, err)
	require.Len(t, venues, 2)
	assert.Equal(t, recent.ID, venues[0].ID)
	assert.Equal(t, old.ID, venues[1].ID)
}

func TestVenueAreas_GroupsByCityAndState(t *testing.T) {
	st := seededStore(t)

	areas, err := st.VenueAreas()
	require.NoError(t, err)
	require.Len(t, areas, 2)

	assert.Equal(t, "San Francisco", areas[0].City)
	assert.Equal(t, "CA", areas[0].State)
	require.Len(t, areas[0].Venues, 2)
	assert.Equal(t, "Park Square Live Music & Coffee", areas[0].Venues[0].Name)
	assert.Equal(t, "The Musical Hop", areas[0].Venues[1].Name)

	assert.Equal(t, "New York", areas[1].City)
	assert.Equal(t, "NY", areas[1].State)
	require.Len(t, areas[1].Venues, 1)
}

func TestUpdateVenue_PersistsOnlyChangedFields(t *testing.T) {
	st, _ := newTestStore(t)
	target, err := st.CreateVenue(venueInput("Stubb's"))
	require.NoError(t, err)
	other, err := st.CreateVenue(venueInput("Emo's"))
	require.NoError(t, err)

	current, err := st.GetVenue(target.ID)
	require.NoError(t, err)

	in := venueInput("Stubb's BBQ")
	in.Website = strPtr("https://stubbsaustin.com")
	in.Genres = []string{"Blues", "Country"}
	changes := DiffVenue(current, in)
	assert.ElementsMatch(t, []string{"name", "website", "genres"}, changes.Fields())

	require.NoError(t, st.UpdateVenue(target.ID, changes))

	got, err := st.GetVenue(target.ID)
	require.NoError(t, err)
	assert.Equal(t, "Stubb's BBQ", got.Name)
	require.NotNil(t, got.Website)
	assert.Equal(t, "https://stubbsaustin.com", *got.Website)
	assert.Equal(t, []string{"Blues", "Country"}, got.GenreNames())
	assert.Equal(t, "Austin", got.City)
	assert.True(t, got.CreatedAt.Equal(current.CreatedAt), "created_at must not change")

	untouched, err := st.GetVenue(other.ID)
	require.NoError(t, err)
	assert.Equal(t, "Emo's", untouched.Name)
	assert.Equal(t, []string{"Blues", "Jazz"}, untouched.GenreNames())
}

func TestUpdateVenue_ClearsWebsite(t *testing.T) {
	st, _ := newTestStore(t)
	in := venueInput("Scoot Inn")
	in.Website = strPtr("https://scootinnaustin.com")
	created, err := st.CreateVenue(in)
	require.NoError(t, err)
	current, err := st.GetVenue(created.ID)
	require.NoError(t, err)

	in.Website = nil
	require.NoError(t, st.UpdateVenue(created.ID, DiffVenue(current, in)))

	got, err := st.GetVenue(created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Website)
}

func TestUpdateVenue_EmptyChangesAndMissingVenue(t *testing.T) {
	st, _ := newTestStore(t)
	created, err := st.CreateVenue(venueInput("Parish"))
	require.NoError(t, err)
	current, err := st.GetVenue(created.ID)
	require.NoError(t, err)

	changes := DiffVenue(current, venueInput("Parish"))
	assert.True(t, changes.Empty())
	require.NoError(t, st.UpdateVenue(created.ID, changes))

	err = st.UpdateVenue(uuid.New(), VenueChanges{Name: Set("Ghost")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateVenue_InvalidGenresRollBack(t *testing.T) {
	st, _ := newTestStore(t)
	created, err := st.CreateVenue(venueInput("Elysium"))
	require.NoError(t, err)

	err = st.UpdateVenue(created.ID, VenueChanges{
		Name:   Set("Renamed"),
		Genres: Set([]string{"Polka"}),
	})
	require.ErrorIs(t, err, ErrInvalidGenres)

	got, err := st.GetVenue(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Elysium", got.Name, "name change must roll back with the failed genre update")
}

func TestDeleteVenue_RemovesExactlyThatVenue(t *testing.T) {
	st := seededStore(t)
	hop, err := st.SearchVenues("Hop")
	require.NoError(t, err)
	require.Len(t, hop, 1)

	deleted, err := st.DeleteVenue(hop[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "The Musical Hop", deleted.Name)

	_, err = st.GetVenue(hop[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)

	venues, err := st.ListVenues()
	require.NoError(t, err)
	require.Len(t, venues, 2)
	for _, v := range venues {
		assert.NotEqual(t, hop[0].ID, v.ID)
	}

	counts, err := st.Counts()
	require.NoError(t, err)
	assert.Equal(t, int64(4), counts.Shows, "the deleted venue's show goes with it")
	assert.Equal(t, int64(3), counts.Artists)
}

func TestDeleteVenue_NotFound(t *testing.T) {
	st, _ := newTestStore(t)

	_, err := st.DeleteVenue(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDistinctAreas_Empty(t *testing.T) {
	st, _ := newTestStore(t)

	areas, err := st.DistinctAreas()
	require.NoError(t, err)
	assert.Empty(t, areas)
}

func TestListVenueSummaries_SortedByName(t *testing.T) {
	st := seededStore(t)

	venues, err := st.ListVenueSummaries()
	require.NoError(t, err)

	var names []string
	for _, v := range venues {
		names = append(names, v.Name)
	}
	assert.Equal(t, []string{"Park Square Live Music & Coffee", "The Dueling Pianos Bar", "The Musical Hop"}, names)
}
