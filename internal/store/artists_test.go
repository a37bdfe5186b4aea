package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farellandr/fyyur/internal/models"
)

func TestCreateArtist_AddsExactlyOneRow(t *testing.T) {
	st, _ := newTestStore(t)
	in := artistInput("Gary Clark Jr.")
	in.SeekingVenue = true
	in.SeekingDescription = strPtr("Booking fall dates")

	created, err := st.CreateArtist(in)
	require.NoError(t, err)

	counts, err := st.Counts()
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Artists)

	got, err := st.GetArtist(created.ID)
	require.NoError(t, err)
	assert.Equal(t, in.Name, got.Name)
	assert.Equal(t, in.Phone, got.Phone)
	assert.True(t, got.SeekingVenue)
	require.NotNil(t, got.SeekingDescription)
	assert.Equal(t, "Booking fall dates", *got.SeekingDescription)
	assert.Nil(t, got.Website)
	assert.Equal(t, []string{"Funk"}, got.GenreNames())
}

func TestGetArtist_UsesRequestedID(t *testing.T) {
	st := seededStore(t)
	artists, err := st.ListArtistSummaries()
	require.NoError(t, err)
	require.Len(t, artists, 3)

	for _, a := range artists {
		got, err := st.GetArtist(a.ID)
		require.NoError(t, err)
		assert.Equal(t, a.ID, got.ID)
		assert.Equal(t, a.Name, got.Name)
	}

	_, err = st.GetArtist(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListArtistSummaries_SortedByName(t *testing.T) {
	st := seededStore(t)

	artists, err := st.ListArtistSummaries()
	require.NoError(t, err)

	var names []string
	for _, a := range artists {
		names = append(names, a.Name)
		assert.Empty(t, a.Phone, "summaries only load id and name")
	}
	assert.Equal(t, []string{"Guns N Petals", "Matt Quevedo", "The Wild Sax Band"}, names)
}

func TestUpdateArtist_LeavesOtherArtistsUnchanged(t *testing.T) {
	st, _ := newTestStore(t)
	target, err := st.CreateArtist(artistInput("Black Pumas"))
	require.NoError(t, err)
	other, err := st.CreateArtist(artistInput("Khruangbin"))
	require.NoError(t, err)

	current, err := st.GetArtist(target.ID)
	require.NoError(t, err)
	in := artistInput("Black Pumas")
	in.City = "Houston"
	in.SeekingVenue = true
	in.Genres = []string{"Funk", "Soul"}

	changes := DiffArtist(current, in)
	assert.ElementsMatch(t, []string{"city", "seeking_venue", "genres"}, changes.Fields())
	require.NoError(t, st.UpdateArtist(target.ID, changes))

	got, err := st.GetArtist(target.ID)
	require.NoError(t, err)
	assert.Equal(t, "Houston", got.City)
	assert.True(t, got.SeekingVenue)
	assert.Equal(t, []string{"Funk", "Soul"}, got.GenreNames())

	untouched, err := st.GetArtist(other.ID)
	require.NoError(t, err)
	assert.Equal(t, "Austin", untouched.City)
	assert.False(t, untouched.SeekingVenue)
	assert.Equal(t, []string{"Funk"}, untouched.GenreNames())
}

func TestUpdateArtist_NotFound(t *testing.T) {
	st, _ := newTestStore(t)

	err := st.UpdateArtist(uuid.New(), ArtistChanges{City: Set("Dallas")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDiffArtist_OptionalDescription(t *testing.T) {
	current := &models.Artist{Name: "A", SeekingDescription: strPtr("open to offers")}

	in := artistInput("A")
	in.SeekingDescription = strPtr("open to offers")
	assert.False(t, DiffArtist(current, in).SeekingDescription.Set)

	in.SeekingDescription = nil
	cleared := DiffArtist(current, in)
	assert.True(t, cleared.SeekingDescription.Set)
	assert.Nil(t, cleared.SeekingDescription.Value)
}
