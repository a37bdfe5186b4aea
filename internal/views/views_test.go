package views

import (
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farellandr/fyyur/internal/flash"
	"github.com/farellandr/fyyur/internal/forms"
)

func TestDatetime(t *testing.T) {
	ts := time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC)
	assert.Equal(t, "Tuesday May, 21, 2019 at 9:30PM", Datetime(ts, "full"))
	assert.Equal(t, "Tue 05, 21, 2019 9:30PM", Datetime(ts, "medium"))
	assert.Equal(t, "2019-05-21 21:30:00", Datetime(ts, "input"))
	assert.Equal(t, "2019", Datetime(ts, "2006"))
}

func TestNew_ParsesEveryPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	for _, name := range []string{
		"home.html", "venues.html", "search_venues.html", "show_venue.html",
		"artists.html", "search_artists.html", "show_artist.html", "shows.html",
		"new_venue.html", "edit_venue.html", "new_artist.html", "edit_artist.html",
		"new_show.html", "404.html", "500.html",
	} {
		assert.Contains(t, r.pages, name)
	}
}

func TestRender_FormWithErrors(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	data := gin.H{
		"flashes": []flash.Message{flash.Error("An error occurred. Venue could not be listed.")},
		"form":    forms.VenueForm{Name: "The Hop", State: "CA", Genres: []string{"Jazz"}, SeekingTalent: "y"},
		"errors":  forms.FieldErrors{"phone": "Phone must look like 123-456-7890."},
		"states":  forms.States,
		"genres":  forms.Genres,
	}
	require.NoError(t, r.Instance("new_venue.html", data).Render(w))

	body := w.Body.String()
	assert.Contains(t, body, "An error occurred. Venue could not be listed.")
	assert.Contains(t, body, `value="The Hop"`)
	assert.Contains(t, body, `<option value="CA" selected>`)
	assert.Contains(t, body, `<option value="Jazz" selected>`)
	assert.Contains(t, body, "Phone must look like 123-456-7890.")
	assert.Contains(t, body, `value="y" checked`)
}

func TestRender_Missing(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	assert.Error(t, r.Instance("nope.html", nil).Render(httptest.NewRecorder()))
}

func TestParse_RejectsDuplicatePages(t *testing.T) {
	fsys := fstest.MapFS{
		"templates/layouts/base.html": {Data: []byte(`{{define "layout"}}{{template "content" .}}{{end}}`)},
		"templates/pages/a.html":      {Data: []byte(`{{define "content"}}a{{end}}`)},
		"templates/forms/a.html":      {Data: []byte(`{{define "content"}}b{{end}}`)},
	}
	_, err := Parse(fsys)
	assert.ErrorContains(t, err, "duplicate page a.html")
}
