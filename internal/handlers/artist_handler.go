package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/fyyur/internal/events"
	"github.com/farellandr/fyyur/internal/flash"
	"github.com/farellandr/fyyur/internal/forms"
	"github.com/farellandr/fyyur/internal/helpers"
	"github.com/farellandr/fyyur/internal/metrics"
	"github.com/farellandr/fyyur/internal/models"
	"github.com/farellandr/fyyur/internal/store"
)

const artistNotFound = "Artist not found."

func ListArtists(c *gin.Context) {
	st, ok := requireStore(c)
	if !ok {
		return
	}
	artists, err := st.ListArtistSummaries()
	if err != nil {
		failStore(c, "list artists", err)
		return
	}
	summaries := make([]Summary, 0, len(artists))
	for _, a := range artists {
		summaries = append(summaries, Summary{ID: a.ID, Name: a.Name, URL: artistPath(a.ID)})
	}
	render(c, http.StatusOK, "artists.html", gin.H{"artists": summaries})
}

func SearchArtists(c *gin.Context) {
	st, ok := requireStore(c)
	if !ok {
		return
	}
	now := time.Now()
	term := strings.TrimSpace(c.PostForm("search_term"))

	artists, err := st.SearchArtists(term)
	if err != nil {
		failStore(c, "search artists", err)
		return
	}
	data := artistSummaries(artists, now)
	render(c, http.StatusOK, "search_artists.html", gin.H{
		"results": SearchResults{Term: term, Count: len(data), Data: data},
	})
}

func loadArtist(c *gin.Context, st *store.Store) (*models.Artist, bool) {
	id, ok := helpers.ParseID(c, "id")
	if !ok {
		helpers.RespondWithError(c, http.StatusNotFound, artistNotFound)
		return nil, false
	}
	artist, err := st.GetArtist(id)
	if errors.Is(err, store.ErrNotFound) {
		helpers.RespondWithError(c, http.StatusNotFound, artistNotFound)
		return nil, false
	}
	if err != nil {
		failStore(c, "get artist", err)
		return nil, false
	}
	return artist, true
}

func GetArtist(c *gin.Context) {
	st, ok := requireStore(c)
	if !ok {
		return
	}
	now := time.Now()

	artist, ok := loadArtist(c, st)
	if !ok {
		return
	}
	render(c, http.StatusOK, "show_artist.html", gin.H{"artist": artistDetail(artist, now)})
}

func NewArtistForm(c *gin.Context) {
	render(c, http.StatusOK, "new_artist.html", formData(forms.ArtistForm{}, nil))
}

func CreateArtist(c *gin.Context) {
	st, ok := requireStore(c)
	if !ok {
		return
	}

	var form forms.ArtistForm
	if errs := forms.Bind(c, &form); errs != nil {
		record(c, events.EntityArtist, "create", metrics.OutcomeInvalid)
		addFlash(c, flash.Error(fmt.Sprintf("Artist %s could not be listed. Please fix the errors below.", strings.TrimSpace(form.Name))))
		render(c, http.StatusOK, "new_artist.html", formData(form, errs))
		return
	}

	in := form.Input()
	artist, err := st.CreateArtist(in)
	if err != nil {
		record(c, events.EntityArtist, "create", metrics.OutcomeError)
		logStoreError(c, "create artist", err)
		redirect(c, "/artists", flash.Error(fmt.Sprintf("An error occurred. Artist %s could not be listed.", in.Name)))
		return
	}

	record(c, events.EntityArtist, "create", metrics.OutcomeOK)
	publish(c, events.New(events.EntityArtist, events.ActionCreated, artist.ID, artist.Name))
	redirect(c, "/", flash.Success(fmt.Sprintf("Artist %s was successfully listed!", artist.Name)))
}

func EditArtistForm(c *gin.Context) {
	st, ok := requireStore(c)
	if !ok {
		return
	}
	artist, ok := loadArtist(c, st)
	if !ok {
		return
	}
	data := formData(forms.ArtistFormFrom(artist), nil)
	data["id"] = artist.ID
	data["name"] = artist.Name
	render(c, http.StatusOK, "edit_artist.html", data)
}

func UpdateArtist(c *gin.Context) {
	st, ok := requireStore(c)
	if !ok {
		return
	}
	artist, ok := loadArtist(c, st)
	if !ok {
		return
	}

	var form forms.ArtistForm
	if errs := forms.Bind(c, &form); errs != nil {
		record(c, events.EntityArtist, "update", metrics.OutcomeInvalid)
		addFlash(c, flash.Error(fmt.Sprintf("Artist %s could not be updated. Please fix the errors below.", artist.Name)))
		data := formData(form, errs)
		data["id"] = artist.ID
		data["name"] = artist.Name
		render(c, http.StatusOK, "edit_artist.html", data)
		return
	}

	in := form.Input()
	changes := store.DiffArtist(artist, in)
	if err := st.UpdateArtist(artist.ID, changes); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, artistNotFound)
			return
		}
		record(c, events.EntityArtist, "update", metrics.OutcomeError)
		logStoreError(c, "update artist", err)
		redirect(c, artistPath(artist.ID), flash.Error(fmt.Sprintf("An error occurred. Artist %s could not be updated.", artist.Name)))
		return
	}

	record(c, events.EntityArtist, "update", metrics.OutcomeOK)
	if !changes.Empty() {
		publish(c, events.New(events.EntityArtist, events.ActionUpdated, artist.ID, in.Name, changes.Fields()...))
	}
	redirect(c, artistPath(artist.ID), flash.Success(fmt.Sprintf("Artist %s was successfully updated!", in.Name)))
}
