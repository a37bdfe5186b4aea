package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/fyyur/internal/events"
	"github.com/farellandr/fyyur/internal/flash"
	"github.com/farellandr/fyyur/internal/forms"
	"github.com/farellandr/fyyur/internal/metrics"
	"github.com/farellandr/fyyur/internal/store"
)

func ListShows(c *gin.Context) {
	st, ok := requireStore(c)
	if !ok {
		return
	}
	shows, err := st.ListShows()
	if err != nil {
		failStore(c, "list shows", err)
		return
	}
	render(c, http.StatusOK, "shows.html", gin.H{"shows": showRows(shows)})
}

// renderShowForm loads the venue and artist choices and renders the form.
func renderShowForm(c *gin.Context, st *store.Store, form forms.ShowForm, errs forms.FieldErrors) {
	venues, err := st.ListVenueSummaries()
	if err != nil {
		failStore(c, "list venue summaries", err)
		return
	}
	artists, err := st.ListArtistSummaries()
	if err != nil {
		failStore(c, "list artist summaries", err)
		return
	}
	if errs == nil {
		errs = forms.FieldErrors{}
	}
	render(c, http.StatusOK, "new_show.html", gin.H{
		"form":    form,
		"errors":  errs,
		"venues":  venueOptions(venues),
		"artists": artistOptions(artists),
	})
}

func NewShowForm(c *gin.Context) {
	st, ok := requireStore(c)
	if !ok {
		return
	}
	renderShowForm(c, st, forms.ShowForm{}, nil)
}

func CreateShow(c *gin.Context) {
	st, ok := requireStore(c)
	if !ok {
		return
	}

	var form forms.ShowForm
	errs := forms.Bind(c, &form)
	var in store.ShowInput
	if errs == nil {
		var err error
		if in, err = form.Input(); err != nil {
			errs = forms.Explain(err)
		}
	}
	if errs != nil {
		record(c, events.EntityShow, "create", metrics.OutcomeInvalid)
		addFlash(c, flash.Error("Show could not be listed. Please fix the errors below."))
		renderShowForm(c, st, form, errs)
		return
	}

	show, err := st.CreateShow(in)
	if errors.Is(err, store.ErrInvalidReference) {
		record(c, events.EntityShow, "create", metrics.OutcomeInvalid)
		addFlash(c, flash.Error("Show could not be listed. The chosen venue or artist no longer exists."))
		renderShowForm(c, st, form, forms.FieldErrors{"form": "Choose an existing venue and artist."})
		return
	}
	if err != nil {
		record(c, events.EntityShow, "create", metrics.OutcomeError)
		logStoreError(c, "create show", err)
		redirect(c, "/shows", flash.Error("An error occurred. Show could not be listed."))
		return
	}

	record(c, events.EntityShow, "create", metrics.OutcomeOK)
	publish(c, events.New(events.EntityShow, events.ActionCreated, show.ID, show.Name))
	redirect(c, "/", flash.Success("Show was successfully listed!"))
}
