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

const venueNotFound = "Venue not found."

func ListVenues(c *gin.Context) {
	st, ok := requireStore(c)
	if !ok {
		return
	}
	now := time.Now()

	areas, err := st.VenueAreas()
	if err != nil {
		failStore(c, "list venue areas", err)
		return
	}
	render(c, http.StatusOK, "venues.html", gin.H{"areas": areaViews(areas, now)})
}

func SearchVenues(c *gin.Context) {
	st, ok := requireStore(c)
	if !ok {
		return
	}
	now := time.Now()
	term := strings.TrimSpace(c.PostForm("search_term"))

	venues, err := st.SearchVenues(term)
	if err != nil {
		failStore(c, "search venues", err)
		return
	}
	data := venueSummaries(venues, now)
	render(c, http.StatusOK, "search_venues.html", gin.H{
		"results": SearchResults{Term: term, Count: len(data), Data: data},
	})
}

// loadVenue fetches the venue named by the :id parameter, answering with
// the 404 or 500 page itself when that fails.
func loadVenue(c *gin.Context, st *store.Store) (*models.Venue, bool) {
	id, ok := helpers.ParseID(c, "id")
	if !ok {
		helpers.RespondWithError(c, http.StatusNotFound, venueNotFound)
		return nil, false
	}
	venue, err := st.GetVenue(id)
	if errors.Is(err, store.ErrNotFound) {
		helpers.RespondWithError(c, http.StatusNotFound, venueNotFound)
		return nil, false
	}
	if err != nil {
		failStore(c, "get venue", err)
		return nil, false
	}
	return venue, true
}

func GetVenue(c *gin.Context) {
	st, ok := requireStore(c)
	if !ok {
		return
	}
	now := time.Now()

	venue, ok := loadVenue(c, st)
	if !ok {
		return
	}
	render(c, http.StatusOK, "show_venue.html", gin.H{"venue": venueDetail(venue, now)})
}

func NewVenueForm(c *gin.Context) {
	render(c, http.StatusOK, "new_venue.html", formData(forms.VenueForm{}, nil))
}

func CreateVenue(c *gin.Context) {
	st, ok := requireStore(c)
	if !ok {
		return
	}

	var form forms.VenueForm
	if errs := forms.Bind(c, &form); errs != nil {
		record(c, events.EntityVenue, "create", metrics.OutcomeInvalid)
		addFlash(c, flash.Error(fmt.Sprintf("Venue %s could not be listed. Please fix the errors below.", strings.TrimSpace(form.Name))))
		render(c, http.StatusOK, "new_venue.html", formData(form, errs))
		return
	}

	in := form.Input()
	venue, err := st.CreateVenue(in)
	if err != nil {
		record(c, events.EntityVenue, "create", metrics.OutcomeError)
		logStoreError(c, "create venue", err)
		redirect(c, "/venues", flash.Error(fmt.Sprintf("An error occurred. Venue %s could not be listed.", in.Name)))
		return
	}

	record(c, events.EntityVenue, "create", metrics.OutcomeOK)
	publish(c, events.New(events.EntityVenue, events.ActionCreated, venue.ID, venue.Name))
	redirect(c, "/", flash.Success(fmt.Sprintf("Venue %s was successfully listed!", venue.Name)))
}

func EditVenueForm(c *gin.Context) {
	st, ok := requireStore(c)
	if !ok {
		return
	}
	venue, ok := loadVenue(c, st)
	if !ok {
		return
	}
	data := formData(forms.VenueFormFrom(venue), nil)
	data["id"] = venue.ID
	data["name"] = venue.Name
	render(c, http.StatusOK, "edit_venue.html", data)
}

func UpdateVenue(c *gin.Context) {
	st, ok := requireStore(c)
	if !ok {
		return
	}
	venue, ok := loadVenue(c, st)
	if !ok {
		return
	}

	var form forms.VenueForm
	if errs := forms.Bind(c, &form); errs != nil {
		record(c, events.EntityVenue, "update", metrics.OutcomeInvalid)
		addFlash(c, flash.Error(fmt.Sprintf("Venue %s could not be updated. Please fix the errors below.", venue.Name)))
		data := formData(form, errs)
		data["id"] = venue.ID
		data["name"] = venue.Name
		render(c, http.StatusOK, "edit_venue.html", data)
		return
	}

	in := form.Input()
	changes := store.DiffVenue(venue, in)
	if err := st.UpdateVenue(venue.ID, changes); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, venueNotFound)
			return
		}
		record(c, events.EntityVenue, "update", metrics.OutcomeError)
		logStoreError(c, "update venue", err)
		redirect(c, venuePath(venue.ID), flash.Error(fmt.Sprintf("An error occurred. Venue %s could not be updated.", venue.Name)))
		return
	}

	record(c, events.EntityVenue, "update", metrics.OutcomeOK)
	if !changes.Empty() {
		publish(c, events.New(events.EntityVenue, events.ActionUpdated, venue.ID, in.Name, changes.Fields()...))
	}
	redirect(c, venuePath(venue.ID), flash.Success(fmt.Sprintf("Venue %s was successfully updated!", in.Name)))
}

// DeleteVenue serves both DELETE /venues/:id, answered with JSON for
// scripted clients, and the POST fallback used by the plain HTML form.
func DeleteVenue(c *gin.Context) {
	st, ok := requireStore(c)
	if !ok {
		return
	}
	id, ok := helpers.ParseID(c, "id")
	if !ok {
		helpers.RespondWithError(c, http.StatusNotFound, venueNotFound)
		return
	}
	scripted := c.Request.Method == http.MethodDelete

	venue, err := st.DeleteVenue(id)
	if errors.Is(err, store.ErrNotFound) {
		if scripted {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": venueNotFound})
			return
		}
		helpers.RespondWithError(c, http.StatusNotFound, venueNotFound)
		return
	}
	if err != nil {
		record(c, events.EntityVenue, "delete", metrics.OutcomeError)
		logStoreError(c, "delete venue", err)
		msg := "An error occurred. The venue could not be deleted."
		if scripted {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": msg})
			return
		}
		redirect(c, venuePath(id), flash.Error(msg))
		return
	}

	record(c, events.EntityVenue, "delete", metrics.OutcomeOK)
	publish(c, events.New(events.EntityVenue, events.ActionDeleted, venue.ID, venue.Name))
	msg := fmt.Sprintf("Venue %s was successfully deleted.", venue.Name)
	if scripted {
		addFlash(c, flash.Success(msg))
		c.JSON(http.StatusOK, gin.H{"success": true, "message": msg, "redirect": "/"})
		return
	}
	redirect(c, "/", flash.Success(msg))
}
