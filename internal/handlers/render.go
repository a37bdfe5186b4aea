package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/fyyur/internal/events"
	"github.com/farellandr/fyyur/internal/flash"
	"github.com/farellandr/fyyur/internal/forms"
	"github.com/farellandr/fyyur/internal/helpers"
	"github.com/farellandr/fyyur/internal/middleware"
	"github.com/farellandr/fyyur/internal/store"
)

// render pops pending flash messages into data and renders page.
func render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if fs := middleware.GetFlash(c); fs != nil {
		msgs, err := fs.Pop(c)
		if err != nil {
			slog.WarnContext(c.Request.Context(), "read flash messages", "error", err)
		}
		data["flashes"] = msgs
	}
	c.HTML(status, page, data)
}

func addFlash(c *gin.Context, msg flash.Message) {
	fs := middleware.GetFlash(c)
	if fs == nil {
		return
	}
	if err := fs.Add(c, msg); err != nil {
		slog.WarnContext(c.Request.Context(), "store flash message", "error", err)
	}
}

// redirect answers a form POST; 303 makes the browser follow with GET.
func redirect(c *gin.Context, location string, msg flash.Message) {
	addFlash(c, msg)
	c.Redirect(http.StatusSeeOther, location)
}

// requireStore returns the request-scoped store, answering with the 500 page
// when the server was wired without one.
func requireStore(c *gin.Context) (*store.Store, bool) {
	st := middleware.GetStore(c)
	if st == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return nil, false
	}
	return st, true
}

// logStoreError keeps raw store text in the log; users only ever see a
// generic message.
func logStoreError(c *gin.Context, op string, err error) {
	slog.ErrorContext(c.Request.Context(), op+" failed", "path", c.Request.URL.Path, "error", err)
	_ = c.Error(err)
}

// failStore answers a failed read with the 500 page.
func failStore(c *gin.Context, op string, err error) {
	logStoreError(c, op, err)
	helpers.RespondWithError(c, http.StatusInternalServerError, "")
}

func record(c *gin.Context, entity, op, outcome string) {
	if m := middleware.GetMetrics(c); m != nil {
		m.Mutation(entity, op, outcome)
	}
}

func publish(c *gin.Context, ev events.AuditEvent) {
	events.Emit(c.Request.Context(), middleware.GetPublisher(c), ev)
}

// formData is the common payload of the venue and artist forms.
func formData(form any, errs forms.FieldErrors) gin.H {
	if errs == nil {
		errs = forms.FieldErrors{}
	}
	return gin.H{
		"form":   form,
		"errors": errs,
		"states": forms.States,
		"genres": forms.Genres,
	}
}
