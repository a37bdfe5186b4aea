package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/fyyur/internal/helpers"
	"github.com/farellandr/fyyur/internal/middleware"
)

const recentLimit = 10

func Home(c *gin.Context) {
	st, ok := requireStore(c)
	if !ok {
		return
	}
	now := time.Now()

	counts, err := st.Counts()
	if err != nil {
		failStore(c, "count rows", err)
		return
	}
	venues, err := st.ListVenues()
	if err != nil {
		failStore(c, "list venues", err)
		return
	}
	artists, err := st.ListArtists()
	if err != nil {
		failStore(c, "list artists", err)
		return
	}

	render(c, http.StatusOK, "home.html", gin.H{
		"counts":        counts,
		"recentVenues":  venueSummaries(venues[:min(len(venues), recentLimit)], now),
		"recentArtists": artistSummaries(artists[:min(len(artists), recentLimit)], now),
	})
}

func NotFound(c *gin.Context) {
	helpers.RespondWithError(c, http.StatusNotFound, "The page you were looking for does not exist.")
}

// Healthz reports whether the database answers a ping.
func Healthz(c *gin.Context) {
	st := middleware.GetStore(c)
	if st == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	if err := st.Ping(c.Request.Context()); err != nil {
		logStoreError(c, "database ping", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
