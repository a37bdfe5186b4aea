package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farellandr/fyyur/internal/events"
	"github.com/farellandr/fyyur/internal/flash"
	"github.com/farellandr/fyyur/internal/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	r := gin.New()
	r.Use(RequestLogger(logger))
	r.GET("/venues/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/venues/abc", nil))

	line := buf.String()
	assert.Contains(t, line, "level=WARN")
	assert.Contains(t, line, "path=/venues/abc")
	assert.Contains(t, line, "status=404")
}

func TestContextInjection(t *testing.T) {
	fs := flash.NewCookieStore("secret", false)
	rec := &events.Recorder{}
	m := metrics.New()

	r := gin.New()
	r.Use(FlashMiddleware(fs), EventsMiddleware(rec), MetricsMiddleware(m))
	r.GET("/", func(c *gin.Context) {
		assert.Same(t, fs, GetFlash(c))
		assert.Same(t, rec, GetPublisher(c))
		assert.Same(t, m, GetMetrics(c))
		assert.Nil(t, GetStore(c))
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestGetPublisher_DefaultsToNop(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, events.NopPublisher{}, GetPublisher(c))
	assert.Nil(t, GetFlash(c))
}
