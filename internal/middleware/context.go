package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/farellandr/fyyur/internal/events"
	"github.com/farellandr/fyyur/internal/flash"
	"github.com/farellandr/fyyur/internal/metrics"
	"github.com/farellandr/fyyur/internal/store"
)

const (
	storeKey     = "store"
	flashKey     = "flash"
	publisherKey = "publisher"
	metricsKey   = "metrics"
)

// StoreMiddleware hands every request a store bound to the request context.
func StoreMiddleware(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(storeKey, st.WithContext(c.Request.Context()))
		c.Next()
	}
}

func GetStore(c *gin.Context) *store.Store {
	st, exists := c.Get(storeKey)
	if !exists {
		return nil
	}
	return st.(*store.Store)
}

func FlashMiddleware(fs flash.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(flashKey, fs)
		c.Next()
	}
}

func GetFlash(c *gin.Context) flash.Store {
	fs, exists := c.Get(flashKey)
	if !exists {
		return nil
	}
	return fs.(flash.Store)
}

func EventsMiddleware(p events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(publisherKey, p)
		c.Next()
	}
}

// GetPublisher never returns nil; requests without a publisher get a no-op.
func GetPublisher(c *gin.Context) events.Publisher {
	p, exists := c.Get(publisherKey)
	if !exists {
		return events.NopPublisher{}
	}
	return p.(events.Publisher)
}

func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(metricsKey, m)
		c.Next()
	}
}

func GetMetrics(c *gin.Context) *metrics.Metrics {
	m, exists := c.Get(metricsKey)
	if !exists {
		return nil
	}
	return m.(*metrics.Metrics)
}
