package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/fyyur/config"
	"github.com/farellandr/fyyur/internal/events"
	"github.com/farellandr/fyyur/internal/flash"
	"github.com/farellandr/fyyur/internal/forms"
	"github.com/farellandr/fyyur/internal/handlers"
	"github.com/farellandr/fyyur/internal/helpers"
	"github.com/farellandr/fyyur/internal/metrics"
	"github.com/farellandr/fyyur/internal/middleware"
	"github.com/farellandr/fyyur/internal/store"
	"github.com/farellandr/fyyur/internal/views"
)

// Deps are the long-lived clients shared by every request.
type Deps struct {
	Store     *store.Store
	Flash     *flash.SessionStore
	Publisher events.Publisher
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

// NewRouter builds the engine with its middleware chain and route table.
func NewRouter(d Deps) (*gin.Engine, error) {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Publisher == nil {
		d.Publisher = events.NopPublisher{}
	}
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}

	renderer, err := views.New()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	forms.RegisterValidators()

	r := gin.New()
	r.HTMLRender = renderer
	r.Use(
		middleware.RequestLogger(d.Logger),
		d.Metrics.Middleware(),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			d.Logger.ErrorContext(c.Request.Context(), "panic recovered", "path", c.Request.URL.Path, "panic", recovered)
			helpers.RespondWithError(c, http.StatusInternalServerError, "")
		}),
		middleware.MetricsMiddleware(d.Metrics),
		middleware.EventsMiddleware(d.Publisher),
	)
	if d.Store != nil {
		r.Use(middleware.StoreMiddleware(d.Store))
	}
	if d.Flash != nil {
		r.Use(d.Flash.Sessions(), middleware.FlashMiddleware(d.Flash))
	}

	setupRoutes(r, d.Metrics)
	return r, nil
}

func setupRoutes(r *gin.Engine, m *metrics.Metrics) {
	r.GET("/", handlers.Home)
	r.GET("/healthz", handlers.Healthz)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	venues := r.Group("/venues")
	{
		venues.GET("", handlers.ListVenues)
		venues.POST("/search", handlers.SearchVenues)
		venues.GET("/create", handlers.NewVenueForm)
		venues.POST("/create", handlers.CreateVenue)
		venues.GET("/:id", handlers.GetVenue)
		venues.DELETE("/:id", handlers.DeleteVenue)
		venues.POST("/:id/delete", handlers.DeleteVenue)
		venues.GET("/:id/edit", handlers.EditVenueForm)
		venues.POST("/:id/edit", handlers.UpdateVenue)
	}

	artists := r.Group("/artists")
	{
		artists.GET("", handlers.ListArtists)
		artists.POST("/search", handlers.SearchArtists)
		artists.GET("/create", handlers.NewArtistForm)
		artists.POST("/create", handlers.CreateArtist)
		artists.GET("/:id", handlers.GetArtist)
		artists.GET("/:id/edit", handlers.EditArtistForm)
		artists.POST("/:id/edit", handlers.UpdateArtist)
	}

	shows := r.Group("/shows")
	{
		shows.GET("", handlers.ListShows)
		shows.GET("/create", handlers.NewShowForm)
		shows.POST("/create", handlers.CreateShow)
	}

	r.NoRoute(handlers.NotFound)
}

// Start opens every client named by cfg, serves HTTP until ctx is
// cancelled and then drains in-flight requests before closing the clients.
func Start(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	st := store.New(db)
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn("close database", "error", err)
		}
	}()

	fs, closeFlash, err := newFlashStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFlash()

	publisher, err := newPublisher(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("close publisher", "error", err)
		}
	}()

	r, err := NewRouter(Deps{
		Store:     st,
		Flash:     fs,
		Publisher: publisher,
		Metrics:   metrics.New(),
		Logger:    log,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

func newFlashStore(ctx context.Context, cfg *config.Config) (*flash.SessionStore, func(), error) {
	if cfg.Flash.Store != config.FlashRedis {
		return flash.NewCookieStore(cfg.Server.CookieSecret, cfg.Server.SecureCookies), func() {}, nil
	}
	pool, err := config.NewRedisPool(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { _ = pool.Close() }
	fs, err := flash.NewRedisStore(pool, cfg.Server.CookieSecret, cfg.Flash.Prefix, cfg.Flash.TTL, cfg.Server.SecureCookies)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return fs, closeFn, nil
}

// newPublisher dials RabbitMQ when a URL is configured; otherwise audit
// events are dropped.
func newPublisher(cfg *config.Config, log *slog.Logger) (events.Publisher, error) {
	if cfg.RabbitMQ.URL == "" {
		log.Info("audit events disabled: no rabbitmq url configured")
		return events.NopPublisher{}, nil
	}
	p, err := events.DialAMQP(cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}
	log.Info("publishing audit events", "queue", events.AuditQueue)
	return p, nil
}
