package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/farellandr/fyyur/config"
	"github.com/farellandr/fyyur/internal/events"
	"github.com/farellandr/fyyur/internal/models"
	"github.com/farellandr/fyyur/internal/server"
	"github.com/farellandr/fyyur/internal/store"
)

const appName = "fyyur"

var (
	Version   = "0.1.0"
	BuildTime = "dev"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	logLevel   string
}

// load reads the configuration and sets up logging; --log-level wins over
// the configured level.
func (o *options) load() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if _, err := config.NewLogger(os.Stderr, cfg.Log.Level); err != nil {
		return nil, err
	}
	return cfg, nil
}

func rootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Venue and artist booking directory",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		serveCmd(opts),
		migrateCmd(opts),
		seedCmd(opts),
		auditTailCmd(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)
	return cmd
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

func serveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if cfg.Flash.Store == config.FlashCookie && cfg.Server.CookieSecret == config.DevCookieSecret {
				slog.Warn("using the development cookie secret; set COOKIE_SECRET in production")
			}
			ctx, stop := signalContext(cmd.Context())
			defer stop()
			return server.Start(ctx, cfg, slog.Default())
		},
	}
}

func migrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			cfg.Database.AutoMigrate = false
			db, err := config.InitDatabase(cfg, slog.Default())
			if err != nil {
				return err
			}
			st := store.New(db)
			defer st.Close()

			if err := models.AutoMigrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			slog.Info("schema up to date", "driver", cfg.Database.Driver)
			return nil
		},
	}
}

func seedCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample venues, artists and shows into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			db, err := config.InitDatabase(cfg, slog.Default())
			if err != nil {
				return err
			}
			st := store.New(db).WithContext(cmd.Context())
			defer st.Close()

			inserted, err := st.SeedSample()
			if err != nil {
				return err
			}
			if !inserted {
				slog.Info("database already has venues; sample data not loaded")
				return nil
			}
			counts, err := st.Counts()
			if err != nil {
				return err
			}
			slog.Info("sample data loaded", "venues", counts.Venues, "artists", counts.Artists, "shows", counts.Shows)
			return nil
		},
	}
}

func auditTailCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "audit-tail",
		Short: "Print audit events from the RabbitMQ queue as they arrive",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if cfg.RabbitMQ.URL == "" {
				return fmt.Errorf("audit-tail needs RABBITMQ_URL or rabbitmq.url")
			}
			ctx, stop := signalContext(cmd.Context())
			defer stop()
			return events.Tail(ctx, cfg.RabbitMQ.URL, cmd.OutOrStdout())
		},
	}
}
