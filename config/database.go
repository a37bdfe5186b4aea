package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/farellandr/fyyur/internal/models"
)

const defaultSQLitePath = "file:fyyur.db?_pragma=foreign_keys(1)"

// PostgresDSN renders the connection string for the postgres driver.
func (d DatabaseConfig) PostgresDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

func (d DatabaseConfig) dialector() gorm.Dialector {
	if d.Driver == DriverSQLite {
		dsn := d.DSN
		if dsn == "" {
			dsn = defaultSQLitePath
		}
		return sqlite.Open(dsn)
	}
	return postgres.Open(d.PostgresDSN())
}

// InitDatabase opens the configured database, sizes its pool and, when
// enabled, migrates the schema.
func InitDatabase(cfg *Config, log *slog.Logger) (*gorm.DB, error) {
	d := cfg.Database
	db, err := gorm.Open(d.dialector(), &gorm.Config{
		Logger:  NewGormLogger(log, d.SlowThreshold),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", d.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if d.Driver == DriverSQLite {
		// one writer at a time
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(d.MaxOpenConns)
		sqlDB.SetMaxIdleConns(d.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(d.ConnMaxLifetime)
	}

	if d.AutoMigrate {
		if err := migrate(db, sqlDB); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// migrate runs the schema migration and closes the pool if it fails.
func migrate(db *gorm.DB, sqlDB *sql.DB) error {
	if err := models.AutoMigrate(db); err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// GormLogger sends gorm's SQL trace to slog: statements at debug, slow ones
// at warn, failures at error.
type GormLogger struct {
	log           *slog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

func NewGormLogger(log *slog.Logger, slowThreshold time.Duration) *GormLogger {
	if log == nil {
		log = slog.Default()
	}
	return &GormLogger{log: log.With("component", "gorm"), level: logger.Info, slowThreshold: slowThreshold}
}

func (l *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.level >= logger.Info {
		l.log.InfoContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.level >= logger.Warn {
		l.log.WarnContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.level >= logger.Error {
		l.log.ErrorContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	attrs := []any{"elapsed", elapsed, "rows", rows, "sql", sql}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= logger.Error:
		l.log.ErrorContext(ctx, "query failed", append(attrs, "error", err)...)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		l.log.WarnContext(ctx, "slow query", attrs...)
	case l.level >= logger.Info:
		l.log.DebugContext(ctx, "query", attrs...)
	}
}
