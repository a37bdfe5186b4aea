// Package store is the data access layer over the venue, artist, show and
// genre tables. A single Store is built at startup around the gorm handle and
// injected into handlers; WithContext scopes it to one request so every query
// is cancelled with the request and its pooled connection is released on all
// exit paths.
//
// Every mutation runs inside one database transaction. Either all of its
// writes commit or none of them are visible.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/farellandr/fyyur/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested venue, artist or show does
	// not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidGenres is returned when a genre set is empty or names a genre
	// outside models.GenreChoices.
	ErrInvalidGenres = errors.New("invalid genres")

	// ErrInvalidReference is returned when a show names a venue or artist
	// that does not exist.
	ErrInvalidReference = errors.New("show references a missing venue or artist")
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// WithContext returns a Store whose queries are bound to ctx.
func (s *Store) WithContext(ctx context.Context) *Store {
	return &Store{db: s.db.WithContext(ctx)}
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool. It is called once at shutdown.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type Counts struct {
	Venues  int64
	Artists int64
	Shows   int64
}

func (s *Store) Counts() (Counts, error) {
	var c Counts
	if err := s.db.Model(&models.Venue{}).Count(&c.Venues).Error; err != nil {
		return c, fmt.Errorf("count venues: %w", err)
	}
	if err := s.db.Model(&models.Artist{}).Count(&c.Artists).Error; err != nil {
		return c, fmt.Errorf("count artists: %w", err)
	}
	if err := s.db.Model(&models.Show{}).Count(&c.Shows).Error; err != nil {
		return c, fmt.Errorf("count shows: %w", err)
	}
	return c, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// loadGenres resolves genre names to rows in enumeration order. Duplicate
// names collapse into one entry.
func loadGenres(tx *gorm.DB, names []string) ([]models.Genre, error) {
	unique := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			unique = append(unique, n)
		}
	}
	if len(unique) == 0 {
		return nil, fmt.Errorf("%w: at least one genre is required", ErrInvalidGenres)
	}

	var genres []models.Genre
	if err := tx.Where("name IN ?", unique).Order("position ASC").Find(&genres).Error; err != nil {
		return nil, err
	}
	if len(genres) != len(unique) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGenres, unique)
	}
	return genres, nil
}
