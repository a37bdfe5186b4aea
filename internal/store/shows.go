package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/farellandr/fyyur/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShowInput struct {
	VenueID   uuid.UUID
	ArtistID  uuid.UUID
	StartTime time.Time
}

// ListShows returns every show with its venue and artist, earliest first.
func (s *Store) ListShows() ([]models.Show, error) {
	var shows []models.Show
	err := s.db.
		Preload("Venue").
		Preload("Artist").
		Order("start_time ASC").
		Find(&shows).Error
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}
	return shows, nil
}

// CreateShow checks that both referenced rows exist and inserts the show in
// the same transaction. The show's name, city and state derive from them.
func (s *Store) CreateShow(in ShowInput) (*models.Show, error) {
	var show models.Show
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var venue models.Venue
		if err := tx.Select("id", "name", "city", "state").First(&venue, "id = ?", in.VenueID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: venue %s", ErrInvalidReference, in.VenueID)
			}
			return err
		}
		var artist models.Artist
		if err := tx.Select("id", "name").First(&artist, "id = ?", in.ArtistID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: artist %s", ErrInvalidReference, in.ArtistID)
			}
			return err
		}

		show = models.Show{
			Name:      models.DefaultShowName(artist.Name, venue.Name),
			City:      venue.City,
			State:     venue.State,
			VenueID:   venue.ID,
			ArtistID:  artist.ID,
			StartTime: in.StartTime.UTC(),
		}
		return tx.Omit("Venue", "Artist").Create(&show).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create show: %w", err)
	}
	return &show, nil
}
