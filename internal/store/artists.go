package store

import (
	"fmt"

	"github.com/farellandr/fyyur/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (s *Store) ListArtists() ([]models.Artist, error) {
	var artists []models.Artist
	if err := s.db.Preload("Shows").Order("created_at DESC").Find(&artists).Error; err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	return artists, nil
}

// ListArtistSummaries returns only id and name of every artist, by name.
func (s *Store) ListArtistSummaries() ([]models.Artist, error) {
	var artists []models.Artist
	if err := s.db.Select("id", "name").Order("name ASC").Find(&artists).Error; err != nil {
		return nil, fmt.Errorf("list artist summaries: %w", err)
	}
	return artists, nil
}

func (s *Store) GetArtist(id uuid.UUID) (*models.Artist, error) {
	var artist models.Artist
	err := s.db.
		Preload("Genres", models.OrderByPosition).
		Preload("Shows.Venue").
		First(&artist, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &artist, nil
}

func (s *Store) SearchArtists(term string) ([]models.Artist, error) {
	var artists []models.Artist
	q := s.db.Preload("Shows").Order("name ASC")
	if cond, args, ok := searchCondition(term); ok {
		q = q.Where(cond, args...)
	}
	if err := q.Find(&artists).Error; err != nil {
		return nil, fmt.Errorf("search artists: %w", err)
	}
	return artists, nil
}

func (s *Store) CreateArtist(in ArtistInput) (*models.Artist, error) {
	artist := models.Artist{
		Name:               in.Name,
		City:               in.City,
		State:              in.State,
		Phone:              in.Phone,
		ImageLink:          in.ImageLink,
		FacebookLink:       in.FacebookLink,
		Website:            in.Website,
		SeekingVenue:       in.SeekingVenue,
		SeekingDescription: in.SeekingDescription,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		genres, err := loadGenres(tx, in.Genres)
		if err != nil {
			return err
		}
		artist.Genres = genres
		return tx.Omit("Genres.*").Create(&artist).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create artist: %w", err)
	}
	return &artist, nil
}

func DiffArtist(current *models.Artist, in ArtistInput) ArtistChanges {
	return ArtistChanges{
		Name:               diff(current.Name, in.Name),
		City:               diff(current.City, in.City),
		State:              diff(current.State, in.State),
		Phone:              diff(current.Phone, in.Phone),
		ImageLink:          diff(current.ImageLink, in.ImageLink),
		FacebookLink:       diff(current.FacebookLink, in.FacebookLink),
		Website:            diffOptional(current.Website, in.Website),
		SeekingVenue:       diff(current.SeekingVenue, in.SeekingVenue),
		SeekingDescription: diffOptional(current.SeekingDescription, in.SeekingDescription),
		Genres:             diffGenres(current.GenreNames(), in.Genres),
	}
}

func (s *Store) UpdateArtist(id uuid.UUID, changes ArtistChanges) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var artist models.Artist
		if err := tx.Select("id").First(&artist, "id = ?", id).Error; err != nil {
			return notFound(err)
		}

		if cs := changes.columnSet(); len(cs.columns) > 0 {
			if err := tx.Model(&artist).Updates(cs.columns).Error; err != nil {
				return err
			}
		}

		if changes.Genres.Set {
			genres, err := loadGenres(tx, changes.Genres.Value)
			if err != nil {
				return err
			}
			if err := tx.Model(&artist).Association("Genres").Replace(genres); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("update artist %s: %w", id, err)
	}
	return nil
}
