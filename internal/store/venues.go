package store

import (
	"fmt"

	"github.com/farellandr/fyyur/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Area is one distinct (city, state) pair with the venues located there.
type Area struct {
	City   string
	State  string
	Venues []models.Venue
}

// ListVenues returns every venue, newest first, with shows preloaded so
// callers can count upcoming shows.
func (s *Store) ListVenues() ([]models.Venue, error) {
	var venues []models.Venue
	if err := s.db.Preload("Shows").Order("created_at DESC").Find(&venues).Error; err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return venues, nil
}

// ListVenueSummaries returns only id and name of every venue, by name.
func (s *Store) ListVenueSummaries() ([]models.Venue, error) {
	var venues []models.Venue
	if err := s.db.Select("id", "name").Order("name ASC").Find(&venues).Error; err != nil {
		return nil, fmt.Errorf("list venue summaries: %w", err)
	}
	return venues, nil
}

func (s *Store) GetVenue(id uuid.UUID) (*models.Venue, error) {
	var venue models.Venue
	err := s.db.
		Preload("Genres", models.OrderByPosition).
		Preload("Shows.Artist").
		First(&venue, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &venue, nil
}

// CityState is a distinct venue location.
type CityState struct {
	City  string
	State string
}

// DistinctAreas returns each (city, state) pair that has at least one venue,
// ordered by state then city.
func (s *Store) DistinctAreas() ([]CityState, error) {
	var pairs []CityState
	err := s.db.Model(&models.Venue{}).
		Distinct("city", "state").
		Order("state ASC, city ASC").
		Find(&pairs).Error
	if err != nil {
		return nil, fmt.Errorf("distinct venue areas: %w", err)
	}
	return pairs, nil
}

// VenueAreas groups all venues by (city, state).
func (s *Store) VenueAreas() ([]Area, error) {
	pairs, err := s.DistinctAreas()
	if err != nil {
		return nil, err
	}

	var venues []models.Venue
	if err := s.db.Preload("Shows").Order("name ASC").Find(&venues).Error; err != nil {
		return nil, fmt.Errorf("list venues by area: %w", err)
	}

	byArea := make(map[CityState][]models.Venue, len(pairs))
	for _, v := range venues {
		key := CityState{City: v.City, State: v.State}
		byArea[key] = append(byArea[key], v)
	}

	areas := make([]Area, 0, len(pairs))
	for _, p := range pairs {
		areas = append(areas, Area{City: p.City, State: p.State, Venues: byArea[p]})
	}
	return areas, nil
}

func (s *Store) SearchVenues(term string) ([]models.Venue, error) {
	var venues []models.Venue
	q := s.db.Preload("Shows").Order("name ASC")
	if cond, args, ok := searchCondition(term); ok {
		q = q.Where(cond, args...)
	}
	if err := q.Find(&venues).Error; err != nil {
		return nil, fmt.Errorf("search venues: %w", err)
	}
	return venues, nil
}

func (s *Store) CreateVenue(in VenueInput) (*models.Venue, error) {
	venue := models.Venue{
		Name:               in.Name,
		City:               in.City,
		State:              in.State,
		Address:            in.Address,
		Phone:              in.Phone,
		ImageLink:          in.ImageLink,
		FacebookLink:       in.FacebookLink,
		Website:            in.Website,
		SeekingTalent:      in.SeekingTalent,
		SeekingDescription: in.SeekingDescription,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		genres, err := loadGenres(tx, in.Genres)
		if err != nil {
			return err
		}
		venue.Genres = genres
		return tx.Omit("Genres.*").Create(&venue).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create venue: %w", err)
	}
	return &venue, nil
}

// DiffVenue builds the update command that turns current into in.
func DiffVenue(current *models.Venue, in VenueInput) VenueChanges {
	return VenueChanges{
		Name:               diff(current.Name, in.Name),
		City:               diff(current.City, in.City),
		State:              diff(current.State, in.State),
		Address:            diff(current.Address, in.Address),
		Phone:              diff(current.Phone, in.Phone),
		ImageLink:          diff(current.ImageLink, in.ImageLink),
		FacebookLink:       diff(current.FacebookLink, in.FacebookLink),
		Website:            diffOptional(current.Website, in.Website),
		SeekingTalent:      diff(current.SeekingTalent, in.SeekingTalent),
		SeekingDescription: diff(current.SeekingDescription, in.SeekingDescription),
		Genres:             diffGenres(current.GenreNames(), in.Genres),
	}
}

// UpdateVenue applies changes to the venue with the given id. An empty
// change set still verifies the venue exists but writes nothing.
func (s *Store) UpdateVenue(id uuid.UUID, changes VenueChanges) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var venue models.Venue
		if err := tx.Select("id").First(&venue, "id = ?", id).Error; err != nil {
			return notFound(err)
		}

		if cs := changes.columnSet(); len(cs.columns) > 0 {
			if err := tx.Model(&venue).Updates(cs.columns).Error; err != nil {
				return err
			}
		}

		if changes.Genres.Set {
			genres, err := loadGenres(tx, changes.Genres.Value)
			if err != nil {
				return err
			}
			if err := tx.Model(&venue).Association("Genres").Replace(genres); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("update venue %s: %w", id, err)
	}
	return nil
}

// DeleteVenue removes the venue, its shows and its genre links together and
// returns the deleted row.
func (s *Store) DeleteVenue(id uuid.UUID) (*models.Venue, error) {
	var venue models.Venue
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&venue, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Where("venue_id = ?", id).Delete(&models.Show{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&venue).Association("Genres").Clear(); err != nil {
			return err
		}
		return tx.Delete(&venue).Error
	})
	if err != nil {
		return nil, fmt.Errorf("delete venue %s: %w", id, err)
	}
	return &venue, nil
}
