package models

import (
	"fmt"

	"gorm.io/gorm"
)

// GenreChoices is the closed set of genres a venue or artist may list, in
// display order. Position in this slice is persisted as Genre.Position.
var GenreChoices = []string{
	"Alternative",
	"Blues",
	"Classical",
	"Country",
	"Electronic",
	"Folk",
	"Funk",
	"Hip-Hop",
	"Heavy Metal",
	"Instrumental",
	"Jazz",
	"Musical Theatre",
	"Pop",
	"Punk",
	"R&B",
	"Reggae",
	"Rock n Roll",
	"Soul",
	"Other",
}

type Genre struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"size:64;unique;not null"`
	Position int    `gorm:"not null;index"`
}

// OrderByPosition is a preload scope keeping genre sets in enumeration order.
func OrderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("genres.position ASC")
}

func genreNames(genres []Genre) []string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return names
}

// AutoMigrate creates or updates every table and seeds the genre lookup.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Genre{}, &Venue{}, &Artist{}, &Show{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return seedGenres(db)
}

func seedGenres(db *gorm.DB) error {
	for i, name := range GenreChoices {
		genre := Genre{Name: name, Position: i}
		if err := db.Where(Genre{Name: name}).Assign(Genre{Position: i}).FirstOrCreate(&genre).Error; err != nil {
			return fmt.Errorf("seed genre %q: %w", name, err)
		}
	}
	return nil
}
