package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Venue struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key"`
	Name               string    `gorm:"not null"`
	City               string    `gorm:"size:120;not null;index:idx_venues_area"`
	State              string    `gorm:"size:120;not null;index:idx_venues_area"`
	Address            string    `gorm:"size:120;not null"`
	Phone              string    `gorm:"size:120;not null"`
	ImageLink          string    `gorm:"size:500;not null"`
	FacebookLink       string    `gorm:"size:120;not null"`
	Website            *string
	SeekingTalent      bool    `gorm:"not null;default:false"`
	SeekingDescription string  `gorm:"size:400;not null"`
	Genres             []Genre `gorm:"many2many:venue_genres;"`
	Shows              []Show
	CreatedAt          time.Time `gorm:"<-:create;not null;index"`
	UpdatedAt          time.Time
}

func (venue *Venue) BeforeCreate(tx *gorm.DB) (err error) {
	if venue.ID == uuid.Nil {
		venue.ID = uuid.New()
	}
	return
}

// GenreNames returns the venue's genres in enumeration order, assuming they
// were preloaded ordered by position.
func (venue *Venue) GenreNames() []string {
	return genreNames(venue.Genres)
}
