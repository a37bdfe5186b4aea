package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Artist struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key"`
	Name               string    `gorm:"not null"`
	City               string    `gorm:"size:120;not null"`
	State              string    `gorm:"size:120;not null"`
	Phone              string    `gorm:"size:120;not null"`
	ImageLink          string    `gorm:"size:500;not null"`
	FacebookLink       string    `gorm:"size:120;not null"`
	Website            *string
	SeekingVenue       bool    `gorm:"not null;default:false"`
	SeekingDescription *string `gorm:"size:400"`
	Genres             []Genre `gorm:"many2many:artist_genres;"`
	Shows              []Show
	CreatedAt          time.Time `gorm:"<-:create;not null;index"`
	UpdatedAt          time.Time
}

func (artist *Artist) BeforeCreate(tx *gorm.DB) (err error) {
	if artist.ID == uuid.Nil {
		artist.ID = uuid.New()
	}
	return
}

func (artist *Artist) GenreNames() []string {
	return genreNames(artist.Genres)
}
