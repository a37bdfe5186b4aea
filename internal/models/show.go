package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Show is immutable once created; the store never issues updates for it.
type Show struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"not null"`
	City      string    `gorm:"not null"`
	State     string    `gorm:"not null"`
	VenueID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Venue     *Venue    `gorm:"foreignKey:VenueID"`
	ArtistID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Artist    *Artist   `gorm:"foreignKey:ArtistID"`
	StartTime time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"<-:create"`
}

func (show *Show) BeforeCreate(tx *gorm.DB) (err error) {
	if show.ID == uuid.Nil {
		show.ID = uuid.New()
	}
	return
}

func DefaultShowName(artistName, venueName string) string {
	return fmt.Sprintf("%s at %s", artistName, venueName)
}
