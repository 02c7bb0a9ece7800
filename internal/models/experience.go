package models

import (
	"time"

	"github.com/google/uuid"
)

// Experience is a work history entry. A nil EndDate means the position is
// current.
type Experience struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"profile_id"`
	Company     string     `gorm:"size:255;not null" json:"company"`
	Position    string     `gorm:"size:255;not null" json:"position"`
	StartDate   time.Time  `gorm:"not null" json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Description string     `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
}
