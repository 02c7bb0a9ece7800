package models

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID   uuid.UUID `gorm:"type:uuid;not null;index" json:"profile_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Link        *string   `gorm:"size:512" json:"link"`
	CreatedAt   time.Time `json:"created_at"`
}
