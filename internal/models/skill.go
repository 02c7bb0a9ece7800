package models

import (
	"time"

	"github.com/google/uuid"
)

type Skill struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;index" json:"profile_id"`
	Category  string    `gorm:"size:100;not null" json:"category"`
	Skill     string    `gorm:"size:255;not null" json:"skill"`
	CreatedAt time.Time `json:"created_at"`
}
