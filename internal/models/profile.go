package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the portfolio root entity. Its OwnerID user is the only
// identity allowed to mutate it or any of its children.
type Profile struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID    uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Age        int       `gorm:"not null" json:"age"`
	Education  string    `gorm:"size:255;not null" json:"education"`
	University string    `gorm:"size:255;not null" json:"university"`
	Biography  string    `gorm:"type:text;not null" json:"biography"`
	Image      *string   `gorm:"size:512" json:"image"`

	Skills      []Skill      `gorm:"foreignKey:ProfileID" json:"skills"`
	Experiences []Experience `gorm:"foreignKey:ProfileID" json:"experiences"`
	Projects    []Project    `gorm:"foreignKey:ProfileID" json:"projects"`
}
