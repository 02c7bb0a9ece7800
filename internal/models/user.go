package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the login identity. The password column always holds a bcrypt
// hash, never plaintext, and is excluded from every JSON response.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
