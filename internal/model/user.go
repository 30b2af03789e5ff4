package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Every business record (clients, products,
// materials, quotes) belongs to exactly one user; there is no data sharing
// between accounts.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	BusinessName string
	PasswordHash string `gorm:"not null"`
	Active       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
