package model

import (
	"time"

	"github.com/google/uuid"
)

// Category labels products and materials. Unique per (user, name).
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_category"`
	Name        string    `gorm:"not null;uniqueIndex:idx_user_category"`
	Description *string
	Active      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides GORM's default pluralization.
func (Category) TableName() string { return "categories" }
