package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Material is a raw material consumed when manufacturing products.
// Quantity is decimal: materials are measured in fractional units
// (kilograms, meters) as well as whole pieces.
type Material struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name   string    `gorm:"index;not null"`
	// Unit is a free-form unit of measure: "kg", "m", "un", ...
	Unit        string          `gorm:"not null;default:'un'"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	MinQuantity decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Active      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}
