package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockMovement records every stock change on a product or a material.
// Exactly one of ProductID / MaterialID is set. Created automatically on
// manual adjustments and on every manufacturing run.
type StockMovement struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductID  *uuid.UUID `gorm:"type:uuid;index"`
	MaterialID *uuid.UUID `gorm:"type:uuid;index"`
	Kind       string     `gorm:"not null"` // "manufacture" | "adjustment" | "quote"
	// Quantity is signed: positive = stock in, negative = stock out.
	Quantity      decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	BalanceBefore decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Reason        string
	ReferenceID   *uuid.UUID `gorm:"type:uuid"` // product id for manufacturing draws
	CreatedAt     time.Time

	Product  *Product  `gorm:"foreignKey:ProductID"`
	Material *Material `gorm:"foreignKey:MaterialID"`
}

// TableName overrides GORM's default pluralization.
func (StockMovement) TableName() string { return "stock_movements" }
