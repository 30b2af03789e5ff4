package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a finished good the account sells. Its material cost is derived
// from the bill of materials (BOMEntry rows); LaborCost is added on top to
// obtain the production cost.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"index;not null"`
	Description *string
	SalePrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	LaborCost   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Quantity    int             `gorm:"not null;default:0"`
	MinQuantity int             `gorm:"not null;default:0"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Active      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}
