package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BOMEntry links one material to one product's bill of materials, carrying
// the quantity of that material consumed per single unit built. A product
// cannot list the same material twice — callers update the existing entry's
// quantity instead.
type BOMEntry struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_product_material"`
	MaterialID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_product_material"`
	Quantity   decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Product  *Product  `gorm:"foreignKey:ProductID"`
	Material *Material `gorm:"foreignKey:MaterialID"`
}

// TableName keeps the association table named after both sides.
func (BOMEntry) TableName() string { return "product_materials" }
