package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name        string          `json:"name"         validate:"required,min=2,max=120"`
	Description *string         `json:"description"`
	SalePrice   decimal.Decimal `json:"sale_price"   validate:"min=0"`
	LaborCost   decimal.Decimal `json:"labor_cost"   validate:"min=0"`
	Quantity    int             `json:"quantity"     validate:"min=0"`
	MinQuantity int             `json:"min_quantity" validate:"min=0"`
	CategoryID  *string         `json:"category_id"  validate:"omitempty,uuid"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name"         validate:"omitempty,min=2,max=120"`
	Description *string          `json:"description"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
	LaborCost   *decimal.Decimal `json:"labor_cost"`
	MinQuantity *int             `json:"min_quantity" validate:"omitempty,min=0"`
	CategoryID  *string          `json:"category_id"  validate:"omitempty,uuid"`
}

// AdjustProductStockRequest changes product quantity on hand by a signed delta.
type AdjustProductStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Reason string `json:"reason" validate:"max=200"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Name       string `form:"name"`
	CategoryID string `form:"category_id"`
	LowStock   bool   `form:"low_stock"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	LaborCost   decimal.Decimal `json:"labor_cost"`
	Quantity    int             `json:"quantity"`
	MinQuantity int             `json:"min_quantity"`
	CategoryID  *string         `json:"category_id"`
	LowStock    bool            `json:"low_stock"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
