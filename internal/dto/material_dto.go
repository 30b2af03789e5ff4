package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateMaterialRequest struct {
	Name        string          `json:"name"         validate:"required,min=2,max=120"`
	Unit        string          `json:"unit"         validate:"required,max=10"`
	UnitPrice   decimal.Decimal `json:"unit_price"   validate:"min=0"`
	Quantity    decimal.Decimal `json:"quantity"     validate:"min=0"`
	MinQuantity decimal.Decimal `json:"min_quantity" validate:"min=0"`
	CategoryID  *string         `json:"category_id"  validate:"omitempty,uuid"`
}

type UpdateMaterialRequest struct {
	Name        *string          `json:"name"         validate:"omitempty,min=2,max=120"`
	Unit        *string          `json:"unit"         validate:"omitempty,max=10"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	MinQuantity *decimal.Decimal `json:"min_quantity"`
	CategoryID  *string          `json:"category_id"  validate:"omitempty,uuid"`
}

// AdjustStockRequest changes quantity on hand by a signed delta.
type AdjustStockRequest struct {
	Delta  decimal.Decimal `json:"delta"  validate:"required"`
	Reason string          `json:"reason" validate:"max=200"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type MaterialFilter struct {
	Name       string `form:"name"`
	CategoryID string `form:"category_id"`
	LowStock   bool   `form:"low_stock"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MaterialResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    decimal.Decimal `json:"quantity"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
	CategoryID  *string         `json:"category_id"`
	LowStock    bool            `json:"low_stock"`
}

type MaterialListResponse struct {
	Data  []MaterialResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
