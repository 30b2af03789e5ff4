package dto

import "github.com/shopspring/decimal"

// AddBOMEntryRequest puts a material on a product's bill of materials.
type AddBOMEntryRequest struct {
	MaterialID string          `json:"material_id" validate:"required,uuid"`
	Quantity   decimal.Decimal `json:"quantity"    validate:"required"`
}

// UpdateBOMEntryRequest changes the per-unit quantity of an existing entry.
type UpdateBOMEntryRequest struct {
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
}

// BOMEntryResponse embeds a material snapshot so callers can price the sheet
// without extra lookups.
type BOMEntryResponse struct {
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_name"`
	Unit         string          `json:"unit"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     decimal.Decimal `json:"quantity"`
	LineCost     decimal.Decimal `json:"line_cost"`
	Available    decimal.Decimal `json:"available"`
}

// ─── Cost breakdown ──────────────────────────────────────────────────────────

type CostLineItem struct {
	Material  string          `json:"material"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineCost  decimal.Decimal `json:"line_cost"`
}

type ProductCostResponse struct {
	ProductID    string          `json:"product_id"`
	Items        []CostLineItem  `json:"items"`
	MaterialCost decimal.Decimal `json:"material_cost"`
	LaborCost    decimal.Decimal `json:"labor_cost"`
	TotalCost    decimal.Decimal `json:"total_cost"`
}
