package dto

import "github.com/shopspring/decimal"

// ManufactureRequest asks to build Quantity units of a product, consuming
// material stock according to the bill of materials.
type ManufactureRequest struct {
	Quantity int `json:"quantity"`
}

// MaterialShortfall describes one material that lacks stock for a run.
// The rejection response carries every shortfall, not just the first.
type MaterialShortfall struct {
	MaterialID string          `json:"material_id"`
	Material   string          `json:"material"`
	Required   decimal.Decimal `json:"required"`
	Available  decimal.Decimal `json:"available"`
	Shortage   decimal.Decimal `json:"shortage"`
	Unit       string          `json:"unit"`
}

// LowStockWarning flags a material driven below its minimum threshold by a
// committed run. Informational only — never blocks the commit.
type LowStockWarning struct {
	MaterialID  string          `json:"material_id"`
	Material    string          `json:"material"`
	Remaining   decimal.Decimal `json:"remaining"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
	Unit        string          `json:"unit"`
}

type ManufactureResponse struct {
	Product  ProductResponse   `json:"product"`
	Built    int               `json:"built"`
	Warnings []LowStockWarning `json:"warnings"`
}
