package dto

import "github.com/shopspring/decimal"

type MovementFilter struct {
	ProductID  string `form:"product_id"`
	MaterialID string `form:"material_id"`
	Kind       string `form:"kind"`
	Page       int    `form:"page,default=1"    validate:"min=1"`
	Limit      int    `form:"limit,default=50"  validate:"min=1,max=500"`
}

type MovementResponse struct {
	ID            string          `json:"id"`
	ProductID     *string         `json:"product_id"`
	MaterialID    *string         `json:"material_id"`
	ItemName      string          `json:"item_name"`
	Kind          string          `json:"kind"`
	Quantity      decimal.Decimal `json:"quantity"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Reason        string          `json:"reason"`
	CreatedAt     string          `json:"created_at"`
}

type MovementListResponse struct {
	Data  []MovementResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
