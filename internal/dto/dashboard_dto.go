package dto

import "github.com/shopspring/decimal"

// DashboardResponse aggregates the numbers shown on the home screen.
type DashboardResponse struct {
	Clients         int64                      `json:"clients"`
	Products        int64                      `json:"products"`
	Materials       int64                      `json:"materials"`
	QuoteTotals     map[string]decimal.Decimal `json:"quote_totals"`
	QuoteCounts     map[string]int64           `json:"quote_counts"`
	LowStockProduct []ProductResponse          `json:"low_stock_products"`
	LowStockMat     []MaterialResponse         `json:"low_stock_materials"`
}
