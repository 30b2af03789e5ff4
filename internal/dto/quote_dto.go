package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type QuoteItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,gt=0"`
}

type CreateQuoteRequest struct {
	ClientID   string             `json:"client_id"   validate:"required,uuid"`
	Items      []QuoteItemRequest `json:"items"       validate:"required,min=1,dive"`
	Discount   decimal.Decimal    `json:"discount"    validate:"min=0"`
	ValidUntil *string            `json:"valid_until" validate:"omitempty,datetime=2006-01-02"`
	Notes      *string            `json:"notes"`
}

type UpdateQuoteStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft sent accepted rejected"`
}

type SendQuoteRequest struct {
	// Email overrides the client's stored address when set.
	Email *string `json:"email" validate:"omitempty,email"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type QuoteFilter struct {
	Status   string `form:"status"`
	ClientID string `form:"client_id"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type QuoteItemResponse struct {
	ProductID   *string         `json:"product_id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type QuoteResponse struct {
	ID         string              `json:"id"`
	Number     int                 `json:"number"`
	ClientID   string              `json:"client_id"`
	ClientName string              `json:"client_name"`
	Status     string              `json:"status"`
	Items      []QuoteItemResponse `json:"items"`
	Subtotal   decimal.Decimal     `json:"subtotal"`
	Discount   decimal.Decimal     `json:"discount"`
	Total      decimal.Decimal     `json:"total"`
	ValidUntil *string             `json:"valid_until"`
	Notes      *string             `json:"notes"`
	SentAt     *string             `json:"sent_at"`
	CreatedAt  string              `json:"created_at"`
}

type QuoteListResponse struct {
	Data  []QuoteResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
