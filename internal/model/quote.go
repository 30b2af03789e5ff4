package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quote states. A quote starts as draft, becomes sent when emailed to the
// client, and ends accepted or rejected.
const (
	QuoteDraft    = "draft"
	QuoteSent     = "sent"
	QuoteAccepted = "accepted"
	QuoteRejected = "rejected"
)

// Quote is a priced offer for a client. Items snapshot the product name and
// price at creation time so later catalog edits do not rewrite history.
type Quote struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_quote_number"`
	Number   int       `gorm:"not null;uniqueIndex:idx_user_quote_number"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status   string    `gorm:"not null;default:'draft'"`
	Subtotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Discount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ValidUntil *time.Time
	Notes      *string
	SentAt     *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Client *Client     `gorm:"foreignKey:ClientID"`
	Items  []QuoteItem `gorm:"foreignKey:QuoteID"`
}

// QuoteItem is one line of a quote. ProductID is nullable so a deleted
// product does not invalidate old quotes; Description keeps the snapshot.
type QuoteItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	QuoteID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductID   *uuid.UUID `gorm:"type:uuid"`
	Description string     `gorm:"not null"`
	Quantity    int        `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
