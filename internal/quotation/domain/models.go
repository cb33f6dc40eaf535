// Package domain contains persistence models for quotations.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// QuotationStatus represents quotation lifecycle states.
type QuotationStatus string

const (
	QuotationStatusDraft    QuotationStatus = "DRAFT"
	QuotationStatusSent     QuotationStatus = "SENT"
	QuotationStatusAccepted QuotationStatus = "ACCEPTED"
)

// Known reports whether s is one of the closed set of statuses.
func (s QuotationStatus) Known() bool {
	switch s {
	case QuotationStatusDraft, QuotationStatusSent, QuotationStatusAccepted:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further transitions leave s.
func (s QuotationStatus) Terminal() bool {
	return s == QuotationStatusAccepted
}

// CanTransitionTo reports whether next is reachable from s. Transitions
// are forward-only; re-applying the current status is an allowed no-op
// handled by the caller.
func (s QuotationStatus) CanTransitionTo(next QuotationStatus) bool {
	switch s {
	case QuotationStatusDraft:
		return next == QuotationStatusSent || next == QuotationStatusAccepted
	case QuotationStatusSent:
		return next == QuotationStatusAccepted
	default:
		return false
	}
}

// Quotation is a priced offer to a customer, convertible to an invoice.
type Quotation struct {
	ID              snowflake.ID    `gorm:"primaryKey" json:"id"`
	QuotationNumber string          `gorm:"uniqueIndex;not null" json:"quotation_number"`
	CustomerID      snowflake.ID    `gorm:"not null;index" json:"customer_id"`
	Status          QuotationStatus `gorm:"type:text;not null;default:'DRAFT'" json:"status"`
	IssueDate       time.Time       `gorm:"not null" json:"issue_date"`
	ValidUntil      time.Time       `gorm:"not null" json:"valid_until"`

	TaxApplicable bool            `gorm:"not null;default:false" json:"tax_applicable"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0" json:"tax_rate"`

	SubtotalAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"subtotal_amount"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"tax_amount"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total_amount"`

	Notes    string            `gorm:"type:text" json:"notes,omitempty"`
	Items    []QuotationItem   `gorm:"foreignKey:QuotationID" json:"items"`
	Metadata datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Quotation) TableName() string { return "quotations" }

// QuotationItem is a line on a quotation. Position preserves the
// insertion order, which is also the print order.
type QuotationItem struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	QuotationID snowflake.ID    `gorm:"not null;index" json:"quotation_id"`
	Position    int             `gorm:"not null" json:"position"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	Rate        decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"rate"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (QuotationItem) TableName() string { return "quotation_items" }
