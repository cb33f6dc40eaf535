// Package domain contains persistence models for invoices.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// InvoiceStatus represents invoice lifecycle states.
type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "DRAFT"
	InvoiceStatusSent  InvoiceStatus = "SENT"
	InvoiceStatusPaid  InvoiceStatus = "PAID"
)

// Known reports whether s is one of the closed set of statuses.
func (s InvoiceStatus) Known() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further transitions leave s.
func (s InvoiceStatus) Terminal() bool {
	return s == InvoiceStatusPaid
}

// CanTransitionTo reports whether next is reachable from s. Transitions
// are forward-only; re-applying the current status is an allowed no-op
// handled by the caller.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft:
		return next == InvoiceStatusSent || next == InvoiceStatusPaid
	case InvoiceStatusSent:
		return next == InvoiceStatusPaid
	default:
		return false
	}
}

// Invoice is a bill issued to a customer, either created directly or
// converted from a quotation.
type Invoice struct {
	ID            snowflake.ID  `gorm:"primaryKey" json:"id"`
	InvoiceNumber string        `gorm:"uniqueIndex;not null" json:"invoice_number"`
	CustomerID    snowflake.ID  `gorm:"not null;index" json:"customer_id"`
	QuotationID   *snowflake.ID `gorm:"index" json:"quotation_id,omitempty"`
	Status        InvoiceStatus `gorm:"type:text;not null;default:'DRAFT'" json:"status"`
	IssueDate     time.Time     `gorm:"not null" json:"issue_date"`
	DueDate       time.Time     `gorm:"not null" json:"due_date"`

	TaxApplicable bool            `gorm:"not null;default:false" json:"tax_applicable"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0" json:"tax_rate"`

	SubtotalAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"subtotal_amount"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"tax_amount"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total_amount"`

	Notes    string            `gorm:"type:text" json:"notes,omitempty"`
	Items    []InvoiceItem     `gorm:"foreignKey:InvoiceID" json:"items"`
	Metadata datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// InvoiceItem is a line on an invoice. Position preserves the insertion
// order, which is also the print order.
type InvoiceItem struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	InvoiceID   snowflake.ID    `gorm:"not null;index" json:"invoice_id"`
	Position    int             `gorm:"not null" json:"position"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	Rate        decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"rate"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (InvoiceItem) TableName() string { return "invoice_items" }
