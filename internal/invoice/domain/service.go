package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/billora/internal/lineitem"
	"github.com/smallbiznis/billora/pkg/db/pagination"
)

// LineItemInput is one raw item row as submitted by the client. Amounts
// are recomputed server-side and never read from the request.
type LineItemInput struct {
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

// Items converts the raw inputs to calculator items with derived amounts.
func Items(inputs []LineItemInput) []lineitem.Item {
	out := make([]lineitem.Item, 0, len(inputs))
	for _, in := range inputs {
		item := lineitem.Item{
			Description: in.Description,
			Quantity:    in.Quantity,
			Rate:        in.Rate,
		}
		item.Recompute()
		out = append(out, item)
	}
	return out
}

type CreateInvoiceRequest struct {
	CustomerID    string          `json:"customer_id"`
	IssueDate     *time.Time      `json:"issue_date"`
	DueDate       *time.Time      `json:"due_date"`
	TaxApplicable bool            `json:"tax_applicable"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	Notes         string          `json:"notes"`
	Items         []LineItemInput `json:"items"`
}

type UpdateInvoiceRequest struct {
	ID            string          `json:"-"`
	CustomerID    string          `json:"customer_id"`
	IssueDate     *time.Time      `json:"issue_date"`
	DueDate       *time.Time      `json:"due_date"`
	TaxApplicable bool            `json:"tax_applicable"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	Notes         string          `json:"notes"`
	Items         []LineItemInput `json:"items"`
}

type ListInvoiceRequest struct {
	PageToken   string
	PageSize    int32
	Status      *InvoiceStatus
	CustomerID  string
	QuotationID string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type ListInvoiceResponse struct {
	Invoices []Invoice           `json:"invoices"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

type ListInvoiceFilter struct {
	Status      *InvoiceStatus
	CustomerID  string
	QuotationID string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (Invoice, error)
	Update(ctx context.Context, req UpdateInvoiceRequest) (Invoice, error)
	List(ctx context.Context, req ListInvoiceRequest) (ListInvoiceResponse, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
	Delete(ctx context.Context, id string) error

	// Send marks the invoice as sent to the customer. Sending an
	// already-sent invoice is an allowed no-op.
	Send(ctx context.Context, id string) (Invoice, error)
	// MarkPaid marks the invoice as paid. Terminal.
	MarkPaid(ctx context.Context, id string) (Invoice, error)
	// UpdateStatus applies an arbitrary transition under the same rules
	// as Send/MarkPaid.
	UpdateStatus(ctx context.Context, id string, status InvoiceStatus) (Invoice, error)

	// ConvertFromQuotation creates a new draft invoice from an existing
	// quotation, copying its customer, items, tax settings and totals.
	// The source quotation is left untouched.
	ConvertFromQuotation(ctx context.Context, quotationID string) (Invoice, error)
}
