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

type CreateQuotationRequest struct {
	CustomerID    string          `json:"customer_id"`
	IssueDate     *time.Time      `json:"issue_date"`
	ValidUntil    *time.Time      `json:"valid_until"`
	TaxApplicable bool            `json:"tax_applicable"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	Notes         string          `json:"notes"`
	Items         []LineItemInput `json:"items"`
}

type UpdateQuotationRequest struct {
	ID            string          `json:"-"`
	CustomerID    string          `json:"customer_id"`
	IssueDate     *time.Time      `json:"issue_date"`
	ValidUntil    *time.Time      `json:"valid_until"`
	TaxApplicable bool            `json:"tax_applicable"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	Notes         string          `json:"notes"`
	Items         []LineItemInput `json:"items"`
}

type ListQuotationRequest struct {
	PageToken   string
	PageSize    int32
	Status      *QuotationStatus
	CustomerID  string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type ListQuotationResponse struct {
	Quotations []Quotation         `json:"quotations"`
	PageInfo   pagination.PageInfo `json:"page_info"`
}

type ListQuotationFilter struct {
	Status      *QuotationStatus
	CustomerID  string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateQuotationRequest) (Quotation, error)
	Update(ctx context.Context, req UpdateQuotationRequest) (Quotation, error)
	List(ctx context.Context, req ListQuotationRequest) (ListQuotationResponse, error)
	GetByID(ctx context.Context, id string) (Quotation, error)
	Delete(ctx context.Context, id string) error

	// Send marks the quotation as sent to the customer. Sending an
	// already-sent quotation is an allowed no-op.
	Send(ctx context.Context, id string) (Quotation, error)
	// Accept marks the quotation as accepted. Terminal.
	Accept(ctx context.Context, id string) (Quotation, error)
	// UpdateStatus applies an arbitrary transition under the same rules
	// as Send/Accept.
	UpdateStatus(ctx context.Context, id string, status QuotationStatus) (Quotation, error)
}
