// Package pdf renders quotations and invoices as printable documents.
package pdf

import (
	"context"
	"io"
)

// Document is the render-ready view of a quotation or invoice. Callers
// format all amounts and dates before handing it over; the renderer does
// no arithmetic.
type Document struct {
	Title  string
	Number string

	IssueDateLabel string
	IssueDate      string
	DueDateLabel   string
	DueDate        string

	CompanyName    string
	CompanyAddress string
	CompanyEmail   string
	CompanyPhone   string
	CompanyTaxID   string

	BillToName    string
	BillToCompany string
	BillToAddress string
	BillToEmail   string
	BillToGST     string

	Items []DocumentItem

	Subtotal string
	TaxLabel string
	Tax      string
	Total    string

	BankDetails string
	Notes       string
}

// DocumentItem is one printed line.
type DocumentItem struct {
	Description string
	Qty         int64
	Rate        string
	Amount      string
}

type Provider interface {
	Generate(ctx context.Context, doc Document) (io.Reader, error)
}
