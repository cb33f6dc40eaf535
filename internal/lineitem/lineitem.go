// Package lineitem holds the editable line items of a billing document and
// derives the document totals from them.
package lineitem

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Item is one row of a quotation or invoice.
type Item struct {
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// NewItem returns the zero-valued row appended by the editor.
func NewItem() Item {
	return Item{
		Description: "",
		Quantity:    1,
		Rate:        decimal.Zero,
		Amount:      decimal.Zero,
	}
}

// Valid reports whether the item counts toward authoritative totals.
// An item needs a non-empty trimmed description, a positive quantity
// and a positive rate.
func (i Item) Valid() bool {
	if strings.TrimSpace(i.Description) == "" {
		return false
	}
	if i.Quantity <= 0 {
		return false
	}
	return i.Rate.IsPositive()
}

// Recompute re-derives Amount from Quantity and Rate.
func (i *Item) Recompute() {
	i.Amount = i.Rate.Mul(decimal.NewFromInt(i.Quantity))
}
