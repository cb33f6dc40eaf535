package lineitem

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// TaxConfig describes the single active tax rate for a document.
type TaxConfig struct {
	Applicable  bool            `json:"applicable"`
	RatePercent decimal.Decimal `json:"rate_percent"`
}

// Totals are the derived document amounts. They are never set directly;
// callers recompute them from the items on every submit.
type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// Compute derives authoritative totals from the valid items only. This is
// the submission-time path: client state is never trusted, invalid rows
// are excluded.
func Compute(items []Item, tax TaxConfig) Totals {
	return sum(ValidOf(items), tax)
}

// ValidOf returns the items that count toward authoritative totals.
func ValidOf(items []Item) []Item {
	valid := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Valid() {
			valid = append(valid, item)
		}
	}
	return valid
}

// Preview derives display totals from all items, valid or not. Live
// previews intentionally include half-filled rows so the numbers track
// what the user is typing.
func Preview(items []Item, tax TaxConfig) Totals {
	return sum(items, tax)
}

func sum(items []Item, tax TaxConfig) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Amount)
	}

	taxAmount := decimal.Zero
	if tax.Applicable && tax.RatePercent.IsPositive() {
		taxAmount = subtotal.Mul(tax.RatePercent).Div(hundred)
	}

	return Totals{
		Subtotal:    subtotal,
		TaxAmount:   taxAmount,
		TotalAmount: subtotal.Add(taxAmount),
	}
}
