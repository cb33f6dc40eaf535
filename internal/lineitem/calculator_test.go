package lineitem

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func item(description string, quantity int64, rate string) Item {
	i := Item{
		Description: description,
		Quantity:    quantity,
		Rate:        decimal.RequireFromString(rate),
	}
	i.Recompute()
	return i
}

func TestCompute_WithTax(t *testing.T) {
	items := []Item{item("Widget", 2, "50.00")}
	tax := TaxConfig{Applicable: true, RatePercent: decimal.NewFromInt(18)}

	totals := Compute(items, tax)

	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, totals.TaxAmount.Equal(decimal.RequireFromString("18.00")))
	assert.True(t, totals.TotalAmount.Equal(decimal.RequireFromString("118.00")))
}

func TestCompute_TaxNotApplicable(t *testing.T) {
	items := []Item{item("Widget", 2, "50.00")}
	tax := TaxConfig{Applicable: false, RatePercent: decimal.NewFromInt(18)}

	totals := Compute(items, tax)

	assert.True(t, totals.TaxAmount.IsZero())
	assert.True(t, totals.TotalAmount.Equal(totals.Subtotal))
}

func TestCompute_ExcludesInvalidItems(t *testing.T) {
	items := []Item{
		item("A", 1, "10"),
		item("", 0, "0"),
	}

	totals := Compute(items, TaxConfig{})

	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("10")))
}

func TestCompute_TotalIsSubtotalPlusTax(t *testing.T) {
	items := []Item{
		item("A", 3, "19.99"),
		item("B", 1, "0.01"),
		item("zero rate", 5, "0"),
	}
	tax := TaxConfig{Applicable: true, RatePercent: decimal.RequireFromString("12.5")}

	totals := Compute(items, tax)

	assert.True(t, totals.TotalAmount.Equal(totals.Subtotal.Add(totals.TaxAmount)))
	// zero-rate row is invalid and must not count
	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("59.98")))
}

func TestPreview_IncludesInvalidItems(t *testing.T) {
	items := []Item{
		item("A", 1, "10"),
		item("", 2, "5"),
	}

	preview := Preview(items, TaxConfig{})
	authoritative := Compute(items, TaxConfig{})

	assert.True(t, preview.Subtotal.Equal(decimal.RequireFromString("20")))
	assert.True(t, authoritative.Subtotal.Equal(decimal.RequireFromString("10")))
}

func TestItemValidity(t *testing.T) {
	assert.True(t, item("Widget", 1, "0.01").Valid())
	assert.False(t, item("  ", 1, "10").Valid())
	assert.False(t, item("Widget", 0, "10").Valid())
	assert.False(t, item("Widget", 1, "0").Valid())
	assert.False(t, item("Widget", -1, "10").Valid())
}

func TestRecompute(t *testing.T) {
	i := Item{Description: "Widget", Quantity: 4, Rate: decimal.RequireFromString("2.50")}
	i.Recompute()
	assert.True(t, i.Amount.Equal(decimal.RequireFromString("10.00")))

	i.Quantity = 0
	i.Recompute()
	assert.True(t, i.Amount.IsZero())
}
