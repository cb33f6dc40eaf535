package lineitem

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrIndexOutOfRange = errors.New("line item index out of range")
	ErrLastItem        = errors.New("cannot remove the last line item")
)

// Collection is an ordered, editable list of items. It is never empty:
// a new collection starts with one zero-valued row and Remove refuses to
// drop the last remaining one. Insertion order is display and print order.
type Collection struct {
	items []Item
}

// NewCollection returns a collection seeded with a single zero-valued item.
func NewCollection() *Collection {
	return &Collection{items: []Item{NewItem()}}
}

// FromItems builds a collection from existing rows, recomputing each amount.
// An empty input still yields the single zero-valued row.
func FromItems(items []Item) *Collection {
	if len(items) == 0 {
		return NewCollection()
	}
	copied := make([]Item, len(items))
	copy(copied, items)
	for i := range copied {
		copied[i].Recompute()
	}
	return &Collection{items: copied}
}

// Add appends a zero-valued item.
func (c *Collection) Add() {
	c.items = append(c.items, NewItem())
}

// Remove drops the item at index. Removing the last remaining item is
// rejected so the collection never becomes empty.
func (c *Collection) Remove(index int) error {
	if index < 0 || index >= len(c.items) {
		return ErrIndexOutOfRange
	}
	if len(c.items) == 1 {
		return ErrLastItem
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
	return nil
}

// SetDescription updates the description of the item at index.
func (c *Collection) SetDescription(index int, description string) error {
	if index < 0 || index >= len(c.items) {
		return ErrIndexOutOfRange
	}
	c.items[index].Description = description
	return nil
}

// SetQuantity updates the quantity at index and recomputes its amount.
func (c *Collection) SetQuantity(index int, quantity int64) error {
	if index < 0 || index >= len(c.items) {
		return ErrIndexOutOfRange
	}
	c.items[index].Quantity = quantity
	c.items[index].Recompute()
	return nil
}

// SetRate updates the rate at index and recomputes its amount.
func (c *Collection) SetRate(index int, rate decimal.Decimal) error {
	if index < 0 || index >= len(c.items) {
		return ErrIndexOutOfRange
	}
	c.items[index].Rate = rate
	c.items[index].Recompute()
	return nil
}

// Len returns the number of items, valid or not.
func (c *Collection) Len() int {
	return len(c.items)
}

// Items returns a copy of all rows in insertion order.
func (c *Collection) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// ValidItems returns a copy of the rows that count toward totals,
// preserving order.
func (c *Collection) ValidItems() []Item {
	out := make([]Item, 0, len(c.items))
	for _, item := range c.items {
		if item.Valid() {
			out = append(out, item)
		}
	}
	return out
}
