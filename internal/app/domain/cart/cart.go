// Package cart models a shopper's cart. A Cart is not safe for concurrent
// use; the cart service serialises access per session.
package cart

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/R3E-Network/petstore/internal/app/domain/product"
)

// Line is one item in a cart together with how many of it were added.
type Line struct {
	Item     product.Item `json:"item"`
	Quantity int          `json:"quantity"`
}

// Total is the line price times the quantity.
func (l Line) Total() decimal.Decimal {
	return l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds the lines in the order items were first added.
type Cart struct {
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Add puts one more of item in the cart.
func (c *Cart) Add(item product.Item) {
	c.UpdatedAt = time.Now().UTC()
	for i := range c.Lines {
		if c.Lines[i].Item.Number == item.Number {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, Line{Item: item, Quantity: 1})
}

// Remove drops the line for itemNumber. It reports whether a line was removed.
func (c *Cart) Remove(itemNumber string) bool {
	for i := range c.Lines {
		if c.Lines[i].Item.Number == itemNumber {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			c.UpdatedAt = time.Now().UTC()
			return true
		}
	}
	return false
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
	c.UpdatedAt = time.Now().UTC()
}

// Empty reports whether the cart has no lines.
func (c Cart) Empty() bool {
	return len(c.Lines) == 0
}

// Quantity is the number of units across all lines.
func (c Cart) Quantity() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// Total is the sum of all line totals.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Total())
	}
	return total
}

// Clone returns a deep copy.
func (c Cart) Clone() Cart {
	out := Cart{UpdatedAt: c.UpdatedAt}
	if len(c.Lines) > 0 {
		out.Lines = append([]Line(nil), c.Lines...)
	}
	return out
}
