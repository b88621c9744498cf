package domain

import (
	"fmt"
	"sync"
)

// Display-only sales tax applied to cart totals (19%).
var taxNumerator, taxDenominator int64 = 19, 100

// CartLine is one distinct product in the shopper's local cart.
type CartLine struct {
	ProductID string
	VariantID int
	Name      string
	Quantity  int
	UnitPrice *Money
}

// LineTotal returns UnitPrice * Quantity, or zero when the product has no price.
func (l CartLine) LineTotal() *Money {
	if l.UnitPrice == nil {
		return Zero()
	}
	return l.UnitPrice.MultiplyByInt(int64(l.Quantity))
}

// CartSnapshot is the client-side cart: product references and quantities accumulated
// before submission. It is not a versioned resource; checkout converts it into actions.
// The zero value is an empty cart.
type CartSnapshot struct {
	mu    sync.Mutex
	lines []CartLine
}

// NewCartSnapshot returns a cart holding a copy of lines, typically ones read from another cart.
func NewCartSnapshot(lines ...CartLine) *CartSnapshot {
	c := &CartSnapshot{lines: append([]CartLine(nil), lines...)}
	for i := range c.lines {
		if c.lines[i].VariantID == 0 {
			c.lines[i].VariantID = MasterVariantID
		}
	}
	return c
}

// Add puts one unit of a catalog product into the cart.
func (c *CartSnapshot) Add(product *Resource) error {
	if product == nil || product.Kind != KindProduct || product.Product == nil {
		return fmt.Errorf("cart: %v is not a product", product.Ref())
	}
	line := CartLine{
		ProductID: product.ID,
		VariantID: product.Product.Current.MasterVariant.ID,
		Name:      product.Product.Current.Name,
		Quantity:  1,
	}
	if price, ok := product.Product.FirstPrice(); ok {
		line.UnitPrice = price.Money()
	}
	return c.AddLine(line)
}

// AddLine merges line into the cart: an existing line for the same product gains its quantity.
func (c *CartSnapshot) AddLine(line CartLine) error {
	if line.ProductID == "" {
		return ErrEmptyResourceID
	}
	if line.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if line.VariantID == 0 {
		line.VariantID = MasterVariantID
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ProductID == line.ProductID {
			c.lines[i].Quantity += line.Quantity
			return nil
		}
	}
	c.lines = append(c.lines, line)
	return nil
}

// UpdateQuantity changes a line's quantity by delta. The line is removed once it would drop to zero.
// Unknown products are ignored.
func (c *CartSnapshot) UpdateQuantity(productID string, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ProductID != productID {
			continue
		}
		if c.lines[i].Quantity+delta > 0 {
			c.lines[i].Quantity += delta
		} else {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}
		return
	}
}

// Remove drops a product from the cart.
func (c *CartSnapshot) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Subtract takes submitted quantities out of the cart. Lines that reach zero are removed;
// anything added after the lines were read stays.
func (c *CartSnapshot) Subtract(submitted []CartLine) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, sub := range submitted {
		for i := range c.lines {
			if c.lines[i].ProductID != sub.ProductID {
				continue
			}
			if c.lines[i].Quantity > sub.Quantity {
				c.lines[i].Quantity -= sub.Quantity
			} else {
				c.lines = append(c.lines[:i], c.lines[i+1:]...)
			}
			break
		}
	}
}

// Clear empties the cart (after a successful order or on logout).
func (c *CartSnapshot) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()
}

// Lines returns a copy of the lines in insertion order, one per distinct product.
func (c *CartSnapshot) Lines() []CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]CartLine(nil), c.lines...)
}

func (c *CartSnapshot) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

func (c *CartSnapshot) IsEmpty() bool {
	return c.Len() == 0
}

// Subtotal sums the line totals.
func (c *CartSnapshot) Subtotal() *Money {
	total := Zero()
	for _, l := range c.Lines() {
		total = total.Add(l.LineTotal())
	}
	return total
}

// Tax returns the display tax on the subtotal.
func (c *CartSnapshot) Tax() *Money {
	return c.Subtotal().MultiplyByFraction(taxNumerator, taxDenominator)
}

// Total returns subtotal plus tax.
func (c *CartSnapshot) Total() *Money {
	sub := c.Subtotal()
	return sub.Add(sub.MultiplyByFraction(taxNumerator, taxDenominator))
}
