// Package pos holds the pure point-of-sale cart and totals arithmetic.
// Everything here is decimal-exact and free of storage concerns so the
// arithmetic law ReturnAmount = MoneyReceived - (Subtotal - Discount) can be
// verified in isolation.
package pos

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is one product entry in a cart. Quantity accumulates when the same
// barcode is scanned again.
type Line struct {
	ProductID uuid.UUID       `json:"product_id"`
	Barcode   string          `json:"barcode"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Discount  decimal.Decimal `json:"discount"`
}

// Total returns UnitPrice*Quantity - Discount for the line.
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Sub(l.Discount)
}

// Cart maps barcodes to lines while preserving scan order. Keying by barcode
// makes duplicate scans structurally idempotent: N scans of the same barcode
// yield one line with Quantity=N, never N lines.
type Cart struct {
	order []string
	lines map[string]*Line
}

func NewCart() *Cart {
	return &Cart{lines: make(map[string]*Line)}
}

// Upsert merges a scan into the cart. A new barcode appends a line; a repeat
// scan adds quantity and discount to the existing line. Non-positive
// quantities are ignored.
func (c *Cart) Upsert(productID uuid.UUID, barcode, name string, unitPrice decimal.Decimal, quantity int, discount decimal.Decimal) {
	if quantity <= 0 || barcode == "" {
		return
	}
	if line, ok := c.lines[barcode]; ok {
		line.Quantity += quantity
		line.Discount = line.Discount.Add(discount)
		return
	}
	c.lines[barcode] = &Line{
		ProductID: productID,
		Barcode:   barcode,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		Discount:  discount,
	}
	c.order = append(c.order, barcode)
}

// Lines returns the cart contents in scan order.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.order))
	for _, barcode := range c.order {
		out = append(out, *c.lines[barcode])
	}
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Totals is the computed arithmetic of a sale before commit.
type Totals struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	Total        decimal.Decimal `json:"total"`
	ReturnAmount decimal.Decimal `json:"return_amount"`
}

// ComputeTotals derives the sale totals from the cart lines, a
// transaction-level discount and the money received.
//
//	subtotal = sum(line totals)
//	total    = subtotal - discount
//	return   = moneyReceived - total
//
// ReturnAmount may be negative: a cash-short sale is a business event the
// caller warns about, not a system error.
func ComputeTotals(lines []Line, discount, moneyReceived decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Total())
	}
	total := subtotal.Sub(discount)
	return Totals{
		Subtotal:     subtotal,
		Discount:     discount,
		Total:        total,
		ReturnAmount: moneyReceived.Sub(total),
	}
}
