package pos

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCartMergesRepeatScans(t *testing.T) {
	cart := NewCart()
	id := uuid.New()

	for i := 0; i < 3; i++ {
		cart.Upsert(id, "8991234", "Kopi Sachet", d("1500"), 1, decimal.Zero)
	}

	require.Equal(t, 1, cart.Len())
	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.True(t, lines[0].Total().Equal(d("4500")), "got %s", lines[0].Total())
}

func TestCartMergeAccumulatesDiscount(t *testing.T) {
	cart := NewCart()
	id := uuid.New()

	cart.Upsert(id, "8991234", "Kopi Sachet", d("1500"), 2, d("100"))
	cart.Upsert(id, "8991234", "Kopi Sachet", d("1500"), 1, d("50"))

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.True(t, lines[0].Discount.Equal(d("150")))
	// 1500*3 - 150
	assert.True(t, lines[0].Total().Equal(d("4350")))
}

func TestCartPreservesScanOrder(t *testing.T) {
	cart := NewCart()

	cart.Upsert(uuid.New(), "b", "B", d("10"), 1, decimal.Zero)
	cart.Upsert(uuid.New(), "a", "A", d("20"), 1, decimal.Zero)
	cart.Upsert(uuid.New(), "c", "C", d("30"), 1, decimal.Zero)

	lines := cart.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "b", lines[0].Barcode)
	assert.Equal(t, "a", lines[1].Barcode)
	assert.Equal(t, "c", lines[2].Barcode)
}

func TestCartIgnoresInvalidScans(t *testing.T) {
	cart := NewCart()

	cart.Upsert(uuid.New(), "", "No Barcode", d("10"), 1, decimal.Zero)
	cart.Upsert(uuid.New(), "x", "Zero Qty", d("10"), 0, decimal.Zero)
	cart.Upsert(uuid.New(), "y", "Negative Qty", d("10"), -2, decimal.Zero)

	assert.Equal(t, 0, cart.Len())
}

func TestComputeTotals(t *testing.T) {
	lines := []Line{
		{UnitPrice: d("12000"), Quantity: 2, Discount: decimal.Zero}, // 24000
		{UnitPrice: d("3500"), Quantity: 3, Discount: d("500")},      // 10000
	}

	totals := ComputeTotals(lines, d("4000"), d("50000"))

	assert.True(t, totals.Subtotal.Equal(d("34000")), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.Total.Equal(d("30000")), "total %s", totals.Total)
	assert.True(t, totals.ReturnAmount.Equal(d("20000")), "return %s", totals.ReturnAmount)
}

func TestComputeTotalsReturnLaw(t *testing.T) {
	// return = moneyReceived - (subtotal - discount), for any inputs.
	cases := []struct {
		subtotalLines []Line
		discount      string
		received      string
		wantReturn    string
	}{
		{[]Line{{UnitPrice: d("100"), Quantity: 1}}, "0", "100", "0"},
		{[]Line{{UnitPrice: d("100"), Quantity: 1}}, "0", "150", "50"},
		{[]Line{{UnitPrice: d("100"), Quantity: 2}}, "20", "200", "20"},
		{[]Line{{UnitPrice: d("99.99"), Quantity: 3}}, "0.97", "300", "1"},
	}

	for _, tc := range cases {
		totals := ComputeTotals(tc.subtotalLines, d(tc.discount), d(tc.received))
		assert.True(t, totals.ReturnAmount.Equal(d(tc.wantReturn)),
			"discount=%s received=%s: got %s", tc.discount, tc.received, totals.ReturnAmount)
	}
}

func TestComputeTotalsNegativeReturn(t *testing.T) {
	lines := []Line{{UnitPrice: d("25000"), Quantity: 1}}

	totals := ComputeTotals(lines, decimal.Zero, d("20000"))

	// A cash-short sale is recorded as-is, not rejected here.
	assert.True(t, totals.ReturnAmount.IsNegative())
	assert.True(t, totals.ReturnAmount.Equal(d("-5000")))
}
