package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestReconcileCloseArithmetic(t *testing.T) {
	cases := []struct {
		name            string
		opening         string
		salesTotal      string
		closing         string
		wantExpected    string
		wantDiscrepancy string
	}{
		{"balanced drawer", "100000", "250000", "350000", "350000", "0"},
		{"drawer over", "100000", "250000", "355000", "350000", "5000"},
		{"drawer short", "100000", "250000", "340000", "350000", "-10000"},
		{"no sales", "50000", "0", "50000", "50000", "0"},
		{"decimal cents", "100.50", "249.25", "349.00", "349.75", "-0.75"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expected, discrepancy := reconcile(
				decimal.RequireFromString(tc.opening),
				decimal.RequireFromString(tc.salesTotal),
				decimal.RequireFromString(tc.closing),
			)
			assert.True(t, expected.Equal(decimal.RequireFromString(tc.wantExpected)),
				"expected %s, got %s", tc.wantExpected, expected)
			assert.True(t, discrepancy.Equal(decimal.RequireFromString(tc.wantDiscrepancy)),
				"discrepancy %s, got %s", tc.wantDiscrepancy, discrepancy)
		})
	}
}

func TestReconcileDiscrepancySign(t *testing.T) {
	// A short drawer must come out negative, an over drawer positive.
	_, short := reconcile(decimal.NewFromInt(100), decimal.NewFromInt(50), decimal.NewFromInt(120))
	assert.True(t, short.IsNegative())

	_, over := reconcile(decimal.NewFromInt(100), decimal.NewFromInt(50), decimal.NewFromInt(160))
	assert.True(t, over.IsPositive())
}
