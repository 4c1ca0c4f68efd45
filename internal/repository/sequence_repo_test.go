package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDailyKey(t *testing.T) {
	date := time.Date(2025, 9, 1, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, "INV-20250901", DailyKey(SeqInvoice, date))
	assert.Equal(t, "TRXIN-20250901", DailyKey(SeqStockIn, date))
	assert.Equal(t, "TRXOUT-20250901", DailyKey(SeqStockOut, date))
}

func TestFormatDocNo(t *testing.T) {
	date := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "INV-20250901-0001", FormatDocNo(SeqInvoice, date, 1))
	assert.Equal(t, "INV-20250901-0042", FormatDocNo(SeqInvoice, date, 42))
	// Width grows past four digits rather than wrapping.
	assert.Equal(t, "INV-20250901-12345", FormatDocNo(SeqInvoice, date, 12345))
}
