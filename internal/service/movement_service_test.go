package service

import (
	"testing"

	"kasir-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productWithPrice(price string) *model.Product {
	return &model.Product{
		Name:  "Kopi Sachet",
		Price: decimal.RequireFromString(price),
	}
}

func TestParseMovementRequest(t *testing.T) {
	productID := uuid.New().String()

	t.Run("valid request", func(t *testing.T) {
		req := &MovementRequest{
			Date:   "2025-09-01",
			Remark: "weekly restock",
			Lines: []MovementLineRequest{
				{ProductID: productID, Quantity: 10, UnitPrice: decimal.NewFromInt(5000)},
				{ProductID: uuid.New().String(), Quantity: 3},
			},
		}

		date, lines, err := parseMovementRequest(req)
		require.NoError(t, err)
		assert.Equal(t, "2025-09-01", date.Format("2006-01-02"))
		require.Len(t, lines, 2)
		assert.Equal(t, 10, lines[0].quantity)
	})

	t.Run("bad date", func(t *testing.T) {
		req := &MovementRequest{
			Date:  "01/09/2025",
			Lines: []MovementLineRequest{{ProductID: productID, Quantity: 1}},
		}
		_, _, err := parseMovementRequest(req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("no lines", func(t *testing.T) {
		req := &MovementRequest{Date: "2025-09-01"}
		_, _, err := parseMovementRequest(req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("zero quantity rejects whole movement", func(t *testing.T) {
		req := &MovementRequest{
			Date: "2025-09-01",
			Lines: []MovementLineRequest{
				{ProductID: productID, Quantity: 5},
				{ProductID: uuid.New().String(), Quantity: 0},
			},
		}
		_, _, err := parseMovementRequest(req)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("negative discount", func(t *testing.T) {
		req := &MovementRequest{
			Date: "2025-09-01",
			Lines: []MovementLineRequest{
				{ProductID: productID, Quantity: 5, Discount: decimal.NewFromInt(-100)},
			},
		}
		_, _, err := parseMovementRequest(req)
		assert.ErrorIs(t, err, ErrNegativeDiscount)
	})

	t.Run("malformed product id", func(t *testing.T) {
		req := &MovementRequest{
			Date:  "2025-09-01",
			Lines: []MovementLineRequest{{ProductID: "not-a-uuid", Quantity: 1}},
		}
		_, _, err := parseMovementRequest(req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestBuildMovementLinesSnapshotsPrice(t *testing.T) {
	productID := uuid.New()
	lines := []parsedLine{
		{productID: productID, quantity: 4, unitPrice: decimal.Zero},
	}
	locked := map[uuid.UUID]lockedProduct{
		productID: {product: productWithPrice("2500"), newStock: 14},
	}

	built := buildMovementLines(lines, locked)

	require.Len(t, built, 1)
	assert.True(t, built[0].UnitPrice.Equal(decimal.NewFromInt(2500)))
	assert.True(t, built[0].TotalPrice.Equal(decimal.NewFromInt(10000)))
}

func TestBuildMovementLinesKeepsExplicitPrice(t *testing.T) {
	productID := uuid.New()
	lines := []parsedLine{
		{productID: productID, quantity: 2, unitPrice: decimal.NewFromInt(1800), discount: decimal.NewFromInt(100)},
	}
	locked := map[uuid.UUID]lockedProduct{
		productID: {product: productWithPrice("2500"), newStock: 12},
	}

	built := buildMovementLines(lines, locked)

	require.Len(t, built, 1)
	assert.True(t, built[0].UnitPrice.Equal(decimal.NewFromInt(1800)))
	// 1800*2 - 100
	assert.True(t, built[0].TotalPrice.Equal(decimal.NewFromInt(3500)))
}
