package repository

import (
	"testing"
	"time"

	"kasir-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovementHeaderUpdatesCarriesEditor(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	movement := &model.StockMovement{
		Date:   date,
		Remark: "corrected count",
	}
	movement.UpdatedBy = "user-2"

	updates := movementHeaderUpdates(movement)

	require.Contains(t, updates, "updated_by")
	assert.Equal(t, "user-2", updates["updated_by"])
	assert.Equal(t, date, updates["date"])
	assert.Equal(t, "corrected count", updates["remark"])
}
