package service

import (
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeDeltasCollapsesPerProduct(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	merged := mergeDeltas([]stockDelta{
		{productID: a, delta: -2},
		{productID: b, delta: 5},
		{productID: a, delta: -3},
		{productID: a, delta: 1},
	})

	require.Len(t, merged, 2)
	byID := map[uuid.UUID]int{}
	for _, d := range merged {
		byID[d.productID] = d.delta
	}
	assert.Equal(t, -4, byID[a])
	assert.Equal(t, 5, byID[b])
}

func TestMergeDeltasStableLockOrder(t *testing.T) {
	deltas := make([]stockDelta, 0, 10)
	for i := 0; i < 10; i++ {
		deltas = append(deltas, stockDelta{productID: uuid.New(), delta: 1})
	}

	merged := mergeDeltas(deltas)

	require.Len(t, merged, 10)
	ids := make([]string, len(merged))
	for i, d := range merged {
		ids[i] = d.productID.String()
	}
	assert.True(t, sort.StringsAreSorted(ids), "lock order must be sorted: %v", ids)
}

func TestApplyStockDeltasDistinguishesLookupFailures(t *testing.T) {
	deltas := []stockDelta{{productID: uuid.New(), delta: -1}}

	// A missing row maps to the domain error.
	_, err := applyStockDeltas(nil, &fakeProductRepo{}, deltas, "tester")
	assert.ErrorIs(t, err, ErrProductNotFound)

	// Anything else from the lock is an infrastructure failure and must come
	// back untranslated.
	dbDown := errors.New("connection refused")
	_, err = applyStockDeltas(nil, &fakeProductRepo{lockErr: dbDown}, deltas, "tester")
	assert.ErrorIs(t, err, dbDown)
	assert.NotErrorIs(t, err, ErrProductNotFound)
}

func TestMergeDeltasZeroNetStillListed(t *testing.T) {
	// A zero net delta keeps the product in the batch so the row is still
	// locked and snapshotted for line building.
	a := uuid.New()

	merged := mergeDeltas([]stockDelta{
		{productID: a, delta: 3},
		{productID: a, delta: -3},
	})

	require.Len(t, merged, 1)
	assert.Equal(t, 0, merged[0].delta)
}
