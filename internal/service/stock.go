package service

import (
	"errors"
	"fmt"
	"sort"

	"kasir-backend/internal/model"
	"kasir-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Actor identifies the authenticated user a command runs as. It is threaded
// explicitly through every transactional call instead of an ambient
// "current user" lookup.
type Actor struct {
	ID       string
	Name     string
	Email    string
	RoleCode string
}

// stockDelta is a signed stock change for one product. Positive adds stock.
type stockDelta struct {
	productID uuid.UUID
	delta     int
}

// mergeDeltas collapses a list of deltas to one net delta per product and
// returns them ordered by product id. The stable lock order prevents
// deadlocks between concurrent commits touching the same products.
func mergeDeltas(deltas []stockDelta) []stockDelta {
	net := make(map[uuid.UUID]int)
	for _, d := range deltas {
		net[d.productID] += d.delta
	}
	merged := make([]stockDelta, 0, len(net))
	for id, delta := range net {
		merged = append(merged, stockDelta{productID: id, delta: delta})
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].productID.String() < merged[j].productID.String()
	})
	return merged
}

// applyStockDeltas locks every touched product row FOR UPDATE, verifies that
// no product would go negative, then writes all new stock values. Running
// inside one DB transaction makes the whole batch atomic: either every line
// applies or none does. Returns the locked products keyed by id so callers
// can snapshot names and prices.
func applyStockDeltas(tx *gorm.DB, productRepo repository.ProductRepository, deltas []stockDelta, updatedBy string) (map[uuid.UUID]lockedProduct, error) {
	merged := mergeDeltas(deltas)
	products := make(map[uuid.UUID]lockedProduct, len(merged))

	// First pass: lock and check every row before mutating any.
	newStocks := make(map[uuid.UUID]int, len(merged))
	for _, d := range merged {
		product, err := productRepo.LockByID(tx, d.productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrProductNotFound, d.productID)
			}
			// Lock or connection failures are infrastructure errors, not a
			// missing product; let the transaction surface them as-is.
			return nil, err
		}
		newStock := product.Stock + d.delta
		if newStock < 0 {
			return nil, fmt.Errorf("%w for product '%s' (have %d, need %d)",
				ErrInsufficientStock, product.Name, product.Stock, -d.delta)
		}
		newStocks[d.productID] = newStock
		products[d.productID] = lockedProduct{product: product, newStock: newStock}
	}

	// Second pass: all checks passed, apply.
	for _, d := range merged {
		if err := productRepo.UpdateStock(tx, d.productID, newStocks[d.productID], updatedBy); err != nil {
			return nil, err
		}
	}

	return products, nil
}

// lockedProduct exposes the row state captured under lock.
type lockedProduct struct {
	product  *model.Product
	newStock int
}
