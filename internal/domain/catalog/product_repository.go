package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository is the stock ledger access point for the catalog context.
//
// DecrementStock must be called on a repository instance scoped to the
// caller's transaction; it performs a relative decrement guarded by a
// stock_qty >= quantity predicate so a racing over-decrement affects zero
// rows instead of driving stock negative. It does not re-validate
// availability beyond that guard - callers pre-check via FindByIDs.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindByIDs resolves products in one batch read. Missing ids are simply
	// absent from the result; callers decide whether that is an error.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	// DecrementStock atomically subtracts quantity from stock_qty.
	// Returns INSUFFICIENT_STOCK if the guarded update matches no row.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}
