package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerRepository is the debt accumulator access point for the partner
// context. ApplyDebtDelta must run on a repository instance scoped to the
// caller's transaction so the delta commits or rolls back with the rest of
// the invoice/journal writes.
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	Save(ctx context.Context, customer *Customer) error
	// ApplyDebtDelta atomically adds delta to total_debt (relative update).
	ApplyDebtDelta(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
}
