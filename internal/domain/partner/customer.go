package partner

import (
	"strings"

	"github.com/agristore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Customer represents a customer in the partner context.
// TotalDebt is a running accumulator of the balances of the customer's
// recorded invoices. It is updated incrementally by the invoicing core and
// never recomputed wholesale on read.
type Customer struct {
	shared.BaseEntity
	Name      string
	Email     string
	Phone     string
	TotalDebt decimal.Decimal
}

// NewCustomer creates a new customer with a zero debt accumulator
func NewCustomer(name string) (*Customer, error) {
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		TotalDebt:  decimal.Zero,
	}, nil
}

// ApplyDebtDelta shifts the accumulator by delta (positive or negative).
func (c *Customer) ApplyDebtDelta(delta decimal.Decimal) {
	if delta.IsZero() {
		return
	}
	c.TotalDebt = c.TotalDebt.Add(delta)
	c.Touch()
}

func validateCustomerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("VALIDATION_ERROR", "Customer name cannot exceed 200 characters")
	}
	return nil
}
