package catalog

import (
	"strings"

	"github.com/agristore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a sellable product in the catalog context.
// Price and Capacity are display/snapshot sources for invoicing; StockQty is
// the quantity-on-hand ledger mutated only by the invoicing core.
type Product struct {
	shared.BaseEntity
	Name     string
	Capacity string
	Price    decimal.Decimal
	StockQty int
	Notes    string
	// Properties is an opaque key-value bag (composition/usage/features text,
	// archival flag). The core passes it through without interpreting it.
	Properties map[string]string
}

// NewProduct creates a new product with required fields
func NewProduct(name, capacity string, price decimal.Decimal, stockQty int) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product price cannot be negative")
	}
	if stockQty < 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product stock cannot be negative")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Capacity:   capacity,
		Price:      price,
		StockQty:   stockQty,
		Properties: map[string]string{},
	}, nil
}

// HasStock reports whether the product can cover the requested quantity.
func (p *Product) HasStock(quantity int) bool {
	return p.StockQty >= quantity
}

// Decrement reduces quantity-on-hand. The persistence layer performs the
// authoritative guarded decrement; this keeps the in-memory copy consistent.
func (p *Product) Decrement(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Decrement quantity must be positive")
	}
	if !p.HasStock(quantity) {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock for product "+p.Name)
	}
	p.StockQty -= quantity
	p.Touch()
	return nil
}

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("VALIDATION_ERROR", "Product name cannot exceed 200 characters")
	}
	return nil
}
