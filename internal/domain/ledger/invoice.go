package ledger

import (
	"strings"
	"time"

	"github.com/agristore/backend/internal/domain/catalog"
	"github.com/agristore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice is the aggregate root for one sale transaction. Monetary fields
// satisfy Balance = Total - Collection at all times; items snapshot product
// price/capacity at invoicing time and are never recomputed from the catalog.
type Invoice struct {
	shared.BaseEntity
	Serial        string
	Date          time.Time
	CustomerID    uuid.UUID
	PrincipalID   uuid.UUID
	PrincipalName string
	Total         decimal.Decimal
	Collection    decimal.Decimal
	Balance       decimal.Decimal
	Items         []InvoiceItem
}

// InvoiceItem is one line of an invoice. Price, Capacity and ProductName are
// snapshots taken from the product at invoicing time.
type InvoiceItem struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Capacity    string
	Price       decimal.Decimal
	Quantity    int
	Total       decimal.Decimal
	LineNo      int
}

// Line pairs a resolved product with the requested quantity.
type Line struct {
	Product  catalog.Product
	Quantity int
}

// NewInvoice assembles an invoice from resolved lines. Lines may be empty:
// a collection-only invoice has total 0 and a negative balance. Products
// must already be resolved and stock-checked by the caller; line order is
// preserved.
func NewInvoice(serial string, date time.Time, customerID, principalID uuid.UUID, lines []Line, collection decimal.Decimal) (*Invoice, error) {
	if strings.TrimSpace(serial) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invoice serial cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Customer ID cannot be empty")
	}
	if collection.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Collection cannot be negative")
	}
	if date.IsZero() {
		date = time.Now()
	}

	inv := &Invoice{
		BaseEntity:  shared.NewBaseEntity(),
		Serial:      serial,
		Date:        date,
		CustomerID:  customerID,
		PrincipalID: principalID,
		Total:       decimal.Zero,
		Collection:  collection,
		Items:       make([]InvoiceItem, 0, len(lines)),
	}

	for i, line := range lines {
		if line.Quantity <= 0 {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Item quantity must be positive")
		}
		lineTotal := line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		inv.Items = append(inv.Items, InvoiceItem{
			ID:          uuid.New(),
			InvoiceID:   inv.ID,
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Capacity:    line.Product.Capacity,
			Price:       line.Product.Price,
			Quantity:    line.Quantity,
			Total:       lineTotal,
			LineNo:      i + 1,
		})
		inv.Total = inv.Total.Add(lineTotal)
	}

	inv.Balance = inv.Total.Sub(inv.Collection)
	return inv, nil
}

// ItemCount returns the number of invoice lines
func (i *Invoice) ItemCount() int {
	return len(i.Items)
}

// AmendCollection replaces the collected amount and rebalances the row.
// Returns the debt delta (newBalance - oldBalance) the caller must apply to
// the customer accumulator.
func (i *Invoice) AmendCollection(newCollection decimal.Decimal) (decimal.Decimal, error) {
	if newCollection.IsNegative() {
		return decimal.Zero, shared.NewDomainError("VALIDATION_ERROR", "Collection cannot be negative")
	}
	newBalance := i.Total.Sub(newCollection)
	delta := newBalance.Sub(i.Balance)
	i.Collection = newCollection
	i.Balance = newBalance
	i.Touch()
	return delta, nil
}
