package ledger

import (
	"time"

	"github.com/agristore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Journal is the denormalized one-to-one mirror of an invoice, used for
// ledger/reporting views. Its monetary fields are kept equal to the
// invoice's on every amendment.
type Journal struct {
	shared.BaseEntity
	Date          time.Time
	InvoiceID     uuid.UUID
	CustomerID    uuid.UUID
	PrincipalID   uuid.UUID
	PrincipalName string
	Total         decimal.Decimal
	Collection    decimal.Decimal
	Balance       decimal.Decimal
	Items         []JournalItem
}

// JournalItem mirrors an invoice line with denormalized product display text,
// so historical views survive product rename/archive/delete.
type JournalItem struct {
	ID          uuid.UUID
	JournalID   uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Capacity    string
	Price       decimal.Decimal
	Quantity    int
	Total       decimal.Decimal
	LineNo      int
}

// AmendCollection replaces the collected amount and rebalances the mirror.
// Returns the debt delta the caller must apply to the customer accumulator.
func (j *Journal) AmendCollection(newCollection decimal.Decimal) (decimal.Decimal, error) {
	if newCollection.IsNegative() {
		return decimal.Zero, shared.NewDomainError("VALIDATION_ERROR", "Collection cannot be negative")
	}
	newBalance := j.Total.Sub(newCollection)
	delta := newBalance.Sub(j.Balance)
	j.Collection = newCollection
	j.Balance = newBalance
	j.Touch()
	return delta, nil
}
