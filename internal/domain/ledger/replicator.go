package ledger

import (
	"github.com/agristore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ReplicateInvoice produces the journal mirror for a committed invoice.
// It is a pure transform: monetary fields are copied exactly and product
// display text comes from the item snapshots, never from the live catalog.
func ReplicateInvoice(inv *Invoice) *Journal {
	journal := &Journal{
		BaseEntity:    shared.NewBaseEntity(),
		Date:          inv.Date,
		InvoiceID:     inv.ID,
		CustomerID:    inv.CustomerID,
		PrincipalID:   inv.PrincipalID,
		PrincipalName: inv.PrincipalName,
		Total:         inv.Total,
		Collection:    inv.Collection,
		Balance:       inv.Balance,
		Items:         make([]JournalItem, 0, len(inv.Items)),
	}
	for _, it := range inv.Items {
		journal.Items = append(journal.Items, JournalItem{
			ID:          uuid.New(),
			JournalID:   journal.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Capacity:    it.Capacity,
			Price:       it.Price,
			Quantity:    it.Quantity,
			Total:       it.Total,
			LineNo:      it.LineNo,
		})
	}
	return journal
}
