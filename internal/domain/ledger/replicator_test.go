package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplicateInvoice(t *testing.T) {
	seed := testProduct(t, "Copper Spray", 100, 50)
	other := testProduct(t, "Fungicide", 150, 20)
	customerID := uuid.New()
	principalID := uuid.New()

	inv, err := NewInvoice("INV-100", time.Now(), customerID, principalID, []Line{
		{Product: seed, Quantity: 3},
		{Product: other, Quantity: 1},
	}, decimal.NewFromInt(200))
	require.NoError(t, err)
	inv.PrincipalName = "Alice Vega"

	journal := ReplicateInvoice(inv)

	assert.NotEqual(t, uuid.Nil, journal.ID)
	assert.NotEqual(t, inv.ID, journal.ID)
	assert.Equal(t, inv.ID, journal.InvoiceID)
	assert.Equal(t, inv.CustomerID, journal.CustomerID)
	assert.Equal(t, inv.PrincipalID, journal.PrincipalID)
	assert.Equal(t, "Alice Vega", journal.PrincipalName)
	assert.Equal(t, inv.Date, journal.Date)

	// Monetary fields mirror the invoice exactly
	assert.True(t, journal.Total.Equal(inv.Total))
	assert.True(t, journal.Collection.Equal(inv.Collection))
	assert.True(t, journal.Balance.Equal(inv.Balance))

	require.Len(t, journal.Items, len(inv.Items))
	for i, it := range journal.Items {
		src := inv.Items[i]
		assert.NotEqual(t, src.ID, it.ID)
		assert.Equal(t, journal.ID, it.JournalID)
		assert.Equal(t, src.ProductID, it.ProductID)
		assert.Equal(t, src.ProductName, it.ProductName)
		assert.Equal(t, src.Capacity, it.Capacity)
		assert.True(t, it.Price.Equal(src.Price))
		assert.Equal(t, src.Quantity, it.Quantity)
		assert.True(t, it.Total.Equal(src.Total))
		assert.Equal(t, src.LineNo, it.LineNo)
	}
}

func TestJournalAmendCollection(t *testing.T) {
	seed := testProduct(t, "Copper Spray", 100, 50)
	inv, err := NewInvoice("INV-101", time.Now(), uuid.New(), uuid.Nil, []Line{
		{Product: seed, Quantity: 5},
	}, decimal.NewFromInt(150))
	require.NoError(t, err)
	journal := ReplicateInvoice(inv)

	delta, err := journal.AmendCollection(decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.True(t, delta.Equal(decimal.NewFromInt(-350)))
	assert.True(t, journal.Collection.Equal(decimal.NewFromInt(500)))
	assert.True(t, journal.Balance.IsZero())

	_, err = journal.AmendCollection(decimal.NewFromInt(-1))
	assertDomainCode(t, err, "VALIDATION_ERROR")
}
