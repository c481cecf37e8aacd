package ledger

import (
	"context"

	"github.com/agristore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceRepository persists invoices and their items.
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	ExistsBySerial(ctx context.Context, serial string) (bool, error)
	// Save inserts the invoice with its items. A serial uniqueness violation
	// is returned as ALREADY_EXISTS so callers can retry with a new serial.
	Save(ctx context.Context, invoice *Invoice) error
	// UpdateAmounts writes collection/balance for an existing invoice row.
	UpdateAmounts(ctx context.Context, id uuid.UUID, collection, balance decimal.Decimal) error
	// FindByCustomer returns the customer's invoices ordered by date desc,
	// optionally bounded by a date range, capped at limit.
	FindByCustomer(ctx context.Context, customerID uuid.UUID, dateRange shared.DateRange, limit int) ([]Invoice, error)
	// AggregateByCustomer sums total/collection/balance and counts the
	// customer's invoices within the date range.
	AggregateByCustomer(ctx context.Context, customerID uuid.UUID, dateRange shared.DateRange) (InvoiceAggregate, error)
}

// InvoiceAggregate holds per-customer invoice sums.
type InvoiceAggregate struct {
	InvoiceCount     int64
	SalesTotal       decimal.Decimal
	CollectionsTotal decimal.Decimal
	BalancesTotal    decimal.Decimal
}

// JournalRepository persists journal mirrors and their items.
type JournalRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Journal, error)
	FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*Journal, error)
	Save(ctx context.Context, journal *Journal) error
	// UpdateAmounts writes collection/balance for an existing journal row.
	UpdateAmounts(ctx context.Context, id uuid.UUID, collection, balance decimal.Decimal) error
}
