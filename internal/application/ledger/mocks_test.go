package ledger

import (
	"context"

	"github.com/agristore/backend/internal/domain/catalog"
	"github.com/agristore/backend/internal/domain/ledger"
	"github.com/agristore/backend/internal/domain/partner"
	"github.com/agristore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) ApplyDebtDelta(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

// MockInvoiceRepository is a mock implementation of InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ExistsBySerial(ctx context.Context, serial string) (bool, error) {
	args := m.Called(ctx, serial)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *ledger.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateAmounts(ctx context.Context, id uuid.UUID, collection, balance decimal.Decimal) error {
	args := m.Called(ctx, id, collection, balance)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, dateRange shared.DateRange, limit int) ([]ledger.Invoice, error) {
	args := m.Called(ctx, customerID, dateRange, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) AggregateByCustomer(ctx context.Context, customerID uuid.UUID, dateRange shared.DateRange) (ledger.InvoiceAggregate, error) {
	args := m.Called(ctx, customerID, dateRange)
	return args.Get(0).(ledger.InvoiceAggregate), args.Error(1)
}

// MockJournalRepository is a mock implementation of JournalRepository
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Journal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*ledger.Journal, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Journal), args.Error(1)
}

func (m *MockJournalRepository) Save(ctx context.Context, journal *ledger.Journal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateAmounts(ctx context.Context, id uuid.UUID, collection, balance decimal.Decimal) error {
	args := m.Called(ctx, id, collection, balance)
	return args.Error(0)
}

var (
	_ catalog.ProductRepository  = (*MockProductRepository)(nil)
	_ partner.CustomerRepository = (*MockCustomerRepository)(nil)
	_ ledger.InvoiceRepository   = (*MockInvoiceRepository)(nil)
	_ ledger.JournalRepository   = (*MockJournalRepository)(nil)
)
