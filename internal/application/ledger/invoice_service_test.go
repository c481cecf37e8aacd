package ledger

import (
	"context"
	"testing"

	"github.com/agristore/backend/internal/domain/catalog"
	"github.com/agristore/backend/internal/domain/ledger"
	"github.com/agristore/backend/internal/domain/partner"
	"github.com/agristore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type invoiceServiceFixture struct {
	productRepo  *MockProductRepository
	customerRepo *MockCustomerRepository
	invoiceRepo  *MockInvoiceRepository
	journalRepo  *MockJournalRepository
	service      *InvoiceService
}

func newInvoiceServiceFixture() *invoiceServiceFixture {
	f := &invoiceServiceFixture{
		productRepo:  new(MockProductRepository),
		customerRepo: new(MockCustomerRepository),
		invoiceRepo:  new(MockInvoiceRepository),
		journalRepo:  new(MockJournalRepository),
	}
	scope := NewNoOpTransactionScope(f.productRepo, f.customerRepo, f.invoiceRepo, f.journalRepo)
	f.service = NewInvoiceService(f.productRepo, scope, zap.NewNop())
	return f
}

func makeProduct(t *testing.T, name string, price int64, stock int) catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, "1L", decimal.NewFromInt(price), stock)
	require.NoError(t, err)
	return *p
}

func makeCustomer(t *testing.T) *partner.Customer {
	t.Helper()
	c, err := partner.NewCustomer("Acme Farm")
	require.NoError(t, err)
	return c
}

func TestInvoiceServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("commits invoice, stock, debt and journal together", func(t *testing.T) {
		f := newInvoiceServiceFixture()
		customer := makeCustomer(t)
		spray := makeProduct(t, "Copper Spray", 100, 10)
		fungicide := makeProduct(t, "Fungicide", 150, 5)

		f.productRepo.On("FindByIDs", ctx, []uuid.UUID{spray.ID, fungicide.ID}).
			Return([]catalog.Product{spray, fungicide}, nil)
		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.invoiceRepo.On("ExistsBySerial", ctx, "INV-1").Return(false, nil)
		f.invoiceRepo.On("Save", ctx, mock.AnythingOfType("*ledger.Invoice")).Return(nil)
		f.productRepo.On("DecrementStock", ctx, spray.ID, 3).Return(nil)
		f.productRepo.On("DecrementStock", ctx, fungicide.ID, 2).Return(nil)
		f.customerRepo.On("ApplyDebtDelta", ctx, customer.ID, mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.NewFromInt(450))
		})).Return(nil)
		f.journalRepo.On("Save", ctx, mock.AnythingOfType("*ledger.Journal")).Return(nil)

		result, err := f.service.Create(ctx, CreateInvoiceRequest{
			Serial:     "INV-1",
			CustomerID: customer.ID,
			Items: []CreateInvoiceItemInput{
				{ProductID: spray.ID, Quantity: 3},
				{ProductID: fungicide.ID, Quantity: 2},
			},
			Collection: decimal.NewFromInt(150),
		})

		require.NoError(t, err)
		assert.Equal(t, "INV-1", result.Serial)
		assert.True(t, result.Total.Equal(decimal.NewFromInt(600)))
		assert.True(t, result.Balance.Equal(decimal.NewFromInt(450)))
		assert.Equal(t, 2, result.ItemCount)

		// The saved journal mirrors the saved invoice
		savedInvoice := f.invoiceRepo.Calls[1].Arguments.Get(1).(*ledger.Invoice)
		savedJournal := f.journalRepo.Calls[0].Arguments.Get(1).(*ledger.Journal)
		assert.Equal(t, savedInvoice.ID, savedJournal.InvoiceID)
		assert.True(t, savedJournal.Total.Equal(savedInvoice.Total))
		assert.True(t, savedJournal.Balance.Equal(savedInvoice.Balance))

		f.productRepo.AssertExpectations(t)
		f.customerRepo.AssertExpectations(t)
		f.invoiceRepo.AssertExpectations(t)
		f.journalRepo.AssertExpectations(t)
	})

	t.Run("collection-only invoice carries a negative debt delta", func(t *testing.T) {
		f := newInvoiceServiceFixture()
		customer := makeCustomer(t)

		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.invoiceRepo.On("ExistsBySerial", ctx, "PAY-9").Return(false, nil)
		f.invoiceRepo.On("Save", ctx, mock.AnythingOfType("*ledger.Invoice")).Return(nil)
		f.customerRepo.On("ApplyDebtDelta", ctx, customer.ID, mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.NewFromInt(-500))
		})).Return(nil)
		f.journalRepo.On("Save", ctx, mock.AnythingOfType("*ledger.Journal")).Return(nil)

		result, err := f.service.Create(ctx, CreateInvoiceRequest{
			Serial:     "PAY-9",
			CustomerID: customer.ID,
			Collection: decimal.NewFromInt(500),
		})

		require.NoError(t, err)
		assert.True(t, result.Total.IsZero())
		assert.True(t, result.Balance.Equal(decimal.NewFromInt(-500)))
		assert.Equal(t, 0, result.ItemCount)
		f.productRepo.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects insufficient stock before any write", func(t *testing.T) {
		f := newInvoiceServiceFixture()
		spray := makeProduct(t, "Copper Spray", 100, 1)

		f.productRepo.On("FindByIDs", ctx, []uuid.UUID{spray.ID}).
			Return([]catalog.Product{spray}, nil)

		_, err := f.service.Create(ctx, CreateInvoiceRequest{
			Serial:     "INV-2",
			CustomerID: uuid.New(),
			Items:      []CreateInvoiceItemInput{{ProductID: spray.ID, Quantity: 2}},
		})

		assertServiceCode(t, err, "INSUFFICIENT_STOCK")
		assert.Contains(t, err.Error(), "Copper Spray")
		f.invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.customerRepo.AssertNotCalled(t, "ApplyDebtDelta", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("checks duplicate lines against stock in aggregate", func(t *testing.T) {
		f := newInvoiceServiceFixture()
		spray := makeProduct(t, "Copper Spray", 100, 3)

		f.productRepo.On("FindByIDs", ctx, []uuid.UUID{spray.ID, spray.ID}).
			Return([]catalog.Product{spray}, nil)

		_, err := f.service.Create(ctx, CreateInvoiceRequest{
			Serial:     "INV-3",
			CustomerID: uuid.New(),
			Items: []CreateInvoiceItemInput{
				{ProductID: spray.ID, Quantity: 2},
				{ProductID: spray.ID, Quantity: 2},
			},
		})

		assertServiceCode(t, err, "INSUFFICIENT_STOCK")
	})

	t.Run("rejects unknown product", func(t *testing.T) {
		f := newInvoiceServiceFixture()
		missing := uuid.New()

		f.productRepo.On("FindByIDs", ctx, []uuid.UUID{missing}).
			Return([]catalog.Product{}, nil)

		_, err := f.service.Create(ctx, CreateInvoiceRequest{
			Serial:     "INV-4",
			CustomerID: uuid.New(),
			Items:      []CreateInvoiceItemInput{{ProductID: missing, Quantity: 1}},
		})

		assertServiceCode(t, err, "NOT_FOUND")
	})

	t.Run("rejects unknown customer", func(t *testing.T) {
		f := newInvoiceServiceFixture()
		customerID := uuid.New()

		f.customerRepo.On("FindByID", ctx, customerID).Return(nil, shared.ErrNotFound)

		_, err := f.service.Create(ctx, CreateInvoiceRequest{
			Serial:     "INV-5",
			CustomerID: customerID,
		})

		assertServiceCode(t, err, "NOT_FOUND")
		f.invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("retries a colliding serial with a random suffix", func(t *testing.T) {
		f := newInvoiceServiceFixture()
		customer := makeCustomer(t)
		f.service.serialSuffix = func() int { return 7 }

		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.invoiceRepo.On("ExistsBySerial", ctx, "INV-6").Return(true, nil)
		f.invoiceRepo.On("ExistsBySerial", ctx, "INV-6-007").Return(false, nil)
		f.invoiceRepo.On("Save", ctx, mock.AnythingOfType("*ledger.Invoice")).Return(nil)
		f.journalRepo.On("Save", ctx, mock.AnythingOfType("*ledger.Journal")).Return(nil)
		f.customerRepo.On("ApplyDebtDelta", ctx, customer.ID, mock.Anything).Return(nil)

		result, err := f.service.Create(ctx, CreateInvoiceRequest{
			Serial:     "INV-6",
			CustomerID: customer.ID,
			Collection: decimal.NewFromInt(10),
		})

		require.NoError(t, err)
		assert.Equal(t, "INV-6-007", result.Serial)
	})

	t.Run("gives up with a conflict when retries are exhausted", func(t *testing.T) {
		f := newInvoiceServiceFixture()
		customer := makeCustomer(t)
		f.service.serialSuffix = func() int { return 7 }

		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.invoiceRepo.On("ExistsBySerial", ctx, mock.AnythingOfType("string")).Return(true, nil)

		_, err := f.service.Create(ctx, CreateInvoiceRequest{
			Serial:     "INV-7",
			CustomerID: customer.ID,
		})

		assertServiceCode(t, err, "CONFLICT")
		f.invoiceRepo.AssertNumberOfCalls(t, "ExistsBySerial", serialMaxRetries+1)
		f.invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("maps a duplicate key on save to a conflict", func(t *testing.T) {
		f := newInvoiceServiceFixture()
		customer := makeCustomer(t)

		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.invoiceRepo.On("ExistsBySerial", ctx, "INV-8").Return(false, nil)
		f.invoiceRepo.On("Save", ctx, mock.AnythingOfType("*ledger.Invoice")).Return(shared.ErrAlreadyExists)

		_, err := f.service.Create(ctx, CreateInvoiceRequest{
			Serial:     "INV-8",
			CustomerID: customer.ID,
		})

		assertServiceCode(t, err, "CONFLICT")
	})

	t.Run("validates the request before touching repositories", func(t *testing.T) {
		f := newInvoiceServiceFixture()

		cases := []CreateInvoiceRequest{
			{Serial: "  ", CustomerID: uuid.New()},
			{Serial: "INV-9"},
			{Serial: "INV-9", CustomerID: uuid.New(), Collection: decimal.NewFromInt(-1)},
			{Serial: "INV-9", CustomerID: uuid.New(), Items: []CreateInvoiceItemInput{{ProductID: uuid.New(), Quantity: 0}}},
		}
		for _, req := range cases {
			_, err := f.service.Create(ctx, req)
			assertServiceCode(t, err, "VALIDATION_ERROR")
		}
		f.productRepo.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
	})
}

func assertServiceCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}
