package ledger

import (
	"context"

	"github.com/agristore/backend/internal/domain/catalog"
	"github.com/agristore/backend/internal/domain/ledger"
	"github.com/agristore/backend/internal/domain/partner"
)

// TransactionScope provides transactional access to the ledger repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically. Invoice creation and collection amendment each run as
// exactly one such transaction.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories participating
// in a ledger transaction. All repositories returned share the same
// underlying database transaction.
type TransactionalRepositories interface {
	// Products returns the stock ledger repository scoped to the transaction
	Products() catalog.ProductRepository
	// Customers returns the debt accumulator repository scoped to the transaction
	Customers() partner.CustomerRepository
	// Invoices returns the invoice repository scoped to the transaction
	Invoices() ledger.InvoiceRepository
	// Journals returns the journal repository scoped to the transaction
	Journals() ledger.JournalRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for unit tests with mock repositories.
type NoOpTransactionScope struct {
	productRepo  catalog.ProductRepository
	customerRepo partner.CustomerRepository
	invoiceRepo  ledger.InvoiceRepository
	journalRepo  ledger.JournalRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	customerRepo partner.CustomerRepository,
	invoiceRepo ledger.InvoiceRepository,
	journalRepo ledger.JournalRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo:  productRepo,
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		journalRepo:  journalRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Products returns the product repository.
func (s *NoOpTransactionScope) Products() catalog.ProductRepository {
	return s.productRepo
}

// Customers returns the customer repository.
func (s *NoOpTransactionScope) Customers() partner.CustomerRepository {
	return s.customerRepo
}

// Invoices returns the invoice repository.
func (s *NoOpTransactionScope) Invoices() ledger.InvoiceRepository {
	return s.invoiceRepo
}

// Journals returns the journal repository.
func (s *NoOpTransactionScope) Journals() ledger.JournalRepository {
	return s.journalRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
