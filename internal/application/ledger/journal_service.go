package ledger

import (
	"context"
	"errors"

	"github.com/agristore/backend/internal/domain/ledger"
	"github.com/agristore/backend/internal/domain/partner"
	"github.com/agristore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// JournalService amends collections on committed invoice/journal pairs and
// serves the journal detail projection.
type JournalService struct {
	journalRepo  ledger.JournalRepository
	invoiceRepo  ledger.InvoiceRepository
	customerRepo partner.CustomerRepository
	scope        TransactionScope
	logger       *zap.Logger
}

// NewJournalService creates a new JournalService
func NewJournalService(
	journalRepo ledger.JournalRepository,
	invoiceRepo ledger.InvoiceRepository,
	customerRepo partner.CustomerRepository,
	scope TransactionScope,
	logger *zap.Logger,
) *JournalService {
	return &JournalService{
		journalRepo:  journalRepo,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		scope:        scope,
		logger:       logger,
	}
}

// AmendCollection sets a new collected amount on the journal identified by
// id (a journal id, or an invoice id as fallback) and applies only the
// resulting balance delta to the customer's debt accumulator. Journal,
// linked invoice and customer are updated in one transaction.
func (s *JournalService) AmendCollection(ctx context.Context, id uuid.UUID, newCollection decimal.Decimal) (*JournalResponse, error) {
	if newCollection.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Collection cannot be negative")
	}

	var response JournalResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		journal, err := findJournal(ctx, repos.Journals(), id)
		if err != nil {
			return err
		}

		delta, err := journal.AmendCollection(newCollection)
		if err != nil {
			return err
		}

		if err := repos.Journals().UpdateAmounts(ctx, journal.ID, journal.Collection, journal.Balance); err != nil {
			return err
		}

		// Keep the invoice mirrored to the journal row.
		if journal.InvoiceID != uuid.Nil {
			if err := repos.Invoices().UpdateAmounts(ctx, journal.InvoiceID, journal.Collection, journal.Balance); err != nil {
				return err
			}
		}

		if !delta.IsZero() {
			if err := repos.Customers().ApplyDebtDelta(ctx, journal.CustomerID, delta); err != nil {
				return err
			}
		}

		requestLogger(ctx, s.logger).Info("collection amended",
			zap.String("journal_id", journal.ID.String()),
			zap.String("collection", journal.Collection.String()),
			zap.String("balance", journal.Balance.String()),
			zap.String("debt_delta", delta.String()),
		)

		response = ToJournalResponse(journal)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetJournalDetail returns the journal with its linked invoice, mirrored
// items, customer and principal projections.
func (s *JournalService) GetJournalDetail(ctx context.Context, id uuid.UUID) (*JournalDetail, error) {
	journal, err := findJournal(ctx, s.journalRepo, id)
	if err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByID(ctx, journal.CustomerID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	detail := &JournalDetail{
		ID:         journal.ID,
		Date:       journal.Date,
		Total:      journal.Total,
		Collection: journal.Collection,
		Balance:    journal.Balance,
		Principal:  PrincipalRef{ID: journal.PrincipalID, Name: journal.PrincipalName},
	}
	if customer != nil {
		detail.Customer = CustomerRef{ID: customer.ID, Name: customer.Name}
	}

	if journal.InvoiceID != uuid.Nil {
		invoice, err := s.invoiceRepo.FindByID(ctx, journal.InvoiceID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if invoice != nil {
			detail.Invoice = buildInvoiceDetail(invoice, journal, detail.Customer)
		}
	}

	return detail, nil
}

// findJournal loads a journal by its own id, falling back to lookup by
// invoice id so amendment callers can pass either.
func findJournal(ctx context.Context, repo ledger.JournalRepository, id uuid.UUID) (*ledger.Journal, error) {
	journal, err := repo.FindByID(ctx, id)
	if err == nil {
		return journal, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	journal, err = repo.FindByInvoiceID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Journal entry not found")
		}
		return nil, err
	}
	return journal, nil
}

// buildInvoiceDetail projects the invoice using the journal's denormalized
// item snapshots, so the view survives later catalog edits.
func buildInvoiceDetail(invoice *ledger.Invoice, journal *ledger.Journal, customer CustomerRef) *InvoiceDetail {
	detail := &InvoiceDetail{
		ID:         invoice.ID,
		Serial:     invoice.Serial,
		Date:       invoice.Date,
		Total:      invoice.Total,
		Collection: invoice.Collection,
		Balance:    invoice.Balance,
		Customer:   customer,
		Principal:  PrincipalRef{ID: invoice.PrincipalID, Name: invoice.PrincipalName},
		Items:      make([]JournalItemDetail, 0, len(journal.Items)),
	}
	for _, it := range journal.Items {
		detail.Items = append(detail.Items, JournalItemDetail{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Capacity:    it.Capacity,
			Price:       it.Price,
			Quantity:    it.Quantity,
			Total:       it.Total,
		})
	}
	return detail
}
