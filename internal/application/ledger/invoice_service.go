package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/agristore/backend/internal/domain/catalog"
	"github.com/agristore/backend/internal/domain/ledger"
	"github.com/agristore/backend/internal/domain/partner"
	"github.com/agristore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// serialMaxRetries bounds the suffix retry loop for colliding serials.
const serialMaxRetries = 3

// InvoiceService builds and commits invoices. It composes the stock ledger
// and the debt accumulator and drives the journal replicator inside one
// transaction: invoice, items, stock decrements, debt delta and the journal
// mirror are all-or-nothing.
type InvoiceService struct {
	productRepo  catalog.ProductRepository
	scope        TransactionScope
	logger       *zap.Logger
	serialSuffix func() int
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(productRepo catalog.ProductRepository, scope TransactionScope, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		productRepo:  productRepo,
		scope:        scope,
		logger:       logger,
		serialSuffix: func() int { return rand.IntN(1000) },
	}
}

// Create validates the request, snapshots product prices, resolves a unique
// serial and commits the invoice with its journal mirror.
//
// Failures before the transaction opens (validation, missing product,
// insufficient stock) have zero side effects. Any failure inside the
// transaction rolls everything back.
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*CreateInvoiceResult, error) {
	serial := strings.TrimSpace(req.Serial)
	if serial == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invoice serial cannot be empty")
	}
	if req.CustomerID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Customer ID is required")
	}
	if req.Collection.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Collection cannot be negative")
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Item quantity must be positive")
		}
	}

	lines, err := s.resolveLines(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	invoice, err := ledger.NewInvoice(serial, date, req.CustomerID, req.PrincipalID, lines, req.Collection)
	if err != nil {
		return nil, err
	}
	invoice.PrincipalName = strings.TrimSpace(req.PrincipalName)

	var customer *partner.Customer
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		customer, err = repos.Customers().FindByID(ctx, req.CustomerID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("NOT_FOUND", "Customer not found")
			}
			return err
		}

		finalSerial, err := s.resolveSerial(ctx, repos, serial)
		if err != nil {
			return err
		}
		invoice.Serial = finalSerial

		if err := repos.Invoices().Save(ctx, invoice); err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				return shared.NewDomainError("CONFLICT", "Invoice serial conflict persists after retries")
			}
			return err
		}

		for _, item := range invoice.Items {
			if err := repos.Products().DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if !invoice.Balance.IsZero() {
			if err := repos.Customers().ApplyDebtDelta(ctx, invoice.CustomerID, invoice.Balance); err != nil {
				return err
			}
			customer.ApplyDebtDelta(invoice.Balance)
		}

		return repos.Journals().Save(ctx, ledger.ReplicateInvoice(invoice))
	})
	if err != nil {
		return nil, err
	}

	requestLogger(ctx, s.logger).Info("invoice created",
		zap.String("serial", invoice.Serial),
		zap.String("total", invoice.Total.String()),
		zap.String("balance", invoice.Balance.String()),
		zap.String("customer_debt", customer.TotalDebt.String()),
		zap.Int("item_count", invoice.ItemCount()),
	)

	return &CreateInvoiceResult{
		InvoiceID:  invoice.ID,
		Serial:     invoice.Serial,
		Total:      invoice.Total,
		Balance:    invoice.Balance,
		Collection: invoice.Collection,
		ItemCount:  invoice.ItemCount(),
	}, nil
}

// resolveLines fetches all referenced products in one batch read and checks
// stock for every requested line before any write happens.
func (s *InvoiceService) resolveLines(ctx context.Context, items []CreateInvoiceItemInput) ([]ledger.Line, error) {
	if len(items) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	lines := make([]ledger.Line, 0, len(items))
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Product %s not found", item.ProductID))
		}
		// Each line draws down the same in-memory copy, so duplicate lines
		// for one product are checked against stock in aggregate. The
		// guarded UPDATE at commit time remains the authority.
		snapshot := *product
		if err := product.Decrement(item.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, ledger.Line{Product: snapshot, Quantity: item.Quantity})
	}
	return lines, nil
}

// resolveSerial returns the requested serial if free, otherwise retries with
// a random 3-digit suffix up to serialMaxRetries times before giving up with
// a CONFLICT. The existence checks run inside the creation transaction; the
// unique index on serial remains the authority for concurrent submissions.
func (s *InvoiceService) resolveSerial(ctx context.Context, repos TransactionalRepositories, serial string) (string, error) {
	candidate := serial
	for attempt := 0; ; attempt++ {
		exists, err := repos.Invoices().ExistsBySerial(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		if attempt == serialMaxRetries {
			return "", shared.NewDomainError("CONFLICT", fmt.Sprintf("Serial %q already exists and retries are exhausted", serial))
		}
		candidate = fmt.Sprintf("%s-%03d", serial, s.serialSuffix())
		requestLogger(ctx, s.logger).Debug("invoice serial collision, retrying with suffix",
			zap.String("serial", serial),
			zap.String("candidate", candidate),
			zap.Int("attempt", attempt+1),
		)
	}
}
