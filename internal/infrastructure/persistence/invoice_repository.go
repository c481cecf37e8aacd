package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/agristore/backend/internal/domain/ledger"
	"github.com/agristore/backend/internal/domain/shared"
	"github.com/agristore/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice with its items, ordered by line number
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Invoice, error) {
	var model models.InvoiceModel
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsBySerial reports whether an invoice with the given serial exists
func (r *GormInvoiceRepository) ExistsBySerial(ctx context.Context, serial string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("serial = ?", serial).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save inserts the invoice with its items. The unique index on serial is the
// authority for concurrent submissions; a duplicate key violation surfaces
// as ALREADY_EXISTS.
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *ledger.Invoice) error {
	var model models.InvoiceModel
	model.FromDomain(invoice)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// UpdateAmounts writes collection/balance for an existing invoice row
func (r *GormInvoiceRepository) UpdateAmounts(ctx context.Context, id uuid.UUID, collection, balance decimal.Decimal) error {
	result := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"collection": collection,
			"balance":    balance,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByCustomer returns the customer's invoices ordered by date desc,
// optionally bounded by a date range, capped at limit. Items are not loaded.
func (r *GormInvoiceRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, dateRange shared.DateRange, limit int) ([]ledger.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := applyDateRange(
		r.db.WithContext(ctx).Where("customer_id = ?", customerID),
		dateRange,
	).Order("date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]ledger.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// AggregateByCustomer sums total/collection/balance and counts the
// customer's invoices within the date range.
func (r *GormInvoiceRepository) AggregateByCustomer(ctx context.Context, customerID uuid.UUID, dateRange shared.DateRange) (ledger.InvoiceAggregate, error) {
	var row struct {
		InvoiceCount     int64
		SalesTotal       decimal.Decimal
		CollectionsTotal decimal.Decimal
		BalancesTotal    decimal.Decimal
	}
	query := applyDateRange(
		r.db.WithContext(ctx).Model(&models.InvoiceModel{}).Where("customer_id = ?", customerID),
		dateRange,
	)
	err := query.Select(
		"COUNT(*) AS invoice_count, " +
			"COALESCE(SUM(total), 0) AS sales_total, " +
			"COALESCE(SUM(collection), 0) AS collections_total, " +
			"COALESCE(SUM(balance), 0) AS balances_total",
	).Scan(&row).Error
	if err != nil {
		return ledger.InvoiceAggregate{}, err
	}
	return ledger.InvoiceAggregate{
		InvoiceCount:     row.InvoiceCount,
		SalesTotal:       row.SalesTotal,
		CollectionsTotal: row.CollectionsTotal,
		BalancesTotal:    row.BalancesTotal,
	}, nil
}

// applyDateRange narrows a query to the given invoice date bounds
func applyDateRange(query *gorm.DB, dateRange shared.DateRange) *gorm.DB {
	if dateRange.IsZero() {
		return query
	}
	if dateRange.From != nil {
		query = query.Where("date >= ?", *dateRange.From)
	}
	if dateRange.To != nil {
		query = query.Where("date <= ?", *dateRange.To)
	}
	return query
}

var _ ledger.InvoiceRepository = (*GormInvoiceRepository)(nil)
