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

// GormJournalRepository implements JournalRepository using GORM
type GormJournalRepository struct {
	db *gorm.DB
}

// NewGormJournalRepository creates a new GormJournalRepository
func NewGormJournalRepository(db *gorm.DB) *GormJournalRepository {
	return &GormJournalRepository{db: db}
}

// FindByID finds a journal with its items, ordered by line number
func (r *GormJournalRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Journal, error) {
	var model models.JournalModel
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

// FindByInvoiceID finds the journal mirroring the given invoice
func (r *GormJournalRepository) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*ledger.Journal, error) {
	var model models.JournalModel
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		First(&model, "invoice_id = ?", invoiceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save inserts the journal with its items. The unique index on invoice_id
// keeps the mirror one-to-one; a violation surfaces as ALREADY_EXISTS.
func (r *GormJournalRepository) Save(ctx context.Context, journal *ledger.Journal) error {
	var model models.JournalModel
	model.FromDomain(journal)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// UpdateAmounts writes collection/balance for an existing journal row
func (r *GormJournalRepository) UpdateAmounts(ctx context.Context, id uuid.UUID, collection, balance decimal.Decimal) error {
	result := r.db.WithContext(ctx).Model(&models.JournalModel{}).
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

var _ ledger.JournalRepository = (*GormJournalRepository)(nil)
