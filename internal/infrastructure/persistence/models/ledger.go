package models

import (
	"time"

	"github.com/agristore/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate.
type InvoiceModel struct {
	BaseModel
	Serial        string             `gorm:"type:varchar(100);not null;uniqueIndex:idx_invoices_serial"`
	Date          time.Time          `gorm:"not null;index"`
	CustomerID    uuid.UUID          `gorm:"type:uuid;not null;index"`
	PrincipalID   uuid.UUID          `gorm:"type:uuid;index"`
	PrincipalName string             `gorm:"type:varchar(200)"`
	Total         decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	Collection    decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	Balance       decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	Items         []InvoiceItemModel `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoiceItemModel is the persistence model for one invoice line.
type InvoiceItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Capacity    string          `gorm:"type:varchar(100)"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Quantity    int             `gorm:"not null"`
	Total       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LineNo      int             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// ToDomain converts the persistence model to a domain Invoice aggregate.
func (m *InvoiceModel) ToDomain() *ledger.Invoice {
	inv := &ledger.Invoice{
		BaseEntity:    m.BaseModel.ToDomain(),
		Serial:        m.Serial,
		Date:          m.Date,
		CustomerID:    m.CustomerID,
		PrincipalID:   m.PrincipalID,
		PrincipalName: m.PrincipalName,
		Total:         m.Total,
		Collection:    m.Collection,
		Balance:       m.Balance,
		Items:         make([]ledger.InvoiceItem, len(m.Items)),
	}
	for i, item := range m.Items {
		inv.Items[i] = ledger.InvoiceItem{
			ID:          item.ID,
			InvoiceID:   item.InvoiceID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Capacity:    item.Capacity,
			Price:       item.Price,
			Quantity:    item.Quantity,
			Total:       item.Total,
			LineNo:      item.LineNo,
		}
	}
	return inv
}

// FromDomain populates the persistence model from a domain Invoice aggregate.
func (m *InvoiceModel) FromDomain(inv *ledger.Invoice) {
	m.FromDomainBaseEntity(inv.BaseEntity)
	m.Serial = inv.Serial
	m.Date = inv.Date
	m.CustomerID = inv.CustomerID
	m.PrincipalID = inv.PrincipalID
	m.PrincipalName = inv.PrincipalName
	m.Total = inv.Total
	m.Collection = inv.Collection
	m.Balance = inv.Balance
	m.Items = make([]InvoiceItemModel, len(inv.Items))
	for i, item := range inv.Items {
		m.Items[i] = InvoiceItemModel{
			ID:          item.ID,
			InvoiceID:   item.InvoiceID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Capacity:    item.Capacity,
			Price:       item.Price,
			Quantity:    item.Quantity,
			Total:       item.Total,
			LineNo:      item.LineNo,
		}
	}
}

// JournalModel is the persistence model for the Journal mirror.
type JournalModel struct {
	BaseModel
	Date          time.Time          `gorm:"not null;index"`
	InvoiceID     uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_journals_invoice_id"`
	CustomerID    uuid.UUID          `gorm:"type:uuid;not null;index"`
	PrincipalID   uuid.UUID          `gorm:"type:uuid;index"`
	PrincipalName string             `gorm:"type:varchar(200)"`
	Total         decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	Collection    decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	Balance       decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	Items         []JournalItemModel `gorm:"foreignKey:JournalID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (JournalModel) TableName() string {
	return "journals"
}

// JournalItemModel is the persistence model for one mirrored journal line.
type JournalItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	JournalID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Capacity    string          `gorm:"type:varchar(100)"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Quantity    int             `gorm:"not null"`
	Total       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LineNo      int             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (JournalItemModel) TableName() string {
	return "journal_items"
}

// ToDomain converts the persistence model to a domain Journal mirror.
func (m *JournalModel) ToDomain() *ledger.Journal {
	j := &ledger.Journal{
		BaseEntity:    m.BaseModel.ToDomain(),
		Date:          m.Date,
		InvoiceID:     m.InvoiceID,
		CustomerID:    m.CustomerID,
		PrincipalID:   m.PrincipalID,
		PrincipalName: m.PrincipalName,
		Total:         m.Total,
		Collection:    m.Collection,
		Balance:       m.Balance,
		Items:         make([]ledger.JournalItem, len(m.Items)),
	}
	for i, item := range m.Items {
		j.Items[i] = ledger.JournalItem{
			ID:          item.ID,
			JournalID:   item.JournalID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Capacity:    item.Capacity,
			Price:       item.Price,
			Quantity:    item.Quantity,
			Total:       item.Total,
			LineNo:      item.LineNo,
		}
	}
	return j
}

// FromDomain populates the persistence model from a domain Journal mirror.
func (m *JournalModel) FromDomain(j *ledger.Journal) {
	m.FromDomainBaseEntity(j.BaseEntity)
	m.Date = j.Date
	m.InvoiceID = j.InvoiceID
	m.CustomerID = j.CustomerID
	m.PrincipalID = j.PrincipalID
	m.PrincipalName = j.PrincipalName
	m.Total = j.Total
	m.Collection = j.Collection
	m.Balance = j.Balance
	m.Items = make([]JournalItemModel, len(j.Items))
	for i, item := range j.Items {
		m.Items[i] = JournalItemModel{
			ID:          item.ID,
			JournalID:   item.JournalID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Capacity:    item.Capacity,
			Price:       item.Price,
			Quantity:    item.Quantity,
			Total:       item.Total,
			LineNo:      item.LineNo,
		}
	}
}
