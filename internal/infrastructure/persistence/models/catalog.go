package models

import (
	"encoding/json"

	"github.com/agristore/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	BaseModel
	Name       string          `gorm:"type:varchar(200);not null;index"`
	Capacity   string          `gorm:"type:varchar(100)"`
	Price      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	StockQty   int             `gorm:"not null;default:0"`
	Notes      string          `gorm:"type:text"`
	Properties string          `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	properties := map[string]string{}
	if m.Properties != "" {
		// Unknown or malformed JSON leaves the bag empty rather than failing
		// the read; the core never interprets its contents.
		_ = json.Unmarshal([]byte(m.Properties), &properties)
	}
	return &catalog.Product{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Capacity:   m.Capacity,
		Price:      m.Price,
		StockQty:   m.StockQty,
		Notes:      m.Notes,
		Properties: properties,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.Capacity = p.Capacity
	m.Price = p.Price
	m.StockQty = p.StockQty
	m.Notes = p.Notes
	if len(p.Properties) > 0 {
		if raw, err := json.Marshal(p.Properties); err == nil {
			m.Properties = string(raw)
		}
	} else {
		m.Properties = "{}"
	}
}
