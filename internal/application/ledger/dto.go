package ledger

import (
	"time"

	"github.com/agristore/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest carries the input for invoice creation.
// Serial is advisory: on collision it is retried with a random suffix.
type CreateInvoiceRequest struct {
	Serial        string
	Date          *time.Time
	CustomerID    uuid.UUID
	PrincipalID   uuid.UUID
	PrincipalName string
	Items         []CreateInvoiceItemInput
	Collection    decimal.Decimal
}

// CreateInvoiceItemInput is one requested invoice line.
type CreateInvoiceItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateInvoiceResult is the outcome of a committed invoice creation.
type CreateInvoiceResult struct {
	InvoiceID  uuid.UUID       `json:"invoice_id"`
	Serial     string          `json:"serial"`
	Total      decimal.Decimal `json:"total"`
	Balance    decimal.Decimal `json:"balance"`
	Collection decimal.Decimal `json:"collection"`
	ItemCount  int             `json:"item_count"`
}

// JournalResponse is the journal row projection returned by amendments.
type JournalResponse struct {
	ID          uuid.UUID       `json:"id"`
	Date        time.Time       `json:"date"`
	InvoiceID   uuid.UUID       `json:"invoice_id"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	PrincipalID uuid.UUID       `json:"principal_id"`
	Total       decimal.Decimal `json:"total"`
	Collection  decimal.Decimal `json:"collection"`
	Balance     decimal.Decimal `json:"balance"`
}

// ToJournalResponse maps a domain journal to its response projection.
func ToJournalResponse(j *ledger.Journal) JournalResponse {
	return JournalResponse{
		ID:          j.ID,
		Date:        j.Date,
		InvoiceID:   j.InvoiceID,
		CustomerID:  j.CustomerID,
		PrincipalID: j.PrincipalID,
		Total:       j.Total,
		Collection:  j.Collection,
		Balance:     j.Balance,
	}
}

// PrincipalRef is the resolved-principal projection the core stores.
// Authentication is an external collaborator; only the id and the
// denormalized display name are recorded.
type PrincipalRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name,omitempty"`
}

// CustomerRef is the customer projection embedded in detail views.
type CustomerRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// JournalItemDetail is one mirrored line in the journal detail view.
type JournalItemDetail struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Capacity    string          `json:"capacity"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
}

// InvoiceDetail is the invoice projection embedded in the journal detail.
type InvoiceDetail struct {
	ID         uuid.UUID           `json:"id"`
	Serial     string              `json:"serial"`
	Date       time.Time           `json:"date"`
	Total      decimal.Decimal     `json:"total"`
	Collection decimal.Decimal     `json:"collection"`
	Balance    decimal.Decimal     `json:"balance"`
	Customer   CustomerRef         `json:"customer"`
	Principal  PrincipalRef        `json:"principal"`
	Items      []JournalItemDetail `json:"items"`
}

// JournalDetail is the full journal projection: mirror row, linked invoice
// with denormalized items, customer and principal.
type JournalDetail struct {
	ID         uuid.UUID       `json:"id"`
	Date       time.Time       `json:"date"`
	Total      decimal.Decimal `json:"total"`
	Collection decimal.Decimal `json:"collection"`
	Balance    decimal.Decimal `json:"balance"`
	Customer   CustomerRef     `json:"customer"`
	Principal  PrincipalRef    `json:"principal"`
	Invoice    *InvoiceDetail  `json:"invoice"`
}

// CustomerInvoiceSummary is one invoice row in the customer summary.
type CustomerInvoiceSummary struct {
	ID         uuid.UUID       `json:"id"`
	Serial     string          `json:"serial"`
	Date       time.Time       `json:"date"`
	Total      decimal.Decimal `json:"total"`
	Collection decimal.Decimal `json:"collection"`
	Balance    decimal.Decimal `json:"balance"`
	Principal  PrincipalRef    `json:"principal"`
}

// SummaryTotals aggregates the customer's invoices within the range.
type SummaryTotals struct {
	InvoiceCount     int64           `json:"invoice_count"`
	SalesTotal       decimal.Decimal `json:"sales_total"`
	CollectionsTotal decimal.Decimal `json:"collections_total"`
	BalancesTotal    decimal.Decimal `json:"balances_total"`
}

// DailyPoint is one day in the collection/balance series.
type DailyPoint struct {
	Date       string          `json:"date"`
	Collection decimal.Decimal `json:"collection"`
	Balance    decimal.Decimal `json:"balance"`
}

// CustomerSummary is the per-customer ledger view: recent invoices,
// aggregated totals and the daily collection/balance series.
type CustomerSummary struct {
	Customer CustomerSummaryRef       `json:"customer"`
	Invoices []CustomerInvoiceSummary `json:"invoices"`
	Totals   SummaryTotals            `json:"totals"`
	Series   []DailyPoint             `json:"series"`
}

// CustomerSummaryRef is the customer head of the summary view.
type CustomerSummaryRef struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email,omitempty"`
	Phone     string          `json:"phone,omitempty"`
	TotalDebt decimal.Decimal `json:"total_debt"`
}
