package ledger

import (
	"context"
	"sort"

	"github.com/agristore/backend/internal/domain/ledger"
	"github.com/agristore/backend/internal/domain/partner"
	"github.com/agristore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// summaryInvoiceLimit caps the invoice list in the customer summary view.
const summaryInvoiceLimit = 100

// CustomerSummaryService serves the per-customer ledger view: recent
// invoices, aggregated totals and the daily collection/balance series.
type CustomerSummaryService struct {
	customerRepo partner.CustomerRepository
	invoiceRepo  ledger.InvoiceRepository
}

// NewCustomerSummaryService creates a new CustomerSummaryService
func NewCustomerSummaryService(customerRepo partner.CustomerRepository, invoiceRepo ledger.InvoiceRepository) *CustomerSummaryService {
	return &CustomerSummaryService{
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// GetCustomerSummary returns the customer's invoices (date desc, capped),
// range aggregates and a per-day series of collections and balances.
func (s *CustomerSummaryService) GetCustomerSummary(ctx context.Context, customerID uuid.UUID, dateRange shared.DateRange) (*CustomerSummary, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.FindByCustomer(ctx, customerID, dateRange, summaryInvoiceLimit)
	if err != nil {
		return nil, err
	}

	agg, err := s.invoiceRepo.AggregateByCustomer(ctx, customerID, dateRange)
	if err != nil {
		return nil, err
	}

	summary := &CustomerSummary{
		Customer: CustomerSummaryRef{
			ID:        customer.ID,
			Name:      customer.Name,
			Email:     customer.Email,
			Phone:     customer.Phone,
			TotalDebt: customer.TotalDebt,
		},
		Invoices: make([]CustomerInvoiceSummary, 0, len(invoices)),
		Totals: SummaryTotals{
			InvoiceCount:     agg.InvoiceCount,
			SalesTotal:       agg.SalesTotal,
			CollectionsTotal: agg.CollectionsTotal,
			BalancesTotal:    agg.BalancesTotal,
		},
		Series: buildDailySeries(invoices),
	}

	for _, inv := range invoices {
		summary.Invoices = append(summary.Invoices, CustomerInvoiceSummary{
			ID:         inv.ID,
			Serial:     inv.Serial,
			Date:       inv.Date,
			Total:      inv.Total,
			Collection: inv.Collection,
			Balance:    inv.Balance,
			Principal:  PrincipalRef{ID: inv.PrincipalID, Name: inv.PrincipalName},
		})
	}

	return summary, nil
}

// buildDailySeries buckets collections and balances per calendar day,
// sorted ascending by date.
func buildDailySeries(invoices []ledger.Invoice) []DailyPoint {
	buckets := make(map[string]*DailyPoint)
	for _, inv := range invoices {
		key := inv.Date.Format("2006-01-02")
		point, ok := buckets[key]
		if !ok {
			point = &DailyPoint{Date: key, Collection: decimal.Zero, Balance: decimal.Zero}
			buckets[key] = point
		}
		point.Collection = point.Collection.Add(inv.Collection)
		point.Balance = point.Balance.Add(inv.Balance)
	}

	series := make([]DailyPoint, 0, len(buckets))
	for _, point := range buckets {
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series
}
