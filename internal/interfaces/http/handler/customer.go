package handler

import (
	"time"

	appledger "github.com/agristore/backend/internal/application/ledger"
	"github.com/agristore/backend/internal/domain/shared"
	"github.com/agristore/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerHandler handles customer ledger view requests
type CustomerHandler struct {
	BaseHandler
	summaryService *appledger.CustomerSummaryService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(summaryService *appledger.CustomerSummaryService) *CustomerHandler {
	return &CustomerHandler{summaryService: summaryService}
}

// RegisterRoutes registers customer routes on the API group
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.GET("/:id/summary", h.GetSummary)
	}
}

// GetSummary handles GET /customers/:id/summary. Optional from/to query
// parameters bound the invoice date range (date-only or RFC 3339).
func (h *CustomerHandler) GetSummary(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}
	id, err := uuid.Parse(idReq.ID)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	dateRange, err := parseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.summaryService.GetCustomerSummary(c.Request.Context(), id, dateRange)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// parseDateRange parses optional from/to bounds. A date-only "to" bound is
// widened to the end of that day so the range is inclusive.
func parseDateRange(from, to string) (shared.DateRange, error) {
	var dateRange shared.DateRange

	if from != "" {
		t, _, err := parseDate(from)
		if err != nil {
			return dateRange, shared.NewDomainError("VALIDATION_ERROR", "Invalid 'from' date format")
		}
		dateRange.From = &t
	}
	if to != "" {
		t, dateOnly, err := parseDate(to)
		if err != nil {
			return dateRange, shared.NewDomainError("VALIDATION_ERROR", "Invalid 'to' date format")
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		dateRange.To = &t
	}
	return dateRange, nil
}

// parseDate accepts 2006-01-02 or RFC 3339 timestamps. The second return
// value reports whether the date-only form matched.
func parseDate(value string) (time.Time, bool, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	return t, false, err
}
