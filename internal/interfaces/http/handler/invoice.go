package handler

import (
	"time"

	appledger "github.com/agristore/backend/internal/application/ledger"
	"github.com/agristore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceHandler handles invoice creation requests
type InvoiceHandler struct {
	BaseHandler
	invoiceService *appledger.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *appledger.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// RegisterRoutes registers invoice routes on the API group
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.Create)
	}
}

// CreateInvoiceRequest represents the invoice creation request body.
// Items may be empty for a collection-only invoice.
type CreateInvoiceRequest struct {
	Serial     string                     `json:"serial" binding:"required"`
	Date       *time.Time                 `json:"date"`
	CustomerID string                     `json:"customer_id" binding:"required,uuid"`
	Items      []CreateInvoiceItemRequest `json:"items" binding:"omitempty,dive"`
	Collection float64                    `json:"collection" binding:"omitempty,gte=0"`
}

// CreateInvoiceItemRequest represents one requested invoice line
type CreateInvoiceItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// Create handles POST /invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	appReq := appledger.CreateInvoiceRequest{
		Serial:        req.Serial,
		Date:          req.Date,
		CustomerID:    customerID,
		PrincipalID:   middleware.GetPrincipalID(c),
		PrincipalName: middleware.GetPrincipalName(c),
		Collection:    decimal.NewFromFloat(req.Collection),
	}
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product ID format")
			return
		}
		appReq.Items = append(appReq.Items, appledger.CreateInvoiceItemInput{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	result, err := h.invoiceService.Create(c.Request.Context(), appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}
