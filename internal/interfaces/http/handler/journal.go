package handler

import (
	appledger "github.com/agristore/backend/internal/application/ledger"
	"github.com/agristore/backend/internal/interfaces/http/dto"
	"github.com/agristore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JournalHandler handles journal detail and amendment requests
type JournalHandler struct {
	BaseHandler
	journalService *appledger.JournalService
}

// NewJournalHandler creates a new JournalHandler
func NewJournalHandler(journalService *appledger.JournalService) *JournalHandler {
	return &JournalHandler{journalService: journalService}
}

// RegisterRoutes registers journal routes on the API group
func (h *JournalHandler) RegisterRoutes(rg *gin.RouterGroup) {
	journals := rg.Group("/journals")
	{
		journals.GET("/:id", h.GetByID)
		journals.PATCH("/:id", h.AmendCollection)
	}
}

// AmendCollectionRequest represents the amendment request body.
// Collection is a pointer so an explicit zero is distinguishable from an
// absent field.
type AmendCollectionRequest struct {
	Collection *float64 `json:"collection" binding:"required,gte=0"`
}

// AmendCollection handles PATCH /journals/:id. The path id may be a journal
// id or the mirrored invoice's id.
func (h *JournalHandler) AmendCollection(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid journal ID format")
		return
	}
	id, err := uuid.Parse(idReq.ID)
	if err != nil {
		h.BadRequest(c, "Invalid journal ID format")
		return
	}

	var req AmendCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	journal, err := h.journalService.AmendCollection(c.Request.Context(), id, decimal.NewFromFloat(*req.Collection))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, journal)
}

// GetByID handles GET /journals/:id
func (h *JournalHandler) GetByID(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid journal ID format")
		return
	}
	id, err := uuid.Parse(idReq.ID)
	if err != nil {
		h.BadRequest(c, "Invalid journal ID format")
		return
	}

	detail, err := h.journalService.GetJournalDetail(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, detail)
}
