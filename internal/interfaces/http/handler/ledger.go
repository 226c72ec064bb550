package handler

import (
	"github.com/gin-gonic/gin"

	ledgerapp "github.com/motodesk/backend/internal/application/ledger"
	"github.com/motodesk/backend/internal/domain/shared/valueobject"
)

// LedgerHandler handles cash ledger API endpoints
type LedgerHandler struct {
	BaseHandler
	ledgerService *ledgerapp.Service
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *ledgerapp.Service) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// List returns the organization's transactions in chronological order
func (h *LedgerHandler) List(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.ledgerService.ListChronological(c.Request.Context(), orgID, getRole(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// AppendAdjustment appends a manual adjustment entry to the ledger
func (h *LedgerHandler) AppendAdjustment(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ledgerapp.AppendAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.ledgerService.AppendAdjustment(c.Request.Context(), orgID, getRole(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Balance returns the derived cash balance, optionally for one channel
func (h *LedgerHandler) Balance(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var channel *valueobject.PaymentChannel
	if raw := c.Query("channel"); raw != "" {
		ch := valueobject.PaymentChannel(raw)
		if !ch.IsValid() {
			h.BadRequest(c, "Invalid payment channel")
			return
		}
		channel = &ch
	}

	resp, err := h.ledgerService.Balance(c.Request.Context(), orgID, getRole(c), channel)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RegisterRoutes registers ledger routes
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ledger := rg.Group("/ledger")
	{
		ledger.GET("/transactions", h.List)
		ledger.POST("/adjustments", h.AppendAdjustment)
		ledger.GET("/balance", h.Balance)
	}
}
