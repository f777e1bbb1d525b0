package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ledgerapp "github.com/shopbooks/backend/internal/application/ledger"
)

// AuditHandler handles ledger reconciliation endpoints
type AuditHandler struct {
	BaseHandler
	auditService *ledgerapp.AuditService
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(auditService *ledgerapp.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// ReconcileBank replays bank transaction history against the stored balance
func (h *AuditHandler) ReconcileBank(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	result, err := h.auditService.ReconcileBank(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ReconcileStock replays stock entry history against stored summaries.
// With a product_id query parameter only that product is checked.
func (h *AuditHandler) ReconcileStock(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	if v := c.Query("product_id"); v != "" {
		productID, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, "Invalid product ID format")
			return
		}
		result, err := h.auditService.ReconcileStock(c.Request.Context(), tenantID, productID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, result)
		return
	}

	results, err := h.auditService.ReconcileAllStock(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}
