package handler

import (
	"github.com/gin-gonic/gin"

	billingapp "github.com/shopbooks/backend/internal/application/billing"
)

// TenantHandler handles tenant provisioning and lifecycle endpoints
type TenantHandler struct {
	BaseHandler
	tenantService *billingapp.TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenantService *billingapp.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// Provision creates a tenant with its owner user and system accounts.
// This is the public signup endpoint.
func (h *TenantHandler) Provision(c *gin.Context) {
	var input billingapp.ProvisionTenantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tenant, err := h.tenantService.Provision(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tenant)
}

// Get retrieves the authenticated user's tenant
func (h *TenantHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	tenant, err := h.tenantService.Get(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}

// Suspend blocks all write operations for the authenticated tenant
func (h *TenantHandler) Suspend(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	tenant, err := h.tenantService.Suspend(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}

// Reactivate lifts a tenant suspension
func (h *TenantHandler) Reactivate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	tenant, err := h.tenantService.Reactivate(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}
