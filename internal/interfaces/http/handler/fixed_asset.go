package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	assetapp "github.com/shopbooks/backend/internal/application/asset"
)

// FixedAssetHandler handles fixed asset endpoints
type FixedAssetHandler struct {
	BaseHandler
	assetService *assetapp.FixedAssetService
}

// NewFixedAssetHandler creates a new FixedAssetHandler
func NewFixedAssetHandler(assetService *assetapp.FixedAssetService) *FixedAssetHandler {
	return &FixedAssetHandler{assetService: assetService}
}

// DepreciateRequest carries a depreciation run request
type DepreciateRequest struct {
	Months int `json:"months" binding:"required,min=1,max=600"`
}

// SellAssetRequest carries an asset sale request
type SellAssetRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// Create registers a fixed asset purchase
func (h *FixedAssetHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	var input assetapp.CreateFixedAssetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	fixedAsset, err := h.assetService.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, fixedAsset)
}

// Get retrieves a fixed asset by ID
func (h *FixedAssetHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid asset ID format")
		return
	}

	fixedAsset, err := h.assetService.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, fixedAsset)
}

// List retrieves a paginated fixed asset list
func (h *FixedAssetHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if v := c.Query("status"); v != "" {
		filter.Filters["status"] = v
	}

	page, err := h.assetService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Depreciate applies straight-line depreciation to one asset
func (h *FixedAssetHandler) Depreciate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid asset ID format")
		return
	}

	var req DepreciateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	fixedAsset, err := h.assetService.ApplyDepreciation(c.Request.Context(), tenantID, id, req.Months)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, fixedAsset)
}

// DepreciateAll applies depreciation to every active asset of the tenant
func (h *FixedAssetHandler) DepreciateAll(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	var req DepreciateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	updated, err := h.assetService.DepreciateAll(c.Request.Context(), tenantID, req.Months)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"updated": updated})
}

// Dispose writes off an asset's remaining value
func (h *FixedAssetHandler) Dispose(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid asset ID format")
		return
	}

	fixedAsset, err := h.assetService.Dispose(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, fixedAsset)
}

// Sell records an asset sale with bank credit for the proceeds
func (h *FixedAssetHandler) Sell(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid asset ID format")
		return
	}

	var req SellAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	fixedAsset, err := h.assetService.Sell(c.Request.Context(), tenantID, id, req.Amount)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, fixedAsset)
}
