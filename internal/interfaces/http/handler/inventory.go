package handler

import (
	"github.com/gin-gonic/gin"

	inventoryapp "github.com/shopbooks/backend/internal/application/inventory"
)

// InventoryHandler handles stock endpoints
type InventoryHandler struct {
	BaseHandler
	stockService *inventoryapp.StockService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(stockService *inventoryapp.StockService) *InventoryHandler {
	return &InventoryHandler{stockService: stockService}
}

// Adjust posts a manual stock adjustment or opening balance
func (h *InventoryHandler) Adjust(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	var input inventoryapp.AdjustStockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.stockService.Adjust(c.Request.Context(), tenantID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// GetSummary retrieves the stock summary for one product
func (h *InventoryHandler) GetSummary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	productID, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	summary, err := h.stockService.GetSummary(c.Request.Context(), tenantID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// ListSummaries retrieves a paginated stock summary list
func (h *InventoryHandler) ListSummaries(c *gin.Context) {
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
	if v := c.Query("negative"); v != "" {
		filter.Filters["negative"] = v == "true"
	}
	if v := c.Query("has_stock"); v != "" {
		filter.Filters["has_stock"] = v == "true"
	}

	page, err := h.stockService.ListSummaries(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListEntries retrieves the stock movement history for one product
func (h *InventoryHandler) ListEntries(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	productID, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if v := c.Query("type"); v != "" {
		filter.Filters["type"] = v
	}
	if v := c.Query("from"); v != "" {
		filter.Filters["from"] = v
	}
	if v := c.Query("to"); v != "" {
		filter.Filters["to"] = v
	}

	entries, err := h.stockService.ListEntries(c.Request.Context(), tenantID, productID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}
