package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	ledgerapp "github.com/shopbooks/backend/internal/application/ledger"
)

// TrialBalanceHandler handles trial balance endpoints
type TrialBalanceHandler struct {
	BaseHandler
	trialBalanceService *ledgerapp.TrialBalanceService
}

// NewTrialBalanceHandler creates a new TrialBalanceHandler
func NewTrialBalanceHandler(trialBalanceService *ledgerapp.TrialBalanceService) *TrialBalanceHandler {
	return &TrialBalanceHandler{trialBalanceService: trialBalanceService}
}

// Get builds the trial balance as of a date, defaulting to now
func (h *TrialBalanceHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	asOf := time.Now()
	if v := c.Query("as_of"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			h.BadRequest(c, "Invalid as_of date, expected YYYY-MM-DD")
			return
		}
		// Include the whole day
		asOf = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	tb, err := h.trialBalanceService.Build(c.Request.Context(), tenantID, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tb)
}
