package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ledgerapp "github.com/shopbooks/backend/internal/application/ledger"
	"github.com/shopbooks/backend/internal/domain/ledger"
)

// BankHandler handles bank ledger endpoints
type BankHandler struct {
	BaseHandler
	bankService *ledgerapp.BankLedgerService
}

// NewBankHandler creates a new BankHandler
func NewBankHandler(bankService *ledgerapp.BankLedgerService) *BankHandler {
	return &BankHandler{bankService: bankService}
}

// CreateCredit records money entering the bank account
func (h *BankHandler) CreateCredit(c *gin.Context) {
	h.create(c, h.bankService.CreateCredit)
}

// CreateDebit records money leaving the bank account
func (h *BankHandler) CreateDebit(c *gin.Context) {
	h.create(c, h.bankService.CreateDebit)
}

func (h *BankHandler) create(
	c *gin.Context,
	post func(context.Context, uuid.UUID, ledgerapp.CreateBankTransactionInput) (*ledger.BankTransaction, error),
) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	var input ledgerapp.CreateBankTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tx, err := post(c.Request.Context(), tenantID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tx)
}

// Get retrieves a single bank transaction
func (h *BankHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	tx, err := h.bankService.GetTransaction(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tx)
}

// List retrieves a paginated bank transaction list
func (h *BankHandler) List(c *gin.Context) {
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
	if v := c.Query("type"); v != "" {
		filter.Filters["type"] = v
	}
	if v := c.Query("category"); v != "" {
		filter.Filters["category"] = v
	}
	if v := c.Query("from"); v != "" {
		filter.Filters["from"] = v
	}
	if v := c.Query("to"); v != "" {
		filter.Filters["to"] = v
	}

	page, err := h.bankService.ListTransactions(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
