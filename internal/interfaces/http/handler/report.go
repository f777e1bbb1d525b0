package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reportapp "github.com/shopbooks/backend/internal/application/report"
	"github.com/shopbooks/backend/internal/interfaces/http/dto"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles financial report endpoints. Every report supports
// JSON output and an xlsx download via ?format=xlsx.
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
	exporter      *reportapp.ExcelExporter
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService, exporter *reportapp.ExcelExporter) *ReportHandler {
	return &ReportHandler{reportService: reportService, exporter: exporter}
}

// BalanceSheet builds the balance sheet as of a date
func (h *ReportHandler) BalanceSheet(c *gin.Context) {
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
		asOf = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	sheet, err := h.reportService.BuildBalanceSheet(c.Request.Context(), tenantID, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if c.Query("format") == "xlsx" {
		buf, err := h.exporter.BalanceSheet(sheet)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.sendWorkbook(c, "balance-sheet", buf.Bytes())
		return
	}

	h.Success(c, sheet)
}

// ProfitLoss builds the profit and loss statement for a period
func (h *ReportHandler) ProfitLoss(c *gin.Context) {
	tenantID, from, to, ok := h.bindPeriod(c)
	if !ok {
		return
	}

	pl, err := h.reportService.BuildProfitLoss(c.Request.Context(), tenantID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if c.Query("format") == "xlsx" {
		buf, err := h.exporter.ProfitLoss(pl)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.sendWorkbook(c, "profit-loss", buf.Bytes())
		return
	}

	h.Success(c, pl)
}

// CashFlow builds the cash flow statement for a period
func (h *ReportHandler) CashFlow(c *gin.Context) {
	tenantID, from, to, ok := h.bindPeriod(c)
	if !ok {
		return
	}

	cf, err := h.reportService.BuildCashFlow(c.Request.Context(), tenantID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if c.Query("format") == "xlsx" {
		buf, err := h.exporter.CashFlow(cf)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.sendWorkbook(c, "cash-flow", buf.Bytes())
		return
	}

	h.Success(c, cf)
}

// BankBook builds the running bank statement for a period
func (h *ReportHandler) BankBook(c *gin.Context) {
	tenantID, from, to, ok := h.bindPeriod(c)
	if !ok {
		return
	}

	book, err := h.reportService.BuildBankBook(c.Request.Context(), tenantID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if c.Query("format") == "xlsx" {
		buf, err := h.exporter.BankBook(book)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.sendWorkbook(c, "bank-book", buf.Bytes())
		return
	}

	h.Success(c, book)
}

// bindPeriod extracts tenant and the [from, to] report period, responding
// with an error itself when the request is invalid
func (h *ReportHandler) bindPeriod(c *gin.Context) (tenantID uuid.UUID, from, to time.Time, ok bool) {
	id, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	var req dto.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	from, _ = time.Parse("2006-01-02", req.From)
	toDate, _ := time.Parse("2006-01-02", req.To)
	// Make the range inclusive of the whole end day
	to = toDate.AddDate(0, 0, 1).Add(-time.Nanosecond)

	if to.Before(from) {
		h.BadRequest(c, "Report period end must not precede its start")
		return
	}

	return id, from, to, true
}

func (h *ReportHandler) sendWorkbook(c *gin.Context, name string, content []byte) {
	filename := fmt.Sprintf("%s-%s.xlsx", name, time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, content)
}
