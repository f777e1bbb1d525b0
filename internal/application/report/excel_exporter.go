package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelExporter renders reports as xlsx workbooks
type ExcelExporter struct{}

// NewExcelExporter creates a new excel exporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// BalanceSheet renders a balance sheet workbook
func (e *ExcelExporter) BalanceSheet(sheet *BalanceSheet) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	name := "Balance Sheet"
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return nil, err
	}

	rows := [][]interface{}{
		{"Balance Sheet", ""},
		{"As of", sheet.AsOf.Format("2006-01-02")},
		{"", ""},
		{"Assets", ""},
		{"Bank", sheet.BankBalance.String()},
		{"Stock", sheet.StockValue.String()},
		{"Fixed assets", sheet.FixedAssetValue.String()},
		{"Customer dues", sheet.CustomerDues.String()},
		{"Total assets", sheet.TotalAssets.String()},
		{"", ""},
		{"Liabilities and equity", ""},
		{"Vendor dues", sheet.VendorDues.String()},
		{"Equity", sheet.Equity.String()},
		{"Total", sheet.LiabilitiesAndEquity.String()},
	}
	if err := writeRows(f, name, rows); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}

// ProfitLoss renders an income statement workbook
func (e *ExcelExporter) ProfitLoss(pl *ProfitLoss) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	name := "Profit and Loss"
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return nil, err
	}

	rows := [][]interface{}{
		{"Profit and Loss", ""},
		{"From", pl.From.Format("2006-01-02")},
		{"To", pl.To.Format("2006-01-02")},
		{"", ""},
		{"Revenue", pl.Revenue.String()},
		{"Cost of goods sold", pl.COGS.String()},
		{"Gross profit", pl.GrossProfit.String()},
		{"Expenses", pl.Expenses.String()},
		{"Net profit", pl.NetProfit.String()},
	}
	if err := writeRows(f, name, rows); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}

// BankBook renders the bank ledger workbook
func (e *ExcelExporter) BankBook(book *BankBook) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	name := "Bank Book"
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return nil, err
	}

	rows := [][]interface{}{
		{"Date", "Type", "Category", "Description", "Amount", "Balance"},
	}
	for i := range book.Transactions {
		tx := &book.Transactions[i]
		rows = append(rows, []interface{}{
			tx.TransactionDate.Format("2006-01-02"),
			string(tx.Type),
			tx.Category,
			tx.Description,
			tx.Amount.String(),
			tx.BalanceAfter.String(),
		})
	}
	rows = append(rows, []interface{}{"", "", "", "", "Closing", book.ClosingBalance.String()})

	if err := writeRows(f, name, rows); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}

// CashFlow renders the cash flow workbook
func (e *ExcelExporter) CashFlow(cf *CashFlow) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	name := "Cash Flow"
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return nil, err
	}

	rows := [][]interface{}{
		{"Category", "Inflow", "Outflow", "Net"},
	}
	for i := range cf.Lines {
		line := &cf.Lines[i]
		rows = append(rows, []interface{}{
			line.Category,
			line.Inflow.String(),
			line.Outflow.String(),
			line.Net.String(),
		})
	}
	rows = append(rows, []interface{}{"Total", cf.TotalInflow.String(), cf.TotalOutflow.String(), cf.NetChange.String()})

	if err := writeRows(f, name, rows); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	return nil
}
