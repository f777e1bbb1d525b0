package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/shopbooks/backend/internal/application/report"
	"github.com/shopbooks/backend/internal/domain/ledger"
)

func TestExcelExporterBalanceSheet(t *testing.T) {
	exporter := report.NewExcelExporter()

	sheet := &report.BalanceSheet{
		AsOf:                 time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		BankBalance:          decimal.NewFromInt(1000),
		StockValue:           decimal.NewFromInt(50),
		FixedAssetValue:      decimal.NewFromInt(300),
		CustomerDues:         decimal.NewFromInt(150),
		TotalAssets:          decimal.NewFromInt(1500),
		VendorDues:           decimal.NewFromInt(200),
		TotalLiabilities:     decimal.NewFromInt(200),
		Equity:               decimal.NewFromInt(1300),
		LiabilitiesAndEquity: decimal.NewFromInt(1500),
	}

	buf, err := exporter.BalanceSheet(sheet)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Balance Sheet", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Balance Sheet", title)

	asOf, err := f.GetCellValue("Balance Sheet", "B2")
	require.NoError(t, err)
	assert.Equal(t, "2026-06-30", asOf)

	bank, err := f.GetCellValue("Balance Sheet", "B5")
	require.NoError(t, err)
	assert.Equal(t, "1000", bank)

	totalAssets, err := f.GetCellValue("Balance Sheet", "B9")
	require.NoError(t, err)
	assert.Equal(t, "1500", totalAssets)
}

func TestExcelExporterBankBook(t *testing.T) {
	exporter := report.NewExcelExporter()
	date := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)

	book := &report.BankBook{
		From: date.AddDate(0, 0, -1),
		To:   date.AddDate(0, 0, 1),
		Transactions: []ledger.BankTransaction{
			{
				Type:            ledger.BankTransactionCredit,
				Category:        ledger.BankCategorySalesReceipt,
				Amount:          decimal.NewFromInt(300),
				BalanceAfter:    decimal.NewFromInt(300),
				TransactionDate: date,
				Description:     "walk-in sale",
			},
		},
		ClosingBalance: decimal.NewFromInt(300),
	}

	buf, err := exporter.BankBook(book)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Bank Book")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "2026-05-02", rows[1][0])
	assert.Equal(t, "credit", rows[1][1])
	assert.Equal(t, ledger.BankCategorySalesReceipt, rows[1][2])
	assert.Equal(t, "300", rows[1][5])
	assert.Equal(t, "Closing", rows[2][4])
}

func TestExcelExporterProfitLossAndCashFlow(t *testing.T) {
	exporter := report.NewExcelExporter()

	pl := &report.ProfitLoss{
		From:        time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		To:          time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC),
		Revenue:     decimal.NewFromInt(500),
		COGS:        decimal.NewFromInt(200),
		GrossProfit: decimal.NewFromInt(300),
		Expenses:    decimal.NewFromInt(100),
		NetProfit:   decimal.NewFromInt(200),
	}
	buf, err := exporter.ProfitLoss(pl)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	net, err := f.GetCellValue("Profit and Loss", "B9")
	require.NoError(t, err)
	assert.Equal(t, "200", net)
	require.NoError(t, f.Close())

	cf := &report.CashFlow{
		From: pl.From,
		To:   pl.To,
		Lines: []report.CashFlowLine{
			{
				Category: ledger.BankCategorySalesReceipt,
				Inflow:   decimal.NewFromInt(500),
				Outflow:  decimal.Zero,
				Net:      decimal.NewFromInt(500),
			},
		},
		TotalInflow:  decimal.NewFromInt(500),
		TotalOutflow: decimal.Zero,
		NetChange:    decimal.NewFromInt(500),
	}
	buf, err = exporter.CashFlow(cf)
	require.NoError(t, err)

	f, err = excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Cash Flow")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Total", rows[2][0])
	assert.Equal(t, "500", rows[2][3])
}
