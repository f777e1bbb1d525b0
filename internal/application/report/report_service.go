package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appledger "github.com/shopbooks/backend/internal/application/ledger"
	"github.com/shopbooks/backend/internal/domain/ledger"
)

// Reader answers the aggregate queries the reports need. It is implemented
// by the persistence layer with SQL aggregation.
type Reader interface {
	TotalVendorDue(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error)
	TotalCustomerDue(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error)
	// SalesCOGS sums quantity * recorded average cost over sale-type stock
	// entries in the range, giving the cost of goods sold.
	SalesCOGS(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
	// ExpenseTotal sums bank debits categorized as expenses in the range.
	ExpenseTotal(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
}

// BalanceSheet is a point-in-time statement of what the shop owns and owes
type BalanceSheet struct {
	AsOf                 time.Time       `json:"as_of"`
	BankBalance          decimal.Decimal `json:"bank_balance"`
	StockValue           decimal.Decimal `json:"stock_value"`
	FixedAssetValue      decimal.Decimal `json:"fixed_asset_value"`
	CustomerDues         decimal.Decimal `json:"customer_dues"`
	TotalAssets          decimal.Decimal `json:"total_assets"`
	VendorDues           decimal.Decimal `json:"vendor_dues"`
	TotalLiabilities     decimal.Decimal `json:"total_liabilities"`
	Equity               decimal.Decimal `json:"equity"`
	LiabilitiesAndEquity decimal.Decimal `json:"liabilities_and_equity"`
}

// ProfitLoss is an income statement over a date range
type ProfitLoss struct {
	From        time.Time       `json:"from"`
	To          time.Time       `json:"to"`
	Revenue     decimal.Decimal `json:"revenue"`
	COGS        decimal.Decimal `json:"cogs"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	Expenses    decimal.Decimal `json:"expenses"`
	NetProfit   decimal.Decimal `json:"net_profit"`
}

// CashFlowLine is one category's movement in the cash flow statement
type CashFlowLine struct {
	Category string          `json:"category"`
	Inflow   decimal.Decimal `json:"inflow"`
	Outflow  decimal.Decimal `json:"outflow"`
	Net      decimal.Decimal `json:"net"`
}

// CashFlow groups bank movements by category over a date range
type CashFlow struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	Lines        []CashFlowLine  `json:"lines"`
	TotalInflow  decimal.Decimal `json:"total_inflow"`
	TotalOutflow decimal.Decimal `json:"total_outflow"`
	NetChange    decimal.Decimal `json:"net_change"`
}

// BankBook is the bank ledger over a date range with its boundary balances
type BankBook struct {
	From           time.Time                `json:"from"`
	To             time.Time                `json:"to"`
	Transactions   []ledger.BankTransaction `json:"transactions"`
	ClosingBalance decimal.Decimal          `json:"closing_balance"`
}

// ReportService builds the financial statements
type ReportService struct {
	scope  appledger.TransactionScope
	reader Reader
	logger *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(scope appledger.TransactionScope, reader Reader, logger *zap.Logger) *ReportService {
	return &ReportService{scope: scope, reader: reader, logger: logger}
}

// BuildBalanceSheet assembles the balance sheet. Equity is the balancing
// figure: assets minus liabilities.
func (s *ReportService) BuildBalanceSheet(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (*BalanceSheet, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}

	sheet := &BalanceSheet{AsOf: asOf}
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		bank, err := repos.Accounts().FindOrCreateSystem(ctx, tenantID, ledger.AccountTypeBank)
		if err != nil {
			return err
		}
		sheet.BankBalance = bank.CurrentBalance

		sheet.StockValue, err = repos.StockSummaries().TotalStockValue(ctx, tenantID)
		if err != nil {
			return err
		}
		sheet.FixedAssetValue, err = repos.FixedAssets().TotalCurrentValue(ctx, tenantID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if sheet.CustomerDues, err = s.reader.TotalCustomerDue(ctx, tenantID); err != nil {
		return nil, err
	}
	if sheet.VendorDues, err = s.reader.TotalVendorDue(ctx, tenantID); err != nil {
		return nil, err
	}

	sheet.TotalAssets = sheet.BankBalance.
		Add(sheet.StockValue).
		Add(sheet.FixedAssetValue).
		Add(sheet.CustomerDues)
	sheet.TotalLiabilities = sheet.VendorDues
	sheet.Equity = sheet.TotalAssets.Sub(sheet.TotalLiabilities)
	sheet.LiabilitiesAndEquity = sheet.TotalLiabilities.Add(sheet.Equity)
	return sheet, nil
}

// BuildProfitLoss assembles the income statement for a date range
func (s *ReportService) BuildProfitLoss(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*ProfitLoss, error) {
	if to.IsZero() {
		to = time.Now()
	}

	pl := &ProfitLoss{From: from, To: to}
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		var err error
		pl.Revenue, err = repos.Sales().SumCompletedTotals(ctx, tenantID, from, to)
		return err
	})
	if err != nil {
		return nil, err
	}

	if pl.COGS, err = s.reader.SalesCOGS(ctx, tenantID, from, to); err != nil {
		return nil, err
	}
	if pl.Expenses, err = s.reader.ExpenseTotal(ctx, tenantID, from, to); err != nil {
		return nil, err
	}

	pl.GrossProfit = pl.Revenue.Sub(pl.COGS)
	pl.NetProfit = pl.GrossProfit.Sub(pl.Expenses)
	return pl, nil
}

// BuildCashFlow groups the bank ledger by category over a date range
func (s *ReportService) BuildCashFlow(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*CashFlow, error) {
	if to.IsZero() {
		to = time.Now()
	}

	cf := &CashFlow{
		From:         from,
		To:           to,
		Lines:        []CashFlowLine{},
		TotalInflow:  decimal.Zero,
		TotalOutflow: decimal.Zero,
	}

	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		txs, err := repos.BankTransactions().FindByDateRange(ctx, tenantID, from, to)
		if err != nil {
			return err
		}

		byCategory := make(map[string]*CashFlowLine)
		order := make([]string, 0)
		for i := range txs {
			tx := &txs[i]
			line, ok := byCategory[tx.Category]
			if !ok {
				line = &CashFlowLine{
					Category: tx.Category,
					Inflow:   decimal.Zero,
					Outflow:  decimal.Zero,
				}
				byCategory[tx.Category] = line
				order = append(order, tx.Category)
			}
			if tx.Type == ledger.BankTransactionCredit {
				line.Inflow = line.Inflow.Add(tx.Amount)
				cf.TotalInflow = cf.TotalInflow.Add(tx.Amount)
			} else {
				line.Outflow = line.Outflow.Add(tx.Amount)
				cf.TotalOutflow = cf.TotalOutflow.Add(tx.Amount)
			}
		}

		for _, category := range order {
			line := byCategory[category]
			line.Net = line.Inflow.Sub(line.Outflow)
			cf.Lines = append(cf.Lines, *line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cf.NetChange = cf.TotalInflow.Sub(cf.TotalOutflow)
	return cf, nil
}

// BuildBankBook returns the bank ledger rows for a date range
func (s *ReportService) BuildBankBook(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*BankBook, error) {
	if to.IsZero() {
		to = time.Now()
	}

	book := &BankBook{From: from, To: to}
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		txs, err := repos.BankTransactions().FindByDateRange(ctx, tenantID, from, to)
		if err != nil {
			return err
		}
		book.Transactions = txs
		if len(txs) > 0 {
			book.ClosingBalance = txs[len(txs)-1].BalanceAfter
		} else {
			bank, err := repos.Accounts().FindOrCreateSystem(ctx, tenantID, ledger.AccountTypeBank)
			if err != nil {
				return err
			}
			book.ClosingBalance = bank.CurrentBalance
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}
