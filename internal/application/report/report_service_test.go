package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopbooks/backend/internal/application/ledger/ledgertest"
	"github.com/shopbooks/backend/internal/application/report"
	"github.com/shopbooks/backend/internal/domain/asset"
	"github.com/shopbooks/backend/internal/domain/inventory"
	"github.com/shopbooks/backend/internal/domain/ledger"
)

type fakeReader struct {
	vendorDue   decimal.Decimal
	customerDue decimal.Decimal
	cogs        decimal.Decimal
	expenses    decimal.Decimal
}

func (r *fakeReader) TotalVendorDue(_ context.Context, _ uuid.UUID) (decimal.Decimal, error) {
	return r.vendorDue, nil
}

func (r *fakeReader) TotalCustomerDue(_ context.Context, _ uuid.UUID) (decimal.Decimal, error) {
	return r.customerDue, nil
}

func (r *fakeReader) SalesCOGS(_ context.Context, _ uuid.UUID, _, _ time.Time) (decimal.Decimal, error) {
	return r.cogs, nil
}

func (r *fakeReader) ExpenseTotal(_ context.Context, _ uuid.UUID, _, _ time.Time) (decimal.Decimal, error) {
	return r.expenses, nil
}

type reportFixture struct {
	world    *ledgertest.World
	reader   *fakeReader
	svc      *report.ReportService
	tenantID uuid.UUID
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	world := ledgertest.NewWorld()
	reader := &fakeReader{
		vendorDue:   decimal.Zero,
		customerDue: decimal.Zero,
		cogs:        decimal.Zero,
		expenses:    decimal.Zero,
	}
	return &reportFixture{
		world:    world,
		reader:   reader,
		svc:      report.NewReportService(world.Scope(), reader, zap.NewNop()),
		tenantID: uuid.New(),
	}
}

func (f *reportFixture) seedBankTx(t *testing.T, txType ledger.BankTransactionType, category string, amount int64, date time.Time) {
	t.Helper()
	tx, err := ledger.NewBankTransaction(
		f.tenantID, txType, category,
		decimal.NewFromInt(amount), decimal.Zero, date, "", nil, "",
	)
	require.NoError(t, err)
	require.NoError(t, f.world.BankTransactionRepo.Save(context.Background(), tx))
}

func TestBuildBalanceSheet(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture(t)

	bank, err := f.world.AccountRepo.FindOrCreateSystem(ctx, f.tenantID, ledger.AccountTypeBank)
	require.NoError(t, err)
	require.NoError(t, bank.Credit(decimal.NewFromInt(1000)))

	summary, err := inventory.NewStockSummary(f.tenantID, uuid.New())
	require.NoError(t, err)
	price := decimal.NewFromInt(5)
	require.NoError(t, summary.Apply(decimal.NewFromInt(10), &price))
	f.world.StockSummaryRepo.Items = append(f.world.StockSummaryRepo.Items, summary)

	machine, err := asset.NewFixedAsset(f.tenantID, "Lathe", "FA-01",
		decimal.NewFromInt(300), decimal.NewFromInt(10), time.Now())
	require.NoError(t, err)
	f.world.FixedAssetRepo.Items = append(f.world.FixedAssetRepo.Items, machine)

	f.reader.customerDue = decimal.NewFromInt(150)
	f.reader.vendorDue = decimal.NewFromInt(200)

	sheet, err := f.svc.BuildBalanceSheet(ctx, f.tenantID, time.Now())
	require.NoError(t, err)

	assert.True(t, sheet.BankBalance.Equal(decimal.NewFromInt(1000)))
	assert.True(t, sheet.StockValue.Equal(decimal.NewFromInt(50)))
	assert.True(t, sheet.FixedAssetValue.Equal(decimal.NewFromInt(300)))
	assert.True(t, sheet.TotalAssets.Equal(decimal.NewFromInt(1500)))
	assert.True(t, sheet.TotalLiabilities.Equal(decimal.NewFromInt(200)))
	assert.True(t, sheet.Equity.Equal(decimal.NewFromInt(1300)))
	// both sides of the statement agree
	assert.True(t, sheet.LiabilitiesAndEquity.Equal(sheet.TotalAssets))
}

func TestBuildProfitLoss(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture(t)

	f.reader.cogs = decimal.NewFromInt(60)
	f.reader.expenses = decimal.NewFromInt(25)

	pl, err := f.svc.BuildProfitLoss(ctx, f.tenantID, time.Now().AddDate(0, -1, 0), time.Now())
	require.NoError(t, err)

	// no completed sales seeded, so revenue is zero and the result is a loss
	assert.True(t, pl.Revenue.IsZero())
	assert.True(t, pl.GrossProfit.Equal(decimal.NewFromInt(-60)))
	assert.True(t, pl.NetProfit.Equal(decimal.NewFromInt(-85)))
}

func TestBuildCashFlow(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture(t)
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	f.seedBankTx(t, ledger.BankTransactionCredit, ledger.BankCategorySalesReceipt, 300, base)
	f.seedBankTx(t, ledger.BankTransactionCredit, ledger.BankCategorySalesReceipt, 200, base.AddDate(0, 0, 1))
	f.seedBankTx(t, ledger.BankTransactionDebit, ledger.BankCategoryVendorPayment, 120, base.AddDate(0, 0, 2))

	cf, err := f.svc.BuildCashFlow(ctx, f.tenantID, base, base.AddDate(0, 1, 0))
	require.NoError(t, err)

	require.Len(t, cf.Lines, 2)
	assert.Equal(t, ledger.BankCategorySalesReceipt, cf.Lines[0].Category)
	assert.True(t, cf.Lines[0].Inflow.Equal(decimal.NewFromInt(500)))
	assert.True(t, cf.Lines[0].Net.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, ledger.BankCategoryVendorPayment, cf.Lines[1].Category)
	assert.True(t, cf.Lines[1].Net.Equal(decimal.NewFromInt(-120)))

	assert.True(t, cf.TotalInflow.Equal(decimal.NewFromInt(500)))
	assert.True(t, cf.TotalOutflow.Equal(decimal.NewFromInt(120)))
	assert.True(t, cf.NetChange.Equal(decimal.NewFromInt(380)))
}

func TestBuildBankBook(t *testing.T) {
	ctx := context.Background()

	t.Run("closing balance follows the last row", func(t *testing.T) {
		f := newReportFixture(t)
		base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

		tx, err := ledger.NewBankTransaction(
			f.tenantID, ledger.BankTransactionCredit, ledger.BankCategoryManual,
			decimal.NewFromInt(250), decimal.NewFromInt(250), base, "", nil, "",
		)
		require.NoError(t, err)
		require.NoError(t, f.world.BankTransactionRepo.Save(ctx, tx))

		book, err := f.svc.BuildBankBook(ctx, f.tenantID, base.AddDate(0, 0, -1), base.AddDate(0, 0, 1))
		require.NoError(t, err)
		require.Len(t, book.Transactions, 1)
		assert.True(t, book.ClosingBalance.Equal(decimal.NewFromInt(250)))
	})

	t.Run("empty range falls back to the account balance", func(t *testing.T) {
		f := newReportFixture(t)

		bank, err := f.world.AccountRepo.FindOrCreateSystem(context.Background(), f.tenantID, ledger.AccountTypeBank)
		require.NoError(t, err)
		require.NoError(t, bank.Credit(decimal.NewFromInt(75)))

		book, err := f.svc.BuildBankBook(ctx, f.tenantID, time.Now(), time.Now().Add(time.Hour))
		require.NoError(t, err)
		assert.Empty(t, book.Transactions)
		assert.True(t, book.ClosingBalance.Equal(decimal.NewFromInt(75)))
	})
}
