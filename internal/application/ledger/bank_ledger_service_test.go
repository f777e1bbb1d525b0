package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	ledgerapp "github.com/shopbooks/backend/internal/application/ledger"
	"github.com/shopbooks/backend/internal/application/ledger/ledgertest"
	"github.com/shopbooks/backend/internal/domain/ledger"
	"github.com/shopbooks/backend/internal/domain/shared"
)

func TestBankLedgerService(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	world := ledgertest.NewWorld()
	svc := ledgerapp.NewBankLedgerService(world.Scope(), zap.NewNop())

	t.Run("credit creates the system account and snapshots the balance", func(t *testing.T) {
		tx, err := svc.CreateCredit(ctx, tenantID, ledgerapp.CreateBankTransactionInput{
			Amount:      decimal.NewFromInt(500),
			Description: "opening deposit",
		})
		require.NoError(t, err)
		assert.Equal(t, ledger.BankTransactionCredit, tx.Type)
		assert.Equal(t, ledger.BankCategoryManual, tx.Category)
		assert.True(t, tx.BalanceAfter.Equal(decimal.NewFromInt(500)))

		acct, err := world.AccountRepo.FindOrCreateSystem(ctx, tenantID, ledger.AccountTypeBank)
		require.NoError(t, err)
		assert.True(t, acct.IsSystem)
		assert.True(t, acct.CurrentBalance.Equal(decimal.NewFromInt(500)))
	})

	t.Run("debit reduces the balance", func(t *testing.T) {
		tx, err := svc.CreateDebit(ctx, tenantID, ledgerapp.CreateBankTransactionInput{
			Amount:          decimal.NewFromInt(120),
			Category:        ledger.BankCategoryExpense,
			TransactionDate: time.Now(),
			Description:     "rent",
		})
		require.NoError(t, err)
		assert.True(t, tx.BalanceAfter.Equal(decimal.NewFromInt(380)))
		assert.True(t, tx.SignedAmount().Equal(decimal.NewFromInt(-120)))
	})

	t.Run("replaying the rows reproduces every snapshot", func(t *testing.T) {
		acct, err := world.AccountRepo.FindOrCreateSystem(ctx, tenantID, ledger.AccountTypeBank)
		require.NoError(t, err)

		running := acct.OpeningBalance
		for _, tx := range world.BankTransactionRepo.Items {
			running = running.Add(tx.SignedAmount())
			assert.True(t, running.Equal(tx.BalanceAfter))
		}
		assert.True(t, running.Equal(acct.CurrentBalance))
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		_, err := svc.CreateCredit(ctx, tenantID, ledgerapp.CreateBankTransactionInput{
			Amount: decimal.Zero,
		})
		require.Error(t, err)
	})

	t.Run("records the acting user on the transaction", func(t *testing.T) {
		userID := uuid.New()
		actorCtx := shared.WithActor(ctx, userID)

		tx, err := svc.CreateCredit(actorCtx, tenantID, ledgerapp.CreateBankTransactionInput{
			Amount:      decimal.NewFromInt(40),
			Description: "cash deposit",
		})
		require.NoError(t, err)
		require.NotNil(t, tx.CreatedBy)
		assert.Equal(t, userID, *tx.CreatedBy)
	})

	t.Run("leaves created_by unset without an authenticated user", func(t *testing.T) {
		tx, err := svc.CreateDebit(ctx, tenantID, ledgerapp.CreateBankTransactionInput{
			Amount:   decimal.NewFromInt(10),
			Category: ledger.BankCategoryExpense,
		})
		require.NoError(t, err)
		assert.Nil(t, tx.CreatedBy)
	})
}

func TestTrialBalanceService(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	world := ledgertest.NewWorld()
	bankSvc := ledgerapp.NewBankLedgerService(world.Scope(), zap.NewNop())
	tbSvc := ledgerapp.NewTrialBalanceService(world.Scope(), zap.NewNop())

	_, err := bankSvc.CreateCredit(ctx, tenantID, ledgerapp.CreateBankTransactionInput{
		Amount: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	equity, err := ledger.NewAccount(tenantID, ledger.AccountTypeEquity, "Capital", "EQ-01", decimal.NewFromInt(1000))
	require.NoError(t, err)
	require.NoError(t, world.AccountRepo.Save(ctx, equity))

	tb, err := tbSvc.Build(ctx, tenantID, time.Now())
	require.NoError(t, err)
	assert.Len(t, tb.Lines, 2)
	assert.True(t, tb.TotalDebit.Equal(decimal.NewFromInt(1000)))
	assert.True(t, tb.TotalCredit.Equal(decimal.NewFromInt(1000)))
	assert.True(t, tb.IsBalanced(ledger.DefaultBalanceTolerance))
}
