package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAccount(t *testing.T, tenantID uuid.UUID, accountType AccountType, name, code string, balance decimal.Decimal) Account {
	t.Helper()
	acct, err := NewAccount(tenantID, accountType, name, code, balance)
	require.NoError(t, err)
	return *acct
}

func TestBuildTrialBalance(t *testing.T) {
	tenantID := uuid.New()
	asOf := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	t.Run("balances land on the normal side", func(t *testing.T) {
		accounts := []Account{
			mustAccount(t, tenantID, AccountTypeBank, "Bank", "BK", decimal.NewFromInt(1000)),
			mustAccount(t, tenantID, AccountTypeLiability, "Loan", "LN", decimal.NewFromInt(600)),
			mustAccount(t, tenantID, AccountTypeEquity, "Capital", "EQ", decimal.NewFromInt(400)),
		}

		tb := BuildTrialBalance(asOf, accounts)
		require.Len(t, tb.Lines, 3)
		assert.True(t, tb.TotalDebit.Equal(decimal.NewFromInt(1000)))
		assert.True(t, tb.TotalCredit.Equal(decimal.NewFromInt(1000)))
		assert.True(t, tb.IsBalanced(DefaultBalanceTolerance))
		assert.True(t, tb.Difference().IsZero())
	})

	t.Run("negative balance flips sides", func(t *testing.T) {
		overdrawn := mustAccount(t, tenantID, AccountTypeBank, "Bank", "BK", decimal.NewFromInt(100))
		require.NoError(t, overdrawn.Debit(decimal.NewFromInt(150)))

		tb := BuildTrialBalance(asOf, []Account{overdrawn})
		require.Len(t, tb.Lines, 1)
		assert.True(t, tb.Lines[0].Debit.IsZero())
		assert.True(t, tb.Lines[0].Credit.Equal(decimal.NewFromInt(50)))
		assert.True(t, tb.TotalCredit.Equal(decimal.NewFromInt(50)))
	})

	t.Run("difference reports the imbalance", func(t *testing.T) {
		accounts := []Account{
			mustAccount(t, tenantID, AccountTypeBank, "Bank", "BK", decimal.NewFromInt(300)),
			mustAccount(t, tenantID, AccountTypeIncome, "Sales", "IN", decimal.NewFromInt(280)),
		}
		tb := BuildTrialBalance(asOf, accounts)
		assert.True(t, tb.Difference().Equal(decimal.NewFromInt(20)))
		assert.False(t, tb.IsBalanced(DefaultBalanceTolerance))
	})

	t.Run("tolerance absorbs rounding noise", func(t *testing.T) {
		accounts := []Account{
			mustAccount(t, tenantID, AccountTypeBank, "Bank", "BK", decimal.NewFromFloat(100.005)),
			mustAccount(t, tenantID, AccountTypeIncome, "Sales", "IN", decimal.NewFromInt(100)),
		}
		tb := BuildTrialBalance(asOf, accounts)
		assert.True(t, tb.IsBalanced(DefaultBalanceTolerance))
	})
}
