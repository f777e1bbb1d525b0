package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopbooks/backend/internal/domain/shared"
)

func TestNewAccount(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates account with opening balance", func(t *testing.T) {
		acct, err := NewAccount(tenantID, AccountTypeBank, "Petty Cash", "CASH-01", decimal.NewFromInt(500))
		require.NoError(t, err)
		assert.Equal(t, tenantID, acct.TenantID)
		assert.True(t, acct.CurrentBalance.Equal(decimal.NewFromInt(500)))
		assert.True(t, acct.OpeningBalance.Equal(decimal.NewFromInt(500)))
		assert.False(t, acct.IsSystem)
		assert.True(t, acct.IsActive)
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		_, err := NewAccount(tenantID, AccountType("bogus"), "X", "X-01", decimal.Zero)
		assert.True(t, shared.IsDomainErrorWithCode(err, "INVALID_ACCOUNT_TYPE"))
	})

	t.Run("rejects empty name and code", func(t *testing.T) {
		_, err := NewAccount(tenantID, AccountTypeExpense, "", "EXP-01", decimal.Zero)
		assert.True(t, shared.IsDomainErrorWithCode(err, "INVALID_ACCOUNT_NAME"))

		_, err = NewAccount(tenantID, AccountTypeExpense, "Rent", "", decimal.Zero)
		assert.True(t, shared.IsDomainErrorWithCode(err, "INVALID_ACCOUNT_CODE"))
	})
}

func TestNewSystemAccount(t *testing.T) {
	tenantID := uuid.New()

	t.Run("bank and expense only", func(t *testing.T) {
		bank, err := NewSystemAccount(tenantID, AccountTypeBank)
		require.NoError(t, err)
		assert.True(t, bank.IsSystem)
		assert.Equal(t, "SYS-BANK", bank.Code)

		exp, err := NewSystemAccount(tenantID, AccountTypeExpense)
		require.NoError(t, err)
		assert.True(t, exp.IsSystem)

		_, err = NewSystemAccount(tenantID, AccountTypeIncome)
		assert.True(t, shared.IsDomainErrorWithCode(err, "INVALID_SYSTEM_ACCOUNT"))
	})
}

func TestAccountCreditDebit(t *testing.T) {
	tenantID := uuid.New()

	t.Run("credit increases and debit decreases the balance", func(t *testing.T) {
		acct, err := NewAccount(tenantID, AccountTypeBank, "Main", "BK-01", decimal.NewFromInt(100))
		require.NoError(t, err)

		require.NoError(t, acct.Credit(decimal.NewFromInt(50)))
		assert.True(t, acct.CurrentBalance.Equal(decimal.NewFromInt(150)))

		require.NoError(t, acct.Debit(decimal.NewFromInt(30)))
		assert.True(t, acct.CurrentBalance.Equal(decimal.NewFromInt(120)))
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		acct, _ := NewAccount(tenantID, AccountTypeBank, "Main", "BK-01", decimal.Zero)
		assert.Error(t, acct.Credit(decimal.Zero))
		assert.Error(t, acct.Debit(decimal.NewFromInt(-5)))
	})

	t.Run("overdraft is tolerated and flagged", func(t *testing.T) {
		acct, _ := NewAccount(tenantID, AccountTypeBank, "Main", "BK-01", decimal.NewFromInt(10))
		require.NoError(t, acct.Debit(decimal.NewFromInt(25)))
		assert.True(t, acct.CurrentBalance.Equal(decimal.NewFromInt(-15)))
		assert.NotEmpty(t, acct.GetDomainEvents())
	})

	t.Run("rejects posting to an inactive account", func(t *testing.T) {
		acct, _ := NewAccount(tenantID, AccountTypeExpense, "Old", "EXP-99", decimal.Zero)
		require.NoError(t, acct.Deactivate())
		assert.True(t, shared.IsDomainErrorWithCode(acct.Credit(decimal.NewFromInt(1)), "ACCOUNT_INACTIVE"))
	})
}

func TestAccountDeactivate(t *testing.T) {
	tenantID := uuid.New()

	t.Run("system accounts cannot be deactivated", func(t *testing.T) {
		bank, err := NewSystemAccount(tenantID, AccountTypeBank)
		require.NoError(t, err)
		assert.ErrorIs(t, bank.Deactivate(), shared.ErrSystemProtected)
	})

	t.Run("user accounts can be deactivated and reactivated", func(t *testing.T) {
		acct, _ := NewAccount(tenantID, AccountTypeExpense, "Rent", "EXP-01", decimal.Zero)
		require.NoError(t, acct.Deactivate())
		assert.False(t, acct.IsActive)
		acct.Activate()
		assert.True(t, acct.IsActive)
	})
}

func TestAccountTypeNormalSide(t *testing.T) {
	assert.Equal(t, NormalSideDebit, AccountTypeBank.NormalSide())
	assert.Equal(t, NormalSideDebit, AccountTypeExpense.NormalSide())
	assert.Equal(t, NormalSideDebit, AccountTypeFixedAsset.NormalSide())
	assert.Equal(t, NormalSideCredit, AccountTypeLiability.NormalSide())
	assert.Equal(t, NormalSideCredit, AccountTypeIncome.NormalSide())
	assert.Equal(t, NormalSideCredit, AccountTypeEquity.NormalSide())
}
