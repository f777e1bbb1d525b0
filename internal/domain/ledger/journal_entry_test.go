package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopbooks/backend/internal/domain/shared"
)

func TestNewJournalEntry(t *testing.T) {
	tenantID := uuid.New()
	debitID := uuid.New()
	creditID := uuid.New()

	t.Run("creates manual entry", func(t *testing.T) {
		entry, err := NewJournalEntry(tenantID, JournalTypeManual, debitID, creditID,
			decimal.NewFromInt(200), time.Now(), "rent", "INV-9")
		require.NoError(t, err)
		assert.True(t, entry.IsManual())
		assert.Equal(t, debitID, entry.DebitAccountID)
		assert.Equal(t, creditID, entry.CreditAccountID)
	})

	t.Run("rejects same debit and credit account", func(t *testing.T) {
		_, err := NewJournalEntry(tenantID, JournalTypeManual, debitID, debitID,
			decimal.NewFromInt(200), time.Now(), "", "")
		assert.True(t, shared.IsDomainErrorWithCode(err, "SAME_ACCOUNT"))
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewJournalEntry(tenantID, JournalTypeManual, debitID, creditID,
			decimal.Zero, time.Now(), "", "")
		assert.True(t, shared.IsDomainErrorWithCode(err, "INVALID_AMOUNT"))
	})

	t.Run("defaults zero date to now", func(t *testing.T) {
		entry, err := NewJournalEntry(tenantID, JournalTypeManual, debitID, creditID,
			decimal.NewFromInt(10), time.Time{}, "", "")
		require.NoError(t, err)
		assert.False(t, entry.TransactionDate.IsZero())
	})
}

func TestJournalEntryUpdate(t *testing.T) {
	tenantID := uuid.New()
	debitID := uuid.New()
	creditID := uuid.New()

	t.Run("manual entries are editable", func(t *testing.T) {
		entry, err := NewJournalEntry(tenantID, JournalTypeManual, debitID, creditID,
			decimal.NewFromInt(100), time.Now(), "old", "")
		require.NoError(t, err)

		newDebit := uuid.New()
		err = entry.Update(newDebit, creditID, decimal.NewFromInt(150), time.Now(), "new", "REF")
		require.NoError(t, err)
		assert.Equal(t, newDebit, entry.DebitAccountID)
		assert.True(t, entry.Amount.Equal(decimal.NewFromInt(150)))
		assert.Equal(t, "new", entry.Description)
	})

	t.Run("system-generated entries are immutable", func(t *testing.T) {
		entry, err := NewJournalEntry(tenantID, JournalTypeAsset, debitID, creditID,
			decimal.NewFromInt(100), time.Now(), "", "")
		require.NoError(t, err)

		err = entry.Update(uuid.New(), creditID, decimal.NewFromInt(1), time.Now(), "", "")
		assert.ErrorIs(t, err, shared.ErrSystemProtected)
	})
}

func TestBankTransaction(t *testing.T) {
	tenantID := uuid.New()

	t.Run("signed amount follows direction", func(t *testing.T) {
		amount := decimal.NewFromInt(75)
		assert.True(t, BankTransactionCredit.SignedAmount(amount).Equal(amount))
		assert.True(t, BankTransactionDebit.SignedAmount(amount).Equal(amount.Neg()))
	})

	t.Run("creates row with balance snapshot", func(t *testing.T) {
		tx, err := NewBankTransaction(tenantID, BankTransactionCredit, BankCategorySalesReceipt,
			decimal.NewFromInt(300), decimal.NewFromInt(1300), time.Now(), "sale", nil, "")
		require.NoError(t, err)
		assert.True(t, tx.BalanceAfter.Equal(decimal.NewFromInt(1300)))
		assert.True(t, tx.SignedAmount().Equal(decimal.NewFromInt(300)))
	})

	t.Run("defaults empty category to manual", func(t *testing.T) {
		tx, err := NewBankTransaction(tenantID, BankTransactionDebit, "",
			decimal.NewFromInt(10), decimal.Zero, time.Now(), "", nil, "")
		require.NoError(t, err)
		assert.Equal(t, BankCategoryManual, tx.Category)
	})

	t.Run("rejects invalid type and amount", func(t *testing.T) {
		_, err := NewBankTransaction(tenantID, BankTransactionType("transfer"), "",
			decimal.NewFromInt(10), decimal.Zero, time.Now(), "", nil, "")
		assert.True(t, shared.IsDomainErrorWithCode(err, "INVALID_TRANSACTION_TYPE"))

		_, err = NewBankTransaction(tenantID, BankTransactionCredit, "",
			decimal.Zero, decimal.Zero, time.Now(), "", nil, "")
		assert.True(t, shared.IsDomainErrorWithCode(err, "INVALID_AMOUNT"))
	})
}
