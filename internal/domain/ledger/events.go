package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopbooks/backend/internal/domain/shared"
)

// Event type names for the ledger bounded context
const (
	EventTypeAccountOverdrawn       = "ledger.account.overdrawn"
	EventTypeBankTransactionCreated = "ledger.bank_transaction.created"
)

// AccountOverdrawnEvent is emitted when a debit pushes an account balance
// below zero. Overdrafts are allowed but surfaced for monitoring.
type AccountOverdrawnEvent struct {
	shared.BaseDomainEvent
	AccountID   uuid.UUID
	AccountName string
	Balance     decimal.Decimal
	DebitAmount decimal.Decimal
}

// NewAccountOverdrawnEvent creates a new AccountOverdrawnEvent
func NewAccountOverdrawnEvent(account *Account, debitAmount decimal.Decimal) *AccountOverdrawnEvent {
	return &AccountOverdrawnEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountOverdrawn, account.TenantID),
		AccountID:       account.ID,
		AccountName:     account.Name,
		Balance:         account.CurrentBalance,
		DebitAmount:     debitAmount,
	}
}

// BankTransactionCreatedEvent is emitted after a bank ledger row is appended
type BankTransactionCreatedEvent struct {
	shared.BaseDomainEvent
	TransactionID uuid.UUID
	Direction     BankTransactionType
	Amount        decimal.Decimal
	BalanceAfter  decimal.Decimal
	Category      string
}

// NewBankTransactionCreatedEvent creates a new BankTransactionCreatedEvent
func NewBankTransactionCreatedEvent(tx *BankTransaction) *BankTransactionCreatedEvent {
	return &BankTransactionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBankTransactionCreated, tx.TenantID),
		TransactionID:   tx.ID,
		Direction:       tx.Type,
		Amount:          tx.Amount,
		BalanceAfter:    tx.BalanceAfter,
		Category:        tx.Category,
	}
}
