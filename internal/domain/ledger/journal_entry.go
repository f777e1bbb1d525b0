package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopbooks/backend/internal/domain/shared"
)

// JournalEntryType identifies what produced a journal entry. Only manual
// entries are user-editable; everything else is system-generated and
// immutable through the API.
type JournalEntryType string

const (
	JournalTypeManual JournalEntryType = "manual"
	JournalTypeAsset  JournalEntryType = "asset"
)

// IsValid checks if the journal entry type is valid
func (t JournalEntryType) IsValid() bool {
	return t == JournalTypeManual || t == JournalTypeAsset
}

// JournalEntry is a double-entry journal line moving an amount from one
// ledger account (credit side) to another (debit side).
type JournalEntry struct {
	shared.TenantAggregateRoot
	Type            JournalEntryType `gorm:"type:varchar(20);not null;index"`
	DebitAccountID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	CreditAccountID uuid.UUID        `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	TransactionDate time.Time        `gorm:"not null;index"`
	Description     string           `gorm:"type:varchar(500)"`
	Reference       string           `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (JournalEntry) TableName() string {
	return "journal_entries"
}

// NewJournalEntry creates a new journal entry. The debit and credit accounts
// must differ and the amount must be positive.
func NewJournalEntry(
	tenantID uuid.UUID,
	entryType JournalEntryType,
	debitAccountID, creditAccountID uuid.UUID,
	amount decimal.Decimal,
	transactionDate time.Time,
	description, reference string,
) (*JournalEntry, error) {
	if !entryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_JOURNAL_TYPE", "Journal entry type is not valid")
	}
	if debitAccountID == uuid.Nil || creditAccountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Both debit and credit accounts are required")
	}
	if debitAccountID == creditAccountID {
		return nil, shared.NewDomainError("SAME_ACCOUNT", "Debit and credit accounts must differ")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Journal entry amount must be positive")
	}
	if transactionDate.IsZero() {
		transactionDate = time.Now()
	}

	return &JournalEntry{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Type:                entryType,
		DebitAccountID:      debitAccountID,
		CreditAccountID:     creditAccountID,
		Amount:              amount,
		TransactionDate:     transactionDate,
		Description:         description,
		Reference:           reference,
	}, nil
}

// IsManual returns true if the entry was created by a user
func (e *JournalEntry) IsManual() bool {
	return e.Type == JournalTypeManual
}

// Update modifies a manual journal entry. System-generated entries are
// immutable.
func (e *JournalEntry) Update(debitAccountID, creditAccountID uuid.UUID, amount decimal.Decimal, transactionDate time.Time, description, reference string) error {
	if !e.IsManual() {
		return shared.ErrSystemProtected
	}
	if debitAccountID == uuid.Nil || creditAccountID == uuid.Nil {
		return shared.NewDomainError("INVALID_ACCOUNT", "Both debit and credit accounts are required")
	}
	if debitAccountID == creditAccountID {
		return shared.NewDomainError("SAME_ACCOUNT", "Debit and credit accounts must differ")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Journal entry amount must be positive")
	}

	e.DebitAccountID = debitAccountID
	e.CreditAccountID = creditAccountID
	e.Amount = amount
	if !transactionDate.IsZero() {
		e.TransactionDate = transactionDate
	}
	e.Description = description
	e.Reference = reference
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return nil
}
