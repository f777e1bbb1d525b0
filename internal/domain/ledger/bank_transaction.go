package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopbooks/backend/internal/domain/shared"
)

// BankTransactionType is the direction of a bank ledger row
type BankTransactionType string

const (
	BankTransactionCredit BankTransactionType = "credit"
	BankTransactionDebit  BankTransactionType = "debit"
)

// IsValid checks if the transaction type is valid
func (t BankTransactionType) IsValid() bool {
	return t == BankTransactionCredit || t == BankTransactionDebit
}

// SignedAmount returns amount with the sign implied by the direction
func (t BankTransactionType) SignedAmount(amount decimal.Decimal) decimal.Decimal {
	if t == BankTransactionDebit {
		return amount.Neg()
	}
	return amount
}

// Bank transaction categories used by the orchestration services
const (
	BankCategoryManual           = "manual"
	BankCategoryPurchasePayment  = "purchase_payment"
	BankCategoryPurchaseReversal = "purchase_payment_reversal"
	BankCategorySalesReceipt     = "sales_receipt"
	BankCategorySalesRefund      = "sales_refund"
	BankCategoryVendorPayment    = "vendor_payment"
	BankCategoryCustomerReceipt  = "customer_receipt"
	BankCategoryFixedAsset       = "fixed_asset_purchase"
	BankCategoryExpense          = "expense"
)

// BankTransaction is an append-only ledger row against the tenant's system
// bank account. BalanceAfter snapshots the bank account's current balance
// immediately after this row was applied; replaying the rows in insertion
// order from the opening balance must reproduce every snapshot.
// Rows are never edited or deleted; corrections are new rows with the
// opposite direction.
type BankTransaction struct {
	shared.TenantAggregateRoot
	Type            BankTransactionType `gorm:"type:varchar(10);not null;index"`
	Category        string              `gorm:"type:varchar(50);not null;index"`
	Amount          decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	BalanceAfter    decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	TransactionDate time.Time           `gorm:"not null;index"`
	Description     string              `gorm:"type:varchar(500)"`
	ReferenceID     *uuid.UUID          `gorm:"type:uuid;index"`
	ReferenceType   string              `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (BankTransaction) TableName() string {
	return "bank_transactions"
}

// NewBankTransaction creates a new bank ledger row. balanceAfter must be the
// bank account's balance after the movement has been applied to it.
func NewBankTransaction(
	tenantID uuid.UUID,
	txType BankTransactionType,
	category string,
	amount decimal.Decimal,
	balanceAfter decimal.Decimal,
	transactionDate time.Time,
	description string,
	referenceID *uuid.UUID,
	referenceType string,
) (*BankTransaction, error) {
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Bank transaction type must be credit or debit")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Bank transaction amount must be positive")
	}
	if category == "" {
		category = BankCategoryManual
	}
	if transactionDate.IsZero() {
		transactionDate = time.Now()
	}

	tx := &BankTransaction{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Type:                txType,
		Category:            category,
		Amount:              amount,
		BalanceAfter:        balanceAfter,
		TransactionDate:     transactionDate,
		Description:         description,
		ReferenceID:         referenceID,
		ReferenceType:       referenceType,
	}
	tx.AddDomainEvent(NewBankTransactionCreatedEvent(tx))
	return tx, nil
}

// SignedAmount returns the amount signed by direction (debits negative)
func (t *BankTransaction) SignedAmount() decimal.Decimal {
	return t.Type.SignedAmount(t.Amount)
}
