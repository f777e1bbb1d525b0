package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopbooks/backend/internal/domain/shared"
)

// AccountType classifies a ledger account
type AccountType string

const (
	AccountTypeBank       AccountType = "bank"
	AccountTypeFixedAsset AccountType = "fixed_asset"
	AccountTypeExpense    AccountType = "expense"
	AccountTypeAsset      AccountType = "asset"
	AccountTypeLiability  AccountType = "liability"
	AccountTypeEquity     AccountType = "equity"
	AccountTypeIncome     AccountType = "income"
)

// IsValid checks if the account type is valid
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeBank, AccountTypeFixedAsset, AccountTypeExpense,
		AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeIncome:
		return true
	}
	return false
}

// String returns the string representation of the account type
func (t AccountType) String() string {
	return string(t)
}

// NormalSide indicates which side of a trial balance an account's positive
// balance belongs on.
type NormalSide string

const (
	NormalSideDebit  NormalSide = "debit"
	NormalSideCredit NormalSide = "credit"
)

// NormalSide returns the normal balance side for the account type.
// Bank, fixed asset, generic asset and expense accounts are debit-normal;
// liability, equity and income accounts are credit-normal.
func (t AccountType) NormalSide() NormalSide {
	switch t {
	case AccountTypeBank, AccountTypeFixedAsset, AccountTypeAsset, AccountTypeExpense:
		return NormalSideDebit
	default:
		return NormalSideCredit
	}
}

// Account is a balance-bearing ledger account. CurrentBalance is mutated only
// through Credit and Debit; it is never written directly after creation.
// Each tenant owns exactly one system account of type bank and one of type
// expense, created during tenant provisioning.
type Account struct {
	shared.TenantAggregateRoot
	Type           AccountType     `gorm:"type:varchar(20);not null;index"`
	Name           string          `gorm:"type:varchar(200);not null"`
	Code           string          `gorm:"type:varchar(50);not null"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IsSystem       bool            `gorm:"not null;default:false"`
	IsActive       bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Account) TableName() string {
	return "accounts"
}

// NewAccount creates a new user-defined ledger account
func NewAccount(tenantID uuid.UUID, accountType AccountType, name, code string, openingBalance decimal.Decimal) (*Account, error) {
	if !accountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_TYPE", "Account type is not valid")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_CODE", "Account code cannot be empty")
	}

	return &Account{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Type:                accountType,
		Name:                name,
		Code:                code,
		OpeningBalance:      openingBalance,
		CurrentBalance:      openingBalance,
		IsSystem:            false,
		IsActive:            true,
	}, nil
}

// NewSystemAccount creates the tenant-singleton system account for the given
// type. Only bank and expense accounts may be system accounts.
func NewSystemAccount(tenantID uuid.UUID, accountType AccountType) (*Account, error) {
	var name, code string
	switch accountType {
	case AccountTypeBank:
		name, code = "Cash at Bank", "SYS-BANK"
	case AccountTypeExpense:
		name, code = "General Expenses", "SYS-EXP"
	default:
		return nil, shared.NewDomainError("INVALID_SYSTEM_ACCOUNT", "Only bank and expense accounts can be system accounts")
	}

	acct := &Account{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Type:                accountType,
		Name:                name,
		Code:                code,
		OpeningBalance:      decimal.Zero,
		CurrentBalance:      decimal.Zero,
		IsSystem:            true,
		IsActive:            true,
	}
	return acct, nil
}

// Credit increases the current balance by amount
func (a *Account) Credit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Credit amount must be positive")
	}
	if !a.IsActive {
		return shared.NewDomainError("ACCOUNT_INACTIVE", "Cannot post to an inactive account")
	}

	a.CurrentBalance = a.CurrentBalance.Add(amount)
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// Debit decreases the current balance by amount. A bank account may go
// negative; overdrafts are tracked rather than rejected, and an
// AccountOverdrawnEvent is emitted when the balance crosses below zero.
func (a *Account) Debit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Debit amount must be positive")
	}
	if !a.IsActive {
		return shared.NewDomainError("ACCOUNT_INACTIVE", "Cannot post to an inactive account")
	}

	wasNonNegative := !a.CurrentBalance.IsNegative()
	a.CurrentBalance = a.CurrentBalance.Sub(amount)
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	if wasNonNegative && a.CurrentBalance.IsNegative() {
		a.AddDomainEvent(NewAccountOverdrawnEvent(a, amount))
	}
	return nil
}

// Rename changes the account name
func (a *Account) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	a.Name = name
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// Deactivate marks the account inactive. System accounts cannot be deactivated.
func (a *Account) Deactivate() error {
	if a.IsSystem {
		return shared.ErrSystemProtected
	}
	a.IsActive = false
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// Activate marks the account active
func (a *Account) Activate() {
	a.IsActive = true
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}
