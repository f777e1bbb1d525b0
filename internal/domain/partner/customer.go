package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopbooks/backend/internal/domain/shared"
)

// Customer is a buyer the shop sells to. CurrentDue tracks money the
// customer owes the shop, mutated through the same paired-ledger rules as
// vendor dues. CreditLimit caps how much unpaid balance a sale may add.
type Customer struct {
	shared.TenantAggregateRoot
	Code        string          `gorm:"type:varchar(50);not null"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Phone       string          `gorm:"type:varchar(50)"`
	Email       string          `gorm:"type:varchar(200)"`
	Address     string          `gorm:"type:varchar(500)"`
	OpeningDue  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CurrentDue  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreditLimit decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IsActive    bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer. A zero credit limit means no limit.
func NewCustomer(tenantID uuid.UUID, code, name string, openingDue, creditLimit decimal.Decimal) (*Customer, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_CODE", "Customer code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if openingDue.IsNegative() {
		return nil, shared.NewDomainError("INVALID_OPENING_DUE", "Opening due cannot be negative")
	}
	if creditLimit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}

	return &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		OpeningDue:          openingDue,
		CurrentDue:          openingDue,
		CreditLimit:         creditLimit,
		IsActive:            true,
	}, nil
}

// IncreaseDue records additional money the customer owes (an unpaid sale
// balance). The credit limit, when set, caps the resulting due.
func (c *Customer) IncreaseDue(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Due increase must be positive")
	}
	newDue := c.CurrentDue.Add(amount)
	if c.CreditLimit.GreaterThan(decimal.Zero) && newDue.GreaterThan(c.CreditLimit) {
		return shared.NewDomainError("CREDIT_LIMIT_EXCEEDED", "Customer credit limit exceeded")
	}
	c.CurrentDue = newDue
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// ReceivePayment reduces the outstanding due. Collecting more than is owed
// is rejected so the due can never go negative.
func (c *Customer) ReceivePayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.GreaterThan(c.CurrentDue) {
		return shared.NewDomainError("PAYMENT_EXCEEDS_DUE", "Payment exceeds the outstanding due")
	}
	c.CurrentDue = c.CurrentDue.Sub(amount)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// UpdateContact updates the customer's contact details
func (c *Customer) UpdateContact(phone, email, address string) {
	c.Phone = phone
	c.Email = email
	c.Address = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Rename changes the customer name
func (c *Customer) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetCreditLimit changes the credit limit. Zero disables the limit.
func (c *Customer) SetCreditLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}
	c.CreditLimit = limit
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// HasOutstandingDue returns true if the customer owes money
func (c *Customer) HasOutstandingDue() bool {
	return c.CurrentDue.GreaterThan(decimal.Zero)
}
