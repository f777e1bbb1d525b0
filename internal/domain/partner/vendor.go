package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopbooks/backend/internal/domain/shared"
)

// Vendor is a supplier the shop buys from. CurrentDue is the running balance
// owed to the vendor; it is mutated only through IncreaseDue and
// ReceivePayment, always inside the same database transaction as the bank
// and document writes that caused the change.
type Vendor struct {
	shared.TenantAggregateRoot
	Code       string          `gorm:"type:varchar(50);not null"`
	Name       string          `gorm:"type:varchar(200);not null"`
	Phone      string          `gorm:"type:varchar(50)"`
	Email      string          `gorm:"type:varchar(200)"`
	Address    string          `gorm:"type:varchar(500)"`
	OpeningDue decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CurrentDue decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IsActive   bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Vendor) TableName() string {
	return "vendors"
}

// NewVendor creates a new vendor with an optional opening due
func NewVendor(tenantID uuid.UUID, code, name string, openingDue decimal.Decimal) (*Vendor, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_VENDOR_CODE", "Vendor code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_VENDOR_NAME", "Vendor name cannot be empty")
	}
	if openingDue.IsNegative() {
		return nil, shared.NewDomainError("INVALID_OPENING_DUE", "Opening due cannot be negative")
	}

	return &Vendor{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		OpeningDue:          openingDue,
		CurrentDue:          openingDue,
		IsActive:            true,
	}, nil
}

// IncreaseDue records additional money owed to the vendor (an unpaid
// purchase balance).
func (v *Vendor) IncreaseDue(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Due increase must be positive")
	}
	v.CurrentDue = v.CurrentDue.Add(amount)
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	return nil
}

// ReceivePayment reduces the outstanding due. Paying more than is owed is
// rejected so the due can never go negative.
func (v *Vendor) ReceivePayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.GreaterThan(v.CurrentDue) {
		return shared.NewDomainError("PAYMENT_EXCEEDS_DUE", "Payment exceeds the outstanding due")
	}
	v.CurrentDue = v.CurrentDue.Sub(amount)
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	return nil
}

// UpdateContact updates the vendor's contact details
func (v *Vendor) UpdateContact(phone, email, address string) {
	v.Phone = phone
	v.Email = email
	v.Address = address
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}

// Rename changes the vendor name
func (v *Vendor) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_VENDOR_NAME", "Vendor name cannot be empty")
	}
	v.Name = name
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	return nil
}

// HasOutstandingDue returns true if the vendor is owed money
func (v *Vendor) HasOutstandingDue() bool {
	return v.CurrentDue.GreaterThan(decimal.Zero)
}
