package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopbooks/backend/internal/domain/shared"
)

// SubscriptionPlan identifies the billing plan a tenant is on
type SubscriptionPlan string

const (
	PlanFree     SubscriptionPlan = "free"
	PlanStandard SubscriptionPlan = "standard"
	PlanPremium  SubscriptionPlan = "premium"
)

// IsValid checks if the plan is valid
func (p SubscriptionPlan) IsValid() bool {
	return p == PlanFree || p == PlanStandard || p == PlanPremium
}

// SubscriptionStatus is the lifecycle state of a subscription
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// Subscription ties a tenant to a plan for a billing period. Billing
// metadata only; not part of the ledger core.
type Subscription struct {
	shared.BaseAggregateRoot
	TenantID    uuid.UUID          `gorm:"type:uuid;not null;index"`
	Plan        SubscriptionPlan   `gorm:"type:varchar(20);not null"`
	Status      SubscriptionStatus `gorm:"type:varchar(20);not null;default:'active'"`
	PeriodStart time.Time          `gorm:"not null"`
	PeriodEnd   time.Time          `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Subscription) TableName() string {
	return "subscriptions"
}

// NewSubscription creates an active subscription for a period
func NewSubscription(tenantID uuid.UUID, plan SubscriptionPlan, periodStart, periodEnd time.Time) (*Subscription, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if !plan.IsValid() {
		return nil, shared.NewDomainError("INVALID_PLAN", "Subscription plan is not valid")
	}
	if !periodEnd.After(periodStart) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period end must be after period start")
	}

	return &Subscription{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenantID,
		Plan:              plan,
		Status:            SubscriptionActive,
		PeriodStart:       periodStart,
		PeriodEnd:         periodEnd,
	}, nil
}

// Cancel marks the subscription cancelled
func (s *Subscription) Cancel() error {
	if s.Status != SubscriptionActive {
		return shared.ErrInvalidState
	}
	s.Status = SubscriptionCancelled
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// ExpireIfPast marks the subscription expired when the period has ended
func (s *Subscription) ExpireIfPast(now time.Time) bool {
	if s.Status == SubscriptionActive && now.After(s.PeriodEnd) {
		s.Status = SubscriptionExpired
		s.UpdatedAt = now
		s.IncrementVersion()
		return true
	}
	return false
}

// InvoiceStatus is the payment state of a billing invoice
type InvoiceStatus string

const (
	InvoiceUnpaid InvoiceStatus = "unpaid"
	InvoicePaid   InvoiceStatus = "paid"
	InvoiceVoided InvoiceStatus = "voided"
)

// Invoice is a billing document charged to a tenant for its subscription
type Invoice struct {
	shared.BaseAggregateRoot
	TenantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Number   string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Amount   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status   InvoiceStatus   `gorm:"type:varchar(20);not null;default:'unpaid'"`
	IssuedAt time.Time       `gorm:"not null"`
	PaidAt   *time.Time
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "billing_invoices"
}

// NewInvoice creates an unpaid invoice
func NewInvoice(tenantID uuid.UUID, number string, amount decimal.Decimal) (*Invoice, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invoice amount must be positive")
	}

	return &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenantID,
		Number:            number,
		Amount:            amount,
		Status:            InvoiceUnpaid,
		IssuedAt:          time.Now(),
	}, nil
}

// MarkPaid records payment of the invoice
func (i *Invoice) MarkPaid() error {
	if i.Status != InvoiceUnpaid {
		return shared.ErrInvalidState
	}
	now := time.Now()
	i.Status = InvoicePaid
	i.PaidAt = &now
	i.UpdatedAt = now
	i.IncrementVersion()
	return nil
}

// Void cancels an unpaid invoice
func (i *Invoice) Void() error {
	if i.Status != InvoiceUnpaid {
		return shared.ErrInvalidState
	}
	i.Status = InvoiceVoided
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}
