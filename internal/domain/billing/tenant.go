package billing

import (
	"time"

	"github.com/shopbooks/backend/internal/domain/shared"
)

// TenantStatus is the lifecycle state of a tenant
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
)

// Tenant is an isolated shop/business account. Every core entity is scoped
// to exactly one tenant; provisioning a tenant also creates its system bank
// and expense ledger accounts.
type Tenant struct {
	shared.BaseAggregateRoot
	Name   string       `gorm:"type:varchar(200);not null"`
	Code   string       `gorm:"type:varchar(50);not null;uniqueIndex"`
	Status TenantStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Tenant) TableName() string {
	return "tenants"
}

// NewTenant creates a new active tenant
func NewTenant(name, code string) (*Tenant, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_TENANT_CODE", "Tenant code cannot be empty")
	}

	return &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Code:              code,
		Status:            TenantStatusActive,
	}, nil
}

// Suspend blocks the tenant from using the system
func (t *Tenant) Suspend() {
	t.Status = TenantStatusSuspended
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// Reactivate restores a suspended tenant
func (t *Tenant) Reactivate() {
	t.Status = TenantStatusActive
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// IsActive returns true when the tenant may use the system
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}
