package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopbooks/backend/internal/domain/shared"
)

// TenantRepository provides persistence for tenants
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	FindByCode(ctx context.Context, code string) (*Tenant, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Tenant, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, tenant *Tenant) error
}

// SubscriptionRepository provides persistence for subscriptions
type SubscriptionRepository interface {
	FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) (*Subscription, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]Subscription, error)
	Save(ctx context.Context, subscription *Subscription) error
}

// InvoiceRepository provides persistence for billing invoices
type InvoiceRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Invoice, error)
	GenerateNumber(ctx context.Context) (string, error)
	Save(ctx context.Context, invoice *Invoice) error
}
