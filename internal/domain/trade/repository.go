package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopbooks/backend/internal/domain/shared"
)

// PurchaseRepository provides persistence for purchase documents
type PurchaseRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Purchase, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Purchase, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	CountByVendor(ctx context.Context, tenantID, vendorID uuid.UUID) (int64, error)
	GenerateNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
	Save(ctx context.Context, purchase *Purchase) error
	// ReplaceItems deletes the stored item rows and persists the aggregate's
	// current item set, used by edit flows.
	ReplaceItems(ctx context.Context, purchase *Purchase) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// SaleRepository provides persistence for sale documents
type SaleRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Sale, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Sale, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	CountByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error)
	SumCompletedTotals(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
	GenerateNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
	Save(ctx context.Context, sale *Sale) error
	ReplaceItems(ctx context.Context, sale *Sale) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
