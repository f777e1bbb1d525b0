package asset

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopbooks/backend/internal/domain/shared"
)

// FixedAssetRepository provides persistence for fixed assets
type FixedAssetRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*FixedAsset, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]FixedAsset, error)
	FindActive(ctx context.Context, tenantID uuid.UUID) ([]FixedAsset, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	TotalCurrentValue(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error)
	Save(ctx context.Context, asset *FixedAsset) error
	SaveWithLock(ctx context.Context, asset *FixedAsset) error
}
