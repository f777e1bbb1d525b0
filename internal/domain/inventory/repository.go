package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopbooks/backend/internal/domain/shared"
)

// StockSummaryRepository provides persistence for stock summaries
type StockSummaryRepository interface {
	FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) (*StockSummary, error)
	// FindOrCreate returns the summary for the product, creating a zeroed
	// row when the product has never moved.
	FindOrCreate(ctx context.Context, tenantID, productID uuid.UUID) (*StockSummary, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]StockSummary, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	TotalStockValue(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error)
	SaveWithLock(ctx context.Context, summary *StockSummary) error
}

// StockEntryRepository provides persistence for the append-only movement log
type StockEntryRepository interface {
	FindByProduct(ctx context.Context, tenantID, productID uuid.UUID, filter shared.Filter) ([]StockEntry, error)
	CountByProduct(ctx context.Context, tenantID, productID uuid.UUID) (int64, error)
	// FindByProductInOrder returns every entry for the product in insertion
	// order, used by reconciliation to replay the movement log.
	FindByProductInOrder(ctx context.Context, tenantID, productID uuid.UUID) ([]StockEntry, error)
	Save(ctx context.Context, entry *StockEntry) error
}
