package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appledger "github.com/shopbooks/backend/internal/application/ledger"
	"github.com/shopbooks/backend/internal/domain/inventory"
	"github.com/shopbooks/backend/internal/domain/shared"
)

// StockService maintains per-product stock summaries. Every mutation pairs
// the summary update with an append-only StockEntry in the same transaction.
type StockService struct {
	scope  appledger.TransactionScope
	logger *zap.Logger
}

// NewStockService creates a new stock service
func NewStockService(scope appledger.TransactionScope, logger *zap.Logger) *StockService {
	return &StockService{scope: scope, logger: logger}
}

// AdjustStockInput carries a manual stock adjustment request. Quantity is
// signed; positive adjustments may carry a unit price to reprice the average.
type AdjustStockInput struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	EntryType string           `json:"entry_type" binding:"omitempty,oneof=opening adjustment"`
	Notes     string           `json:"notes" binding:"max=500"`
}

// Adjust applies a manual stock movement
func (s *StockService) Adjust(ctx context.Context, tenantID uuid.UUID, input AdjustStockInput) (*inventory.StockSummary, error) {
	entryType := inventory.StockEntryAdjustment
	if input.EntryType != "" {
		entryType = inventory.StockEntryType(input.EntryType)
	}

	var summary *inventory.StockSummary
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		if _, err := repos.Products().FindByIDForTenant(ctx, tenantID, input.ProductID); err != nil {
			return err
		}
		var err error
		summary, err = ApplyInScope(ctx, repos, tenantID, input.ProductID, entryType,
			input.Quantity, input.UnitPrice, time.Now(), nil, "", input.Notes)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock adjusted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("product_id", input.ProductID.String()),
		zap.String("quantity", input.Quantity.String()))
	return summary, nil
}

// GetSummary returns the stock summary for a product
func (s *StockService) GetSummary(ctx context.Context, tenantID, productID uuid.UUID) (*inventory.StockSummary, error) {
	var summary *inventory.StockSummary
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		var err error
		summary, err = repos.StockSummaries().FindByProduct(ctx, tenantID, productID)
		return err
	})
	return summary, err
}

// ListSummaries returns a page of stock summaries
func (s *StockService) ListSummaries(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[inventory.StockSummary], error) {
	filter.Normalize()
	var page *shared.Paginated[inventory.StockSummary]
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		items, err := repos.StockSummaries().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		total, err := repos.StockSummaries().CountForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		p := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
		page = &p
		return nil
	})
	return page, err
}

// ListEntries returns the movement log for a product
func (s *StockService) ListEntries(ctx context.Context, tenantID, productID uuid.UUID, filter shared.Filter) ([]inventory.StockEntry, error) {
	filter.Normalize()
	var entries []inventory.StockEntry
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		var err error
		entries, err = repos.StockEntries().FindByProduct(ctx, tenantID, productID, filter)
		return err
	})
	return entries, err
}

// ApplyInScope moves stock for a product inside an existing transaction
// scope: it loads or creates the summary, applies the delta, persists the
// summary with a version check and appends the audit entry. The entry's
// recorded price is the movement's unit price for inbound rows and the
// average cost at the time for outbound rows.
func ApplyInScope(
	ctx context.Context,
	repos appledger.Repositories,
	tenantID, productID uuid.UUID,
	entryType inventory.StockEntryType,
	quantity decimal.Decimal,
	unitPrice *decimal.Decimal,
	entryDate time.Time,
	referenceID *uuid.UUID,
	referenceType string,
	notes string,
) (*inventory.StockSummary, error) {
	summary, err := repos.StockSummaries().FindOrCreate(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	entryPrice := summary.AvgPurchasePrice
	if quantity.IsPositive() && unitPrice != nil {
		entryPrice = *unitPrice
	}

	if err := summary.Apply(quantity, unitPrice); err != nil {
		return nil, err
	}
	if err := repos.StockSummaries().SaveWithLock(ctx, summary); err != nil {
		return nil, err
	}

	entry, err := inventory.NewStockEntry(tenantID, productID, entryType, quantity, entryPrice, entryDate, referenceID, referenceType, notes)
	if err != nil {
		return nil, err
	}
	shared.StampActor(ctx, entry)
	if err := repos.StockEntries().Save(ctx, entry); err != nil {
		return nil, err
	}
	return summary, nil
}
