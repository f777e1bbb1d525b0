package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopbooks/backend/internal/domain/inventory"
	"github.com/shopbooks/backend/internal/domain/shared"
)

// GormStockSummaryRepository implements StockSummaryRepository using GORM
type GormStockSummaryRepository struct {
	db *gorm.DB
}

// NewGormStockSummaryRepository creates a new GormStockSummaryRepository
func NewGormStockSummaryRepository(db *gorm.DB) *GormStockSummaryRepository {
	return &GormStockSummaryRepository{db: db}
}

// FindByProduct finds the summary for a product within a tenant
func (r *GormStockSummaryRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) (*inventory.StockSummary, error) {
	var summary inventory.StockSummary
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		First(&summary).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &summary, nil
}

// FindOrCreate returns the summary for the product, creating a zeroed row
// when the product has never moved. ON CONFLICT on the unique
// (tenant_id, product_id) index handles concurrent creation.
func (r *GormStockSummaryRepository) FindOrCreate(ctx context.Context, tenantID, productID uuid.UUID) (*inventory.StockSummary, error) {
	summary, err := r.FindByProduct(ctx, tenantID, productID)
	if err == nil {
		return summary, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	summary, err = inventory.NewStockSummary(tenantID, productID)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(summary).Error; err != nil {
		return nil, err
	}

	return r.FindByProduct(ctx, tenantID, productID)
}

// FindAllForTenant finds all stock summaries for a tenant
func (r *GormStockSummaryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.StockSummary, error) {
	var summaries []inventory.StockSummary
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockSummary{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

// CountForTenant counts stock summaries for a tenant
func (r *GormStockSummaryRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&inventory.StockSummary{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// TotalStockValue sums the carrying value of all stock for a tenant
func (r *GormStockSummaryRepository) TotalStockValue(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockSummary{}).
		Select("COALESCE(SUM(total_value), 0) as total").
		Where("tenant_id = ?", tenantID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// SaveWithLock persists quantity and cost changes with a compare-and-swap
// on the version column
func (r *GormStockSummaryRepository) SaveWithLock(ctx context.Context, summary *inventory.StockSummary) error {
	result := r.db.WithContext(ctx).
		Model(summary).
		Where("id = ? AND version = ?", summary.ID, summary.Version-1).
		Updates(map[string]interface{}{
			"total_qty":          summary.TotalQty,
			"avg_purchase_price": summary.AvgPurchasePrice,
			"total_value":        summary.TotalValue,
			"last_updated_at":    summary.LastUpdatedAt,
			"version":            summary.Version,
			"updated_at":         summary.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormStockSummaryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("last_updated_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormStockSummaryRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "negative":
			if value == true {
				query = query.Where("total_qty < 0")
			}
		case "has_stock":
			if value == true {
				query = query.Where("total_qty > 0")
			}
		}
	}

	return query
}

// Ensure GormStockSummaryRepository implements StockSummaryRepository
var _ inventory.StockSummaryRepository = (*GormStockSummaryRepository)(nil)
