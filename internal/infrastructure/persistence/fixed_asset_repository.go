package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopbooks/backend/internal/domain/asset"
	"github.com/shopbooks/backend/internal/domain/shared"
)

// GormFixedAssetRepository implements FixedAssetRepository using GORM
type GormFixedAssetRepository struct {
	db *gorm.DB
}

// NewGormFixedAssetRepository creates a new GormFixedAssetRepository
func NewGormFixedAssetRepository(db *gorm.DB) *GormFixedAssetRepository {
	return &GormFixedAssetRepository{db: db}
}

// FindByIDForTenant finds a fixed asset by ID within a tenant
func (r *GormFixedAssetRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*asset.FixedAsset, error) {
	var fa asset.FixedAsset
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&fa).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &fa, nil
}

// FindAllForTenant finds all fixed assets for a tenant
func (r *GormFixedAssetRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]asset.FixedAsset, error) {
	var assets []asset.FixedAsset
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&asset.FixedAsset{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// FindActive finds all active fixed assets for a tenant
func (r *GormFixedAssetRepository) FindActive(ctx context.Context, tenantID uuid.UUID) ([]asset.FixedAsset, error) {
	var assets []asset.FixedAsset
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, asset.FixedAssetActive).
		Order("purchase_date ASC").
		Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// CountForTenant counts fixed assets for a tenant
func (r *GormFixedAssetRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&asset.FixedAsset{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// TotalCurrentValue sums the book value of active fixed assets for a tenant
func (r *GormFixedAssetRepository) TotalCurrentValue(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&asset.FixedAsset{}).
		Select("COALESCE(SUM(current_value), 0) as total").
		Where("tenant_id = ? AND status = ?", tenantID, asset.FixedAssetActive).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// Save creates or updates a fixed asset
func (r *GormFixedAssetRepository) Save(ctx context.Context, fa *asset.FixedAsset) error {
	return r.db.WithContext(ctx).Save(fa).Error
}

// SaveWithLock persists depreciation and status changes with a
// compare-and-swap on the version column
func (r *GormFixedAssetRepository) SaveWithLock(ctx context.Context, fa *asset.FixedAsset) error {
	result := r.db.WithContext(ctx).
		Model(fa).
		Where("id = ? AND version = ?", fa.ID, fa.Version-1).
		Updates(map[string]interface{}{
			"name":                     fa.Name,
			"accumulated_depreciation": fa.AccumulatedDepreciation,
			"current_value":            fa.CurrentValue,
			"status":                   fa.Status,
			"sold_amount":              fa.SoldAmount,
			"version":                  fa.Version,
			"updated_at":               fa.UpdatedAt,
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
func (r *GormFixedAssetRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		query = query.Order("purchase_date DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormFixedAssetRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	return query
}

// Ensure GormFixedAssetRepository implements FixedAssetRepository
var _ asset.FixedAssetRepository = (*GormFixedAssetRepository)(nil)
