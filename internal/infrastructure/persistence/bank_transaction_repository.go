package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopbooks/backend/internal/domain/ledger"
	"github.com/shopbooks/backend/internal/domain/shared"
)

// GormBankTransactionRepository implements BankTransactionRepository using
// GORM. The bank ledger is append-only; rows are created and never updated
// or deleted.
type GormBankTransactionRepository struct {
	db *gorm.DB
}

// NewGormBankTransactionRepository creates a new GormBankTransactionRepository
func NewGormBankTransactionRepository(db *gorm.DB) *GormBankTransactionRepository {
	return &GormBankTransactionRepository{db: db}
}

// FindByIDForTenant finds a bank transaction by ID within a tenant
func (r *GormBankTransactionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.BankTransaction, error) {
	var tx ledger.BankTransaction
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindAllForTenant finds all bank transactions for a tenant
func (r *GormBankTransactionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ledger.BankTransaction, error) {
	var txs []ledger.BankTransaction
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&ledger.BankTransaction{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// CountForTenant counts bank transactions for a tenant
func (r *GormBankTransactionRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&ledger.BankTransaction{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindAllInOrder returns every row for the tenant in insertion order so
// reconciliation can replay the ledger against the balance snapshots
func (r *GormBankTransactionRepository) FindAllInOrder(ctx context.Context, tenantID uuid.UUID) ([]ledger.BankTransaction, error) {
	var txs []ledger.BankTransaction
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC, id ASC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindByDateRange finds transactions dated within [from, to] in date order
func (r *GormBankTransactionRepository) FindByDateRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]ledger.BankTransaction, error) {
	var txs []ledger.BankTransaction
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND transaction_date >= ? AND transaction_date <= ?", tenantID, from, to).
		Order("transaction_date ASC, created_at ASC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// Save appends a bank transaction
func (r *GormBankTransactionRepository) Save(ctx context.Context, tx *ledger.BankTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// applyFilter applies filter options to the query
func (r *GormBankTransactionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		query = query.Order("transaction_date DESC, created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormBankTransactionRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("description ILIKE ? OR category ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		case "reference_id":
			query = query.Where("reference_id = ?", value)
		case "reference_type":
			query = query.Where("reference_type = ?", value)
		case "from":
			query = query.Where("transaction_date >= ?", value)
		case "to":
			query = query.Where("transaction_date <= ?", value)
		}
	}

	return query
}

// Ensure GormBankTransactionRepository implements BankTransactionRepository
var _ ledger.BankTransactionRepository = (*GormBankTransactionRepository)(nil)
