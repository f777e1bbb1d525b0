package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopbooks/backend/internal/application/report"
	"github.com/shopbooks/backend/internal/domain/inventory"
	"github.com/shopbooks/backend/internal/domain/ledger"
	"github.com/shopbooks/backend/internal/domain/partner"
)

// GormReportReader implements the report Reader with SQL aggregation
type GormReportReader struct {
	db *gorm.DB
}

// NewGormReportReader creates a new GormReportReader
func NewGormReportReader(db *gorm.DB) *GormReportReader {
	return &GormReportReader{db: db}
}

// TotalVendorDue sums outstanding vendor dues for a tenant
func (r *GormReportReader) TotalVendorDue(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&partner.Vendor{}).
		Select("COALESCE(SUM(current_due), 0) as total").
		Where("tenant_id = ?", tenantID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// TotalCustomerDue sums outstanding customer dues for a tenant
func (r *GormReportReader) TotalCustomerDue(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&partner.Customer{}).
		Select("COALESCE(SUM(current_due), 0) as total").
		Where("tenant_id = ?", tenantID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// SalesCOGS sums quantity * recorded average cost over sale-type stock
// entries in the range. Sale entries carry negative quantities and store
// the average cost at the time of sale, so -quantity * purchase_price is
// the cost of goods sold. Returned sale stock comes back as positive
// quantities and nets itself out.
func (r *GormReportReader) SalesCOGS(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockEntry{}).
		Select("COALESCE(SUM(-quantity * purchase_price), 0) as total").
		Where("tenant_id = ? AND type = ? AND entry_date >= ? AND entry_date <= ?",
			tenantID, inventory.StockEntrySale, from, to).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// ExpenseTotal sums bank debits categorized as expenses in the range
func (r *GormReportReader) ExpenseTotal(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&ledger.BankTransaction{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("tenant_id = ? AND type = ? AND category = ? AND transaction_date >= ? AND transaction_date <= ?",
			tenantID, ledger.BankTransactionDebit, ledger.BankCategoryExpense, from, to).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// Ensure GormReportReader implements Reader
var _ report.Reader = (*GormReportReader)(nil)
