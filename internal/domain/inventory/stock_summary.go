package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopbooks/backend/internal/domain/shared"
)

// StockSummary holds the cached quantity and moving weighted-average cost
// for one (tenant, product) pair. It is mutated exclusively through Apply,
// always atomically paired with a StockEntry audit row; TotalValue is
// recomputed on every mutation, never trusted independently.
type StockSummary struct {
	shared.TenantAggregateRoot
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_summary_tenant_product,priority:2"`
	TotalQty         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AvgPurchasePrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalValue       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LastUpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockSummary) TableName() string {
	return "stock_summaries"
}

// NewStockSummary creates an empty summary for a product
func NewStockSummary(tenantID, productID uuid.UUID) (*StockSummary, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}

	return &StockSummary{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProductID:           productID,
		TotalQty:            decimal.Zero,
		AvgPurchasePrice:    decimal.Zero,
		TotalValue:          decimal.Zero,
		LastUpdatedAt:       time.Now(),
	}, nil
}

// Apply moves the stock by deltaQty and re-prices the average cost.
//
// Inbound stock with a known cost (deltaQty > 0 and unitPrice != nil)
// recomputes the moving weighted average:
//
//	newAvg = (totalQty*avg + deltaQty*unitPrice) / (totalQty + deltaQty)
//
// Outbound movements and priceless deltas leave the average unchanged.
// A resulting negative quantity is tolerated (oversell) but flagged with a
// StockWentNegativeEvent. TotalValue is always recomputed as qty * avg.
func (s *StockSummary) Apply(deltaQty decimal.Decimal, unitPrice *decimal.Decimal) error {
	if unitPrice != nil && unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	if deltaQty.IsPositive() && unitPrice != nil {
		newQty := s.TotalQty.Add(deltaQty)
		if newQty.IsZero() {
			s.AvgPurchasePrice = decimal.Zero
		} else {
			totalValue := s.TotalQty.Mul(s.AvgPurchasePrice).Add(deltaQty.Mul(*unitPrice))
			s.AvgPurchasePrice = totalValue.Div(newQty).Round(4)
		}
	}

	wasNonNegative := !s.TotalQty.IsNegative()
	s.TotalQty = s.TotalQty.Add(deltaQty)
	s.TotalValue = s.TotalQty.Mul(s.AvgPurchasePrice)
	s.LastUpdatedAt = time.Now()
	s.UpdatedAt = s.LastUpdatedAt
	s.IncrementVersion()

	if wasNonNegative && s.TotalQty.IsNegative() {
		s.AddDomainEvent(NewStockWentNegativeEvent(s, deltaQty))
	}
	return nil
}

// CanFulfill reports whether the cached quantity covers the requested amount
func (s *StockSummary) CanFulfill(qty decimal.Decimal) bool {
	return s.TotalQty.GreaterThanOrEqual(qty)
}
