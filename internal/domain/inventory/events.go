package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopbooks/backend/internal/domain/shared"
)

// EventTypeStockWentNegative is emitted when a movement drives a product's
// cached quantity below zero.
const EventTypeStockWentNegative = "inventory.stock.went_negative"

// StockWentNegativeEvent flags an oversold product
type StockWentNegativeEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID
	TotalQty  decimal.Decimal
	DeltaQty  decimal.Decimal
}

// NewStockWentNegativeEvent creates a new StockWentNegativeEvent
func NewStockWentNegativeEvent(summary *StockSummary, deltaQty decimal.Decimal) *StockWentNegativeEvent {
	return &StockWentNegativeEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockWentNegative, summary.TenantID),
		ProductID:       summary.ProductID,
		TotalQty:        summary.TotalQty,
		DeltaQty:        deltaQty,
	}
}
