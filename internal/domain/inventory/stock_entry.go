package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopbooks/backend/internal/domain/shared"
)

// StockEntryType classifies a stock movement
type StockEntryType string

const (
	StockEntryOpening    StockEntryType = "opening"
	StockEntryAdjustment StockEntryType = "adjustment"
	StockEntryPurchase   StockEntryType = "purchase"
	StockEntrySale       StockEntryType = "sale"
)

// IsValid checks if the entry type is valid
func (t StockEntryType) IsValid() bool {
	switch t {
	case StockEntryOpening, StockEntryAdjustment, StockEntryPurchase, StockEntrySale:
		return true
	}
	return false
}

// StockEntry is the append-only audit row written with every StockSummary
// mutation. Quantity is signed; reversing a movement means inserting a new
// entry with the opposite sign, never editing history. PurchasePrice records
// the unit cost the movement was valued at (the line cost for inbound rows,
// the average cost at the time for sales).
type StockEntry struct {
	shared.TenantAggregateRoot
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type          StockEntryType  `gorm:"type:varchar(20);not null;index"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	EntryDate     time.Time       `gorm:"not null;index"`
	ReferenceID   *uuid.UUID      `gorm:"type:uuid;index"`
	ReferenceType string          `gorm:"type:varchar(50)"`
	Notes         string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (StockEntry) TableName() string {
	return "stock_entries"
}

// NewStockEntry creates a new audit row for a stock movement
func NewStockEntry(
	tenantID, productID uuid.UUID,
	entryType StockEntryType,
	quantity decimal.Decimal,
	purchasePrice decimal.Decimal,
	entryDate time.Time,
	referenceID *uuid.UUID,
	referenceType string,
	notes string,
) (*StockEntry, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !entryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTRY_TYPE", "Stock entry type is not valid")
	}
	if quantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Stock entry quantity cannot be zero")
	}
	if purchasePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Purchase price cannot be negative")
	}
	if entryDate.IsZero() {
		entryDate = time.Now()
	}

	return &StockEntry{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProductID:           productID,
		Type:                entryType,
		Quantity:            quantity,
		PurchasePrice:       purchasePrice,
		EntryDate:           entryDate,
		ReferenceID:         referenceID,
		ReferenceType:       referenceType,
		Notes:               notes,
	}, nil
}

// IsInbound returns true for positive movements
func (e *StockEntry) IsInbound() bool {
	return e.Quantity.IsPositive()
}
