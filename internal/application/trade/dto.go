package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemInput is one document line in a purchase or sale request
type ItemInput struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreatePurchaseInput carries a purchase creation request
type CreatePurchaseInput struct {
	VendorID     uuid.UUID       `json:"vendor_id" binding:"required"`
	PurchaseDate time.Time       `json:"purchase_date"`
	Items        []ItemInput     `json:"items" binding:"required,min=1,dive"`
	Discount     decimal.Decimal `json:"discount"`
	Paid         decimal.Decimal `json:"paid"`
	Notes        string          `json:"notes" binding:"max=500"`
}

// UpdatePurchaseInput carries a full purchase rewrite request. The previous
// ledger effects are reversed and the document is re-posted from scratch.
type UpdatePurchaseInput struct {
	VendorID     uuid.UUID       `json:"vendor_id" binding:"required"`
	PurchaseDate time.Time       `json:"purchase_date"`
	Items        []ItemInput     `json:"items" binding:"required,min=1,dive"`
	Discount     decimal.Decimal `json:"discount"`
	Paid         decimal.Decimal `json:"paid"`
	Notes        string          `json:"notes" binding:"max=500"`
}

// CreateSaleInput carries a sale creation request. Sales are created pending
// and post no ledger effects until completed.
type CreateSaleInput struct {
	CustomerID uuid.UUID       `json:"customer_id" binding:"required"`
	SaleDate   time.Time       `json:"sale_date"`
	Items      []ItemInput     `json:"items" binding:"required,min=1,dive"`
	Discount   decimal.Decimal `json:"discount"`
	Paid       decimal.Decimal `json:"paid"`
	Notes      string          `json:"notes" binding:"max=500"`
}

// UpdateSaleInput carries a rewrite of a pending sale
type UpdateSaleInput struct {
	CustomerID uuid.UUID       `json:"customer_id" binding:"required"`
	SaleDate   time.Time       `json:"sale_date"`
	Items      []ItemInput     `json:"items" binding:"required,min=1,dive"`
	Discount   decimal.Decimal `json:"discount"`
	Paid       decimal.Decimal `json:"paid"`
	Notes      string          `json:"notes" binding:"max=500"`
}
