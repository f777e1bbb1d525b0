package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopbooks/backend/internal/domain/shared"
)

// SaleStatus is the lifecycle state of a sale
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusCancelled SaleStatus = "cancelled"
	SaleStatusReturned  SaleStatus = "returned"
)

// IsValid checks if the status is valid
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusPending, SaleStatusCompleted, SaleStatusCancelled, SaleStatusReturned:
		return true
	}
	return false
}

// IsTerminal returns true when no further transitions are allowed
func (s SaleStatus) IsTerminal() bool {
	return s == SaleStatusCancelled || s == SaleStatusReturned
}

// SaleItem is one line of a sale document
type SaleItem struct {
	shared.BaseEntity
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (SaleItem) TableName() string {
	return "sale_items"
}

// Sale records goods sold to a customer (POS checkout or invoice). Ledger
// effects are posted on completion, not creation: pending -> completed
// deducts stock and posts bank/customer-due movements; pending -> cancelled
// discards the document; completed -> returned reverses the posted effects
// with new compensating rows. Only pending sales are editable or deletable.
type Sale struct {
	shared.TenantAggregateRoot
	Number     string          `gorm:"type:varchar(50);not null"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName string        `gorm:"type:varchar(200);not null"`
	SaleDate   time.Time       `gorm:"not null;index"`
	Status     SaleStatus      `gorm:"type:varchar(20);not null;index;default:'pending'"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Discount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Paid       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Due        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Notes      string          `gorm:"type:varchar(500)"`
	CompletedAt *time.Time
	ReturnedAt  *time.Time

	Items []SaleItem `gorm:"foreignKey:SaleID;references:ID"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a pending sale document for a customer
func NewSale(tenantID uuid.UUID, number string, customerID uuid.UUID, customerName string, saleDate time.Time) (*Sale, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Sale number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if saleDate.IsZero() {
		saleDate = time.Now()
	}

	return &Sale{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		CustomerID:          customerID,
		CustomerName:        customerName,
		SaleDate:            saleDate,
		Status:              SaleStatusPending,
		Subtotal:            decimal.Zero,
		Discount:            decimal.Zero,
		Total:               decimal.Zero,
		Paid:                decimal.Zero,
		Due:                 decimal.Zero,
		Items:               make([]SaleItem, 0),
	}, nil
}

// CanModify returns true while the document is still editable
func (s *Sale) CanModify() bool {
	return s.Status == SaleStatusPending
}

// AddItem appends a line and recalculates the totals
func (s *Sale) AddItem(productID uuid.UUID, productName string, quantity, unitPrice decimal.Decimal) error {
	if !s.CanModify() {
		return shared.ErrInvalidState
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	item := SaleItem{
		BaseEntity:  shared.NewBaseEntity(),
		SaleID:      s.ID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   quantity.Mul(unitPrice),
	}
	s.Items = append(s.Items, item)
	s.recalcTotals()
	return nil
}

// ReplaceItems clears the item set of a pending sale for re-entry
func (s *Sale) ReplaceItems() error {
	if !s.CanModify() {
		return shared.ErrInvalidState
	}
	s.Items = make([]SaleItem, 0)
	s.recalcTotals()
	return nil
}

// ApplyDiscount sets the document discount. It may not exceed the subtotal.
func (s *Sale) ApplyDiscount(discount decimal.Decimal) error {
	if !s.CanModify() {
		return shared.ErrInvalidState
	}
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if discount.GreaterThan(s.Subtotal) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed the subtotal")
	}
	s.Discount = discount
	s.recalcTotals()
	return nil
}

// SetPaid records the amount collected; the remainder becomes customer due
func (s *Sale) SetPaid(paid decimal.Decimal) error {
	if !s.CanModify() {
		return shared.ErrInvalidState
	}
	if paid.IsNegative() {
		return shared.NewDomainError("INVALID_PAID", "Paid amount cannot be negative")
	}
	if paid.GreaterThan(s.Total) {
		return shared.NewDomainError("INVALID_PAID", "Paid amount cannot exceed the total")
	}
	s.Paid = paid
	s.Due = s.Total.Sub(paid)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Complete transitions pending -> completed. The caller posts the stock and
// ledger effects in the same transaction.
func (s *Sale) Complete() error {
	if s.Status != SaleStatusPending {
		return shared.ErrInvalidState
	}
	if len(s.Items) == 0 {
		return shared.NewDomainError("EMPTY_SALE", "Cannot complete a sale without items")
	}
	now := time.Now()
	s.Status = SaleStatusCompleted
	s.CompletedAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()
	return nil
}

// Cancel transitions pending -> cancelled. No ledger effects were posted.
func (s *Sale) Cancel() error {
	if s.Status != SaleStatusPending {
		return shared.ErrInvalidState
	}
	s.Status = SaleStatusCancelled
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Return transitions completed -> returned. The caller reverses the posted
// effects with compensating rows in the same transaction.
func (s *Sale) Return() error {
	if s.Status != SaleStatusCompleted {
		return shared.ErrInvalidState
	}
	now := time.Now()
	s.Status = SaleStatusReturned
	s.ReturnedAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()
	return nil
}

func (s *Sale) recalcTotals() {
	subtotal := decimal.Zero
	for i := range s.Items {
		subtotal = subtotal.Add(s.Items[i].LineTotal)
	}
	s.Subtotal = subtotal
	if s.Discount.GreaterThan(subtotal) {
		s.Discount = subtotal
	}
	s.Total = subtotal.Sub(s.Discount)
	if s.Paid.GreaterThan(s.Total) {
		s.Paid = s.Total
	}
	s.Due = s.Total.Sub(s.Paid)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
