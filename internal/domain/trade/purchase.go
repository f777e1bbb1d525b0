package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopbooks/backend/internal/domain/shared"
)

// PurchaseItem is one line of a purchase document
type PurchaseItem struct {
	shared.BaseEntity
	PurchaseID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (PurchaseItem) TableName() string {
	return "purchase_items"
}

// Purchase records goods bought from a vendor. The totals invariant
// total = subtotal - discount and due = total - paid is maintained at write
// time by the document itself; ledger effects (stock, bank, vendor due) are
// orchestrated by the application layer inside one database transaction.
type Purchase struct {
	shared.TenantAggregateRoot
	Number       string          `gorm:"type:varchar(50);not null"`
	VendorID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	VendorName   string          `gorm:"type:varchar(200);not null"`
	PurchaseDate time.Time       `gorm:"not null;index"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Discount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Paid         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Due          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Notes        string          `gorm:"type:varchar(500)"`

	Items []PurchaseItem `gorm:"foreignKey:PurchaseID;references:ID"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase creates an empty purchase document for a vendor
func NewPurchase(tenantID uuid.UUID, number string, vendorID uuid.UUID, vendorName string, purchaseDate time.Time) (*Purchase, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Purchase number cannot be empty")
	}
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor ID cannot be empty")
	}
	if vendorName == "" {
		return nil, shared.NewDomainError("INVALID_VENDOR_NAME", "Vendor name cannot be empty")
	}
	if purchaseDate.IsZero() {
		purchaseDate = time.Now()
	}

	return &Purchase{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		VendorID:            vendorID,
		VendorName:          vendorName,
		PurchaseDate:        purchaseDate,
		Subtotal:            decimal.Zero,
		Discount:            decimal.Zero,
		Total:               decimal.Zero,
		Paid:                decimal.Zero,
		Due:                 decimal.Zero,
		Items:               make([]PurchaseItem, 0),
	}, nil
}

// AddItem appends a line and recalculates the totals
func (p *Purchase) AddItem(productID uuid.UUID, productName string, quantity, unitPrice decimal.Decimal) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	item := PurchaseItem{
		BaseEntity:  shared.NewBaseEntity(),
		PurchaseID:  p.ID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   quantity.Mul(unitPrice),
	}
	p.Items = append(p.Items, item)
	p.recalcTotals()
	return nil
}

// ReplaceItems swaps the full item set, used by edit flows after the old
// ledger effects were reversed.
func (p *Purchase) ReplaceItems() {
	p.Items = make([]PurchaseItem, 0)
	p.recalcTotals()
}

// ApplyDiscount sets the document discount. It may not exceed the subtotal.
func (p *Purchase) ApplyDiscount(discount decimal.Decimal) error {
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if discount.GreaterThan(p.Subtotal) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed the subtotal")
	}
	p.Discount = discount
	p.recalcTotals()
	return nil
}

// SetPaid records the amount paid at document time; the remainder becomes
// the vendor due. Paying more than the total is rejected.
func (p *Purchase) SetPaid(paid decimal.Decimal) error {
	if paid.IsNegative() {
		return shared.NewDomainError("INVALID_PAID", "Paid amount cannot be negative")
	}
	if paid.GreaterThan(p.Total) {
		return shared.NewDomainError("INVALID_PAID", "Paid amount cannot exceed the total")
	}
	p.Paid = paid
	p.Due = p.Total.Sub(paid)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetNotes updates the free-form notes
func (p *Purchase) SetNotes(notes string) {
	p.Notes = notes
	p.UpdatedAt = time.Now()
}

// ChangeVendor re-targets the document at a different vendor
func (p *Purchase) ChangeVendor(vendorID uuid.UUID, vendorName string) error {
	if vendorID == uuid.Nil {
		return shared.NewDomainError("INVALID_VENDOR", "Vendor ID cannot be empty")
	}
	if vendorName == "" {
		return shared.NewDomainError("INVALID_VENDOR_NAME", "Vendor name cannot be empty")
	}
	p.VendorID = vendorID
	p.VendorName = vendorName
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// recalcTotals re-derives subtotal/total/due from the item lines, keeping
// paid and clamping discount into range.
func (p *Purchase) recalcTotals() {
	subtotal := decimal.Zero
	for i := range p.Items {
		subtotal = subtotal.Add(p.Items[i].LineTotal)
	}
	p.Subtotal = subtotal
	if p.Discount.GreaterThan(subtotal) {
		p.Discount = subtotal
	}
	p.Total = subtotal.Sub(p.Discount)
	if p.Paid.GreaterThan(p.Total) {
		p.Paid = p.Total
	}
	p.Due = p.Total.Sub(p.Paid)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
