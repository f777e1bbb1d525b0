package asset

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopbooks/backend/internal/domain/shared"
)

// FixedAssetStatus is the lifecycle state of a fixed asset
type FixedAssetStatus string

const (
	FixedAssetActive   FixedAssetStatus = "active"
	FixedAssetDisposed FixedAssetStatus = "disposed"
	FixedAssetSold     FixedAssetStatus = "sold"
)

// IsValid checks if the status is valid
func (s FixedAssetStatus) IsValid() bool {
	switch s {
	case FixedAssetActive, FixedAssetDisposed, FixedAssetSold:
		return true
	}
	return false
}

// IsTerminal returns true for disposed and sold assets; neither state
// permits further transitions or depreciation.
func (s FixedAssetStatus) IsTerminal() bool {
	return s == FixedAssetDisposed || s == FixedAssetSold
}

// monthsPerYear converts the annual depreciation rate to a monthly accrual
var monthsPerYear = decimal.NewFromInt(12)
var hundred = decimal.NewFromInt(100)

// FixedAsset is a depreciable asset. CurrentValue always equals
// cost - accumulated depreciation and never goes negative; depreciation is
// clamped at cost and frozen once the asset leaves the active state.
type FixedAsset struct {
	shared.TenantAggregateRoot
	Name                    string           `gorm:"type:varchar(200);not null"`
	Code                    string           `gorm:"type:varchar(50);not null"`
	Cost                    decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	DepreciationRate        decimal.Decimal  `gorm:"type:decimal(8,4);not null"` // annual percentage
	AccumulatedDepreciation decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	CurrentValue            decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	PurchaseDate            time.Time        `gorm:"not null"`
	Status                  FixedAssetStatus `gorm:"type:varchar(20);not null;index;default:'active'"`
	SoldAmount              *decimal.Decimal `gorm:"type:decimal(18,4)"`
	DisposedAt              *time.Time
}

// TableName returns the table name for GORM
func (FixedAsset) TableName() string {
	return "fixed_assets"
}

// NewFixedAsset creates a new active fixed asset
func NewFixedAsset(tenantID uuid.UUID, name, code string, cost, depreciationRate decimal.Decimal, purchaseDate time.Time) (*FixedAsset, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ASSET_NAME", "Asset name cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_ASSET_CODE", "Asset code cannot be empty")
	}
	if cost.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_COST", "Asset cost must be positive")
	}
	if depreciationRate.IsNegative() || depreciationRate.GreaterThan(hundred) {
		return nil, shared.NewDomainError("INVALID_RATE", "Depreciation rate must be between 0 and 100")
	}
	if purchaseDate.IsZero() {
		purchaseDate = time.Now()
	}

	return &FixedAsset{
		TenantAggregateRoot:     shared.NewTenantAggregateRoot(tenantID),
		Name:                    name,
		Code:                    code,
		Cost:                    cost,
		DepreciationRate:        depreciationRate,
		AccumulatedDepreciation: decimal.Zero,
		CurrentValue:            cost,
		PurchaseDate:            purchaseDate,
		Status:                  FixedAssetActive,
	}, nil
}

// MonthlyDepreciation returns cost * rate / 100 / 12
func (a *FixedAsset) MonthlyDepreciation() decimal.Decimal {
	return a.Cost.Mul(a.DepreciationRate).Div(hundred).Div(monthsPerYear)
}

// ApplyDepreciation accrues the given number of months of straight-line
// depreciation, clamped so accumulated depreciation never exceeds cost.
func (a *FixedAsset) ApplyDepreciation(months int) error {
	if a.Status != FixedAssetActive {
		return shared.ErrInvalidState
	}
	if months <= 0 {
		return shared.NewDomainError("INVALID_MONTHS", "Months must be positive")
	}

	accrual := a.MonthlyDepreciation().Mul(decimal.NewFromInt(int64(months)))
	a.AccumulatedDepreciation = a.AccumulatedDepreciation.Add(accrual)
	if a.AccumulatedDepreciation.GreaterThan(a.Cost) {
		a.AccumulatedDepreciation = a.Cost
	}
	a.CurrentValue = a.Cost.Sub(a.AccumulatedDepreciation)
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// Dispose transitions active -> disposed (terminal)
func (a *FixedAsset) Dispose() error {
	if a.Status != FixedAssetActive {
		return shared.ErrInvalidState
	}
	now := time.Now()
	a.Status = FixedAssetDisposed
	a.DisposedAt = &now
	a.UpdatedAt = now
	a.IncrementVersion()
	return nil
}

// Sell transitions active -> sold (terminal), recording the sale amount
func (a *FixedAsset) Sell(amount decimal.Decimal) error {
	if a.Status != FixedAssetActive {
		return shared.ErrInvalidState
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Sale amount cannot be negative")
	}
	now := time.Now()
	a.Status = FixedAssetSold
	a.SoldAmount = &amount
	a.DisposedAt = &now
	a.UpdatedAt = now
	a.IncrementVersion()
	return nil
}
