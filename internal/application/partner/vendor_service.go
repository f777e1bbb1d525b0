package partner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appledger "github.com/shopbooks/backend/internal/application/ledger"
	"github.com/shopbooks/backend/internal/domain/ledger"
	"github.com/shopbooks/backend/internal/domain/partner"
	"github.com/shopbooks/backend/internal/domain/shared"
)

// VendorService manages vendors and standalone vendor payments. Paying down
// a vendor due debits the bank and reduces the due in one transaction.
type VendorService struct {
	scope  appledger.TransactionScope
	logger *zap.Logger
}

// NewVendorService creates a new vendor service
func NewVendorService(scope appledger.TransactionScope, logger *zap.Logger) *VendorService {
	return &VendorService{scope: scope, logger: logger}
}

// CreateVendorInput carries a vendor creation request
type CreateVendorInput struct {
	Code       string          `json:"code" binding:"required,max=50"`
	Name       string          `json:"name" binding:"required,max=200"`
	Phone      string          `json:"phone" binding:"max=50"`
	Email      string          `json:"email" binding:"omitempty,email,max=200"`
	Address    string          `json:"address" binding:"max=500"`
	OpeningDue decimal.Decimal `json:"opening_due"`
}

// UpdateVendorInput carries a vendor update request
type UpdateVendorInput struct {
	Name    string `json:"name" binding:"required,max=200"`
	Phone   string `json:"phone" binding:"max=50"`
	Email   string `json:"email" binding:"omitempty,email,max=200"`
	Address string `json:"address" binding:"max=500"`
}

// PayVendorInput carries a standalone due payment request
type PayVendorInput struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
}

// Create registers a new vendor. The code must be unique within the tenant.
func (s *VendorService) Create(ctx context.Context, tenantID uuid.UUID, input CreateVendorInput) (*partner.Vendor, error) {
	var vendor *partner.Vendor
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		existing, err := repos.Vendors().FindByCode(ctx, tenantID, input.Code)
		if err != nil && !shared.IsDomainErrorWithCode(err, "NOT_FOUND") {
			return err
		}
		if existing != nil {
			return shared.ErrAlreadyExists
		}

		vendor, err = partner.NewVendor(tenantID, input.Code, input.Name, input.OpeningDue)
		if err != nil {
			return err
		}
		shared.StampActor(ctx, vendor)
		vendor.UpdateContact(input.Phone, input.Email, input.Address)
		return repos.Vendors().Save(ctx, vendor)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("vendor created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("vendor_id", vendor.ID.String()))
	return vendor, nil
}

// Get returns a single vendor
func (s *VendorService) Get(ctx context.Context, tenantID, id uuid.UUID) (*partner.Vendor, error) {
	var vendor *partner.Vendor
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		var err error
		vendor, err = repos.Vendors().FindByIDForTenant(ctx, tenantID, id)
		return err
	})
	return vendor, err
}

// List returns a page of vendors
func (s *VendorService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[partner.Vendor], error) {
	filter.Normalize()
	var page *shared.Paginated[partner.Vendor]
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		items, err := repos.Vendors().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		total, err := repos.Vendors().CountForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		p := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
		page = &p
		return nil
	})
	return page, err
}

// Update changes a vendor's name and contact details
func (s *VendorService) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateVendorInput) (*partner.Vendor, error) {
	var vendor *partner.Vendor
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		var err error
		vendor, err = repos.Vendors().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := vendor.Rename(input.Name); err != nil {
			return err
		}
		vendor.UpdateContact(input.Phone, input.Email, input.Address)
		return repos.Vendors().SaveWithLock(ctx, vendor)
	})
	return vendor, err
}

// Pay records a standalone payment against the vendor's outstanding due:
// the bank is debited and the due reduced inside one transaction. Paying
// more than is owed is rejected.
func (s *VendorService) Pay(ctx context.Context, tenantID, id uuid.UUID, input PayVendorInput) (*partner.Vendor, error) {
	var vendor *partner.Vendor
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		var err error
		vendor, err = repos.Vendors().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := vendor.ReceivePayment(input.Amount); err != nil {
			return err
		}
		if err := repos.Vendors().SaveWithLock(ctx, vendor); err != nil {
			return err
		}

		description := input.Description
		if description == "" {
			description = fmt.Sprintf("Payment to vendor %s", vendor.Name)
		}
		refID := vendor.ID
		_, err = appledger.DebitInScope(ctx, repos, tenantID,
			ledger.BankCategoryVendorPayment, input.Amount, time.Now(),
			description, &refID, "vendor")
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("vendor paid",
		zap.String("tenant_id", tenantID.String()),
		zap.String("vendor_id", id.String()),
		zap.String("amount", input.Amount.String()))
	return vendor, nil
}

// Delete removes a vendor with no purchase history and no outstanding due
func (s *VendorService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		vendor, err := repos.Vendors().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if vendor.HasOutstandingDue() {
			return shared.ErrHasDependents
		}
		count, err := repos.Purchases().CountByVendor(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return shared.ErrHasDependents
		}
		return repos.Vendors().Delete(ctx, tenantID, id)
	})
}
