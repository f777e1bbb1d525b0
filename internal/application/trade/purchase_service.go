package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appinventory "github.com/shopbooks/backend/internal/application/inventory"
	appledger "github.com/shopbooks/backend/internal/application/ledger"
	"github.com/shopbooks/backend/internal/domain/inventory"
	"github.com/shopbooks/backend/internal/domain/ledger"
	"github.com/shopbooks/backend/internal/domain/shared"
	"github.com/shopbooks/backend/internal/domain/trade"
)

// PurchaseService orchestrates purchase documents with their ledger effects.
// Creating a purchase moves stock in, pays the vendor from the bank for the
// paid portion and books the remainder as vendor due, all inside one
// database transaction. Editing reverses the old effects completely before
// re-posting the new ones, so the bank trail and vendor dues always net out.
type PurchaseService struct {
	scope  appledger.TransactionScope
	logger *zap.Logger
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(scope appledger.TransactionScope, logger *zap.Logger) *PurchaseService {
	return &PurchaseService{scope: scope, logger: logger}
}

// Create records a new purchase and posts its ledger effects
func (s *PurchaseService) Create(ctx context.Context, tenantID uuid.UUID, input CreatePurchaseInput) (*trade.Purchase, error) {
	var purchase *trade.Purchase
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		vendor, err := repos.Vendors().FindByIDForTenant(ctx, tenantID, input.VendorID)
		if err != nil {
			return err
		}

		number, err := repos.Purchases().GenerateNumber(ctx, tenantID)
		if err != nil {
			return err
		}
		purchase, err = trade.NewPurchase(tenantID, number, vendor.ID, vendor.Name, input.PurchaseDate)
		if err != nil {
			return err
		}
		shared.StampActor(ctx, purchase)

		for _, item := range input.Items {
			product, err := repos.Products().FindByIDForTenant(ctx, tenantID, item.ProductID)
			if err != nil {
				return err
			}
			if err := purchase.AddItem(product.ID, product.Name, item.Quantity, item.UnitPrice); err != nil {
				return err
			}
		}
		if err := purchase.ApplyDiscount(input.Discount); err != nil {
			return err
		}
		if err := purchase.SetPaid(input.Paid); err != nil {
			return err
		}
		purchase.SetNotes(input.Notes)

		if err := repos.Purchases().Save(ctx, purchase); err != nil {
			return err
		}
		return s.postEffects(ctx, repos, purchase)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("purchase_id", purchase.ID.String()),
		zap.String("number", purchase.Number),
		zap.String("total", purchase.Total.String()))
	return purchase, nil
}

// Get returns a single purchase with its items
func (s *PurchaseService) Get(ctx context.Context, tenantID, id uuid.UUID) (*trade.Purchase, error) {
	var purchase *trade.Purchase
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		var err error
		purchase, err = repos.Purchases().FindByIDForTenant(ctx, tenantID, id)
		return err
	})
	return purchase, err
}

// List returns a page of purchases
func (s *PurchaseService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[trade.Purchase], error) {
	filter.Normalize()
	var page *shared.Paginated[trade.Purchase]
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		items, err := repos.Purchases().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		total, err := repos.Purchases().CountForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		p := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
		page = &p
		return nil
	})
	return page, err
}

// Update rewrites a purchase. The old document's stock, bank and vendor-due
// effects are reversed in full, then the new document is posted as if
// created fresh. The net ledger movement equals the difference between the
// two versions.
func (s *PurchaseService) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdatePurchaseInput) (*trade.Purchase, error) {
	var purchase *trade.Purchase
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		var err error
		purchase, err = repos.Purchases().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}

		if err := s.reverseEffects(ctx, repos, purchase); err != nil {
			return err
		}

		if purchase.VendorID != input.VendorID {
			vendor, err := repos.Vendors().FindByIDForTenant(ctx, tenantID, input.VendorID)
			if err != nil {
				return err
			}
			if err := purchase.ChangeVendor(vendor.ID, vendor.Name); err != nil {
				return err
			}
		}

		purchase.ReplaceItems()
		for _, item := range input.Items {
			product, err := repos.Products().FindByIDForTenant(ctx, tenantID, item.ProductID)
			if err != nil {
				return err
			}
			if err := purchase.AddItem(product.ID, product.Name, item.Quantity, item.UnitPrice); err != nil {
				return err
			}
		}
		if err := purchase.ApplyDiscount(input.Discount); err != nil {
			return err
		}
		if err := purchase.SetPaid(input.Paid); err != nil {
			return err
		}
		purchase.SetNotes(input.Notes)
		if !input.PurchaseDate.IsZero() {
			purchase.PurchaseDate = input.PurchaseDate
		}

		if err := repos.Purchases().ReplaceItems(ctx, purchase); err != nil {
			return err
		}
		if err := repos.Purchases().Save(ctx, purchase); err != nil {
			return err
		}
		return s.postEffects(ctx, repos, purchase)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase updated",
		zap.String("tenant_id", tenantID.String()),
		zap.String("purchase_id", purchase.ID.String()))
	return purchase, nil
}

// Delete removes the purchase document rows. Posted stock, bank and
// vendor-due effects stay on the books; corrections are made with
// compensating adjustments, not by deleting documents.
func (s *PurchaseService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		if _, err := repos.Purchases().FindByIDForTenant(ctx, tenantID, id); err != nil {
			return err
		}
		return repos.Purchases().Delete(ctx, tenantID, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("purchase deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("purchase_id", id.String()))
	return nil
}

// postEffects posts the purchase's stock, bank and vendor-due movements
func (s *PurchaseService) postEffects(ctx context.Context, repos appledger.Repositories, purchase *trade.Purchase) error {
	refID := purchase.ID
	for i := range purchase.Items {
		item := &purchase.Items[i]
		price := item.UnitPrice
		_, err := appinventory.ApplyInScope(ctx, repos, purchase.TenantID, item.ProductID,
			inventory.StockEntryPurchase, item.Quantity, &price, purchase.PurchaseDate,
			&refID, "purchase", fmt.Sprintf("Purchase %s", purchase.Number))
		if err != nil {
			return err
		}
	}

	if purchase.Paid.IsPositive() {
		_, err := appledger.DebitInScope(ctx, repos, purchase.TenantID,
			ledger.BankCategoryPurchasePayment, purchase.Paid, purchase.PurchaseDate,
			fmt.Sprintf("Payment for purchase %s", purchase.Number), &refID, "purchase")
		if err != nil {
			return err
		}
	}

	if purchase.Due.IsPositive() {
		vendor, err := repos.Vendors().FindByIDForTenant(ctx, purchase.TenantID, purchase.VendorID)
		if err != nil {
			return err
		}
		if err := vendor.IncreaseDue(purchase.Due); err != nil {
			return err
		}
		if err := repos.Vendors().SaveWithLock(ctx, vendor); err != nil {
			return err
		}
	}
	return nil
}

// reverseEffects undoes a previously posted purchase with compensating rows:
// stock moves back out without repricing the average, the paid portion is
// credited back to the bank, and the vendor's booked due is released.
func (s *PurchaseService) reverseEffects(ctx context.Context, repos appledger.Repositories, purchase *trade.Purchase) error {
	refID := purchase.ID
	for i := range purchase.Items {
		item := &purchase.Items[i]
		_, err := appinventory.ApplyInScope(ctx, repos, purchase.TenantID, item.ProductID,
			inventory.StockEntryAdjustment, item.Quantity.Neg(), nil, purchase.PurchaseDate,
			&refID, "purchase_reversal", fmt.Sprintf("Reversal of purchase %s", purchase.Number))
		if err != nil {
			return err
		}
	}

	if purchase.Paid.IsPositive() {
		_, err := appledger.CreditInScope(ctx, repos, purchase.TenantID,
			ledger.BankCategoryPurchaseReversal, purchase.Paid, purchase.PurchaseDate,
			fmt.Sprintf("Reversal of payment for purchase %s", purchase.Number), &refID, "purchase")
		if err != nil {
			return err
		}
	}

	if purchase.Due.IsPositive() {
		vendor, err := repos.Vendors().FindByIDForTenant(ctx, purchase.TenantID, purchase.VendorID)
		if err != nil {
			return err
		}
		if err := vendor.ReceivePayment(purchase.Due); err != nil {
			return err
		}
		if err := repos.Vendors().SaveWithLock(ctx, vendor); err != nil {
			return err
		}
	}
	return nil
}
