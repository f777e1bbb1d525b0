package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appinventory "github.com/shopbooks/backend/internal/application/inventory"
	appledger "github.com/shopbooks/backend/internal/application/ledger"
	"github.com/shopbooks/backend/internal/domain/inventory"
	"github.com/shopbooks/backend/internal/domain/ledger"
	"github.com/shopbooks/backend/internal/domain/shared"
	"github.com/shopbooks/backend/internal/domain/trade"
)

// SaleService orchestrates sale documents. Sales are created pending and
// post no ledger effects until completed; completion deducts stock at the
// current average cost, banks the collected amount and books the remainder
// as customer due. Returning a completed sale reverses those effects with
// compensating rows.
type SaleService struct {
	scope  appledger.TransactionScope
	logger *zap.Logger
}

// NewSaleService creates a new sale service
func NewSaleService(scope appledger.TransactionScope, logger *zap.Logger) *SaleService {
	return &SaleService{scope: scope, logger: logger}
}

// Create records a new pending sale
func (s *SaleService) Create(ctx context.Context, tenantID uuid.UUID, input CreateSaleInput) (*trade.Sale, error) {
	var sale *trade.Sale
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		customer, err := repos.Customers().FindByIDForTenant(ctx, tenantID, input.CustomerID)
		if err != nil {
			return err
		}

		number, err := repos.Sales().GenerateNumber(ctx, tenantID)
		if err != nil {
			return err
		}
		sale, err = trade.NewSale(tenantID, number, customer.ID, customer.Name, input.SaleDate)
		if err != nil {
			return err
		}
		shared.StampActor(ctx, sale)
		if err := s.fillDocument(ctx, repos, sale, input.Items, input.Discount, input.Paid, input.Notes); err != nil {
			return err
		}
		return repos.Sales().Save(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("sale_id", sale.ID.String()),
		zap.String("number", sale.Number))
	return sale, nil
}

// Get returns a single sale with its items
func (s *SaleService) Get(ctx context.Context, tenantID, id uuid.UUID) (*trade.Sale, error) {
	var sale *trade.Sale
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		var err error
		sale, err = repos.Sales().FindByIDForTenant(ctx, tenantID, id)
		return err
	})
	return sale, err
}

// List returns a page of sales
func (s *SaleService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[trade.Sale], error) {
	filter.Normalize()
	var page *shared.Paginated[trade.Sale]
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		items, err := repos.Sales().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		total, err := repos.Sales().CountForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		p := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
		page = &p
		return nil
	})
	return page, err
}

// Update rewrites a pending sale. Completed and terminal sales are immutable.
func (s *SaleService) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateSaleInput) (*trade.Sale, error) {
	var sale *trade.Sale
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		var err error
		sale, err = repos.Sales().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if !sale.CanModify() {
			return shared.ErrInvalidState
		}

		if sale.CustomerID != input.CustomerID {
			customer, err := repos.Customers().FindByIDForTenant(ctx, tenantID, input.CustomerID)
			if err != nil {
				return err
			}
			sale.CustomerID = customer.ID
			sale.CustomerName = customer.Name
		}
		if !input.SaleDate.IsZero() {
			sale.SaleDate = input.SaleDate
		}

		if err := sale.ReplaceItems(); err != nil {
			return err
		}
		if err := s.fillDocument(ctx, repos, sale, input.Items, input.Discount, input.Paid, input.Notes); err != nil {
			return err
		}
		if err := repos.Sales().ReplaceItems(ctx, sale); err != nil {
			return err
		}
		return repos.Sales().Save(ctx, sale)
	})
	return sale, err
}

// Complete transitions a pending sale to completed and posts its ledger
// effects: stock out per line, the collected amount into the bank and any
// remainder onto the customer's due.
func (s *SaleService) Complete(ctx context.Context, tenantID, id uuid.UUID) (*trade.Sale, error) {
	var sale *trade.Sale
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		var err error
		sale, err = repos.Sales().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := sale.Complete(); err != nil {
			return err
		}
		if err := repos.Sales().Save(ctx, sale); err != nil {
			return err
		}

		refID := sale.ID
		for i := range sale.Items {
			item := &sale.Items[i]
			_, err := appinventory.ApplyInScope(ctx, repos, tenantID, item.ProductID,
				inventory.StockEntrySale, item.Quantity.Neg(), nil, sale.SaleDate,
				&refID, "sale", fmt.Sprintf("Sale %s", sale.Number))
			if err != nil {
				return err
			}
		}

		if sale.Paid.IsPositive() {
			_, err := appledger.CreditInScope(ctx, repos, tenantID,
				ledger.BankCategorySalesReceipt, sale.Paid, sale.SaleDate,
				fmt.Sprintf("Receipt for sale %s", sale.Number), &refID, "sale")
			if err != nil {
				return err
			}
		}

		if sale.Due.IsPositive() {
			customer, err := repos.Customers().FindByIDForTenant(ctx, tenantID, sale.CustomerID)
			if err != nil {
				return err
			}
			if err := customer.IncreaseDue(sale.Due); err != nil {
				return err
			}
			if err := repos.Customers().SaveWithLock(ctx, customer); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale completed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("sale_id", sale.ID.String()),
		zap.String("total", sale.Total.String()))
	return sale, nil
}

// Cancel discards a pending sale. Nothing was posted, nothing is reversed.
func (s *SaleService) Cancel(ctx context.Context, tenantID, id uuid.UUID) (*trade.Sale, error) {
	var sale *trade.Sale
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		var err error
		sale, err = repos.Sales().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := sale.Cancel(); err != nil {
			return err
		}
		return repos.Sales().Save(ctx, sale)
	})
	return sale, err
}

// Return reverses a completed sale: stock comes back at the unchanged
// average cost, the collected amount is refunded from the bank and any
// booked customer due is released.
func (s *SaleService) Return(ctx context.Context, tenantID, id uuid.UUID) (*trade.Sale, error) {
	var sale *trade.Sale
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		var err error
		sale, err = repos.Sales().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := sale.Return(); err != nil {
			return err
		}
		if err := repos.Sales().Save(ctx, sale); err != nil {
			return err
		}

		refID := sale.ID
		for i := range sale.Items {
			item := &sale.Items[i]
			_, err := appinventory.ApplyInScope(ctx, repos, tenantID, item.ProductID,
				inventory.StockEntrySale, item.Quantity, nil, sale.SaleDate,
				&refID, "sale_return", fmt.Sprintf("Return of sale %s", sale.Number))
			if err != nil {
				return err
			}
		}

		if sale.Paid.IsPositive() {
			_, err := appledger.DebitInScope(ctx, repos, tenantID,
				ledger.BankCategorySalesRefund, sale.Paid, sale.SaleDate,
				fmt.Sprintf("Refund for sale %s", sale.Number), &refID, "sale")
			if err != nil {
				return err
			}
		}

		if sale.Due.IsPositive() {
			customer, err := repos.Customers().FindByIDForTenant(ctx, tenantID, sale.CustomerID)
			if err != nil {
				return err
			}
			if err := customer.ReceivePayment(sale.Due); err != nil {
				return err
			}
			if err := repos.Customers().SaveWithLock(ctx, customer); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale returned",
		zap.String("tenant_id", tenantID.String()),
		zap.String("sale_id", sale.ID.String()))
	return sale, nil
}

// Delete removes a pending sale. Posted sales must be returned instead.
func (s *SaleService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		sale, err := repos.Sales().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if !sale.CanModify() {
			return shared.ErrInvalidState
		}
		return repos.Sales().Delete(ctx, tenantID, id)
	})
}

func (s *SaleService) fillDocument(ctx context.Context, repos appledger.Repositories, sale *trade.Sale, items []ItemInput, discount, paid decimal.Decimal, notes string) error {
	for _, item := range items {
		product, err := repos.Products().FindByIDForTenant(ctx, sale.TenantID, item.ProductID)
		if err != nil {
			return err
		}
		if err := sale.AddItem(product.ID, product.Name, item.Quantity, item.UnitPrice); err != nil {
			return err
		}
	}
	if err := sale.ApplyDiscount(discount); err != nil {
		return err
	}
	if err := sale.SetPaid(paid); err != nil {
		return err
	}
	sale.Notes = notes
	return nil
}
