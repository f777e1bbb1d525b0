package asset

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appledger "github.com/shopbooks/backend/internal/application/ledger"
	"github.com/shopbooks/backend/internal/domain/asset"
	"github.com/shopbooks/backend/internal/domain/ledger"
	"github.com/shopbooks/backend/internal/domain/shared"
)

// FixedAssetService manages depreciable assets and their ledger postings.
// Acquiring an asset pays the cost from the bank and books it into the
// "Fixed Assets" account through a system journal entry; selling an asset
// banks the proceeds.
type FixedAssetService struct {
	scope  appledger.TransactionScope
	logger *zap.Logger
}

// NewFixedAssetService creates a new fixed asset service
func NewFixedAssetService(scope appledger.TransactionScope, logger *zap.Logger) *FixedAssetService {
	return &FixedAssetService{scope: scope, logger: logger}
}

// CreateFixedAssetInput carries an asset acquisition request
type CreateFixedAssetInput struct {
	Name             string          `json:"name" binding:"required,max=200"`
	Code             string          `json:"code" binding:"required,max=50"`
	Cost             decimal.Decimal `json:"cost" binding:"required"`
	DepreciationRate decimal.Decimal `json:"depreciation_rate"`
	PurchaseDate     time.Time       `json:"purchase_date"`
}

// Create records an asset acquisition: the asset row, a bank debit for the
// cost and a system journal entry moving the cost from the bank account to
// the fixed assets account.
func (s *FixedAssetService) Create(ctx context.Context, tenantID uuid.UUID, input CreateFixedAssetInput) (*asset.FixedAsset, error) {
	fixedAsset, err := asset.NewFixedAsset(tenantID, input.Name, input.Code, input.Cost, input.DepreciationRate, input.PurchaseDate)
	if err != nil {
		return nil, err
	}
	shared.StampActor(ctx, fixedAsset)

	err = s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		if err := repos.FixedAssets().Save(ctx, fixedAsset); err != nil {
			return err
		}

		refID := fixedAsset.ID
		bankTx, err := appledger.DebitInScope(ctx, repos, tenantID,
			ledger.BankCategoryFixedAsset, fixedAsset.Cost, fixedAsset.PurchaseDate,
			fmt.Sprintf("Acquisition of %s", fixedAsset.Name), &refID, "fixed_asset")
		if err != nil {
			return err
		}

		bankAccount, err := repos.Accounts().FindOrCreateSystem(ctx, tenantID, ledger.AccountTypeBank)
		if err != nil {
			return err
		}
		assetAccount, err := repos.Accounts().FindOrCreateByName(ctx, tenantID,
			ledger.AccountTypeFixedAsset, "Fixed Assets", "FA")
		if err != nil {
			return err
		}
		if err := assetAccount.Credit(fixedAsset.Cost); err != nil {
			return err
		}
		if err := repos.Accounts().SaveWithLock(ctx, assetAccount); err != nil {
			return err
		}

		entry, err := ledger.NewJournalEntry(tenantID, ledger.JournalTypeAsset,
			assetAccount.ID, bankAccount.ID, fixedAsset.Cost, fixedAsset.PurchaseDate,
			fmt.Sprintf("Acquisition of %s", fixedAsset.Name), bankTx.ID.String())
		if err != nil {
			return err
		}
		shared.StampActor(ctx, entry)
		return repos.JournalEntries().Save(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("fixed asset created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("asset_id", fixedAsset.ID.String()),
		zap.String("cost", fixedAsset.Cost.String()))
	return fixedAsset, nil
}

// Get returns a single fixed asset
func (s *FixedAssetService) Get(ctx context.Context, tenantID, id uuid.UUID) (*asset.FixedAsset, error) {
	var fixedAsset *asset.FixedAsset
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		var err error
		fixedAsset, err = repos.FixedAssets().FindByIDForTenant(ctx, tenantID, id)
		return err
	})
	return fixedAsset, err
}

// List returns a page of fixed assets
func (s *FixedAssetService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[asset.FixedAsset], error) {
	filter.Normalize()
	var page *shared.Paginated[asset.FixedAsset]
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		items, err := repos.FixedAssets().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		total, err := repos.FixedAssets().CountForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		p := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
		page = &p
		return nil
	})
	return page, err
}

// ApplyDepreciation accrues the given number of months of depreciation on
// one asset and mirrors the write-down in the fixed assets account.
func (s *FixedAssetService) ApplyDepreciation(ctx context.Context, tenantID, id uuid.UUID, months int) (*asset.FixedAsset, error) {
	var fixedAsset *asset.FixedAsset
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		var err error
		fixedAsset, err = repos.FixedAssets().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}

		before := fixedAsset.CurrentValue
		if err := fixedAsset.ApplyDepreciation(months); err != nil {
			return err
		}
		if err := repos.FixedAssets().SaveWithLock(ctx, fixedAsset); err != nil {
			return err
		}

		writeDown := before.Sub(fixedAsset.CurrentValue)
		if writeDown.IsPositive() {
			assetAccount, err := repos.Accounts().FindOrCreateByName(ctx, tenantID,
				ledger.AccountTypeFixedAsset, "Fixed Assets", "FA")
			if err != nil {
				return err
			}
			if err := assetAccount.Debit(writeDown); err != nil {
				return err
			}
			if err := repos.Accounts().SaveWithLock(ctx, assetAccount); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("depreciation applied",
		zap.String("tenant_id", tenantID.String()),
		zap.String("asset_id", id.String()),
		zap.Int("months", months))
	return fixedAsset, nil
}

// DepreciateAll accrues months of depreciation across every active asset
func (s *FixedAssetService) DepreciateAll(ctx context.Context, tenantID uuid.UUID, months int) (int, error) {
	var assetIDs []uuid.UUID
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		active, err := repos.FixedAssets().FindActive(ctx, tenantID)
		if err != nil {
			return err
		}
		for i := range active {
			assetIDs = append(assetIDs, active[i].ID)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, id := range assetIDs {
		if _, err := s.ApplyDepreciation(ctx, tenantID, id, months); err != nil {
			return 0, err
		}
	}
	return len(assetIDs), nil
}

// Dispose writes the asset off. Its remaining book value leaves the fixed
// assets account with no bank movement.
func (s *FixedAssetService) Dispose(ctx context.Context, tenantID, id uuid.UUID) (*asset.FixedAsset, error) {
	var fixedAsset *asset.FixedAsset
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		var err error
		fixedAsset, err = repos.FixedAssets().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}

		remaining := fixedAsset.CurrentValue
		if err := fixedAsset.Dispose(); err != nil {
			return err
		}
		if err := repos.FixedAssets().SaveWithLock(ctx, fixedAsset); err != nil {
			return err
		}
		return s.writeOff(ctx, repos, tenantID, remaining)
	})
	return fixedAsset, err
}

// Sell transfers the asset out for money: the proceeds enter the bank and
// the remaining book value leaves the fixed assets account.
func (s *FixedAssetService) Sell(ctx context.Context, tenantID, id uuid.UUID, amount decimal.Decimal) (*asset.FixedAsset, error) {
	var fixedAsset *asset.FixedAsset
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		var err error
		fixedAsset, err = repos.FixedAssets().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}

		remaining := fixedAsset.CurrentValue
		if err := fixedAsset.Sell(amount); err != nil {
			return err
		}
		if err := repos.FixedAssets().SaveWithLock(ctx, fixedAsset); err != nil {
			return err
		}

		if amount.IsPositive() {
			refID := fixedAsset.ID
			_, err := appledger.CreditInScope(ctx, repos, tenantID,
				ledger.BankCategoryFixedAsset, amount, time.Now(),
				fmt.Sprintf("Sale of %s", fixedAsset.Name), &refID, "fixed_asset")
			if err != nil {
				return err
			}
		}
		return s.writeOff(ctx, repos, tenantID, remaining)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("fixed asset sold",
		zap.String("tenant_id", tenantID.String()),
		zap.String("asset_id", id.String()),
		zap.String("amount", amount.String()))
	return fixedAsset, nil
}

func (s *FixedAssetService) writeOff(ctx context.Context, repos appledger.Repositories, tenantID uuid.UUID, remaining decimal.Decimal) error {
	if !remaining.IsPositive() {
		return nil
	}
	assetAccount, err := repos.Accounts().FindOrCreateByName(ctx, tenantID,
		ledger.AccountTypeFixedAsset, "Fixed Assets", "FA")
	if err != nil {
		return err
	}
	if err := assetAccount.Debit(remaining); err != nil {
		return err
	}
	return repos.Accounts().SaveWithLock(ctx, assetAccount)
}
