package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shopbooks/backend/internal/domain/ledger"
	"github.com/shopbooks/backend/internal/domain/shared"
)

// AccountService manages the tenant's chart of accounts
type AccountService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewAccountService creates a new account service
func NewAccountService(scope TransactionScope, logger *zap.Logger) *AccountService {
	return &AccountService{scope: scope, logger: logger}
}

// CreateAccountInput carries an account creation request
type CreateAccountInput struct {
	Type           string          `json:"type" binding:"required,oneof=bank fixed_asset expense asset liability equity income"`
	Name           string          `json:"name" binding:"required,max=200"`
	Code           string          `json:"code" binding:"required,max=50"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// UpdateAccountInput carries an account rename request
type UpdateAccountInput struct {
	Name string `json:"name" binding:"required,max=200"`
}

// Create adds a user-defined account to the chart
func (s *AccountService) Create(ctx context.Context, tenantID uuid.UUID, input CreateAccountInput) (*ledger.Account, error) {
	account, err := ledger.NewAccount(tenantID, ledger.AccountType(input.Type), input.Name, input.Code, input.OpeningBalance)
	if err != nil {
		return nil, err
	}
	shared.StampActor(ctx, account)

	err = s.scope.Execute(ctx, func(repos Repositories) error {
		return repos.Accounts().Save(ctx, account)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("account created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("account_id", account.ID.String()),
		zap.String("type", input.Type))
	return account, nil
}

// Get returns a single account
func (s *AccountService) Get(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Account, error) {
	var account *ledger.Account
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		var err error
		account, err = repos.Accounts().FindByIDForTenant(ctx, tenantID, id)
		return err
	})
	return account, err
}

// List returns a page of accounts
func (s *AccountService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[ledger.Account], error) {
	filter.Normalize()
	var page *shared.Paginated[ledger.Account]
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		items, err := repos.Accounts().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		total, err := repos.Accounts().CountForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		p := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
		page = &p
		return nil
	})
	return page, err
}

// Rename changes an account's display name
func (s *AccountService) Rename(ctx context.Context, tenantID, id uuid.UUID, input UpdateAccountInput) (*ledger.Account, error) {
	var account *ledger.Account
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		var err error
		account, err = repos.Accounts().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := account.Rename(input.Name); err != nil {
			return err
		}
		return repos.Accounts().SaveWithLock(ctx, account)
	})
	return account, err
}

// Deactivate marks an account inactive. System accounts are protected, and
// an account referenced by journal entries cannot be removed either.
func (s *AccountService) Deactivate(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos Repositories) error {
		account, err := repos.Accounts().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := account.Deactivate(); err != nil {
			return err
		}
		return repos.Accounts().SaveWithLock(ctx, account)
	})
}

// Delete removes a user-defined account that has never been posted to
func (s *AccountService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos Repositories) error {
		account, err := repos.Accounts().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if account.IsSystem {
			return shared.ErrSystemProtected
		}
		refs, err := repos.JournalEntries().CountByAccount(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return shared.ErrHasDependents
		}
		return repos.Accounts().Delete(ctx, tenantID, id)
	})
}
