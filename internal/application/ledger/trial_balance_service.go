package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopbooks/backend/internal/domain/ledger"
	"github.com/shopbooks/backend/internal/domain/shared"
)

// TrialBalanceService builds trial balances from the tenant's chart of
// accounts.
type TrialBalanceService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewTrialBalanceService creates a new trial balance service
func NewTrialBalanceService(scope TransactionScope, logger *zap.Logger) *TrialBalanceService {
	return &TrialBalanceService{scope: scope, logger: logger}
}

// Build computes the trial balance across every account of the tenant
func (s *TrialBalanceService) Build(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (*ledger.TrialBalance, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}

	var tb *ledger.TrialBalance
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		filter := shared.DefaultFilter()
		filter.PageSize = 10000
		accounts, err := repos.Accounts().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		tb = ledger.BuildTrialBalance(asOf, accounts)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !tb.IsBalanced(ledger.DefaultBalanceTolerance) {
		s.logger.Warn("trial balance out of balance",
			zap.String("tenant_id", tenantID.String()),
			zap.String("difference", tb.Difference().String()))
	}
	return tb, nil
}
