package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shopbooks/backend/internal/domain/ledger"
	"github.com/shopbooks/backend/internal/domain/shared"
)

// JournalService manages manual double-entry journal entries. System
// generated entries (fixed asset postings) are read-only here.
type JournalService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewJournalService creates a new journal service
func NewJournalService(scope TransactionScope, logger *zap.Logger) *JournalService {
	return &JournalService{scope: scope, logger: logger}
}

// JournalEntryInput carries a manual journal entry create/update request
type JournalEntryInput struct {
	DebitAccountID  uuid.UUID       `json:"debit_account_id" binding:"required"`
	CreditAccountID uuid.UUID       `json:"credit_account_id" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	TransactionDate time.Time       `json:"transaction_date"`
	Description     string          `json:"description" binding:"max=500"`
	Reference       string          `json:"reference" binding:"max=100"`
}

// Create posts a manual journal entry. Both accounts must belong to the
// tenant and be active.
func (s *JournalService) Create(ctx context.Context, tenantID uuid.UUID, input JournalEntryInput) (*ledger.JournalEntry, error) {
	var entry *ledger.JournalEntry
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		if err := s.checkAccounts(ctx, repos, tenantID, input.DebitAccountID, input.CreditAccountID); err != nil {
			return err
		}

		var err error
		entry, err = ledger.NewJournalEntry(tenantID, ledger.JournalTypeManual,
			input.DebitAccountID, input.CreditAccountID, input.Amount,
			input.TransactionDate, input.Description, input.Reference)
		if err != nil {
			return err
		}
		shared.StampActor(ctx, entry)
		return repos.JournalEntries().Save(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("journal entry created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("entry_id", entry.ID.String()))
	return entry, nil
}

// Get returns a single journal entry
func (s *JournalService) Get(ctx context.Context, tenantID, id uuid.UUID) (*ledger.JournalEntry, error) {
	var entry *ledger.JournalEntry
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		var err error
		entry, err = repos.JournalEntries().FindByIDForTenant(ctx, tenantID, id)
		return err
	})
	return entry, err
}

// List returns a page of journal entries
func (s *JournalService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[ledger.JournalEntry], error) {
	filter.Normalize()
	var page *shared.Paginated[ledger.JournalEntry]
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		items, err := repos.JournalEntries().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		total, err := repos.JournalEntries().CountForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		p := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
		page = &p
		return nil
	})
	return page, err
}

// Update rewrites a manual journal entry
func (s *JournalService) Update(ctx context.Context, tenantID, id uuid.UUID, input JournalEntryInput) (*ledger.JournalEntry, error) {
	var entry *ledger.JournalEntry
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		var err error
		entry, err = repos.JournalEntries().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := s.checkAccounts(ctx, repos, tenantID, input.DebitAccountID, input.CreditAccountID); err != nil {
			return err
		}
		if err := entry.Update(input.DebitAccountID, input.CreditAccountID, input.Amount, input.TransactionDate, input.Description, input.Reference); err != nil {
			return err
		}
		return repos.JournalEntries().Save(ctx, entry)
	})
	return entry, err
}

// Delete removes a manual journal entry
func (s *JournalService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos Repositories) error {
		entry, err := repos.JournalEntries().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if !entry.IsManual() {
			return shared.ErrSystemProtected
		}
		return repos.JournalEntries().Delete(ctx, tenantID, id)
	})
}

func (s *JournalService) checkAccounts(ctx context.Context, repos Repositories, tenantID, debitID, creditID uuid.UUID) error {
	debit, err := repos.Accounts().FindByIDForTenant(ctx, tenantID, debitID)
	if err != nil {
		return err
	}
	credit, err := repos.Accounts().FindByIDForTenant(ctx, tenantID, creditID)
	if err != nil {
		return err
	}
	if !debit.IsActive || !credit.IsActive {
		return shared.NewDomainError("ACCOUNT_INACTIVE", "Cannot post to an inactive account")
	}
	return nil
}
