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

// BankLedgerService posts movements against the tenant's system bank account
// and records them as append-only bank transactions. Every posting pairs a
// balance mutation on the account with a ledger row whose BalanceAfter
// snapshots the account balance, inside one transaction scope.
type BankLedgerService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewBankLedgerService creates a new bank ledger service
func NewBankLedgerService(scope TransactionScope, logger *zap.Logger) *BankLedgerService {
	return &BankLedgerService{scope: scope, logger: logger}
}

// CreateBankTransactionInput carries a manual bank posting request
type CreateBankTransactionInput struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Category        string          `json:"category"`
	TransactionDate time.Time       `json:"transaction_date"`
	Description     string          `json:"description" binding:"max=500"`
}

// CreateCredit records money entering the bank account
func (s *BankLedgerService) CreateCredit(ctx context.Context, tenantID uuid.UUID, input CreateBankTransactionInput) (*ledger.BankTransaction, error) {
	return s.create(ctx, tenantID, ledger.BankTransactionCredit, input)
}

// CreateDebit records money leaving the bank account
func (s *BankLedgerService) CreateDebit(ctx context.Context, tenantID uuid.UUID, input CreateBankTransactionInput) (*ledger.BankTransaction, error) {
	return s.create(ctx, tenantID, ledger.BankTransactionDebit, input)
}

func (s *BankLedgerService) create(ctx context.Context, tenantID uuid.UUID, txType ledger.BankTransactionType, input CreateBankTransactionInput) (*ledger.BankTransaction, error) {
	var created *ledger.BankTransaction
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		var err error
		if txType == ledger.BankTransactionCredit {
			created, err = CreditInScope(ctx, repos, tenantID, input.Category, input.Amount, input.TransactionDate, input.Description, nil, "")
		} else {
			created, err = DebitInScope(ctx, repos, tenantID, input.Category, input.Amount, input.TransactionDate, input.Description, nil, "")
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bank transaction recorded",
		zap.String("tenant_id", tenantID.String()),
		zap.String("type", string(txType)),
		zap.String("amount", input.Amount.String()))
	return created, nil
}

// GetTransaction returns a single bank transaction
func (s *BankLedgerService) GetTransaction(ctx context.Context, tenantID, id uuid.UUID) (*ledger.BankTransaction, error) {
	var tx *ledger.BankTransaction
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		var err error
		tx, err = repos.BankTransactions().FindByIDForTenant(ctx, tenantID, id)
		return err
	})
	return tx, err
}

// ListTransactions returns a page of bank transactions
func (s *BankLedgerService) ListTransactions(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[ledger.BankTransaction], error) {
	filter.Normalize()
	var page *shared.Paginated[ledger.BankTransaction]
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		items, err := repos.BankTransactions().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		total, err := repos.BankTransactions().CountForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		p := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
		page = &p
		return nil
	})
	return page, err
}

// CreditInScope applies a credit to the tenant's system bank account and
// appends the matching ledger row. Callers already inside a transaction
// scope use this directly so the posting joins their unit of work.
func CreditInScope(
	ctx context.Context,
	repos Repositories,
	tenantID uuid.UUID,
	category string,
	amount decimal.Decimal,
	date time.Time,
	description string,
	referenceID *uuid.UUID,
	referenceType string,
) (*ledger.BankTransaction, error) {
	return postInScope(ctx, repos, tenantID, ledger.BankTransactionCredit, category, amount, date, description, referenceID, referenceType)
}

// DebitInScope applies a debit to the tenant's system bank account and
// appends the matching ledger row.
func DebitInScope(
	ctx context.Context,
	repos Repositories,
	tenantID uuid.UUID,
	category string,
	amount decimal.Decimal,
	date time.Time,
	description string,
	referenceID *uuid.UUID,
	referenceType string,
) (*ledger.BankTransaction, error) {
	return postInScope(ctx, repos, tenantID, ledger.BankTransactionDebit, category, amount, date, description, referenceID, referenceType)
}

func postInScope(
	ctx context.Context,
	repos Repositories,
	tenantID uuid.UUID,
	txType ledger.BankTransactionType,
	category string,
	amount decimal.Decimal,
	date time.Time,
	description string,
	referenceID *uuid.UUID,
	referenceType string,
) (*ledger.BankTransaction, error) {
	account, err := repos.Accounts().FindOrCreateSystem(ctx, tenantID, ledger.AccountTypeBank)
	if err != nil {
		return nil, err
	}

	if txType == ledger.BankTransactionCredit {
		err = account.Credit(amount)
	} else {
		err = account.Debit(amount)
	}
	if err != nil {
		return nil, err
	}
	if err := repos.Accounts().SaveWithLock(ctx, account); err != nil {
		return nil, err
	}

	tx, err := ledger.NewBankTransaction(tenantID, txType, category, amount, account.CurrentBalance, date, description, referenceID, referenceType)
	if err != nil {
		return nil, err
	}
	shared.StampActor(ctx, tx)
	if err := repos.BankTransactions().Save(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}
