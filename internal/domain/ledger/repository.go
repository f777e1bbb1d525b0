package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shopbooks/backend/internal/domain/shared"
)

// AccountRepository provides persistence for ledger accounts
type AccountRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Account, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Account, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	// FindOrCreateSystem returns the tenant's singleton system account of the
	// given type, creating it if it does not exist. Enforced by a partial
	// unique index on (tenant_id, type) where is_system.
	FindOrCreateSystem(ctx context.Context, tenantID uuid.UUID, accountType AccountType) (*Account, error)
	// FindOrCreateByName returns the tenant's non-system account with the
	// given name and type, creating it if missing (e.g. "Fixed Assets").
	FindOrCreateByName(ctx context.Context, tenantID uuid.UUID, accountType AccountType, name, code string) (*Account, error)
	Save(ctx context.Context, account *Account) error
	// SaveWithLock persists balance changes with a compare-and-swap on the
	// version column; returns ErrConcurrencyConflict when the row moved.
	SaveWithLock(ctx context.Context, account *Account) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// BankTransactionRepository provides persistence for the append-only bank ledger
type BankTransactionRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*BankTransaction, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]BankTransaction, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	// FindAllInOrder returns every row for the tenant in insertion order,
	// used by reconciliation to replay the ledger.
	FindAllInOrder(ctx context.Context, tenantID uuid.UUID) ([]BankTransaction, error)
	FindByDateRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]BankTransaction, error)
	Save(ctx context.Context, tx *BankTransaction) error
}

// JournalEntryRepository provides persistence for double-entry journal lines
type JournalEntryRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*JournalEntry, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]JournalEntry, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	CountByAccount(ctx context.Context, tenantID, accountID uuid.UUID) (int64, error)
	Save(ctx context.Context, entry *JournalEntry) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
