package persistence

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	appledger "github.com/shopbooks/backend/internal/application/ledger"
	"github.com/shopbooks/backend/internal/domain/inventory"
	"github.com/shopbooks/backend/internal/domain/ledger"
	"github.com/shopbooks/backend/internal/domain/partner"
	"github.com/shopbooks/backend/internal/domain/shared"
	"github.com/shopbooks/backend/internal/domain/trade"
)

// newTestDB opens a per-test in-memory sqlite database. The named shared
// memory DSN keeps the database alive across the pooled connections GORM
// opens during transactions.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&ledger.Account{},
		&ledger.BankTransaction{},
		&ledger.JournalEntry{},
		&partner.Vendor{},
		&inventory.StockSummary{},
		&inventory.StockEntry{},
		&trade.Purchase{},
		&trade.PurchaseItem{},
	))

	// the SQL migrations own this composite index in production; sqlite needs
	// it too or the stock summary upsert's ON CONFLICT target will not resolve.
	// AutoMigrate claims the name for a product_id-only index, so drop that
	// first or the CREATE below is a no-op and the target stays unresolved
	require.NoError(t, db.Exec("DROP INDEX IF EXISTS idx_stock_summary_tenant_product").Error)
	require.NoError(t, db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_stock_summary_tenant_product ON stock_summaries(tenant_id, product_id)",
	).Error)
	return db
}

func TestGormAccountRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("save and find are tenant scoped", func(t *testing.T) {
		repo := NewGormAccountRepository(newTestDB(t))
		tenantID := uuid.New()

		acct, err := ledger.NewAccount(tenantID, ledger.AccountTypeExpense, "Rent", "EXP-01", decimal.Zero)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, acct))

		found, err := repo.FindByIDForTenant(ctx, tenantID, acct.ID)
		require.NoError(t, err)
		assert.Equal(t, "Rent", found.Name)
		assert.Equal(t, ledger.AccountTypeExpense, found.Type)

		_, err = repo.FindByIDForTenant(ctx, uuid.New(), acct.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("find or create system is idempotent", func(t *testing.T) {
		repo := NewGormAccountRepository(newTestDB(t))
		tenantID := uuid.New()

		first, err := repo.FindOrCreateSystem(ctx, tenantID, ledger.AccountTypeBank)
		require.NoError(t, err)
		assert.True(t, first.IsSystem)

		second, err := repo.FindOrCreateSystem(ctx, tenantID, ledger.AccountTypeBank)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		var count int64
		require.NoError(t, repo.db.Model(&ledger.Account{}).Where("tenant_id = ?", tenantID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("save with lock rejects a stale copy", func(t *testing.T) {
		repo := NewGormAccountRepository(newTestDB(t))
		tenantID := uuid.New()

		acct, err := ledger.NewAccount(tenantID, ledger.AccountTypeBank, "Till", "BNK-01", decimal.Zero)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, acct))

		fresh, err := repo.FindByIDForTenant(ctx, tenantID, acct.ID)
		require.NoError(t, err)
		stale, err := repo.FindByIDForTenant(ctx, tenantID, acct.ID)
		require.NoError(t, err)

		require.NoError(t, fresh.Credit(decimal.NewFromInt(100)))
		require.NoError(t, repo.SaveWithLock(ctx, fresh))

		require.NoError(t, stale.Credit(decimal.NewFromInt(50)))
		assert.ErrorIs(t, repo.SaveWithLock(ctx, stale), shared.ErrConcurrencyConflict)

		reread, err := repo.FindByIDForTenant(ctx, tenantID, acct.ID)
		require.NoError(t, err)
		assert.True(t, reread.CurrentBalance.Equal(decimal.NewFromInt(100)))
	})

	t.Run("delete reports a missing row", func(t *testing.T) {
		repo := NewGormAccountRepository(newTestDB(t))
		assert.ErrorIs(t, repo.Delete(ctx, uuid.New(), uuid.New()), shared.ErrNotFound)
	})
}

func TestGormVendorRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("find by code within tenant", func(t *testing.T) {
		repo := NewGormVendorRepository(newTestDB(t))
		tenantID := uuid.New()

		vendor, err := partner.NewVendor(tenantID, "VEN-01", "Acme", decimal.NewFromInt(40))
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, vendor))

		found, err := repo.FindByCode(ctx, tenantID, "VEN-01")
		require.NoError(t, err)
		assert.Equal(t, vendor.ID, found.ID)
		assert.True(t, found.CurrentDue.Equal(decimal.NewFromInt(40)))

		_, err = repo.FindByCode(ctx, uuid.New(), "VEN-01")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("save with lock guards concurrent due updates", func(t *testing.T) {
		repo := NewGormVendorRepository(newTestDB(t))
		tenantID := uuid.New()

		vendor, err := partner.NewVendor(tenantID, "VEN-01", "Acme", decimal.Zero)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, vendor))

		fresh, err := repo.FindByIDForTenant(ctx, tenantID, vendor.ID)
		require.NoError(t, err)
		stale, err := repo.FindByIDForTenant(ctx, tenantID, vendor.ID)
		require.NoError(t, err)

		require.NoError(t, fresh.IncreaseDue(decimal.NewFromInt(30)))
		require.NoError(t, repo.SaveWithLock(ctx, fresh))

		require.NoError(t, stale.IncreaseDue(decimal.NewFromInt(10)))
		assert.ErrorIs(t, repo.SaveWithLock(ctx, stale), shared.ErrConcurrencyConflict)
	})
}

func TestGormPurchaseRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("save and reload with items", func(t *testing.T) {
		repo := NewGormPurchaseRepository(newTestDB(t))
		tenantID := uuid.New()
		vendorID := uuid.New()

		purchase, err := trade.NewPurchase(tenantID, "PUR-2026-00001", vendorID, "Acme", time.Now())
		require.NoError(t, err)
		require.NoError(t, purchase.AddItem(uuid.New(), "Widget", decimal.NewFromInt(10), decimal.NewFromInt(5)))
		require.NoError(t, purchase.AddItem(uuid.New(), "Gadget", decimal.NewFromInt(2), decimal.NewFromInt(25)))
		require.NoError(t, repo.Save(ctx, purchase))

		found, err := repo.FindByIDForTenant(ctx, tenantID, purchase.ID)
		require.NoError(t, err)
		require.Len(t, found.Items, 2)
		assert.True(t, found.Subtotal.Equal(decimal.NewFromInt(100)))

		count, err := repo.CountByVendor(ctx, tenantID, vendorID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("generate number continues the tenant sequence", func(t *testing.T) {
		repo := NewGormPurchaseRepository(newTestDB(t))
		tenantID := uuid.New()
		year := time.Now().Year()

		number, err := repo.GenerateNumber(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("PUR-%d-00001", year), number)

		purchase, err := trade.NewPurchase(tenantID, number, uuid.New(), "Acme", time.Now())
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, purchase))

		next, err := repo.GenerateNumber(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("PUR-%d-00002", year), next)

		// another tenant starts its own sequence
		other, err := repo.GenerateNumber(ctx, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("PUR-%d-00001", year), other)
	})
}

func TestGormStockSummaryRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("find or create returns the existing row", func(t *testing.T) {
		repo := NewGormStockSummaryRepository(newTestDB(t))
		tenantID := uuid.New()
		productID := uuid.New()

		first, err := repo.FindOrCreate(ctx, tenantID, productID)
		require.NoError(t, err)
		second, err := repo.FindOrCreate(ctx, tenantID, productID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("save with lock rejects a stale movement", func(t *testing.T) {
		repo := NewGormStockSummaryRepository(newTestDB(t))
		tenantID := uuid.New()
		productID := uuid.New()

		_, err := repo.FindOrCreate(ctx, tenantID, productID)
		require.NoError(t, err)

		fresh, err := repo.FindByProduct(ctx, tenantID, productID)
		require.NoError(t, err)
		stale, err := repo.FindByProduct(ctx, tenantID, productID)
		require.NoError(t, err)

		price := decimal.NewFromInt(5)
		require.NoError(t, fresh.Apply(decimal.NewFromInt(10), &price))
		require.NoError(t, repo.SaveWithLock(ctx, fresh))

		require.NoError(t, stale.Apply(decimal.NewFromInt(3), &price))
		assert.ErrorIs(t, repo.SaveWithLock(ctx, stale), shared.ErrConcurrencyConflict)
	})
}

func TestGormBankTransactionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormBankTransactionRepository(newTestDB(t))
	tenantID := uuid.New()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	amounts := []int64{100, 40, 75}
	for i, amount := range amounts {
		tx, err := ledger.NewBankTransaction(
			tenantID, ledger.BankTransactionCredit, ledger.BankCategoryManual,
			decimal.NewFromInt(amount), decimal.NewFromInt(amount), base.Add(time.Duration(i)*time.Hour),
			"", nil, "",
		)
		require.NoError(t, err)
		tx.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Save(ctx, tx))
	}

	ordered, err := repo.FindAllInOrder(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, ordered, 3)
	for i, amount := range amounts {
		assert.True(t, ordered[i].Amount.Equal(decimal.NewFromInt(amount)))
	}

	ranged, err := repo.FindByDateRange(ctx, tenantID, base.Add(30*time.Minute), base.Add(90*time.Minute))
	require.NoError(t, err)
	assert.Len(t, ranged, 1)
}

func TestGormTransactionScope(t *testing.T) {
	ctx := context.Background()

	t.Run("commits when the unit of work succeeds", func(t *testing.T) {
		db := newTestDB(t)
		scope := NewGormTransactionScope(db)
		tenantID := uuid.New()

		err := scope.Execute(ctx, func(repos appledger.Repositories) error {
			acct, err := repos.Accounts().FindOrCreateSystem(ctx, tenantID, ledger.AccountTypeBank)
			if err != nil {
				return err
			}
			if err := acct.Credit(decimal.NewFromInt(500)); err != nil {
				return err
			}
			return repos.Accounts().SaveWithLock(ctx, acct)
		})
		require.NoError(t, err)

		acct, err := NewGormAccountRepository(db).FindOrCreateSystem(ctx, tenantID, ledger.AccountTypeBank)
		require.NoError(t, err)
		assert.True(t, acct.CurrentBalance.Equal(decimal.NewFromInt(500)))
	})

	t.Run("rolls back every write on error", func(t *testing.T) {
		db := newTestDB(t)
		scope := NewGormTransactionScope(db)
		tenantID := uuid.New()

		failure := shared.NewDomainError("BOOM", "forced failure")
		err := scope.Execute(ctx, func(repos appledger.Repositories) error {
			if _, err := repos.Accounts().FindOrCreateSystem(ctx, tenantID, ledger.AccountTypeBank); err != nil {
				return err
			}
			vendor, err := partner.NewVendor(tenantID, "VEN-01", "Acme", decimal.Zero)
			if err != nil {
				return err
			}
			if err := repos.Vendors().Save(ctx, vendor); err != nil {
				return err
			}
			return failure
		})
		assert.ErrorIs(t, err, failure)

		var accounts, vendors int64
		require.NoError(t, db.Model(&ledger.Account{}).Where("tenant_id = ?", tenantID).Count(&accounts).Error)
		require.NoError(t, db.Model(&partner.Vendor{}).Where("tenant_id = ?", tenantID).Count(&vendors).Error)
		assert.Zero(t, accounts)
		assert.Zero(t, vendors)
	})
}
