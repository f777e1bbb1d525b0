package ledger

import (
	"context"

	"github.com/shopbooks/backend/internal/domain/asset"
	"github.com/shopbooks/backend/internal/domain/catalog"
	"github.com/shopbooks/backend/internal/domain/inventory"
	"github.com/shopbooks/backend/internal/domain/ledger"
	"github.com/shopbooks/backend/internal/domain/partner"
	"github.com/shopbooks/backend/internal/domain/trade"
)

// Repositories is the set of repositories visible inside one atomic unit of
// work. Implementations bind every repository to the same database
// transaction so that a multi-entity posting commits or rolls back as one.
type Repositories interface {
	Accounts() ledger.AccountRepository
	BankTransactions() ledger.BankTransactionRepository
	JournalEntries() ledger.JournalEntryRepository
	Vendors() partner.VendorRepository
	Customers() partner.CustomerRepository
	Products() catalog.ProductRepository
	Categories() catalog.CategoryRepository
	StockSummaries() inventory.StockSummaryRepository
	StockEntries() inventory.StockEntryRepository
	Purchases() trade.PurchaseRepository
	Sales() trade.SaleRepository
	FixedAssets() asset.FixedAssetRepository
}

// TransactionScope runs a function against a transactional repository set.
// If fn returns an error the whole unit of work is rolled back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// RepositorySet is a plain struct implementation of Repositories. The
// persistence layer builds one per database transaction; tests build one
// from in-memory fakes.
type RepositorySet struct {
	AccountRepo         ledger.AccountRepository
	BankTransactionRepo ledger.BankTransactionRepository
	JournalEntryRepo    ledger.JournalEntryRepository
	VendorRepo          partner.VendorRepository
	CustomerRepo        partner.CustomerRepository
	ProductRepo         catalog.ProductRepository
	CategoryRepo        catalog.CategoryRepository
	StockSummaryRepo    inventory.StockSummaryRepository
	StockEntryRepo      inventory.StockEntryRepository
	PurchaseRepo        trade.PurchaseRepository
	SaleRepo            trade.SaleRepository
	FixedAssetRepo      asset.FixedAssetRepository
}

func (r *RepositorySet) Accounts() ledger.AccountRepository                  { return r.AccountRepo }
func (r *RepositorySet) BankTransactions() ledger.BankTransactionRepository  { return r.BankTransactionRepo }
func (r *RepositorySet) JournalEntries() ledger.JournalEntryRepository       { return r.JournalEntryRepo }
func (r *RepositorySet) Vendors() partner.VendorRepository                   { return r.VendorRepo }
func (r *RepositorySet) Customers() partner.CustomerRepository               { return r.CustomerRepo }
func (r *RepositorySet) Products() catalog.ProductRepository                 { return r.ProductRepo }
func (r *RepositorySet) Categories() catalog.CategoryRepository              { return r.CategoryRepo }
func (r *RepositorySet) StockSummaries() inventory.StockSummaryRepository    { return r.StockSummaryRepo }
func (r *RepositorySet) StockEntries() inventory.StockEntryRepository        { return r.StockEntryRepo }
func (r *RepositorySet) Purchases() trade.PurchaseRepository                 { return r.PurchaseRepo }
func (r *RepositorySet) Sales() trade.SaleRepository                         { return r.SaleRepo }
func (r *RepositorySet) FixedAssets() asset.FixedAssetRepository             { return r.FixedAssetRepo }

// NoOpScope runs the function directly against a fixed repository set
// without any transactional boundary. Used in tests.
type NoOpScope struct {
	Repos Repositories
}

// Execute runs fn against the fixed repository set
func (s *NoOpScope) Execute(ctx context.Context, fn func(repos Repositories) error) error {
	return fn(s.Repos)
}
