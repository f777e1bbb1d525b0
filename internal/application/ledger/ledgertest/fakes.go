// Package ledgertest provides in-memory repository fakes for exercising
// application services without a database.
package ledgertest

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appledger "github.com/shopbooks/backend/internal/application/ledger"
	"github.com/shopbooks/backend/internal/domain/asset"
	"github.com/shopbooks/backend/internal/domain/catalog"
	"github.com/shopbooks/backend/internal/domain/inventory"
	"github.com/shopbooks/backend/internal/domain/ledger"
	"github.com/shopbooks/backend/internal/domain/partner"
	"github.com/shopbooks/backend/internal/domain/shared"
	"github.com/shopbooks/backend/internal/domain/trade"
)

// World is a complete in-memory repository set sharing one data space
type World struct {
	AccountRepo         *FakeAccountRepo
	BankTransactionRepo *FakeBankTransactionRepo
	JournalEntryRepo    *FakeJournalEntryRepo
	VendorRepo          *FakeVendorRepo
	CustomerRepo        *FakeCustomerRepo
	ProductRepo         *FakeProductRepo
	CategoryRepo        *FakeCategoryRepo
	StockSummaryRepo    *FakeStockSummaryRepo
	StockEntryRepo      *FakeStockEntryRepo
	PurchaseRepo        *FakePurchaseRepo
	SaleRepo            *FakeSaleRepo
	FixedAssetRepo      *FakeFixedAssetRepo
}

// NewWorld creates an empty fake repository world
func NewWorld() *World {
	return &World{
		AccountRepo:         &FakeAccountRepo{},
		BankTransactionRepo: &FakeBankTransactionRepo{},
		JournalEntryRepo:    &FakeJournalEntryRepo{},
		VendorRepo:          &FakeVendorRepo{},
		CustomerRepo:        &FakeCustomerRepo{},
		ProductRepo:         &FakeProductRepo{},
		CategoryRepo:        &FakeCategoryRepo{},
		StockSummaryRepo:    &FakeStockSummaryRepo{},
		StockEntryRepo:      &FakeStockEntryRepo{},
		PurchaseRepo:        &FakePurchaseRepo{},
		SaleRepo:            &FakeSaleRepo{},
		FixedAssetRepo:      &FakeFixedAssetRepo{},
	}
}

// Scope returns a TransactionScope running directly against the world
func (w *World) Scope() appledger.TransactionScope {
	return &appledger.NoOpScope{Repos: &appledger.RepositorySet{
		AccountRepo:         w.AccountRepo,
		BankTransactionRepo: w.BankTransactionRepo,
		JournalEntryRepo:    w.JournalEntryRepo,
		VendorRepo:          w.VendorRepo,
		CustomerRepo:        w.CustomerRepo,
		ProductRepo:         w.ProductRepo,
		CategoryRepo:        w.CategoryRepo,
		StockSummaryRepo:    w.StockSummaryRepo,
		StockEntryRepo:      w.StockEntryRepo,
		PurchaseRepo:        w.PurchaseRepo,
		SaleRepo:            w.SaleRepo,
		FixedAssetRepo:      w.FixedAssetRepo,
	}}
}

// FakeAccountRepo is an in-memory AccountRepository
type FakeAccountRepo struct {
	Items []*ledger.Account
}

func (r *FakeAccountRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*ledger.Account, error) {
	for _, a := range r.Items {
		if a.TenantID == tenantID && a.ID == id {
			return a, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *FakeAccountRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]ledger.Account, error) {
	var out []ledger.Account
	for _, a := range r.Items {
		if a.TenantID == tenantID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *FakeAccountRepo) CountForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, a := range r.Items {
		if a.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

func (r *FakeAccountRepo) FindOrCreateSystem(_ context.Context, tenantID uuid.UUID, accountType ledger.AccountType) (*ledger.Account, error) {
	for _, a := range r.Items {
		if a.TenantID == tenantID && a.Type == accountType && a.IsSystem {
			return a, nil
		}
	}
	account, err := ledger.NewSystemAccount(tenantID, accountType)
	if err != nil {
		return nil, err
	}
	r.Items = append(r.Items, account)
	return account, nil
}

func (r *FakeAccountRepo) FindOrCreateByName(_ context.Context, tenantID uuid.UUID, accountType ledger.AccountType, name, code string) (*ledger.Account, error) {
	for _, a := range r.Items {
		if a.TenantID == tenantID && a.Type == accountType && a.Name == name {
			return a, nil
		}
	}
	account, err := ledger.NewAccount(tenantID, accountType, name, code, decimal.Zero)
	if err != nil {
		return nil, err
	}
	r.Items = append(r.Items, account)
	return account, nil
}

func (r *FakeAccountRepo) Save(_ context.Context, account *ledger.Account) error {
	for i, a := range r.Items {
		if a.ID == account.ID {
			r.Items[i] = account
			return nil
		}
	}
	r.Items = append(r.Items, account)
	return nil
}

func (r *FakeAccountRepo) SaveWithLock(ctx context.Context, account *ledger.Account) error {
	return r.Save(ctx, account)
}

func (r *FakeAccountRepo) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	for i, a := range r.Items {
		if a.TenantID == tenantID && a.ID == id {
			r.Items = append(r.Items[:i], r.Items[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

// FakeBankTransactionRepo is an in-memory append-only BankTransactionRepository
type FakeBankTransactionRepo struct {
	Items []*ledger.BankTransaction
}

func (r *FakeBankTransactionRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*ledger.BankTransaction, error) {
	for _, t := range r.Items {
		if t.TenantID == tenantID && t.ID == id {
			return t, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *FakeBankTransactionRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]ledger.BankTransaction, error) {
	var out []ledger.BankTransaction
	for _, t := range r.Items {
		if t.TenantID == tenantID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *FakeBankTransactionRepo) CountForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, t := range r.Items {
		if t.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

func (r *FakeBankTransactionRepo) FindAllInOrder(_ context.Context, tenantID uuid.UUID) ([]ledger.BankTransaction, error) {
	var out []ledger.BankTransaction
	for _, t := range r.Items {
		if t.TenantID == tenantID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *FakeBankTransactionRepo) FindByDateRange(_ context.Context, tenantID uuid.UUID, from, to time.Time) ([]ledger.BankTransaction, error) {
	var out []ledger.BankTransaction
	for _, t := range r.Items {
		if t.TenantID == tenantID && !t.TransactionDate.Before(from) && !t.TransactionDate.After(to) {
			out = append(out, *t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TransactionDate.Before(out[j].TransactionDate) })
	return out, nil
}

func (r *FakeBankTransactionRepo) Save(_ context.Context, tx *ledger.BankTransaction) error {
	r.Items = append(r.Items, tx)
	return nil
}

// FakeJournalEntryRepo is an in-memory JournalEntryRepository
type FakeJournalEntryRepo struct {
	Items []*ledger.JournalEntry
}

func (r *FakeJournalEntryRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*ledger.JournalEntry, error) {
	for _, e := range r.Items {
		if e.TenantID == tenantID && e.ID == id {
			return e, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *FakeJournalEntryRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]ledger.JournalEntry, error) {
	var out []ledger.JournalEntry
	for _, e := range r.Items {
		if e.TenantID == tenantID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *FakeJournalEntryRepo) CountForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, e := range r.Items {
		if e.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

func (r *FakeJournalEntryRepo) CountByAccount(_ context.Context, tenantID, accountID uuid.UUID) (int64, error) {
	var n int64
	for _, e := range r.Items {
		if e.TenantID == tenantID && (e.DebitAccountID == accountID || e.CreditAccountID == accountID) {
			n++
		}
	}
	return n, nil
}

func (r *FakeJournalEntryRepo) Save(_ context.Context, entry *ledger.JournalEntry) error {
	for i, e := range r.Items {
		if e.ID == entry.ID {
			r.Items[i] = entry
			return nil
		}
	}
	r.Items = append(r.Items, entry)
	return nil
}

func (r *FakeJournalEntryRepo) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	for i, e := range r.Items {
		if e.TenantID == tenantID && e.ID == id {
			r.Items = append(r.Items[:i], r.Items[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

// FakeVendorRepo is an in-memory VendorRepository
type FakeVendorRepo struct {
	Items []*partner.Vendor
}

func (r *FakeVendorRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*partner.Vendor, error) {
	for _, v := range r.Items {
		if v.TenantID == tenantID && v.ID == id {
			return v, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *FakeVendorRepo) FindByCode(_ context.Context, tenantID uuid.UUID, code string) (*partner.Vendor, error) {
	for _, v := range r.Items {
		if v.TenantID == tenantID && v.Code == code {
			return v, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *FakeVendorRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]partner.Vendor, error) {
	var out []partner.Vendor
	for _, v := range r.Items {
		if v.TenantID == tenantID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *FakeVendorRepo) CountForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, v := range r.Items {
		if v.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

func (r *FakeVendorRepo) Save(_ context.Context, vendor *partner.Vendor) error {
	for i, v := range r.Items {
		if v.ID == vendor.ID {
			r.Items[i] = vendor
			return nil
		}
	}
	r.Items = append(r.Items, vendor)
	return nil
}

func (r *FakeVendorRepo) SaveWithLock(ctx context.Context, vendor *partner.Vendor) error {
	return r.Save(ctx, vendor)
}

func (r *FakeVendorRepo) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	for i, v := range r.Items {
		if v.TenantID == tenantID && v.ID == id {
			r.Items = append(r.Items[:i], r.Items[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

// FakeCustomerRepo is an in-memory CustomerRepository
type FakeCustomerRepo struct {
	Items []*partner.Customer
}

func (r *FakeCustomerRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	for _, c := range r.Items {
		if c.TenantID == tenantID && c.ID == id {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *FakeCustomerRepo) FindByCode(_ context.Context, tenantID uuid.UUID, code string) (*partner.Customer, error) {
	for _, c := range r.Items {
		if c.TenantID == tenantID && c.Code == code {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *FakeCustomerRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]partner.Customer, error) {
	var out []partner.Customer
	for _, c := range r.Items {
		if c.TenantID == tenantID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *FakeCustomerRepo) CountForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, c := range r.Items {
		if c.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

func (r *FakeCustomerRepo) Save(_ context.Context, customer *partner.Customer) error {
	for i, c := range r.Items {
		if c.ID == customer.ID {
			r.Items[i] = customer
			return nil
		}
	}
	r.Items = append(r.Items, customer)
	return nil
}

func (r *FakeCustomerRepo) SaveWithLock(ctx context.Context, customer *partner.Customer) error {
	return r.Save(ctx, customer)
}

func (r *FakeCustomerRepo) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	for i, c := range r.Items {
		if c.TenantID == tenantID && c.ID == id {
			r.Items = append(r.Items[:i], r.Items[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

// FakeProductRepo is an in-memory ProductRepository
type FakeProductRepo struct {
	Items []*catalog.Product
}

func (r *FakeProductRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	for _, p := range r.Items {
		if p.TenantID == tenantID && p.ID == id {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *FakeProductRepo) FindByCode(_ context.Context, tenantID uuid.UUID, code string) (*catalog.Product, error) {
	for _, p := range r.Items {
		if p.TenantID == tenantID && p.Code == code {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *FakeProductRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range r.Items {
		if p.TenantID == tenantID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *FakeProductRepo) CountForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, p := range r.Items {
		if p.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

func (r *FakeProductRepo) CountByCategory(_ context.Context, tenantID, categoryID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.Items {
		if p.TenantID == tenantID && p.CategoryID != nil && *p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *FakeProductRepo) Save(_ context.Context, product *catalog.Product) error {
	for i, p := range r.Items {
		if p.ID == product.ID {
			r.Items[i] = product
			return nil
		}
	}
	r.Items = append(r.Items, product)
	return nil
}

func (r *FakeProductRepo) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	for i, p := range r.Items {
		if p.TenantID == tenantID && p.ID == id {
			r.Items = append(r.Items[:i], r.Items[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

// FakeCategoryRepo is an in-memory CategoryRepository
type FakeCategoryRepo struct {
	Items []*catalog.ProductCategory
}

func (r *FakeCategoryRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*catalog.ProductCategory, error) {
	for _, c := range r.Items {
		if c.TenantID == tenantID && c.ID == id {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *FakeCategoryRepo) FindByName(_ context.Context, tenantID uuid.UUID, name string) (*catalog.ProductCategory, error) {
	for _, c := range r.Items {
		if c.TenantID == tenantID && c.Name == name {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *FakeCategoryRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]catalog.ProductCategory, error) {
	var out []catalog.ProductCategory
	for _, c := range r.Items {
		if c.TenantID == tenantID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *FakeCategoryRepo) CountForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, c := range r.Items {
		if c.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

func (r *FakeCategoryRepo) Save(_ context.Context, category *catalog.ProductCategory) error {
	for i, c := range r.Items {
		if c.ID == category.ID {
			r.Items[i] = category
			return nil
		}
	}
	r.Items = append(r.Items, category)
	return nil
}

func (r *FakeCategoryRepo) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	for i, c := range r.Items {
		if c.TenantID == tenantID && c.ID == id {
			r.Items = append(r.Items[:i], r.Items[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

// FakeStockSummaryRepo is an in-memory StockSummaryRepository
type FakeStockSummaryRepo struct {
	Items []*inventory.StockSummary
}

func (r *FakeStockSummaryRepo) FindByProduct(_ context.Context, tenantID, productID uuid.UUID) (*inventory.StockSummary, error) {
	for _, s := range r.Items {
		if s.TenantID == tenantID && s.ProductID == productID {
			return s, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *FakeStockSummaryRepo) FindOrCreate(ctx context.Context, tenantID, productID uuid.UUID) (*inventory.StockSummary, error) {
	if existing, err := r.FindByProduct(ctx, tenantID, productID); err == nil {
		return existing, nil
	}
	summary, err := inventory.NewStockSummary(tenantID, productID)
	if err != nil {
		return nil, err
	}
	r.Items = append(r.Items, summary)
	return summary, nil
}

func (r *FakeStockSummaryRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]inventory.StockSummary, error) {
	var out []inventory.StockSummary
	for _, s := range r.Items {
		if s.TenantID == tenantID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *FakeStockSummaryRepo) CountForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, s := range r.Items {
		if s.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

func (r *FakeStockSummaryRepo) TotalStockValue(_ context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range r.Items {
		if s.TenantID == tenantID {
			total = total.Add(s.TotalValue)
		}
	}
	return total, nil
}

func (r *FakeStockSummaryRepo) SaveWithLock(_ context.Context, summary *inventory.StockSummary) error {
	for i, s := range r.Items {
		if s.ID == summary.ID {
			r.Items[i] = summary
			return nil
		}
	}
	r.Items = append(r.Items, summary)
	return nil
}

// FakeStockEntryRepo is an in-memory append-only StockEntryRepository
type FakeStockEntryRepo struct {
	Items []*inventory.StockEntry
}

func (r *FakeStockEntryRepo) FindByProduct(_ context.Context, tenantID, productID uuid.UUID, _ shared.Filter) ([]inventory.StockEntry, error) {
	var out []inventory.StockEntry
	for _, e := range r.Items {
		if e.TenantID == tenantID && e.ProductID == productID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *FakeStockEntryRepo) CountByProduct(_ context.Context, tenantID, productID uuid.UUID) (int64, error) {
	var n int64
	for _, e := range r.Items {
		if e.TenantID == tenantID && e.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func (r *FakeStockEntryRepo) FindByProductInOrder(ctx context.Context, tenantID, productID uuid.UUID) ([]inventory.StockEntry, error) {
	return r.FindByProduct(ctx, tenantID, productID, shared.Filter{})
}

func (r *FakeStockEntryRepo) Save(_ context.Context, entry *inventory.StockEntry) error {
	r.Items = append(r.Items, entry)
	return nil
}

// FakePurchaseRepo is an in-memory PurchaseRepository
type FakePurchaseRepo struct {
	Items []*trade.Purchase
	seq   int
}

func (r *FakePurchaseRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*trade.Purchase, error) {
	for _, p := range r.Items {
		if p.TenantID == tenantID && p.ID == id {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *FakePurchaseRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]trade.Purchase, error) {
	var out []trade.Purchase
	for _, p := range r.Items {
		if p.TenantID == tenantID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *FakePurchaseRepo) CountForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, p := range r.Items {
		if p.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

func (r *FakePurchaseRepo) CountByVendor(_ context.Context, tenantID, vendorID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.Items {
		if p.TenantID == tenantID && p.VendorID == vendorID {
			n++
		}
	}
	return n, nil
}

func (r *FakePurchaseRepo) GenerateNumber(_ context.Context, _ uuid.UUID) (string, error) {
	r.seq++
	return fmt.Sprintf("PUR-2026-%05d", r.seq), nil
}

func (r *FakePurchaseRepo) Save(_ context.Context, purchase *trade.Purchase) error {
	for i, p := range r.Items {
		if p.ID == purchase.ID {
			r.Items[i] = purchase
			return nil
		}
	}
	r.Items = append(r.Items, purchase)
	return nil
}

func (r *FakePurchaseRepo) ReplaceItems(ctx context.Context, purchase *trade.Purchase) error {
	return r.Save(ctx, purchase)
}

func (r *FakePurchaseRepo) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	for i, p := range r.Items {
		if p.TenantID == tenantID && p.ID == id {
			r.Items = append(r.Items[:i], r.Items[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

// FakeSaleRepo is an in-memory SaleRepository
type FakeSaleRepo struct {
	Items []*trade.Sale
	seq   int
}

func (r *FakeSaleRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*trade.Sale, error) {
	for _, s := range r.Items {
		if s.TenantID == tenantID && s.ID == id {
			return s, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *FakeSaleRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]trade.Sale, error) {
	var out []trade.Sale
	for _, s := range r.Items {
		if s.TenantID == tenantID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *FakeSaleRepo) CountForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, s := range r.Items {
		if s.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

func (r *FakeSaleRepo) CountByCustomer(_ context.Context, tenantID, customerID uuid.UUID) (int64, error) {
	var n int64
	for _, s := range r.Items {
		if s.TenantID == tenantID && s.CustomerID == customerID {
			n++
		}
	}
	return n, nil
}

func (r *FakeSaleRepo) SumCompletedTotals(_ context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range r.Items {
		if s.TenantID == tenantID && s.Status == trade.SaleStatusCompleted &&
			!s.SaleDate.Before(from) && !s.SaleDate.After(to) {
			total = total.Add(s.Total)
		}
	}
	return total, nil
}

func (r *FakeSaleRepo) GenerateNumber(_ context.Context, _ uuid.UUID) (string, error) {
	r.seq++
	return fmt.Sprintf("SAL-2026-%05d", r.seq), nil
}

func (r *FakeSaleRepo) Save(_ context.Context, sale *trade.Sale) error {
	for i, s := range r.Items {
		if s.ID == sale.ID {
			r.Items[i] = sale
			return nil
		}
	}
	r.Items = append(r.Items, sale)
	return nil
}

func (r *FakeSaleRepo) ReplaceItems(ctx context.Context, sale *trade.Sale) error {
	return r.Save(ctx, sale)
}

func (r *FakeSaleRepo) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	for i, s := range r.Items {
		if s.TenantID == tenantID && s.ID == id {
			r.Items = append(r.Items[:i], r.Items[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

// FakeFixedAssetRepo is an in-memory FixedAssetRepository
type FakeFixedAssetRepo struct {
	Items []*asset.FixedAsset
}

func (r *FakeFixedAssetRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*asset.FixedAsset, error) {
	for _, a := range r.Items {
		if a.TenantID == tenantID && a.ID == id {
			return a, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *FakeFixedAssetRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]asset.FixedAsset, error) {
	var out []asset.FixedAsset
	for _, a := range r.Items {
		if a.TenantID == tenantID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *FakeFixedAssetRepo) FindActive(_ context.Context, tenantID uuid.UUID) ([]asset.FixedAsset, error) {
	var out []asset.FixedAsset
	for _, a := range r.Items {
		if a.TenantID == tenantID && a.Status == asset.FixedAssetActive {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *FakeFixedAssetRepo) CountForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, a := range r.Items {
		if a.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

func (r *FakeFixedAssetRepo) TotalCurrentValue(_ context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, a := range r.Items {
		if a.TenantID == tenantID && a.Status == asset.FixedAssetActive {
			total = total.Add(a.CurrentValue)
		}
	}
	return total, nil
}

func (r *FakeFixedAssetRepo) Save(_ context.Context, fixedAsset *asset.FixedAsset) error {
	for i, a := range r.Items {
		if a.ID == fixedAsset.ID {
			r.Items[i] = fixedAsset
			return nil
		}
	}
	r.Items = append(r.Items, fixedAsset)
	return nil
}

func (r *FakeFixedAssetRepo) SaveWithLock(ctx context.Context, fixedAsset *asset.FixedAsset) error {
	return r.Save(ctx, fixedAsset)
}

// Interface assertions
var (
	_ ledger.AccountRepository          = (*FakeAccountRepo)(nil)
	_ ledger.BankTransactionRepository  = (*FakeBankTransactionRepo)(nil)
	_ ledger.JournalEntryRepository     = (*FakeJournalEntryRepo)(nil)
	_ partner.VendorRepository          = (*FakeVendorRepo)(nil)
	_ partner.CustomerRepository        = (*FakeCustomerRepo)(nil)
	_ catalog.ProductRepository         = (*FakeProductRepo)(nil)
	_ catalog.CategoryRepository        = (*FakeCategoryRepo)(nil)
	_ inventory.StockSummaryRepository  = (*FakeStockSummaryRepo)(nil)
	_ inventory.StockEntryRepository    = (*FakeStockEntryRepo)(nil)
	_ trade.PurchaseRepository          = (*FakePurchaseRepo)(nil)
	_ trade.SaleRepository              = (*FakeSaleRepo)(nil)
	_ asset.FixedAssetRepository        = (*FakeFixedAssetRepo)(nil)
)
