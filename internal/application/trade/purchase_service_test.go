package trade_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopbooks/backend/internal/application/ledger/ledgertest"
	tradeapp "github.com/shopbooks/backend/internal/application/trade"
	"github.com/shopbooks/backend/internal/domain/catalog"
	"github.com/shopbooks/backend/internal/domain/ledger"
	"github.com/shopbooks/backend/internal/domain/partner"
	"github.com/shopbooks/backend/internal/domain/shared"
)

type purchaseFixture struct {
	world    *ledgertest.World
	svc      *tradeapp.PurchaseService
	tenantID uuid.UUID
	vendor   *partner.Vendor
	product  *catalog.Product
}

func newPurchaseFixture(t *testing.T) *purchaseFixture {
	t.Helper()
	world := ledgertest.NewWorld()
	tenantID := uuid.New()

	vendor, err := partner.NewVendor(tenantID, "VEN-01", "Acme Supplies", decimal.Zero)
	require.NoError(t, err)
	world.VendorRepo.Items = append(world.VendorRepo.Items, vendor)

	product, err := catalog.NewProduct(tenantID, "PRD-01", "Widget", "pcs", decimal.NewFromInt(12), nil)
	require.NoError(t, err)
	world.ProductRepo.Items = append(world.ProductRepo.Items, product)

	return &purchaseFixture{
		world:    world,
		svc:      tradeapp.NewPurchaseService(world.Scope(), zap.NewNop()),
		tenantID: tenantID,
		vendor:   vendor,
		product:  product,
	}
}

func (f *purchaseFixture) bankBalance(t *testing.T) decimal.Decimal {
	t.Helper()
	acct, err := f.world.AccountRepo.FindOrCreateSystem(context.Background(), f.tenantID, ledger.AccountTypeBank)
	require.NoError(t, err)
	return acct.CurrentBalance
}

func TestPurchaseServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("posts stock, bank and vendor due effects", func(t *testing.T) {
		f := newPurchaseFixture(t)

		purchase, err := f.svc.Create(ctx, f.tenantID, tradeapp.CreatePurchaseInput{
			VendorID:     f.vendor.ID,
			PurchaseDate: time.Now(),
			Items: []tradeapp.ItemInput{
				{ProductID: f.product.ID, Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(5)},
			},
			Paid: decimal.NewFromInt(20),
		})
		require.NoError(t, err)
		assert.True(t, purchase.Total.Equal(decimal.NewFromInt(50)))
		assert.True(t, purchase.Due.Equal(decimal.NewFromInt(30)))

		summary, err := f.world.StockSummaryRepo.FindByProduct(ctx, f.tenantID, f.product.ID)
		require.NoError(t, err)
		assert.True(t, summary.TotalQty.Equal(decimal.NewFromInt(10)))
		assert.True(t, summary.AvgPurchasePrice.Equal(decimal.NewFromInt(5)))

		assert.True(t, f.bankBalance(t).Equal(decimal.NewFromInt(-20)))
		require.Len(t, f.world.BankTransactionRepo.Items, 1)
		assert.Equal(t, ledger.BankTransactionDebit, f.world.BankTransactionRepo.Items[0].Type)
		assert.Equal(t, ledger.BankCategoryPurchasePayment, f.world.BankTransactionRepo.Items[0].Category)

		assert.True(t, f.vendor.CurrentDue.Equal(decimal.NewFromInt(30)))
		require.Len(t, f.world.StockEntryRepo.Items, 1)
	})

	t.Run("fully paid purchase books no vendor due", func(t *testing.T) {
		f := newPurchaseFixture(t)

		_, err := f.svc.Create(ctx, f.tenantID, tradeapp.CreatePurchaseInput{
			VendorID: f.vendor.ID,
			Items: []tradeapp.ItemInput{
				{ProductID: f.product.ID, Quantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromInt(25)},
			},
			Paid: decimal.NewFromInt(100),
		})
		require.NoError(t, err)
		assert.True(t, f.vendor.CurrentDue.IsZero())
		assert.True(t, f.bankBalance(t).Equal(decimal.NewFromInt(-100)))
	})

	t.Run("weighted average moves on the second purchase", func(t *testing.T) {
		f := newPurchaseFixture(t)

		for _, price := range []int64{5, 15} {
			_, err := f.svc.Create(ctx, f.tenantID, tradeapp.CreatePurchaseInput{
				VendorID: f.vendor.ID,
				Items: []tradeapp.ItemInput{
					{ProductID: f.product.ID, Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(price)},
				},
			})
			require.NoError(t, err)
		}

		summary, err := f.world.StockSummaryRepo.FindByProduct(ctx, f.tenantID, f.product.ID)
		require.NoError(t, err)
		assert.True(t, summary.TotalQty.Equal(decimal.NewFromInt(20)))
		assert.True(t, summary.AvgPurchasePrice.Equal(decimal.NewFromInt(10)))
		assert.True(t, summary.TotalValue.Equal(decimal.NewFromInt(200)))
	})

	t.Run("stamps the acting user on the document and its ledger rows", func(t *testing.T) {
		f := newPurchaseFixture(t)
		userID := uuid.New()
		actorCtx := shared.WithActor(ctx, userID)

		purchase, err := f.svc.Create(actorCtx, f.tenantID, tradeapp.CreatePurchaseInput{
			VendorID: f.vendor.ID,
			Items: []tradeapp.ItemInput{
				{ProductID: f.product.ID, Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(5)},
			},
			Paid: decimal.NewFromInt(10),
		})
		require.NoError(t, err)
		require.NotNil(t, purchase.CreatedBy)
		assert.Equal(t, userID, *purchase.CreatedBy)

		require.Len(t, f.world.BankTransactionRepo.Items, 1)
		require.NotNil(t, f.world.BankTransactionRepo.Items[0].CreatedBy)
		assert.Equal(t, userID, *f.world.BankTransactionRepo.Items[0].CreatedBy)

		require.Len(t, f.world.StockEntryRepo.Items, 1)
		require.NotNil(t, f.world.StockEntryRepo.Items[0].CreatedBy)
		assert.Equal(t, userID, *f.world.StockEntryRepo.Items[0].CreatedBy)
	})

	t.Run("unknown vendor fails the whole posting", func(t *testing.T) {
		f := newPurchaseFixture(t)

		_, err := f.svc.Create(ctx, f.tenantID, tradeapp.CreatePurchaseInput{
			VendorID: uuid.New(),
			Items: []tradeapp.ItemInput{
				{ProductID: f.product.ID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
			},
		})
		require.Error(t, err)
		assert.Empty(t, f.world.PurchaseRepo.Items)
		assert.Empty(t, f.world.StockEntryRepo.Items)
	})
}

func TestPurchaseServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("reverses old effects before re-posting", func(t *testing.T) {
		f := newPurchaseFixture(t)

		purchase, err := f.svc.Create(ctx, f.tenantID, tradeapp.CreatePurchaseInput{
			VendorID: f.vendor.ID,
			Items: []tradeapp.ItemInput{
				{ProductID: f.product.ID, Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(5)},
			},
			Paid: decimal.NewFromInt(20),
		})
		require.NoError(t, err)

		updated, err := f.svc.Update(ctx, f.tenantID, purchase.ID, tradeapp.UpdatePurchaseInput{
			VendorID: f.vendor.ID,
			Items: []tradeapp.ItemInput{
				{ProductID: f.product.ID, Quantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromInt(5)},
			},
			Paid: decimal.NewFromInt(20),
		})
		require.NoError(t, err)
		assert.True(t, updated.Total.Equal(decimal.NewFromInt(20)))
		assert.True(t, updated.Due.IsZero())

		summary, err := f.world.StockSummaryRepo.FindByProduct(ctx, f.tenantID, f.product.ID)
		require.NoError(t, err)
		assert.True(t, summary.TotalQty.Equal(decimal.NewFromInt(4)))

		// old payment refunded, new payment debited
		assert.True(t, f.bankBalance(t).Equal(decimal.NewFromInt(-20)))
		// the booked due of 30 was released in full
		assert.True(t, f.vendor.CurrentDue.IsZero())
		// original posting, reversal and re-posting all left audit rows
		assert.Len(t, f.world.StockEntryRepo.Items, 3)
		assert.Len(t, f.world.BankTransactionRepo.Items, 3)
	})

	t.Run("raising only the paid amount nets bank and due by the difference", func(t *testing.T) {
		f := newPurchaseFixture(t)

		purchase, err := f.svc.Create(ctx, f.tenantID, tradeapp.CreatePurchaseInput{
			VendorID: f.vendor.ID,
			Items: []tradeapp.ItemInput{
				{ProductID: f.product.ID, Quantity: decimal.NewFromInt(8), UnitPrice: decimal.NewFromInt(10)},
			},
			Paid: decimal.NewFromInt(50),
		})
		require.NoError(t, err)
		require.True(t, f.bankBalance(t).Equal(decimal.NewFromInt(-50)))
		require.True(t, f.vendor.CurrentDue.Equal(decimal.NewFromInt(30)))

		updated, err := f.svc.Update(ctx, f.tenantID, purchase.ID, tradeapp.UpdatePurchaseInput{
			VendorID: f.vendor.ID,
			Items: []tradeapp.ItemInput{
				{ProductID: f.product.ID, Quantity: decimal.NewFromInt(8), UnitPrice: decimal.NewFromInt(10)},
			},
			Paid: decimal.NewFromInt(80),
		})
		require.NoError(t, err)
		assert.True(t, updated.Due.IsZero())

		// paid 50 -> 80: bank moves a further -30, the booked due of 30 is released
		assert.True(t, f.bankBalance(t).Equal(decimal.NewFromInt(-80)))
		assert.True(t, f.vendor.CurrentDue.IsZero())

		summary, err := f.world.StockSummaryRepo.FindByProduct(ctx, f.tenantID, f.product.ID)
		require.NoError(t, err)
		assert.True(t, summary.TotalQty.Equal(decimal.NewFromInt(8)))
	})
}

func TestPurchaseServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the document but keeps posted effects", func(t *testing.T) {
		f := newPurchaseFixture(t)

		purchase, err := f.svc.Create(ctx, f.tenantID, tradeapp.CreatePurchaseInput{
			VendorID: f.vendor.ID,
			Items: []tradeapp.ItemInput{
				{ProductID: f.product.ID, Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(5)},
			},
			Paid: decimal.NewFromInt(20),
		})
		require.NoError(t, err)

		require.NoError(t, f.svc.Delete(ctx, f.tenantID, purchase.ID))

		assert.Empty(t, f.world.PurchaseRepo.Items)
		_, err = f.svc.Get(ctx, f.tenantID, purchase.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		// ledger effects are not unwound by a document delete
		summary, err := f.world.StockSummaryRepo.FindByProduct(ctx, f.tenantID, f.product.ID)
		require.NoError(t, err)
		assert.True(t, summary.TotalQty.Equal(decimal.NewFromInt(10)))
		assert.True(t, f.bankBalance(t).Equal(decimal.NewFromInt(-20)))
		assert.True(t, f.vendor.CurrentDue.Equal(decimal.NewFromInt(30)))
		assert.Len(t, f.world.BankTransactionRepo.Items, 1)
		assert.Len(t, f.world.StockEntryRepo.Items, 1)
	})

	t.Run("unknown purchase fails without touching anything", func(t *testing.T) {
		f := newPurchaseFixture(t)

		err := f.svc.Delete(ctx, f.tenantID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
