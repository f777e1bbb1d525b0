package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	catalogapp "github.com/shopbooks/backend/internal/application/catalog"
	"github.com/shopbooks/backend/internal/application/ledger/ledgertest"
	"github.com/shopbooks/backend/internal/domain/inventory"
	"github.com/shopbooks/backend/internal/domain/shared"
)

func TestProductService(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	newService := func() (*ledgertest.World, *catalogapp.ProductService) {
		world := ledgertest.NewWorld()
		return world, catalogapp.NewProductService(world.Scope(), zap.NewNop())
	}

	t.Run("create enforces unique codes", func(t *testing.T) {
		_, svc := newService()
		_, err := svc.Create(ctx, tenantID, catalogapp.CreateProductInput{
			Code: "PRD-01", Name: "Widget", SellingPrice: decimal.NewFromInt(12),
		})
		require.NoError(t, err)

		_, err = svc.Create(ctx, tenantID, catalogapp.CreateProductInput{
			Code: "PRD-01", Name: "Other",
		})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("create validates the category reference", func(t *testing.T) {
		_, svc := newService()
		missing := uuid.New()
		_, err := svc.Create(ctx, tenantID, catalogapp.CreateProductInput{
			Code: "PRD-01", Name: "Widget", CategoryID: &missing,
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("update renames and reprices", func(t *testing.T) {
		_, svc := newService()
		product, err := svc.Create(ctx, tenantID, catalogapp.CreateProductInput{
			Code: "PRD-01", Name: "Widget", SellingPrice: decimal.NewFromInt(12),
		})
		require.NoError(t, err)

		updated, err := svc.Update(ctx, tenantID, product.ID, catalogapp.UpdateProductInput{
			Name: "Widget Mk2", SellingPrice: decimal.NewFromInt(15),
		})
		require.NoError(t, err)
		assert.Equal(t, "Widget Mk2", updated.Name)
		assert.True(t, updated.SellingPrice.Equal(decimal.NewFromInt(15)))
	})

	t.Run("deactivate hides the product", func(t *testing.T) {
		_, svc := newService()
		product, err := svc.Create(ctx, tenantID, catalogapp.CreateProductInput{
			Code: "PRD-01", Name: "Widget",
		})
		require.NoError(t, err)

		require.NoError(t, svc.Deactivate(ctx, tenantID, product.ID))
		reloaded, err := svc.Get(ctx, tenantID, product.ID)
		require.NoError(t, err)
		assert.False(t, reloaded.IsActive)
	})

	t.Run("delete is blocked by stock movement history", func(t *testing.T) {
		world, svc := newService()
		product, err := svc.Create(ctx, tenantID, catalogapp.CreateProductInput{
			Code: "PRD-01", Name: "Widget",
		})
		require.NoError(t, err)

		entry, err := inventory.NewStockEntry(
			tenantID, product.ID, inventory.StockEntryOpening,
			decimal.NewFromInt(5), decimal.NewFromInt(2), time.Now(), nil, "", "",
		)
		require.NoError(t, err)
		require.NoError(t, world.StockEntryRepo.Save(ctx, entry))

		assert.ErrorIs(t, svc.Delete(ctx, tenantID, product.ID), shared.ErrHasDependents)
	})
}

func TestCategoryService(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	newServices := func() (*catalogapp.CategoryService, *catalogapp.ProductService) {
		world := ledgertest.NewWorld()
		return catalogapp.NewCategoryService(world.Scope(), zap.NewNop()),
			catalogapp.NewProductService(world.Scope(), zap.NewNop())
	}

	t.Run("create enforces unique names", func(t *testing.T) {
		svc, _ := newServices()
		_, err := svc.Create(ctx, tenantID, catalogapp.CategoryInput{Name: "Beverages"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, tenantID, catalogapp.CategoryInput{Name: "Beverages"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("delete is blocked while products reference it", func(t *testing.T) {
		svc, products := newServices()
		category, err := svc.Create(ctx, tenantID, catalogapp.CategoryInput{Name: "Beverages"})
		require.NoError(t, err)

		_, err = products.Create(ctx, tenantID, catalogapp.CreateProductInput{
			Code: "PRD-01", Name: "Cola", CategoryID: &category.ID,
		})
		require.NoError(t, err)

		assert.ErrorIs(t, svc.Delete(ctx, tenantID, category.ID), shared.ErrHasDependents)
	})

	t.Run("empty category deletes cleanly", func(t *testing.T) {
		svc, _ := newServices()
		category, err := svc.Create(ctx, tenantID, catalogapp.CategoryInput{Name: "Beverages"})
		require.NoError(t, err)
		require.NoError(t, svc.Delete(ctx, tenantID, category.ID))

		_, err = svc.Get(ctx, tenantID, category.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
