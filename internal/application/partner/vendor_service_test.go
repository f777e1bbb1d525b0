package partner_test

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
	partnerapp "github.com/shopbooks/backend/internal/application/partner"
	"github.com/shopbooks/backend/internal/domain/ledger"
	"github.com/shopbooks/backend/internal/domain/shared"
	"github.com/shopbooks/backend/internal/domain/trade"
)

func TestVendorService(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	newService := func() (*ledgertest.World, *partnerapp.VendorService) {
		world := ledgertest.NewWorld()
		return world, partnerapp.NewVendorService(world.Scope(), zap.NewNop())
	}

	t.Run("create enforces unique codes", func(t *testing.T) {
		_, svc := newService()
		_, err := svc.Create(ctx, tenantID, partnerapp.CreateVendorInput{Code: "VEN-01", Name: "Acme"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, tenantID, partnerapp.CreateVendorInput{Code: "VEN-01", Name: "Other"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("pay debits the bank and reduces the due", func(t *testing.T) {
		world, svc := newService()
		vendor, err := svc.Create(ctx, tenantID, partnerapp.CreateVendorInput{
			Code: "VEN-01", Name: "Acme", OpeningDue: decimal.NewFromInt(200),
		})
		require.NoError(t, err)

		paid, err := svc.Pay(ctx, tenantID, vendor.ID, partnerapp.PayVendorInput{
			Amount: decimal.NewFromInt(80),
		})
		require.NoError(t, err)
		assert.True(t, paid.CurrentDue.Equal(decimal.NewFromInt(120)))

		acct, err := world.AccountRepo.FindOrCreateSystem(ctx, tenantID, ledger.AccountTypeBank)
		require.NoError(t, err)
		assert.True(t, acct.CurrentBalance.Equal(decimal.NewFromInt(-80)))
		require.Len(t, world.BankTransactionRepo.Items, 1)
		assert.Equal(t, ledger.BankCategoryVendorPayment, world.BankTransactionRepo.Items[0].Category)
	})

	t.Run("overpaying leaves nothing posted", func(t *testing.T) {
		world, svc := newService()
		vendor, err := svc.Create(ctx, tenantID, partnerapp.CreateVendorInput{
			Code: "VEN-01", Name: "Acme", OpeningDue: decimal.NewFromInt(50),
		})
		require.NoError(t, err)

		_, err = svc.Pay(ctx, tenantID, vendor.ID, partnerapp.PayVendorInput{
			Amount: decimal.NewFromInt(60),
		})
		assert.True(t, shared.IsDomainErrorWithCode(err, "PAYMENT_EXCEEDS_DUE"))
		assert.Empty(t, world.BankTransactionRepo.Items)
	})

	t.Run("delete is blocked by dues and purchase history", func(t *testing.T) {
		world, svc := newService()
		withDue, err := svc.Create(ctx, tenantID, partnerapp.CreateVendorInput{
			Code: "VEN-01", Name: "Acme", OpeningDue: decimal.NewFromInt(10),
		})
		require.NoError(t, err)
		assert.ErrorIs(t, svc.Delete(ctx, tenantID, withDue.ID), shared.ErrHasDependents)

		withHistory, err := svc.Create(ctx, tenantID, partnerapp.CreateVendorInput{Code: "VEN-02", Name: "Globex"})
		require.NoError(t, err)
		purchase, err := trade.NewPurchase(tenantID, "PUR-1", withHistory.ID, withHistory.Name, time.Now())
		require.NoError(t, err)
		require.NoError(t, world.PurchaseRepo.Save(ctx, purchase))
		assert.ErrorIs(t, svc.Delete(ctx, tenantID, withHistory.ID), shared.ErrHasDependents)

		clean, err := svc.Create(ctx, tenantID, partnerapp.CreateVendorInput{Code: "VEN-03", Name: "Initech"})
		require.NoError(t, err)
		require.NoError(t, svc.Delete(ctx, tenantID, clean.ID))
	})
}
