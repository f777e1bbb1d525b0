package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	billingapp "github.com/shopbooks/backend/internal/application/billing"
	"github.com/shopbooks/backend/internal/domain/billing"
	"github.com/shopbooks/backend/internal/domain/shared"
)

type subscriptionFixture struct {
	tenants       *fakeTenantRepo
	subscriptions *fakeSubscriptionRepo
	invoices      *fakeInvoiceRepo
	svc           *billingapp.SubscriptionService
	tenant        *billing.Tenant
}

func newSubscriptionFixture(t *testing.T) *subscriptionFixture {
	t.Helper()

	tenant, err := billing.NewTenant("Corner Shop", "corner-shop")
	require.NoError(t, err)

	f := &subscriptionFixture{
		tenants:       &fakeTenantRepo{tenants: []*billing.Tenant{tenant}},
		subscriptions: &fakeSubscriptionRepo{},
		invoices:      &fakeInvoiceRepo{},
		tenant:        tenant,
	}
	f.svc = billingapp.NewSubscriptionService(f.tenants, f.subscriptions, f.invoices, zap.NewNop())
	return f
}

func TestSubscriptionServiceStart(t *testing.T) {
	ctx := context.Background()

	t.Run("free plan issues no invoice", func(t *testing.T) {
		f := newSubscriptionFixture(t)

		subscription, err := f.svc.Start(ctx, f.tenant.ID, billingapp.StartSubscriptionInput{
			Plan: "free", Months: 12,
		})
		require.NoError(t, err)
		assert.Equal(t, billing.PlanFree, subscription.Plan)
		assert.Empty(t, f.invoices.invoices)
	})

	t.Run("paid plan invoices price times months", func(t *testing.T) {
		f := newSubscriptionFixture(t)

		_, err := f.svc.Start(ctx, f.tenant.ID, billingapp.StartSubscriptionInput{
			Plan: "standard", Months: 3,
		})
		require.NoError(t, err)

		require.Len(t, f.invoices.invoices, 1)
		invoice := f.invoices.invoices[0]
		assert.True(t, invoice.Amount.Equal(decimal.NewFromInt(87)))
		assert.Equal(t, billing.InvoiceUnpaid, invoice.Status)
		assert.Equal(t, "INV-2026-00001", invoice.Number)
	})

	t.Run("starting a new plan cancels the current one", func(t *testing.T) {
		f := newSubscriptionFixture(t)

		first, err := f.svc.Start(ctx, f.tenant.ID, billingapp.StartSubscriptionInput{Plan: "free", Months: 12})
		require.NoError(t, err)

		second, err := f.svc.Start(ctx, f.tenant.ID, billingapp.StartSubscriptionInput{Plan: "premium", Months: 1})
		require.NoError(t, err)

		assert.Equal(t, billing.SubscriptionCancelled, first.Status)
		assert.Equal(t, billing.SubscriptionActive, second.Status)

		current, err := f.svc.Current(ctx, f.tenant.ID)
		require.NoError(t, err)
		assert.Equal(t, second.ID, current.ID)
	})

	t.Run("suspended tenants cannot subscribe", func(t *testing.T) {
		f := newSubscriptionFixture(t)
		f.tenant.Suspend()

		_, err := f.svc.Start(ctx, f.tenant.ID, billingapp.StartSubscriptionInput{Plan: "free", Months: 1})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestSubscriptionServiceCurrent(t *testing.T) {
	ctx := context.Background()

	t.Run("expires a lapsed period on read", func(t *testing.T) {
		f := newSubscriptionFixture(t)

		lapsed, err := billing.NewSubscription(f.tenant.ID, billing.PlanStandard,
			time.Now().AddDate(0, -2, 0), time.Now().AddDate(0, -1, 0))
		require.NoError(t, err)
		require.NoError(t, f.subscriptions.Save(ctx, lapsed))

		current, err := f.svc.Current(ctx, f.tenant.ID)
		require.NoError(t, err)
		assert.Equal(t, billing.SubscriptionExpired, current.Status)
	})

	t.Run("no subscription reads as not found", func(t *testing.T) {
		f := newSubscriptionFixture(t)
		_, err := f.svc.Current(ctx, f.tenant.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestSubscriptionServicePayInvoice(t *testing.T) {
	ctx := context.Background()
	f := newSubscriptionFixture(t)

	_, err := f.svc.Start(ctx, f.tenant.ID, billingapp.StartSubscriptionInput{Plan: "premium", Months: 2})
	require.NoError(t, err)
	require.Len(t, f.invoices.invoices, 1)
	invoiceID := f.invoices.invoices[0].ID

	paid, err := f.svc.PayInvoice(ctx, f.tenant.ID, invoiceID)
	require.NoError(t, err)
	assert.Equal(t, billing.InvoicePaid, paid.Status)
	require.NotNil(t, paid.PaidAt)

	_, err = f.svc.PayInvoice(ctx, f.tenant.ID, invoiceID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}
