package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	billingapp "github.com/shopbooks/backend/internal/application/billing"
	"github.com/shopbooks/backend/internal/application/ledger/ledgertest"
	"github.com/shopbooks/backend/internal/domain/billing"
	"github.com/shopbooks/backend/internal/domain/identity"
	"github.com/shopbooks/backend/internal/domain/shared"
)

type tenantFixture struct {
	world         *ledgertest.World
	tenants       *fakeTenantRepo
	subscriptions *fakeSubscriptionRepo
	users         *fakeUserRepo
	svc           *billingapp.TenantService
}

func newTenantFixture(t *testing.T) *tenantFixture {
	t.Helper()

	f := &tenantFixture{
		world:         ledgertest.NewWorld(),
		tenants:       &fakeTenantRepo{},
		subscriptions: &fakeSubscriptionRepo{},
		users:         &fakeUserRepo{},
	}
	f.svc = billingapp.NewTenantService(f.tenants, f.subscriptions, f.users, f.world.Scope(), zap.NewNop())
	return f
}

func provisionInput() billingapp.ProvisionTenantInput {
	return billingapp.ProvisionTenantInput{
		Name:          "Corner Shop",
		Code:          "corner-shop",
		OwnerName:     "Alex",
		OwnerEmail:    "alex@example.com",
		OwnerPassword: "hunter2hunter2",
	}
}

func TestTenantServiceProvision(t *testing.T) {
	ctx := context.Background()

	t.Run("creates tenant, system accounts, owner and free subscription", func(t *testing.T) {
		f := newTenantFixture(t)

		tenant, err := f.svc.Provision(ctx, provisionInput())
		require.NoError(t, err)
		assert.True(t, tenant.IsActive())

		require.Len(t, f.world.AccountRepo.Items, 2)
		for _, acct := range f.world.AccountRepo.Items {
			assert.True(t, acct.IsSystem)
			assert.Equal(t, tenant.ID, acct.TenantID)
		}

		require.Len(t, f.users.users, 1)
		owner := f.users.users[0]
		assert.Equal(t, identity.RoleOwner, owner.Role)
		assert.True(t, owner.CheckPassword("hunter2hunter2"))

		subscription, err := f.subscriptions.FindActiveForTenant(ctx, tenant.ID)
		require.NoError(t, err)
		assert.Equal(t, billing.PlanFree, subscription.Plan)
	})

	t.Run("rejects a duplicate tenant code", func(t *testing.T) {
		f := newTenantFixture(t)
		_, err := f.svc.Provision(ctx, provisionInput())
		require.NoError(t, err)

		input := provisionInput()
		input.OwnerEmail = "other@example.com"
		_, err = f.svc.Provision(ctx, input)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestTenantServiceSuspendReactivate(t *testing.T) {
	ctx := context.Background()
	f := newTenantFixture(t)

	tenant, err := f.svc.Provision(ctx, provisionInput())
	require.NoError(t, err)

	suspended, err := f.svc.Suspend(ctx, tenant.ID)
	require.NoError(t, err)
	assert.False(t, suspended.IsActive())

	restored, err := f.svc.Reactivate(ctx, tenant.ID)
	require.NoError(t, err)
	assert.True(t, restored.IsActive())
}

func TestTenantServiceList(t *testing.T) {
	ctx := context.Background()
	f := newTenantFixture(t)

	_, err := f.svc.Provision(ctx, provisionInput())
	require.NoError(t, err)

	page, err := f.svc.List(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Len(t, page.Items, 1)
}
