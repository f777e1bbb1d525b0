package identity_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	identityapp "github.com/shopbooks/backend/internal/application/identity"
	"github.com/shopbooks/backend/internal/domain/billing"
	"github.com/shopbooks/backend/internal/domain/identity"
	"github.com/shopbooks/backend/internal/domain/shared"
)

type fakeUserRepo struct {
	users []*identity.User
}

func (r *fakeUserRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*identity.User, error) {
	for _, u := range r.users {
		if u.TenantID == tenantID && u.ID == id {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*identity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepo) Save(_ context.Context, user *identity.User) error {
	for i, u := range r.users {
		if u.ID == user.ID {
			r.users[i] = user
			return nil
		}
	}
	r.users = append(r.users, user)
	return nil
}

type fakeTenantRepo struct {
	tenants []*billing.Tenant
}

func (r *fakeTenantRepo) FindByID(_ context.Context, id uuid.UUID) (*billing.Tenant, error) {
	for _, t := range r.tenants {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeTenantRepo) FindByCode(_ context.Context, code string) (*billing.Tenant, error) {
	for _, t := range r.tenants {
		if t.Code == code {
			return t, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeTenantRepo) FindAll(_ context.Context, _ shared.Filter) ([]billing.Tenant, error) {
	out := make([]billing.Tenant, 0, len(r.tenants))
	for _, t := range r.tenants {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTenantRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.tenants)), nil
}

func (r *fakeTenantRepo) Save(_ context.Context, tenant *billing.Tenant) error {
	for i, t := range r.tenants {
		if t.ID == tenant.ID {
			r.tenants[i] = tenant
			return nil
		}
	}
	r.tenants = append(r.tenants, tenant)
	return nil
}

type fakeIssuer struct {
	issued int
}

func (i *fakeIssuer) Issue(userID, _ uuid.UUID, role string) (string, time.Time, error) {
	i.issued++
	return fmt.Sprintf("token-%s-%s", role, userID), time.Now().Add(time.Hour), nil
}

type fakeBlacklist struct {
	revoked map[string]time.Time
}

func newFakeBlacklist() *fakeBlacklist {
	return &fakeBlacklist{revoked: make(map[string]time.Time)}
}

func (b *fakeBlacklist) Revoke(_ context.Context, token string, until time.Time) error {
	b.revoked[token] = until
	return nil
}

func (b *fakeBlacklist) IsRevoked(_ context.Context, token string) (bool, error) {
	_, ok := b.revoked[token]
	return ok, nil
}

type authFixture struct {
	users     *fakeUserRepo
	tenants   *fakeTenantRepo
	issuer    *fakeIssuer
	blacklist *fakeBlacklist
	svc       *identityapp.AuthService
	tenant    *billing.Tenant
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	tenant, err := billing.NewTenant("Corner Shop", "corner-shop")
	require.NoError(t, err)

	f := &authFixture{
		users:     &fakeUserRepo{},
		tenants:   &fakeTenantRepo{tenants: []*billing.Tenant{tenant}},
		issuer:    &fakeIssuer{},
		blacklist: newFakeBlacklist(),
		tenant:    tenant,
	}
	f.svc = identityapp.NewAuthService(f.users, f.tenants, f.issuer, f.blacklist, zap.NewNop())
	return f
}

func (f *authFixture) register(t *testing.T, email, password string) *identity.User {
	t.Helper()
	user, err := f.svc.Register(context.Background(), f.tenant.ID, identityapp.RegisterInput{
		Name: "Staff Member", Email: email, Password: password, Role: "staff",
	})
	require.NoError(t, err)
	return user
}

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a user into an active tenant", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.register(t, "staff@example.com", "hunter2hunter2")
		assert.Equal(t, f.tenant.ID, user.TenantID)
		assert.Equal(t, identity.RoleStaff, user.Role)
		assert.True(t, user.CheckPassword("hunter2hunter2"))
	})

	t.Run("rejects duplicate emails", func(t *testing.T) {
		f := newAuthFixture(t)
		f.register(t, "staff@example.com", "hunter2hunter2")

		_, err := f.svc.Register(ctx, f.tenant.ID, identityapp.RegisterInput{
			Name: "Other", Email: "staff@example.com", Password: "hunter2hunter2", Role: "staff",
		})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("rejects suspended tenants", func(t *testing.T) {
		f := newAuthFixture(t)
		f.tenant.Suspend()

		_, err := f.svc.Register(ctx, f.tenant.ID, identityapp.RegisterInput{
			Name: "Staff", Email: "staff@example.com", Password: "hunter2hunter2", Role: "staff",
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a token for valid credentials", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.register(t, "staff@example.com", "hunter2hunter2")

		result, err := f.svc.Login(ctx, identityapp.LoginInput{
			Email: "staff@example.com", Password: "hunter2hunter2",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, user.ID, result.User.ID)
		assert.Equal(t, 1, f.issuer.issued)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		f := newAuthFixture(t)
		f.register(t, "staff@example.com", "hunter2hunter2")

		_, err := f.svc.Login(ctx, identityapp.LoginInput{
			Email: "staff@example.com", Password: "wrong-password",
		})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("rejects an unknown email", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.Login(ctx, identityapp.LoginInput{
			Email: "nobody@example.com", Password: "hunter2hunter2",
		})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("rejects a deactivated user", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.register(t, "staff@example.com", "hunter2hunter2")
		user.Deactivate()

		_, err := f.svc.Login(ctx, identityapp.LoginInput{
			Email: "staff@example.com", Password: "hunter2hunter2",
		})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("rejects users of a suspended tenant", func(t *testing.T) {
		f := newAuthFixture(t)
		f.register(t, "staff@example.com", "hunter2hunter2")
		f.tenant.Suspend()

		_, err := f.svc.Login(ctx, identityapp.LoginInput{
			Email: "staff@example.com", Password: "hunter2hunter2",
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestAuthServiceLogout(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Logout(ctx, "some-token", time.Now().Add(time.Hour)))

	revoked, err := f.blacklist.IsRevoked(ctx, "some-token")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestAuthServiceChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("requires the current password", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.register(t, "staff@example.com", "hunter2hunter2")

		err := f.svc.ChangePassword(ctx, f.tenant.ID, user.ID, "wrong-password", "new-password-1")
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("old password stops working after a change", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.register(t, "staff@example.com", "hunter2hunter2")

		require.NoError(t, f.svc.ChangePassword(ctx, f.tenant.ID, user.ID, "hunter2hunter2", "new-password-1"))

		_, err := f.svc.Login(ctx, identityapp.LoginInput{
			Email: "staff@example.com", Password: "hunter2hunter2",
		})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)

		_, err = f.svc.Login(ctx, identityapp.LoginInput{
			Email: "staff@example.com", Password: "new-password-1",
		})
		assert.NoError(t, err)
	})
}
