package billing_test

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shopbooks/backend/internal/domain/billing"
	"github.com/shopbooks/backend/internal/domain/identity"
	"github.com/shopbooks/backend/internal/domain/shared"
)

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

type fakeSubscriptionRepo struct {
	subscriptions []*billing.Subscription
}

func (r *fakeSubscriptionRepo) FindActiveForTenant(_ context.Context, tenantID uuid.UUID) (*billing.Subscription, error) {
	for _, s := range r.subscriptions {
		if s.TenantID == tenantID && s.Status == billing.SubscriptionActive {
			return s, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeSubscriptionRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID) ([]billing.Subscription, error) {
	var out []billing.Subscription
	for _, s := range r.subscriptions {
		if s.TenantID == tenantID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) Save(_ context.Context, subscription *billing.Subscription) error {
	for i, s := range r.subscriptions {
		if s.ID == subscription.ID {
			r.subscriptions[i] = subscription
			return nil
		}
	}
	r.subscriptions = append(r.subscriptions, subscription)
	return nil
}

type fakeInvoiceRepo struct {
	invoices []*billing.Invoice
	seq      int
}

func (r *fakeInvoiceRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*billing.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.TenantID == tenantID && inv.ID == id {
			return inv, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeInvoiceRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]billing.Invoice, error) {
	var out []billing.Invoice
	for _, inv := range r.invoices {
		if inv.TenantID == tenantID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) GenerateNumber(_ context.Context) (string, error) {
	r.seq++
	return fmt.Sprintf("INV-2026-%05d", r.seq), nil
}

func (r *fakeInvoiceRepo) Save(_ context.Context, invoice *billing.Invoice) error {
	for i, inv := range r.invoices {
		if inv.ID == invoice.ID {
			r.invoices[i] = invoice
			return nil
		}
	}
	r.invoices = append(r.invoices, invoice)
	return nil
}

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

var (
	_ billing.TenantRepository       = (*fakeTenantRepo)(nil)
	_ billing.SubscriptionRepository = (*fakeSubscriptionRepo)(nil)
	_ billing.InvoiceRepository      = (*fakeInvoiceRepo)(nil)
	_ identity.UserRepository        = (*fakeUserRepo)(nil)
)
