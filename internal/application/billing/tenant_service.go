package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appledger "github.com/shopbooks/backend/internal/application/ledger"
	"github.com/shopbooks/backend/internal/domain/billing"
	"github.com/shopbooks/backend/internal/domain/identity"
	"github.com/shopbooks/backend/internal/domain/ledger"
	"github.com/shopbooks/backend/internal/domain/shared"
)

// TenantService provisions and administers tenants. Provisioning creates
// the tenant, its singleton system bank and expense accounts, an owner user
// and a free subscription; the account creation is idempotent so a retried
// provisioning never duplicates system accounts.
type TenantService struct {
	tenants       billing.TenantRepository
	subscriptions billing.SubscriptionRepository
	users         identity.UserRepository
	scope         appledger.TransactionScope
	logger        *zap.Logger
}

// NewTenantService creates a new tenant service
func NewTenantService(
	tenants billing.TenantRepository,
	subscriptions billing.SubscriptionRepository,
	users identity.UserRepository,
	scope appledger.TransactionScope,
	logger *zap.Logger,
) *TenantService {
	return &TenantService{
		tenants:       tenants,
		subscriptions: subscriptions,
		users:         users,
		scope:         scope,
		logger:        logger,
	}
}

// ProvisionTenantInput carries a tenant signup request
type ProvisionTenantInput struct {
	Name          string `json:"name" binding:"required,max=200"`
	Code          string `json:"code" binding:"required,max=50"`
	OwnerName     string `json:"owner_name" binding:"required,max=200"`
	OwnerEmail    string `json:"owner_email" binding:"required,email,max=200"`
	OwnerPassword string `json:"owner_password" binding:"required,min=8"`
}

// Provision creates a new tenant with its system accounts, owner and a free
// subscription
func (s *TenantService) Provision(ctx context.Context, input ProvisionTenantInput) (*billing.Tenant, error) {
	existing, err := s.tenants.FindByCode(ctx, input.Code)
	if err != nil && !shared.IsDomainErrorWithCode(err, "NOT_FOUND") {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	tenant, err := billing.NewTenant(input.Name, input.Code)
	if err != nil {
		return nil, err
	}
	if err := s.tenants.Save(ctx, tenant); err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		if _, err := repos.Accounts().FindOrCreateSystem(ctx, tenant.ID, ledger.AccountTypeBank); err != nil {
			return err
		}
		_, err := repos.Accounts().FindOrCreateSystem(ctx, tenant.ID, ledger.AccountTypeExpense)
		return err
	})
	if err != nil {
		return nil, err
	}

	owner, err := identity.NewUser(tenant.ID, input.OwnerName, input.OwnerEmail, input.OwnerPassword, identity.RoleOwner)
	if err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, owner); err != nil {
		return nil, err
	}

	now := time.Now()
	subscription, err := billing.NewSubscription(tenant.ID, billing.PlanFree, now, now.AddDate(100, 0, 0))
	if err != nil {
		return nil, err
	}
	if err := s.subscriptions.Save(ctx, subscription); err != nil {
		return nil, err
	}

	s.logger.Info("tenant provisioned",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("code", tenant.Code))
	return tenant, nil
}

// Get returns a single tenant
func (s *TenantService) Get(ctx context.Context, id uuid.UUID) (*billing.Tenant, error) {
	return s.tenants.FindByID(ctx, id)
}

// List returns a page of tenants
func (s *TenantService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[billing.Tenant], error) {
	filter.Normalize()
	items, err := s.tenants.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.tenants.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Suspend blocks a tenant from using the system
func (s *TenantService) Suspend(ctx context.Context, id uuid.UUID) (*billing.Tenant, error) {
	tenant, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tenant.Suspend()
	if err := s.tenants.Save(ctx, tenant); err != nil {
		return nil, err
	}

	s.logger.Warn("tenant suspended", zap.String("tenant_id", id.String()))
	return tenant, nil
}

// Reactivate restores a suspended tenant
func (s *TenantService) Reactivate(ctx context.Context, id uuid.UUID) (*billing.Tenant, error) {
	tenant, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tenant.Reactivate()
	if err := s.tenants.Save(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}
