package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shopbooks/backend/internal/domain/billing"
	"github.com/shopbooks/backend/internal/domain/shared"
)

// planPrices is the monthly price per plan
var planPrices = map[billing.SubscriptionPlan]decimal.Decimal{
	billing.PlanFree:     decimal.Zero,
	billing.PlanStandard: decimal.NewFromInt(29),
	billing.PlanPremium:  decimal.NewFromInt(79),
}

// SubscriptionService manages tenant subscriptions and their invoices
type SubscriptionService struct {
	tenants       billing.TenantRepository
	subscriptions billing.SubscriptionRepository
	invoices      billing.InvoiceRepository
	logger        *zap.Logger
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(
	tenants billing.TenantRepository,
	subscriptions billing.SubscriptionRepository,
	invoices billing.InvoiceRepository,
	logger *zap.Logger,
) *SubscriptionService {
	return &SubscriptionService{
		tenants:       tenants,
		subscriptions: subscriptions,
		invoices:      invoices,
		logger:        logger,
	}
}

// StartSubscriptionInput carries a plan change request
type StartSubscriptionInput struct {
	Plan   string `json:"plan" binding:"required,oneof=free standard premium"`
	Months int    `json:"months" binding:"required,min=1,max=36"`
}

// Start opens a new subscription period on the given plan, cancelling the
// current one, and issues an invoice for paid plans.
func (s *SubscriptionService) Start(ctx context.Context, tenantID uuid.UUID, input StartSubscriptionInput) (*billing.Subscription, error) {
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.IsActive() {
		return nil, shared.ErrForbidden
	}

	current, err := s.subscriptions.FindActiveForTenant(ctx, tenantID)
	if err != nil && !shared.IsDomainErrorWithCode(err, "NOT_FOUND") {
		return nil, err
	}
	if current != nil {
		if err := current.Cancel(); err != nil {
			return nil, err
		}
		if err := s.subscriptions.Save(ctx, current); err != nil {
			return nil, err
		}
	}

	plan := billing.SubscriptionPlan(input.Plan)
	now := time.Now()
	subscription, err := billing.NewSubscription(tenantID, plan, now, now.AddDate(0, input.Months, 0))
	if err != nil {
		return nil, err
	}
	if err := s.subscriptions.Save(ctx, subscription); err != nil {
		return nil, err
	}

	price := planPrices[plan].Mul(decimal.NewFromInt(int64(input.Months)))
	if price.IsPositive() {
		number, err := s.invoices.GenerateNumber(ctx)
		if err != nil {
			return nil, err
		}
		invoice, err := billing.NewInvoice(tenantID, number, price)
		if err != nil {
			return nil, err
		}
		if err := s.invoices.Save(ctx, invoice); err != nil {
			return nil, err
		}
	}

	s.logger.Info("subscription started",
		zap.String("tenant_id", tenantID.String()),
		zap.String("plan", input.Plan),
		zap.Int("months", input.Months))
	return subscription, nil
}

// Current returns the tenant's active subscription, expiring it first when
// the period has lapsed.
func (s *SubscriptionService) Current(ctx context.Context, tenantID uuid.UUID) (*billing.Subscription, error) {
	subscription, err := s.subscriptions.FindActiveForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if subscription.ExpireIfPast(time.Now()) {
		if err := s.subscriptions.Save(ctx, subscription); err != nil {
			return nil, err
		}
	}
	return subscription, nil
}

// ListInvoices returns a page of the tenant's billing invoices
func (s *SubscriptionService) ListInvoices(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	filter.Normalize()
	return s.invoices.FindAllForTenant(ctx, tenantID, filter)
}

// PayInvoice marks an invoice paid
func (s *SubscriptionService) PayInvoice(ctx context.Context, tenantID, id uuid.UUID) (*billing.Invoice, error) {
	invoice, err := s.invoices.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := invoice.MarkPaid(); err != nil {
		return nil, err
	}
	if err := s.invoices.Save(ctx, invoice); err != nil {
		return nil, err
	}

	s.logger.Info("invoice paid",
		zap.String("tenant_id", tenantID.String()),
		zap.String("invoice_id", id.String()))
	return invoice, nil
}
