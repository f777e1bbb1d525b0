package partner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appledger "github.com/shopbooks/backend/internal/application/ledger"
	"github.com/shopbooks/backend/internal/domain/ledger"
	"github.com/shopbooks/backend/internal/domain/partner"
	"github.com/shopbooks/backend/internal/domain/shared"
)

// CustomerService manages customers and standalone due collections.
// Collecting a due credits the bank and reduces the due in one transaction.
type CustomerService struct {
	scope  appledger.TransactionScope
	logger *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(scope appledger.TransactionScope, logger *zap.Logger) *CustomerService {
	return &CustomerService{scope: scope, logger: logger}
}

// CreateCustomerInput carries a customer creation request
type CreateCustomerInput struct {
	Code        string          `json:"code" binding:"required,max=50"`
	Name        string          `json:"name" binding:"required,max=200"`
	Phone       string          `json:"phone" binding:"max=50"`
	Email       string          `json:"email" binding:"omitempty,email,max=200"`
	Address     string          `json:"address" binding:"max=500"`
	OpeningDue  decimal.Decimal `json:"opening_due"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
}

// UpdateCustomerInput carries a customer update request
type UpdateCustomerInput struct {
	Name        string          `json:"name" binding:"required,max=200"`
	Phone       string          `json:"phone" binding:"max=50"`
	Email       string          `json:"email" binding:"omitempty,email,max=200"`
	Address     string          `json:"address" binding:"max=500"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
}

// CollectPaymentInput carries a standalone due collection request
type CollectPaymentInput struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
}

// Create registers a new customer. The code must be unique within the tenant.
func (s *CustomerService) Create(ctx context.Context, tenantID uuid.UUID, input CreateCustomerInput) (*partner.Customer, error) {
	var customer *partner.Customer
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		existing, err := repos.Customers().FindByCode(ctx, tenantID, input.Code)
		if err != nil && !shared.IsDomainErrorWithCode(err, "NOT_FOUND") {
			return err
		}
		if existing != nil {
			return shared.ErrAlreadyExists
		}

		customer, err = partner.NewCustomer(tenantID, input.Code, input.Name, input.OpeningDue, input.CreditLimit)
		if err != nil {
			return err
		}
		shared.StampActor(ctx, customer)
		customer.UpdateContact(input.Phone, input.Email, input.Address)
		return repos.Customers().Save(ctx, customer)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("customer created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("customer_id", customer.ID.String()))
	return customer, nil
}

// Get returns a single customer
func (s *CustomerService) Get(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	var customer *partner.Customer
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		var err error
		customer, err = repos.Customers().FindByIDForTenant(ctx, tenantID, id)
		return err
	})
	return customer, err
}

// List returns a page of customers
func (s *CustomerService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[partner.Customer], error) {
	filter.Normalize()
	var page *shared.Paginated[partner.Customer]
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		items, err := repos.Customers().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		total, err := repos.Customers().CountForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		p := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
		page = &p
		return nil
	})
	return page, err
}

// Update changes a customer's name, contact details and credit limit
func (s *CustomerService) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateCustomerInput) (*partner.Customer, error) {
	var customer *partner.Customer
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		var err error
		customer, err = repos.Customers().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := customer.Rename(input.Name); err != nil {
			return err
		}
		customer.UpdateContact(input.Phone, input.Email, input.Address)
		if err := customer.SetCreditLimit(input.CreditLimit); err != nil {
			return err
		}
		return repos.Customers().SaveWithLock(ctx, customer)
	})
	return customer, err
}

// Collect records a standalone collection against the customer's
// outstanding due: the bank is credited and the due reduced inside one
// transaction. Collecting more than is owed is rejected.
func (s *CustomerService) Collect(ctx context.Context, tenantID, id uuid.UUID, input CollectPaymentInput) (*partner.Customer, error) {
	var customer *partner.Customer
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		var err error
		customer, err = repos.Customers().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := customer.ReceivePayment(input.Amount); err != nil {
			return err
		}
		if err := repos.Customers().SaveWithLock(ctx, customer); err != nil {
			return err
		}

		description := input.Description
		if description == "" {
			description = fmt.Sprintf("Collection from customer %s", customer.Name)
		}
		refID := customer.ID
		_, err = appledger.CreditInScope(ctx, repos, tenantID,
			ledger.BankCategoryCustomerReceipt, input.Amount, time.Now(),
			description, &refID, "customer")
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("customer payment collected",
		zap.String("tenant_id", tenantID.String()),
		zap.String("customer_id", id.String()),
		zap.String("amount", input.Amount.String()))
	return customer, nil
}

// Delete removes a customer with no sale history and no outstanding due
func (s *CustomerService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		customer, err := repos.Customers().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if customer.HasOutstandingDue() {
			return shared.ErrHasDependents
		}
		count, err := repos.Sales().CountByCustomer(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return shared.ErrHasDependents
		}
		return repos.Customers().Delete(ctx, tenantID, id)
	})
}
