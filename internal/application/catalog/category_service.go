package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appledger "github.com/shopbooks/backend/internal/application/ledger"
	"github.com/shopbooks/backend/internal/domain/catalog"
	"github.com/shopbooks/backend/internal/domain/shared"
)

// CategoryService manages product categories
type CategoryService struct {
	scope  appledger.TransactionScope
	logger *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(scope appledger.TransactionScope, logger *zap.Logger) *CategoryService {
	return &CategoryService{scope: scope, logger: logger}
}

// CategoryInput carries a category create/update request
type CategoryInput struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"max=500"`
}

// Create adds a new category. Names are unique within the tenant.
func (s *CategoryService) Create(ctx context.Context, tenantID uuid.UUID, input CategoryInput) (*catalog.ProductCategory, error) {
	var category *catalog.ProductCategory
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		existing, err := repos.Categories().FindByName(ctx, tenantID, input.Name)
		if err != nil && !shared.IsDomainErrorWithCode(err, "NOT_FOUND") {
			return err
		}
		if existing != nil {
			return shared.ErrAlreadyExists
		}

		category, err = catalog.NewProductCategory(tenantID, input.Name, input.Description)
		if err != nil {
			return err
		}
		shared.StampActor(ctx, category)
		return repos.Categories().Save(ctx, category)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("category created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("category_id", category.ID.String()))
	return category, nil
}

// Get returns a single category
func (s *CategoryService) Get(ctx context.Context, tenantID, id uuid.UUID) (*catalog.ProductCategory, error) {
	var category *catalog.ProductCategory
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		var err error
		category, err = repos.Categories().FindByIDForTenant(ctx, tenantID, id)
		return err
	})
	return category, err
}

// List returns a page of categories
func (s *CategoryService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[catalog.ProductCategory], error) {
	filter.Normalize()
	var page *shared.Paginated[catalog.ProductCategory]
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		items, err := repos.Categories().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		total, err := repos.Categories().CountForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		p := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
		page = &p
		return nil
	})
	return page, err
}

// Update changes a category's name and description
func (s *CategoryService) Update(ctx context.Context, tenantID, id uuid.UUID, input CategoryInput) (*catalog.ProductCategory, error) {
	var category *catalog.ProductCategory
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		var err error
		category, err = repos.Categories().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := category.Rename(input.Name); err != nil {
			return err
		}
		category.SetDescription(input.Description)
		return repos.Categories().Save(ctx, category)
	})
	return category, err
}

// Delete removes a category that no product references
func (s *CategoryService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		if _, err := repos.Categories().FindByIDForTenant(ctx, tenantID, id); err != nil {
			return err
		}
		count, err := repos.Products().CountByCategory(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return shared.ErrHasDependents
		}
		return repos.Categories().Delete(ctx, tenantID, id)
	})
}
