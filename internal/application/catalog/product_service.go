package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appledger "github.com/shopbooks/backend/internal/application/ledger"
	"github.com/shopbooks/backend/internal/domain/catalog"
	"github.com/shopbooks/backend/internal/domain/shared"
)

// ProductService manages the product catalog
type ProductService struct {
	scope  appledger.TransactionScope
	logger *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(scope appledger.TransactionScope, logger *zap.Logger) *ProductService {
	return &ProductService{scope: scope, logger: logger}
}

// CreateProductInput carries a product creation request
type CreateProductInput struct {
	Code         string          `json:"code" binding:"required,max=50"`
	Name         string          `json:"name" binding:"required,max=200"`
	Unit         string          `json:"unit" binding:"max=20"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	CategoryID   *uuid.UUID      `json:"category_id"`
}

// UpdateProductInput carries a product update request
type UpdateProductInput struct {
	Name         string          `json:"name" binding:"required,max=200"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	CategoryID   *uuid.UUID      `json:"category_id"`
}

// Create registers a new product. The code must be unique within the tenant.
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, input CreateProductInput) (*catalog.Product, error) {
	var product *catalog.Product
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		existing, err := repos.Products().FindByCode(ctx, tenantID, input.Code)
		if err != nil && !shared.IsDomainErrorWithCode(err, "NOT_FOUND") {
			return err
		}
		if existing != nil {
			return shared.ErrAlreadyExists
		}
		if input.CategoryID != nil {
			if _, err := repos.Categories().FindByIDForTenant(ctx, tenantID, *input.CategoryID); err != nil {
				return err
			}
		}

		product, err = catalog.NewProduct(tenantID, input.Code, input.Name, input.Unit, input.SellingPrice, input.CategoryID)
		if err != nil {
			return err
		}
		shared.StampActor(ctx, product)
		return repos.Products().Save(ctx, product)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("product_id", product.ID.String()),
		zap.String("code", product.Code))
	return product, nil
}

// Get returns a single product
func (s *ProductService) Get(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	var product *catalog.Product
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		var err error
		product, err = repos.Products().FindByIDForTenant(ctx, tenantID, id)
		return err
	})
	return product, err
}

// List returns a page of products
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[catalog.Product], error) {
	filter.Normalize()
	var page *shared.Paginated[catalog.Product]
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		items, err := repos.Products().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		total, err := repos.Products().CountForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		p := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
		page = &p
		return nil
	})
	return page, err
}

// Update changes a product's name, selling price and category
func (s *ProductService) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateProductInput) (*catalog.Product, error) {
	var product *catalog.Product
	err := s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		var err error
		product, err = repos.Products().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := product.Rename(input.Name); err != nil {
			return err
		}
		if err := product.SetSellingPrice(input.SellingPrice); err != nil {
			return err
		}
		if input.CategoryID != nil {
			if _, err := repos.Categories().FindByIDForTenant(ctx, tenantID, *input.CategoryID); err != nil {
				return err
			}
		}
		product.SetCategory(input.CategoryID)
		return repos.Products().Save(ctx, product)
	})
	return product, err
}

// Deactivate hides a product from new documents
func (s *ProductService) Deactivate(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		product, err := repos.Products().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		product.Deactivate()
		return repos.Products().Save(ctx, product)
	})
}

// Delete removes a product with no stock movement history
func (s *ProductService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos appledger.Repositories) error {
		if _, err := repos.Products().FindByIDForTenant(ctx, tenantID, id); err != nil {
			return err
		}
		count, err := repos.StockEntries().CountByProduct(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return shared.ErrHasDependents
		}
		return repos.Products().Delete(ctx, tenantID, id)
	})
}
