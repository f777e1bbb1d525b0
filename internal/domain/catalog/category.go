package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopbooks/backend/internal/domain/shared"
)

// ProductCategory groups products. Names are unique within a tenant.
type ProductCategory struct {
	shared.TenantAggregateRoot
	Name        string `gorm:"type:varchar(200);not null"`
	Description string `gorm:"type:varchar(500)"`
	IsActive    bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ProductCategory) TableName() string {
	return "product_categories"
}

// NewProductCategory creates a new product category
func NewProductCategory(tenantID uuid.UUID, name, description string) (*ProductCategory, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot be empty")
	}

	return &ProductCategory{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Description:         description,
		IsActive:            true,
	}, nil
}

// Rename changes the category name
func (c *ProductCategory) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot be empty")
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetDescription updates the category description
func (c *ProductCategory) SetDescription(description string) {
	c.Description = description
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
