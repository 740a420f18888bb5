package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for catalog persistence.
var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrBrandNotFound is returned when a brand is not found.
	ErrBrandNotFound = errors.New("brand not found")
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
)

// CategoryRepository defines operations for the category tree.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Category, error)
	FindAll(ctx context.Context) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
}

// BrandRepository defines operations for brands.
type BrandRepository interface {
	Create(ctx context.Context, brand *entity.Brand) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Brand, error)
	FindAll(ctx context.Context) ([]*entity.Brand, error)
	Update(ctx context.Context, brand *entity.Brand) error
}

// ProductRepository defines operations for products, including their variants
// and images which are created and updated with the product.
type ProductRepository interface {
	// Create persists a product with its variants and images.
	Create(ctx context.Context, product *entity.Product) error

	// FindByID retrieves a product with variants and images resolved.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindBySlug retrieves a product with variants, images and reviews
	// resolved, so derived fields can be computed.
	FindBySlug(ctx context.Context, slug string) (*entity.Product, error)

	// List returns all products, newest first.
	List(ctx context.Context) ([]*entity.Product, error)

	// Update modifies an existing product and its associations.
	Update(ctx context.Context, product *entity.Product) error
}

// ReviewRepository defines operations for product reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	ListByProductID(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)
}
