package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Category DTOs ---

// CreateCategoryInput defines the payload for creating a category node.
// An empty slug is derived from the name.
type CreateCategoryInput struct {
	Name     string
	Slug     string
	IconKey  string
	ParentID *uuid.UUID
}

// UpdateCategoryInput defines the payload for editing a category. Nil fields
// are left unchanged; ClearParent detaches the node from its parent.
type UpdateCategoryInput struct {
	CategoryID  uuid.UUID
	Name        *string
	Slug        *string
	IconKey     *string
	ParentID    *uuid.UUID
	ClearParent bool
}

// --- Brand DTOs ---

// CreateBrandInput defines the payload for creating a brand.
type CreateBrandInput struct {
	Name    string
	LogoKey string
}

// UpdateBrandInput defines the payload for editing a brand.
type UpdateBrandInput struct {
	BrandID uuid.UUID
	Name    *string
	LogoKey *string
}

// --- Product DTOs ---

// VariantInput describes one product variant in a product payload.
type VariantInput struct {
	Color      string
	Size       string
	Stock      int
	ExtraPrice decimal.Decimal
}

// ImageInput describes one gallery image in a product payload.
type ImageInput struct {
	ImageKey string
	AltText  string
}

// CreateProductInput defines the payload for creating a product. An empty
// slug is derived from the name; an empty status defaults to active.
type CreateProductInput struct {
	Name            string
	Slug            string
	Description     string
	Price           decimal.Decimal
	DiscountPercent int
	Stock           int
	ImageKey        string
	CategoryID      uuid.UUID
	BrandID         *uuid.UUID
	CreatedBy       *uuid.UUID
	Status          entity.ProductStatus
	IsFeatured      bool
	MetaTitle       string
	MetaDescription string
	Variants        []VariantInput
	Images          []ImageInput
}

// UpdateProductInput defines the payload for editing a product. Nil fields
// are left unchanged.
type UpdateProductInput struct {
	ProductID       uuid.UUID
	Name            *string
	Slug            *string
	Description     *string
	Price           *decimal.Decimal
	DiscountPercent *int
	Stock           *int
	ImageKey        *string
	CategoryID      *uuid.UUID
	BrandID         *uuid.UUID
	Status          *entity.ProductStatus
	IsFeatured      *bool
	MetaTitle       *string
	MetaDescription *string
}

// CatalogUsecase defines catalog management and browsing operations. Reads
// are open to anonymous callers; mutations are policy-gated in the delivery
// layer before they reach this interface.
type CatalogUsecase interface {
	CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error)
	UpdateCategory(ctx context.Context, input *UpdateCategoryInput) (*entity.Category, error)
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error)

	CreateBrand(ctx context.Context, input *CreateBrandInput) (*entity.Brand, error)
	UpdateBrand(ctx context.Context, input *UpdateBrandInput) (*entity.Brand, error)
	ListBrands(ctx context.Context) ([]*entity.Brand, error)
	GetBrand(ctx context.Context, id uuid.UUID) (*entity.Brand, error)

	CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error)
	ListProducts(ctx context.Context) ([]*entity.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error)
}
