package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus is the soft lifecycle state of a product.
type ProductStatus string

const (
	ProductStatusActive     ProductStatus = "active"
	ProductStatusInactive   ProductStatus = "inactive"
	ProductStatusOutOfStock ProductStatus = "out_of_stock"
)

// IsValid checks if the ProductStatus is a valid value.
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusOutOfStock:
		return true
	default:
		return false
	}
}

// Product is a sellable catalog item. Slug is unique and derived from the
// name when absent; discount is a whole percentage in [0,100]; stock never
// goes negative. Prices are decimals, derived values are computed at read
// time and never persisted.
type Product struct {
	ID              uuid.UUID       // The unique identifier for the product.
	Name            string          // Display name.
	Slug            string          // Unique URL-safe identifier.
	Description     string          // Free-form description.
	Price           decimal.Decimal // List price before discount.
	DiscountPercent int             // Whole-number discount percentage in [0,100].
	Stock           int             // Units on hand, never negative.
	ImageKey        string          // Opaque blob-store key of the primary image, empty if none.
	CategoryID      uuid.UUID       // Required owning category.
	BrandID         *uuid.UUID      // Optional brand.
	CreatedBy       *uuid.UUID      // The seller or admin who created the product.
	Status          ProductStatus   // Soft lifecycle state.
	IsFeatured      bool
	MetaTitle       string
	MetaDescription string
	Variants        []*ProductVariant // Variants created and updated with the product.
	Images          []*ProductImage   // Gallery images.
	Reviews         []*Review         // Loaded on demand for rating derivation.
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SalePrice computes price * (100 - discount_percent) / 100. It is a pure
// read-time derivation and is never stored.
func (p *Product) SalePrice() decimal.Decimal {
	if p.DiscountPercent == 0 {
		return p.Price
	}

	factor := decimal.NewFromInt(int64(100 - p.DiscountPercent))

	return p.Price.Mul(factor).Div(decimal.NewFromInt(100))
}

// AverageRating is the mean of the associated review ratings, 0 when the
// product has no reviews.
func (p *Product) AverageRating() float64 {
	if len(p.Reviews) == 0 {
		return 0
	}

	var sum int
	for _, r := range p.Reviews {
		sum += r.Rating
	}

	return float64(sum) / float64(len(p.Reviews))
}

// IsInStock reports whether any units remain.
func (p *Product) IsInStock() bool {
	return p.Stock > 0
}

// ProductVariant is a concrete color/size variation of a product. Its final
// price adds the extra price on top of the product's sale price.
type ProductVariant struct {
	ID         uuid.UUID // The unique identifier for the variant.
	ProductID  uuid.UUID // The owning product.
	Color      string
	Size       string
	Stock      int
	ExtraPrice decimal.Decimal // Surcharge added to the product's sale price.
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FinalPrice computes the variant's effective price: the owning product's
// sale price plus the variant surcharge.
func (v *ProductVariant) FinalPrice(product *Product) decimal.Decimal {
	return product.SalePrice().Add(v.ExtraPrice)
}

// ProductImage is one gallery image attached to a product.
type ProductImage struct {
	ID        uuid.UUID // The unique identifier for the image.
	ProductID uuid.UUID // The owning product.
	ImageKey  string    // Opaque blob-store key.
	AltText   string
	CreatedAt time.Time
}
