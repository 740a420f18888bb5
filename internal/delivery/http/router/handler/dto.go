package handler

import (
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Response DTOs. Entities are never serialized directly: the password hash
// must not leak, and product pricing carries read-time derivations.

// UserResponse is the public shape of an account.
type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	IsActive   bool      `json:"is_active"`
	IsStaff    bool      `json:"is_staff"`
	Roles      []string  `json:"roles"`
	DateJoined time.Time `json:"date_joined"`
}

func toUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		IsActive:   user.IsActive,
		IsStaff:    user.IsStaff,
		Roles:      user.Roles.ToStrings(),
		DateJoined: user.DateJoined,
	}
}

// TokenPairResponse carries an issued access/refresh token pair.
type TokenPairResponse struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

// ProfileResponse is the public shape of a user profile.
type ProfileResponse struct {
	UserID        uuid.UUID  `json:"user_id"`
	AvatarKey     string     `json:"avatar,omitempty"`
	Gender        string     `json:"gender,omitempty"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	LoyaltyPoints int        `json:"loyalty_points"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func toProfileResponse(profile *entity.Profile) *ProfileResponse {
	return &ProfileResponse{
		UserID:        profile.UserID,
		AvatarKey:     profile.AvatarKey,
		Gender:        string(profile.Gender),
		DateOfBirth:   profile.DateOfBirth,
		LoyaltyPoints: profile.LoyaltyPoints,
		UpdatedAt:     profile.UpdatedAt,
	}
}

// AddressResponse is the public shape of a shipping address.
type AddressResponse struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	Phone       string    `json:"phone"`
	AddressLine string    `json:"address_line"`
	City        string    `json:"city"`
	Province    string    `json:"province"`
	PostalCode  string    `json:"postal_code"`
	IsDefault   bool      `json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
}

func toAddressResponse(address *entity.Address) *AddressResponse {
	return &AddressResponse{
		ID:          address.ID,
		FullName:    address.FullName,
		Phone:       address.Phone,
		AddressLine: address.AddressLine,
		City:        address.City,
		Province:    address.Province,
		PostalCode:  address.PostalCode,
		IsDefault:   address.IsDefault,
		CreatedAt:   address.CreatedAt,
	}
}

func toAddressResponses(addresses []*entity.Address) []*AddressResponse {
	out := make([]*AddressResponse, len(addresses))
	for i, address := range addresses {
		out[i] = toAddressResponse(address)
	}

	return out
}

// ActivityResponse is one audit trail entry.
type ActivityResponse struct {
	ID        uuid.UUID `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	IPAddress string    `json:"ip_address,omitempty"`
}

func toActivityResponses(entries []*entity.ActivityLog) []*ActivityResponse {
	out := make([]*ActivityResponse, len(entries))
	for i, entry := range entries {
		out[i] = &ActivityResponse{
			ID:        entry.ID,
			Action:    entry.Action,
			Timestamp: entry.Timestamp,
			IPAddress: entry.IPAddress,
		}
	}

	return out
}

// CategoryResponse is the public shape of a category node.
type CategoryResponse struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	IconKey  string     `json:"icon,omitempty"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

func toCategoryResponse(category *entity.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:       category.ID,
		Name:     category.Name,
		Slug:     category.Slug,
		IconKey:  category.IconKey,
		ParentID: category.ParentID,
	}
}

func toCategoryResponses(categories []*entity.Category) []*CategoryResponse {
	out := make([]*CategoryResponse, len(categories))
	for i, category := range categories {
		out[i] = toCategoryResponse(category)
	}

	return out
}

// BrandResponse is the public shape of a brand.
type BrandResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	LogoKey string    `json:"logo,omitempty"`
}

func toBrandResponse(brand *entity.Brand) *BrandResponse {
	return &BrandResponse{
		ID:      brand.ID,
		Name:    brand.Name,
		LogoKey: brand.LogoKey,
	}
}

func toBrandResponses(brands []*entity.Brand) []*BrandResponse {
	out := make([]*BrandResponse, len(brands))
	for i, brand := range brands {
		out[i] = toBrandResponse(brand)
	}

	return out
}

// VariantResponse includes the derived final price.
type VariantResponse struct {
	ID         uuid.UUID       `json:"id"`
	Color      string          `json:"color"`
	Size       string          `json:"size"`
	Stock      int             `json:"stock"`
	ExtraPrice decimal.Decimal `json:"extra_price"`
	FinalPrice decimal.Decimal `json:"final_price"`
}

// ImageResponse is one gallery image.
type ImageResponse struct {
	ID       uuid.UUID `json:"id"`
	ImageKey string    `json:"image"`
	AltText  string    `json:"alt_text,omitempty"`
}

// ProductResponse is the public product shape, including the read-time
// pricing and rating derivations.
type ProductResponse struct {
	ID              uuid.UUID          `json:"id"`
	Name            string             `json:"name"`
	Slug            string             `json:"slug"`
	Description     string             `json:"description,omitempty"`
	Price           decimal.Decimal    `json:"price"`
	DiscountPercent int                `json:"discount_percent"`
	SalePrice       decimal.Decimal    `json:"sale_price"`
	Stock           int                `json:"stock"`
	IsInStock       bool               `json:"is_in_stock"`
	AverageRating   float64            `json:"average_rating"`
	ImageKey        string             `json:"image,omitempty"`
	CategoryID      uuid.UUID          `json:"category_id"`
	BrandID         *uuid.UUID         `json:"brand_id,omitempty"`
	Status          string             `json:"status"`
	IsFeatured      bool               `json:"is_featured"`
	MetaTitle       string             `json:"meta_title,omitempty"`
	MetaDescription string             `json:"meta_description,omitempty"`
	Variants        []*VariantResponse `json:"variants,omitempty"`
	Images          []*ImageResponse   `json:"images,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}

func toProductResponse(product *entity.Product) *ProductResponse {
	resp := &ProductResponse{
		ID:              product.ID,
		Name:            product.Name,
		Slug:            product.Slug,
		Description:     product.Description,
		Price:           product.Price,
		DiscountPercent: product.DiscountPercent,
		SalePrice:       product.SalePrice(),
		Stock:           product.Stock,
		IsInStock:       product.IsInStock(),
		AverageRating:   product.AverageRating(),
		ImageKey:        product.ImageKey,
		CategoryID:      product.CategoryID,
		BrandID:         product.BrandID,
		Status:          string(product.Status),
		IsFeatured:      product.IsFeatured,
		MetaTitle:       product.MetaTitle,
		MetaDescription: product.MetaDescription,
		CreatedAt:       product.CreatedAt,
	}

	for _, variant := range product.Variants {
		resp.Variants = append(resp.Variants, &VariantResponse{
			ID:         variant.ID,
			Color:      variant.Color,
			Size:       variant.Size,
			Stock:      variant.Stock,
			ExtraPrice: variant.ExtraPrice,
			FinalPrice: variant.FinalPrice(product),
		})
	}
	for _, image := range product.Images {
		resp.Images = append(resp.Images, &ImageResponse{
			ID:       image.ID,
			ImageKey: image.ImageKey,
			AltText:  image.AltText,
		})
	}

	return resp
}

func toProductResponses(products []*entity.Product) []*ProductResponse {
	out := make([]*ProductResponse, len(products))
	for i, product := range products {
		out[i] = toProductResponse(product)
	}

	return out
}

// ReviewResponse is one product review.
type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toReviewResponse(review *entity.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:        review.ID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}

func toReviewResponses(reviews []*entity.Review) []*ReviewResponse {
	out := make([]*ReviewResponse, len(reviews))
	for i, review := range reviews {
		out[i] = toReviewResponse(review)
	}

	return out
}
