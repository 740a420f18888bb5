package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel mirrors the 'products' table. Prices use decimal columns to
// avoid floating point drift on money values.
type ProductModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name            string          `gorm:"type:varchar(255);not null"`
	Slug            string          `gorm:"type:varchar(255);unique;not null"`
	Description     string          `gorm:"type:text"`
	Price           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountPercent int             `gorm:"not null;default:0"`
	Stock           int             `gorm:"not null;default:0"`
	ImageKey        string          `gorm:"type:varchar(255)"`
	CategoryID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	BrandID         *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedBy       *uuid.UUID      `gorm:"type:uuid;index"`
	Status          string          `gorm:"type:varchar(20);not null;default:'active'"`
	IsFeatured      bool            `gorm:"not null;default:false"`
	MetaTitle       string          `gorm:"type:varchar(255)"`
	MetaDescription string          `gorm:"type:varchar(500)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Variants []ProductVariantModel `gorm:"foreignKey:ProductID"`
	Images   []ProductImageModel   `gorm:"foreignKey:ProductID"`
	Reviews  []ReviewModel         `gorm:"foreignKey:ProductID"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// ProductVariantModel mirrors the 'product_variants' table.
type ProductVariantModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Color      string          `gorm:"type:varchar(50)"`
	Size       string          `gorm:"type:varchar(50)"`
	Stock      int             `gorm:"not null;default:0"`
	ExtraPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductVariantModel) TableName() string {
	return "product_variants"
}

// ProductImageModel mirrors the 'product_images' table.
type ProductImageModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	ImageKey  string    `gorm:"type:varchar(255);not null"`
	AltText   string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductImageModel) TableName() string {
	return "product_images"
}

// ReviewModel mirrors the 'reviews' table. Rating is bounded 1..5 at the
// service layer.
type ReviewModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}
