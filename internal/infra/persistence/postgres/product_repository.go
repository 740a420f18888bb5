package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// productRepository implements the domain.ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// Create persists a product together with its variants and images. GORM's
// association handling inserts the child rows with the parent.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateSlug
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCategoryNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt
	for i, variantM := range productM.Variants {
		product.Variants[i].ID = variantM.ID
		product.Variants[i].ProductID = variantM.ProductID
	}
	for i, imageM := range productM.Images {
		product.Images[i].ID = imageM.ID
		product.Images[i].ProductID = imageM.ProductID
	}

	return nil
}

// FindByID retrieves a product with variants and images resolved.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.db.WithContext(ctx).
		Preload("Variants").
		Preload("Images").
		Where("id = ?", id).
		First(&productM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// FindBySlug retrieves a product with variants, images and reviews resolved,
// so the read-time derivations have everything they need.
func (repo *productRepository) FindBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.db.WithContext(ctx).
		Preload("Variants").
		Preload("Images").
		Preload("Reviews").
		Where("slug = ?", slug).
		First(&productM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by slug")
	}

	return toProductDomain(&productM), nil
}

// List returns all products with their associations, newest first.
func (repo *productRepository) List(ctx context.Context) ([]*entity.Product, error) {
	var productMs []model.ProductModel
	err := repo.db.WithContext(ctx).
		Preload("Variants").
		Preload("Images").
		Preload("Reviews").
		Order("created_at DESC").
		Find(&productMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productMs))
	for i := range productMs {
		products = append(products, toProductDomain(&productMs[i]))
	}

	return products, nil
}

// Update modifies an existing product and its associations.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	err := repo.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(productM).Error
	if err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateSlug
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update product")
	}

	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	variants := make([]*entity.ProductVariant, 0, len(data.Variants))
	for i := range data.Variants {
		variants = append(variants, toProductVariantDomain(&data.Variants[i]))
	}

	images := make([]*entity.ProductImage, 0, len(data.Images))
	for i := range data.Images {
		images = append(images, toProductImageDomain(&data.Images[i]))
	}

	reviews := make([]*entity.Review, 0, len(data.Reviews))
	for i := range data.Reviews {
		reviews = append(reviews, toReviewDomain(&data.Reviews[i]))
	}

	return &entity.Product{
		ID:              data.ID,
		Name:            data.Name,
		Slug:            data.Slug,
		Description:     data.Description,
		Price:           data.Price,
		DiscountPercent: data.DiscountPercent,
		Stock:           data.Stock,
		ImageKey:        data.ImageKey,
		CategoryID:      data.CategoryID,
		BrandID:         data.BrandID,
		CreatedBy:       data.CreatedBy,
		Status:          entity.ProductStatus(data.Status),
		IsFeatured:      data.IsFeatured,
		MetaTitle:       data.MetaTitle,
		MetaDescription: data.MetaDescription,
		Variants:        variants,
		Images:          images,
		Reviews:         reviews,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	variants := make([]model.ProductVariantModel, 0, len(data.Variants))
	for _, variant := range data.Variants {
		variants = append(variants, model.ProductVariantModel{
			ID:         variant.ID,
			ProductID:  variant.ProductID,
			Color:      variant.Color,
			Size:       variant.Size,
			Stock:      variant.Stock,
			ExtraPrice: variant.ExtraPrice,
		})
	}

	images := make([]model.ProductImageModel, 0, len(data.Images))
	for _, image := range data.Images {
		images = append(images, model.ProductImageModel{
			ID:        image.ID,
			ProductID: image.ProductID,
			ImageKey:  image.ImageKey,
			AltText:   image.AltText,
		})
	}

	return &model.ProductModel{
		ID:              data.ID,
		Name:            data.Name,
		Slug:            data.Slug,
		Description:     data.Description,
		Price:           data.Price,
		DiscountPercent: data.DiscountPercent,
		Stock:           data.Stock,
		ImageKey:        data.ImageKey,
		CategoryID:      data.CategoryID,
		BrandID:         data.BrandID,
		CreatedBy:       data.CreatedBy,
		Status:          string(data.Status),
		IsFeatured:      data.IsFeatured,
		MetaTitle:       data.MetaTitle,
		MetaDescription: data.MetaDescription,
		Variants:        variants,
		Images:          images,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func toProductVariantDomain(data *model.ProductVariantModel) *entity.ProductVariant {
	if data == nil {
		return nil
	}

	return &entity.ProductVariant{
		ID:         data.ID,
		ProductID:  data.ProductID,
		Color:      data.Color,
		Size:       data.Size,
		Stock:      data.Stock,
		ExtraPrice: data.ExtraPrice,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

func toProductImageDomain(data *model.ProductImageModel) *entity.ProductImage {
	if data == nil {
		return nil
	}

	return &entity.ProductImage{
		ID:        data.ID,
		ProductID: data.ProductID,
		ImageKey:  data.ImageKey,
		AltText:   data.AltText,
		CreatedAt: data.CreatedAt,
	}
}
