package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"
	"storefront/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	txManager    repository.TransactionManager
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
	productRepo  repository.ProductRepository
	logger       *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	CategoryRepo repository.CategoryRepository
	BrandRepo    repository.BrandRepository
	ProductRepo  repository.ProductRepository
	Logger       *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		txManager:    params.TxManager,
		categoryRepo: params.CategoryRepo,
		brandRepo:    params.BrandRepo,
		productRepo:  params.ProductRepo,
		logger:       params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// --- Categories ---

// CreateCategory creates a category node. An empty slug is derived from the
// name; a taken slug is rejected without suffixing.
func (srv *catalogService) CreateCategory(ctx context.Context, input *usecase.CreateCategoryInput) (*entity.Category, error) {
	slug := input.Slug
	if slug == "" {
		slug = util.Slugify(input.Name)
	}
	if slug == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("category name yields an empty slug")
	}

	category := &entity.Category{
		Name:     input.Name,
		Slug:     slug,
		IconKey:  input.IconKey,
		ParentID: input.ParentID,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.CategoryRepo()

		if input.ParentID != nil {
			if _, err := categoryRepo.FindByID(ctx, *input.ParentID); err != nil {
				if errors.Is(err, repository.ErrCategoryNotFound) {
					return domainerrors.ErrValidationFailed.WrapMessage("parent category does not exist")
				}

				return errors.Wrap(err, "failed to load parent category")
			}
		}

		if err := categoryRepo.Create(ctx, category); err != nil {
			return errors.Wrap(err, "failed to create category")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Category creation failed", slog.String("name", input.Name), slog.Any("error", err))

		return nil, err
	}

	return category, nil
}

// UpdateCategory edits a category node. Re-parenting walks the new ancestor
// chain and rejects any assignment that would close a cycle.
func (srv *catalogService) UpdateCategory(ctx context.Context, input *usecase.UpdateCategoryInput) (*entity.Category, error) {
	var category *entity.Category

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.CategoryRepo()

		loaded, err := categoryRepo.FindByID(ctx, input.CategoryID)
		if err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("category not found")
			}

			return errors.Wrap(err, "failed to load category for update")
		}

		if input.Name != nil {
			loaded.Name = *input.Name
			if input.Slug == nil && loaded.Slug == "" {
				loaded.Slug = util.Slugify(*input.Name)
			}
		}
		if input.Slug != nil {
			loaded.Slug = *input.Slug
		}
		if input.IconKey != nil {
			loaded.IconKey = *input.IconKey
		}

		switch {
		case input.ClearParent:
			loaded.ParentID = nil
		case input.ParentID != nil:
			if err := srv.checkCategoryCycle(ctx, categoryRepo, loaded.ID, *input.ParentID); err != nil {
				return err
			}
			loaded.ParentID = input.ParentID
		}

		if err := categoryRepo.Update(ctx, loaded); err != nil {
			return errors.Wrap(err, "failed to update category")
		}
		category = loaded

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Category update failed", slog.Any("categoryID", input.CategoryID), slog.Any("error", err))

		return nil, err
	}

	return category, nil
}

// checkCategoryCycle walks the ancestor chain starting at the proposed parent
// and fails if it reaches the category being re-parented.
func (srv *catalogService) checkCategoryCycle(ctx context.Context, categoryRepo repository.CategoryRepository, categoryID, parentID uuid.UUID) error {
	if parentID == categoryID {
		return domainerrors.ErrCategoryCycle
	}

	current := parentID
	for {
		parent, err := categoryRepo.FindByID(ctx, current)
		if err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return domainerrors.ErrValidationFailed.WrapMessage("parent category does not exist")
			}

			return errors.Wrap(err, "failed to walk category ancestors")
		}

		if parent.ParentID == nil {
			return nil
		}
		if *parent.ParentID == categoryID {
			return domainerrors.ErrCategoryCycle
		}
		current = *parent.ParentID
	}
}

// ListCategories returns the whole category tree as a flat list.
func (srv *catalogService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

// GetCategoryBySlug returns a category by its slug.
func (srv *catalogService) GetCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	category, err := srv.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("category not found")
		}

		return nil, errors.Wrap(err, "failed to load category")
	}

	return category, nil
}

// --- Brands ---

// CreateBrand creates a brand with a unique name.
func (srv *catalogService) CreateBrand(ctx context.Context, input *usecase.CreateBrandInput) (*entity.Brand, error) {
	brand := &entity.Brand{
		Name:    input.Name,
		LogoKey: input.LogoKey,
	}

	if err := srv.brandRepo.Create(ctx, brand); err != nil {
		srv.log(ctx).Warn("Brand creation failed", slog.String("name", input.Name), slog.Any("error", err))

		return nil, err
	}

	return brand, nil
}

// UpdateBrand edits a brand.
func (srv *catalogService) UpdateBrand(ctx context.Context, input *usecase.UpdateBrandInput) (*entity.Brand, error) {
	brand, err := srv.brandRepo.FindByID(ctx, input.BrandID)
	if err != nil {
		if errors.Is(err, repository.ErrBrandNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("brand not found")
		}

		return nil, errors.Wrap(err, "failed to load brand for update")
	}

	if input.Name != nil {
		brand.Name = *input.Name
	}
	if input.LogoKey != nil {
		brand.LogoKey = *input.LogoKey
	}

	if err := srv.brandRepo.Update(ctx, brand); err != nil {
		return nil, err
	}

	return brand, nil
}

// ListBrands returns all brands.
func (srv *catalogService) ListBrands(ctx context.Context) ([]*entity.Brand, error) {
	brands, err := srv.brandRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list brands")
	}

	return brands, nil
}

// GetBrand returns a brand by ID.
func (srv *catalogService) GetBrand(ctx context.Context, id uuid.UUID) (*entity.Brand, error) {
	brand, err := srv.brandRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBrandNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("brand not found")
		}

		return nil, errors.Wrap(err, "failed to load brand")
	}

	return brand, nil
}

// --- Products ---

// CreateProduct creates a product with its variants and images. An empty
// slug is derived from the name; the discount and stock bounds are enforced
// here before anything is persisted.
func (srv *catalogService) CreateProduct(ctx context.Context, input *usecase.CreateProductInput) (*entity.Product, error) {
	if err := validateProductBounds(input.DiscountPercent, input.Stock); err != nil {
		return nil, err
	}

	slug := input.Slug
	if slug == "" {
		slug = util.Slugify(input.Name)
	}
	if slug == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("product name yields an empty slug")
	}

	status := input.Status
	if status == "" {
		status = entity.ProductStatusActive
	}
	if !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("invalid product status")
	}

	variants := make([]*entity.ProductVariant, 0, len(input.Variants))
	for _, v := range input.Variants {
		if v.Stock < 0 {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("variant stock must not be negative")
		}
		variants = append(variants, &entity.ProductVariant{
			Color:      v.Color,
			Size:       v.Size,
			Stock:      v.Stock,
			ExtraPrice: v.ExtraPrice,
		})
	}

	images := make([]*entity.ProductImage, 0, len(input.Images))
	for _, img := range input.Images {
		images = append(images, &entity.ProductImage{
			ImageKey: img.ImageKey,
			AltText:  img.AltText,
		})
	}

	product := &entity.Product{
		Name:            input.Name,
		Slug:            slug,
		Description:     input.Description,
		Price:           input.Price,
		DiscountPercent: input.DiscountPercent,
		Stock:           input.Stock,
		ImageKey:        input.ImageKey,
		CategoryID:      input.CategoryID,
		BrandID:         input.BrandID,
		CreatedBy:       input.CreatedBy,
		Status:          status,
		IsFeatured:      input.IsFeatured,
		MetaTitle:       input.MetaTitle,
		MetaDescription: input.MetaDescription,
		Variants:        variants,
		Images:          images,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.CategoryRepo()
		productRepo := repoFactory.ProductRepo()

		if _, err := categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return domainerrors.ErrValidationFailed.WrapMessage("category does not exist")
			}

			return errors.Wrap(err, "failed to load category for product")
		}

		if input.BrandID != nil {
			brandRepo := repoFactory.BrandRepo()
			if _, err := brandRepo.FindByID(ctx, *input.BrandID); err != nil {
				if errors.Is(err, repository.ErrBrandNotFound) {
					return domainerrors.ErrValidationFailed.WrapMessage("brand does not exist")
				}

				return errors.Wrap(err, "failed to load brand for product")
			}
		}

		if err := productRepo.Create(ctx, product); err != nil {
			return errors.Wrap(err, "failed to create product")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Product creation failed", slog.String("name", input.Name), slog.Any("error", err))

		return nil, err
	}

	return product, nil
}

// UpdateProduct edits a product. Nil input fields are left unchanged.
func (srv *catalogService) UpdateProduct(ctx context.Context, input *usecase.UpdateProductInput) (*entity.Product, error) {
	var product *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		loaded, err := productRepo.FindByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("product not found")
			}

			return errors.Wrap(err, "failed to load product for update")
		}

		if err := applyProductInput(loaded, input); err != nil {
			return err
		}

		if input.CategoryID != nil {
			categoryRepo := repoFactory.CategoryRepo()
			if _, err := categoryRepo.FindByID(ctx, *input.CategoryID); err != nil {
				if errors.Is(err, repository.ErrCategoryNotFound) {
					return domainerrors.ErrValidationFailed.WrapMessage("category does not exist")
				}

				return errors.Wrap(err, "failed to load category for product update")
			}
			loaded.CategoryID = *input.CategoryID
		}

		if err := productRepo.Update(ctx, loaded); err != nil {
			return errors.Wrap(err, "failed to update product")
		}
		product = loaded

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Product update failed", slog.Any("productID", input.ProductID), slog.Any("error", err))

		return nil, err
	}

	return product, nil
}

func applyProductInput(product *entity.Product, input *usecase.UpdateProductInput) error {
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Slug != nil {
		product.Slug = *input.Slug
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.DiscountPercent != nil {
		product.DiscountPercent = *input.DiscountPercent
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.ImageKey != nil {
		product.ImageKey = *input.ImageKey
	}
	if input.BrandID != nil {
		product.BrandID = input.BrandID
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid product status")
		}
		product.Status = *input.Status
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
	if input.MetaTitle != nil {
		product.MetaTitle = *input.MetaTitle
	}
	if input.MetaDescription != nil {
		product.MetaDescription = *input.MetaDescription
	}

	return validateProductBounds(product.DiscountPercent, product.Stock)
}

func validateProductBounds(discountPercent, stock int) error {
	if discountPercent < 0 || discountPercent > 100 {
		return domainerrors.ErrValidationFailed.WrapMessage("discount percent must be between 0 and 100")
	}
	if stock < 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("stock must not be negative")
	}

	return nil
}

// ListProducts returns all products, newest first.
func (srv *catalogService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.productRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// GetProductBySlug returns a product with variants, images and reviews
// resolved.
func (srv *catalogService) GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	product, err := srv.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("product not found")
		}

		return nil, errors.Wrap(err, "failed to load product")
	}

	return product, nil
}
