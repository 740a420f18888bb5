package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// CatalogHandler holds dependencies for catalog handlers.
type CatalogHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		uc:     uc,
		logger: logger,
	}
}

// --- Categories ---

// ListCategories returns all categories, name ascending.
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCategoryResponses(categories), "")
}

// GetCategory returns one category by slug.
func (h *CatalogHandler) GetCategory(c echo.Context) error {
	category, err := h.uc.GetCategoryBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCategoryResponse(category), "")
}

type createCategoryRequest struct {
	Name     string     `json:"name" validate:"required"`
	Slug     string     `json:"slug"`
	Icon     string     `json:"icon"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// CreateCategory creates a category node.
func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid category input")
	}

	category, err := h.uc.CreateCategory(c.Request().Context(), &usecase.CreateCategoryInput{
		Name:     req.Name,
		Slug:     req.Slug,
		IconKey:  req.Icon,
		ParentID: req.ParentID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toCategoryResponse(category), "Category created successfully")
}

type updateCategoryRequest struct {
	Name        *string    `json:"name"`
	Slug        *string    `json:"slug"`
	Icon        *string    `json:"icon"`
	ParentID    *uuid.UUID `json:"parent_id"`
	ClearParent bool       `json:"clear_parent"`
}

// UpdateCategory applies a partial update to a category.
func (h *CatalogHandler) UpdateCategory(c echo.Context) error {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid category id")
	}

	var req updateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}

	category, err := h.uc.UpdateCategory(c.Request().Context(), &usecase.UpdateCategoryInput{
		CategoryID:  categoryID,
		Name:        req.Name,
		Slug:        req.Slug,
		IconKey:     req.Icon,
		ParentID:    req.ParentID,
		ClearParent: req.ClearParent,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCategoryResponse(category), "Category updated successfully")
}

// --- Brands ---

// ListBrands returns all brands, name ascending.
func (h *CatalogHandler) ListBrands(c echo.Context) error {
	brands, err := h.uc.ListBrands(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toBrandResponses(brands), "")
}

// GetBrand returns one brand by id.
func (h *CatalogHandler) GetBrand(c echo.Context) error {
	brandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid brand id")
	}

	brand, err := h.uc.GetBrand(c.Request().Context(), brandID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toBrandResponse(brand), "")
}

type createBrandRequest struct {
	Name string `json:"name" validate:"required"`
	Logo string `json:"logo"`
}

// CreateBrand creates a brand.
func (h *CatalogHandler) CreateBrand(c echo.Context) error {
	var req createBrandRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid brand input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid brand input")
	}

	brand, err := h.uc.CreateBrand(c.Request().Context(), &usecase.CreateBrandInput{
		Name:    req.Name,
		LogoKey: req.Logo,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toBrandResponse(brand), "Brand created successfully")
}

type updateBrandRequest struct {
	Name *string `json:"name"`
	Logo *string `json:"logo"`
}

// UpdateBrand applies a partial update to a brand.
func (h *CatalogHandler) UpdateBrand(c echo.Context) error {
	brandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid brand id")
	}

	var req updateBrandRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid brand input")
	}

	brand, err := h.uc.UpdateBrand(c.Request().Context(), &usecase.UpdateBrandInput{
		BrandID: brandID,
		Name:    req.Name,
		LogoKey: req.Logo,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toBrandResponse(brand), "Brand updated successfully")
}

// --- Products ---

// ListProducts returns all products, newest first.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	products, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponses(products), "")
}

// GetProduct returns one product by slug, with variants, images and the
// rating derivation.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	product, err := h.uc.GetProductBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product), "")
}

type variantRequest struct {
	Color      string          `json:"color"`
	Size       string          `json:"size"`
	Stock      int             `json:"stock"`
	ExtraPrice decimal.Decimal `json:"extra_price"`
}

type imageRequest struct {
	Image   string `json:"image" validate:"required"`
	AltText string `json:"alt_text"`
}

type createProductRequest struct {
	Name            string           `json:"name" validate:"required"`
	Slug            string           `json:"slug"`
	Description     string           `json:"description"`
	Price           decimal.Decimal  `json:"price" validate:"required"`
	DiscountPercent int              `json:"discount_percent"`
	Stock           int              `json:"stock"`
	Image           string           `json:"image"`
	CategoryID      uuid.UUID        `json:"category_id" validate:"required"`
	BrandID         *uuid.UUID       `json:"brand_id"`
	Status          string           `json:"status"`
	IsFeatured      bool             `json:"is_featured"`
	MetaTitle       string           `json:"meta_title"`
	MetaDescription string           `json:"meta_description"`
	Variants        []variantRequest `json:"variants"`
	Images          []imageRequest   `json:"images"`
}

// CreateProduct creates a product with its variants and gallery images.
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product input")
	}

	input := &usecase.CreateProductInput{
		Name:            req.Name,
		Slug:            req.Slug,
		Description:     req.Description,
		Price:           req.Price,
		DiscountPercent: req.DiscountPercent,
		Stock:           req.Stock,
		ImageKey:        req.Image,
		CategoryID:      req.CategoryID,
		BrandID:         req.BrandID,
		Status:          entity.ProductStatus(req.Status),
		IsFeatured:      req.IsFeatured,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
	}
	if creator, ok := callerID(c); ok {
		input.CreatedBy = &creator
	}
	for _, variant := range req.Variants {
		input.Variants = append(input.Variants, usecase.VariantInput{
			Color:      variant.Color,
			Size:       variant.Size,
			Stock:      variant.Stock,
			ExtraPrice: variant.ExtraPrice,
		})
	}
	for _, image := range req.Images {
		input.Images = append(input.Images, usecase.ImageInput{
			ImageKey: image.Image,
			AltText:  image.AltText,
		})
	}

	product, err := h.uc.CreateProduct(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toProductResponse(product), "Product created successfully")
}

type updateProductRequest struct {
	Name            *string          `json:"name"`
	Slug            *string          `json:"slug"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	DiscountPercent *int             `json:"discount_percent"`
	Stock           *int             `json:"stock"`
	Image           *string          `json:"image"`
	CategoryID      *uuid.UUID       `json:"category_id"`
	BrandID         *uuid.UUID       `json:"brand_id"`
	Status          *string          `json:"status"`
	IsFeatured      *bool            `json:"is_featured"`
	MetaTitle       *string          `json:"meta_title"`
	MetaDescription *string          `json:"meta_description"`
}

// UpdateProduct applies a partial update to a product.
func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	input := &usecase.UpdateProductInput{
		ProductID:       productID,
		Name:            req.Name,
		Slug:            req.Slug,
		Description:     req.Description,
		Price:           req.Price,
		DiscountPercent: req.DiscountPercent,
		Stock:           req.Stock,
		ImageKey:        req.Image,
		CategoryID:      req.CategoryID,
		BrandID:         req.BrandID,
		IsFeatured:      req.IsFeatured,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
	}
	if req.Status != nil {
		status := entity.ProductStatus(*req.Status)
		input.Status = &status
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product), "Product updated successfully")
}
