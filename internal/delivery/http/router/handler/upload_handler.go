package handler

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"slices"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// uploadCategories are the accepted values for the :category route segment.
var uploadCategories = []string{
	service.UploadCategoryAvatar,
	service.UploadCategoryBrand,
	service.UploadCategoryCategoryIcon,
	service.UploadCategoryProduct,
}

// UploadHandler stores uploaded images and hands back their opaque keys.
// The returned key is what profile, brand, category and product payloads
// reference in their image fields.
type UploadHandler struct {
	store  service.BlobStore
	logger *slog.Logger
}

// NewUploadHandler is the constructor for UploadHandler, injected by Fx.
func NewUploadHandler(store service.BlobStore, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		store:  store,
		logger: logger,
	}
}

// Upload stores one multipart file and returns the generated blob key.
func (h *UploadHandler) Upload(c echo.Context) error {
	category := c.Param("category")
	if !slices.Contains(uploadCategories, category) {
		return response.BadRequest(c, "INVALID_INPUT", "Unknown upload category")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Missing file field")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded file")
	}
	defer file.Close()

	key, err := h.store.Save(c.Request().Context(), category, filepath.Ext(fileHeader.Filename), file)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]string{"key": key}, "Upload stored successfully")
}
