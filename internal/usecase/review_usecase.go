package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateReviewInput defines the payload for reviewing a product.
type CreateReviewInput struct {
	ProductSlug string
	UserID      uuid.UUID
	Rating      int
	Comment     string
}

// ReviewUsecase defines review operations. Writing requires authentication;
// reading is open.
type ReviewUsecase interface {
	CreateReview(ctx context.Context, input *CreateReviewInput) (*entity.Review, error)
	ListReviews(ctx context.Context, productSlug string) ([]*entity.Review, error)
}
