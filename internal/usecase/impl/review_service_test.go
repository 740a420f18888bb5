package impl

import (
	"context"
	"testing"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewServiceFixtures struct {
	service usecase.ReviewUsecase
	catalog usecase.CatalogUsecase
	factory *fakeRepositoryFactory
}

func createTestReviewService(t *testing.T) *reviewServiceFixtures {
	t.Helper()

	factory := newFakeRepositoryFactory()

	catalog := NewCatalogService(CatalogServiceParams{
		TxManager:    &fakeTxManager{factory: factory},
		CategoryRepo: factory.categories,
		BrandRepo:    factory.brands,
		ProductRepo:  factory.products,
		Logger:       testLogger(),
	})

	service := NewReviewService(ReviewServiceParams{
		ProductRepo: factory.products,
		ReviewRepo:  factory.reviews,
		Logger:      testLogger(),
	})

	return &reviewServiceFixtures{service: service, catalog: catalog, factory: factory}
}

func createReviewedProduct(t *testing.T, f *reviewServiceFixtures) string {
	t.Helper()

	category, err := f.catalog.CreateCategory(context.Background(), &usecase.CreateCategoryInput{
		Name: "Electronics",
	})
	require.NoError(t, err)

	product, err := f.catalog.CreateProduct(context.Background(), &usecase.CreateProductInput{
		Name:       "Wireless Mouse",
		Price:      decimal.NewFromInt(100),
		Stock:      5,
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	return product.Slug
}

func TestReviewService_CreateReview(t *testing.T) {
	t.Parallel()

	t.Run("accepts a rating within bounds", func(t *testing.T) {
		t.Parallel()

		f := createTestReviewService(t)
		slug := createReviewedProduct(t, f)

		review, err := f.service.CreateReview(context.Background(), &usecase.CreateReviewInput{
			ProductSlug: slug,
			UserID:      uuid.New(),
			Rating:      4,
			Comment:     "solid",
		})
		require.NoError(t, err)
		assert.Equal(t, 4, review.Rating)
	})

	t.Run("rejects ratings outside 1..5", func(t *testing.T) {
		t.Parallel()

		f := createTestReviewService(t)
		slug := createReviewedProduct(t, f)

		for _, rating := range []int{0, 6, -1} {
			_, err := f.service.CreateReview(context.Background(), &usecase.CreateReviewInput{
				ProductSlug: slug,
				UserID:      uuid.New(),
				Rating:      rating,
			})
			require.ErrorIs(t, err, domainerrors.ErrValidationFailed, "rating %d", rating)
		}
	})

	t.Run("unknown product maps to not found", func(t *testing.T) {
		t.Parallel()

		f := createTestReviewService(t)
		_, err := f.service.CreateReview(context.Background(), &usecase.CreateReviewInput{
			ProductSlug: "missing",
			UserID:      uuid.New(),
			Rating:      3,
		})
		require.ErrorIs(t, err, domainerrors.ErrNotFound)
	})
}

func TestReviewService_ListReviews(t *testing.T) {
	t.Parallel()

	f := createTestReviewService(t)
	slug := createReviewedProduct(t, f)

	for _, rating := range []int{5, 3} {
		_, err := f.service.CreateReview(context.Background(), &usecase.CreateReviewInput{
			ProductSlug: slug,
			UserID:      uuid.New(),
			Rating:      rating,
		})
		require.NoError(t, err)
	}

	reviews, err := f.service.ListReviews(context.Background(), slug)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	_, err = f.service.ListReviews(context.Background(), "missing")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
