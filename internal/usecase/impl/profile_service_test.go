package impl

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profileServiceFixtures struct {
	service   usecase.ProfileUsecase
	factory   *fakeRepositoryFactory
	publisher *capturePublisher
}

func createTestProfileService(t *testing.T) *profileServiceFixtures {
	t.Helper()

	factory := newFakeRepositoryFactory()
	publisher := &capturePublisher{}

	service := NewProfileService(ProfileServiceParams{
		TxManager:   &fakeTxManager{factory: factory},
		ProfileRepo: factory.profiles,
		Publisher:   publisher,
		Logger:      testLogger(),
	})

	return &profileServiceFixtures{
		service:   service,
		factory:   factory,
		publisher: publisher,
	}
}

func TestProfileService_UpsertProfile(t *testing.T) {
	t.Parallel()

	t.Run("first call creates", func(t *testing.T) {
		t.Parallel()

		f := createTestProfileService(t)
		userID := uuid.New()
		gender := entity.GenderFemale

		out, err := f.service.UpsertProfile(context.Background(), &usecase.UpsertProfileInput{
			UserID: userID,
			Gender: &gender,
		})
		require.NoError(t, err)

		assert.True(t, out.Created)
		assert.Equal(t, gender, out.Profile.Gender)
		assert.Equal(t, []string{entity.ActionProfileCreated}, f.publisher.actions())
	})

	t.Run("second call updates without clearing unset fields", func(t *testing.T) {
		t.Parallel()

		f := createTestProfileService(t)
		userID := uuid.New()
		gender := entity.GenderOther
		birth := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)

		_, err := f.service.UpsertProfile(context.Background(), &usecase.UpsertProfileInput{
			UserID:      userID,
			Gender:      &gender,
			DateOfBirth: &birth,
		})
		require.NoError(t, err)

		avatar := "uploads/avatars/abc.png"
		out, err := f.service.UpsertProfile(context.Background(), &usecase.UpsertProfileInput{
			UserID:    userID,
			AvatarKey: &avatar,
		})
		require.NoError(t, err)

		assert.False(t, out.Created)
		assert.Equal(t, avatar, out.Profile.AvatarKey)
		assert.Equal(t, gender, out.Profile.Gender)
		require.NotNil(t, out.Profile.DateOfBirth)
		assert.True(t, birth.Equal(*out.Profile.DateOfBirth))

		assert.Equal(t,
			[]string{entity.ActionProfileCreated, entity.ActionProfileUpdated},
			f.publisher.actions())
	})

	t.Run("rejects an unknown gender value", func(t *testing.T) {
		t.Parallel()

		f := createTestProfileService(t)
		bad := entity.Gender("unknown")

		_, err := f.service.UpsertProfile(context.Background(), &usecase.UpsertProfileInput{
			UserID: uuid.New(),
			Gender: &bad,
		})
		require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})
}

func TestProfileService_GetProfile(t *testing.T) {
	t.Parallel()

	t.Run("returns the stored profile", func(t *testing.T) {
		t.Parallel()

		f := createTestProfileService(t)
		userID := uuid.New()
		gender := entity.GenderMale

		_, err := f.service.UpsertProfile(context.Background(), &usecase.UpsertProfileInput{
			UserID: userID,
			Gender: &gender,
		})
		require.NoError(t, err)

		profile, err := f.service.GetProfile(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, userID, profile.UserID)
		assert.Equal(t, gender, profile.Gender)
	})

	t.Run("missing profile maps to not found", func(t *testing.T) {
		t.Parallel()

		f := createTestProfileService(t)
		_, err := f.service.GetProfile(context.Background(), uuid.New())
		require.Error(t, err)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainerrors.ErrNotFound.HTTPCode(), appErr.HTTPCode())
	})
}
