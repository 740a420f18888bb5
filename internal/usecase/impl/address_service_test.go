package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addressServiceFixtures struct {
	service   usecase.AddressUsecase
	factory   *fakeRepositoryFactory
	publisher *capturePublisher
}

func createTestAddressService(t *testing.T) *addressServiceFixtures {
	t.Helper()

	factory := newFakeRepositoryFactory()
	publisher := &capturePublisher{}

	service := NewAddressService(AddressServiceParams{
		TxManager:   &fakeTxManager{factory: factory},
		AddressRepo: factory.addresses,
		Publisher:   publisher,
		Logger:      testLogger(),
	})

	return &addressServiceFixtures{
		service:   service,
		factory:   factory,
		publisher: publisher,
	}
}

func createTestAddress(t *testing.T, f *addressServiceFixtures, userID uuid.UUID, isDefault bool) *entity.Address {
	t.Helper()

	address, err := f.service.CreateAddress(context.Background(), &usecase.CreateAddressInput{
		UserID:      userID,
		FullName:    "Alice",
		Phone:       "0912345678",
		AddressLine: "1 Main St",
		City:        "Taipei",
		Province:    "Taiwan",
		PostalCode:  "100",
		IsDefault:   isDefault,
	})
	require.NoError(t, err)

	return address
}

func defaultCount(t *testing.T, f *addressServiceFixtures, userID uuid.UUID) int {
	t.Helper()

	addresses, err := f.service.ListAddresses(context.Background(), userID)
	require.NoError(t, err)

	count := 0
	for _, address := range addresses {
		if address.IsDefault {
			count++
		}
	}

	return count
}

func TestAddressService_CreateAddress(t *testing.T) {
	t.Parallel()

	t.Run("creates and publishes audit event", func(t *testing.T) {
		t.Parallel()

		f := createTestAddressService(t)
		userID := uuid.New()

		address := createTestAddress(t, f, userID, false)
		assert.NotEqual(t, uuid.Nil, address.ID)
		assert.False(t, address.IsDefault)
		assert.Equal(t, []string{entity.ActionAddressCreated}, f.publisher.actions())
	})

	t.Run("creating a new default demotes the old one", func(t *testing.T) {
		t.Parallel()

		f := createTestAddressService(t)
		userID := uuid.New()

		first := createTestAddress(t, f, userID, true)
		second := createTestAddress(t, f, userID, true)

		require.Equal(t, 1, defaultCount(t, f, userID))

		reloaded, err := f.factory.addresses.FindByID(context.Background(), first.ID)
		require.NoError(t, err)
		assert.False(t, reloaded.IsDefault)

		reloaded, err = f.factory.addresses.FindByID(context.Background(), second.ID)
		require.NoError(t, err)
		assert.True(t, reloaded.IsDefault)
	})
}

func TestAddressService_ListAddresses(t *testing.T) {
	t.Parallel()

	f := createTestAddressService(t)
	userID := uuid.New()
	otherID := uuid.New()

	createTestAddress(t, f, userID, false)
	withDefault := createTestAddress(t, f, userID, true)
	createTestAddress(t, f, otherID, true)

	addresses, err := f.service.ListAddresses(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, addresses, 2)

	// Default first, never another user's rows.
	assert.Equal(t, withDefault.ID, addresses[0].ID)
	for _, address := range addresses {
		assert.Equal(t, userID, address.UserID)
	}
}

func TestAddressService_UpdateAddress(t *testing.T) {
	t.Parallel()

	t.Run("applies only the provided fields", func(t *testing.T) {
		t.Parallel()

		f := createTestAddressService(t)
		userID := uuid.New()
		address := createTestAddress(t, f, userID, true)

		newCity := "Kaohsiung"
		updated, err := f.service.UpdateAddress(context.Background(), &usecase.UpdateAddressInput{
			UserID:    userID,
			AddressID: address.ID,
			City:      &newCity,
		})
		require.NoError(t, err)

		assert.Equal(t, newCity, updated.City)
		assert.Equal(t, address.FullName, updated.FullName)
		// The default flag survives a generic update untouched.
		assert.True(t, updated.IsDefault)
		assert.Contains(t, f.publisher.actions(), entity.ActionAddressUpdated)
	})

	t.Run("another user's address behaves like a missing one", func(t *testing.T) {
		t.Parallel()

		f := createTestAddressService(t)
		owner := uuid.New()
		address := createTestAddress(t, f, owner, false)

		intruder := uuid.New()
		newCity := "Tainan"
		_, err := f.service.UpdateAddress(context.Background(), &usecase.UpdateAddressInput{
			UserID:    intruder,
			AddressID: address.ID,
			City:      &newCity,
		})
		require.Error(t, err)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainerrors.ErrNotFound.HTTPCode(), appErr.HTTPCode())
	})
}

func TestAddressService_SetDefaultAddress(t *testing.T) {
	t.Parallel()

	t.Run("swaps the default atomically", func(t *testing.T) {
		t.Parallel()

		f := createTestAddressService(t)
		userID := uuid.New()

		first := createTestAddress(t, f, userID, true)
		second := createTestAddress(t, f, userID, false)

		promoted, err := f.service.SetDefaultAddress(context.Background(), &usecase.SetDefaultAddressInput{
			UserID:    userID,
			AddressID: second.ID,
		})
		require.NoError(t, err)
		assert.True(t, promoted.IsDefault)

		require.Equal(t, 1, defaultCount(t, f, userID))

		demoted, err := f.factory.addresses.FindByID(context.Background(), first.ID)
		require.NoError(t, err)
		assert.False(t, demoted.IsDefault)
	})

	t.Run("publishes an address update event", func(t *testing.T) {
		t.Parallel()

		f := createTestAddressService(t)
		userID := uuid.New()

		createTestAddress(t, f, userID, true)
		second := createTestAddress(t, f, userID, false)

		_, err := f.service.SetDefaultAddress(context.Background(), &usecase.SetDefaultAddressInput{
			UserID:    userID,
			AddressID: second.ID,
		})
		require.NoError(t, err)

		assert.Contains(t, f.publisher.actions(), entity.ActionAddressUpdated)
	})

	t.Run("rejects another user's address", func(t *testing.T) {
		t.Parallel()

		f := createTestAddressService(t)
		owner := uuid.New()
		address := createTestAddress(t, f, owner, false)

		_, err := f.service.SetDefaultAddress(context.Background(), &usecase.SetDefaultAddressInput{
			UserID:    uuid.New(),
			AddressID: address.ID,
		})
		require.Error(t, err)
	})
}
