package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateAddressInput defines the payload for adding a shipping address.
type CreateAddressInput struct {
	UserID      uuid.UUID
	FullName    string
	Phone       string
	AddressLine string
	City        string
	Province    string
	PostalCode  string
	IsDefault   bool
	IPAddress   string
	RequestID   string
}

// UpdateAddressInput defines the payload for editing an owned address. Nil
// fields are left unchanged. The default flag is not part of this input;
// it only changes through SetDefaultAddress.
type UpdateAddressInput struct {
	UserID      uuid.UUID
	AddressID   uuid.UUID
	FullName    *string
	Phone       *string
	AddressLine *string
	City        *string
	Province    *string
	PostalCode  *string
	IPAddress   string
	RequestID   string
}

// SetDefaultAddressInput identifies the owned address to promote to the
// single default.
type SetDefaultAddressInput struct {
	UserID    uuid.UUID
	AddressID uuid.UUID
	IPAddress string
	RequestID string
}

// AddressUsecase defines operations on the caller's owned address collection.
// Every operation is scoped to the authenticated user; an address ID that
// belongs to someone else behaves exactly like a missing one.
type AddressUsecase interface {
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error)
	CreateAddress(ctx context.Context, input *CreateAddressInput) (*entity.Address, error)
	UpdateAddress(ctx context.Context, input *UpdateAddressInput) (*entity.Address, error)

	// SetDefaultAddress atomically clears the previous default and marks the
	// given address as the new default.
	SetDefaultAddress(ctx context.Context, input *SetDefaultAddressInput) (*entity.Address, error)
}
