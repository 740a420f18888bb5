package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAddressNotFound is returned when an address is not found. It also covers
// cross-user access attempts, which are indistinguishable from missing rows.
var ErrAddressNotFound = errors.New("address not found")

// AddressRepository defines operations for a user's owned address collection.
type AddressRepository interface {
	// Create persists a new address for a user.
	Create(ctx context.Context, address *entity.Address) error

	// FindByID retrieves an address by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Address, error)

	// FindByUserID retrieves all addresses of a user, default first, then by
	// creation time.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error)

	// Update modifies an existing address record.
	Update(ctx context.Context, address *entity.Address) error

	// ClearDefault unsets the default flag on every address of the user.
	// Used inside the transactional default swap.
	ClearDefault(ctx context.Context, userID uuid.UUID) error
}
