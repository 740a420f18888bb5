package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProfileNotFound is returned when a user has not created a profile yet.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository defines operations for the 1:1 user profile.
type ProfileRepository interface {
	// FindByUserID retrieves the profile belonging to a user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)

	// Create persists a new profile. At most one profile exists per user.
	Create(ctx context.Context, profile *entity.Profile) error

	// Update modifies an existing profile in place.
	Update(ctx context.Context, profile *entity.Profile) error
}
