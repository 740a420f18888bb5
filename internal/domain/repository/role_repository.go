package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRoleNotFound is returned when a named role has not been seeded.
var ErrRoleNotFound = errors.New("role not found")

// RoleRepository defines operations for the role table and the unique
// (user, role) assignment relation.
type RoleRepository interface {
	// EnsureRole gets or creates the named role row.
	EnsureRole(ctx context.Context, role entity.Role) error

	// AssignRole links a user to a role. Assigning an already-held role is a
	// no-op rather than an error.
	AssignRole(ctx context.Context, userID uuid.UUID, role entity.Role) error

	// FindRolesByUserID resolves the full capability set of a user.
	FindRolesByUserID(ctx context.Context, userID uuid.UUID) (entity.Roles, error)
}
