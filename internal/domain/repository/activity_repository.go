package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ActivityRepository defines operations for the append-only audit log.
// Entries are immutable once written; there is no update or delete.
type ActivityRepository interface {
	// Append writes one audit entry. The timestamp is assigned by the caller
	// before the write and never changed afterwards.
	Append(ctx context.Context, entry *entity.ActivityLog) error

	// ListByUserID returns up to limit entries for a user, newest first.
	// A non-positive limit returns all entries.
	ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.ActivityLog, error)
}
