package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ActivityUsecase exposes the caller's audit trail. Entries are written only
// through the audit event pipeline, never directly by handlers.
type ActivityUsecase interface {
	// ListMyActivity returns up to limit entries for the user, newest first.
	// A non-positive limit returns all entries.
	ListMyActivity(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.ActivityLog, error)
}
