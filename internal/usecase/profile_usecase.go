package usecase

import (
	"context"
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// UpsertProfileInput defines the create-or-update payload for the caller's
// profile. Nil fields are left unchanged on update.
type UpsertProfileInput struct {
	UserID      uuid.UUID
	Gender      *entity.Gender
	DateOfBirth *time.Time
	AvatarKey   *string
	IPAddress   string
	RequestID   string
}

// UpsertProfileOutput reports the resulting profile and whether it was
// created on this call, so the handler can answer 201 vs 200.
type UpsertProfileOutput struct {
	Profile *entity.Profile
	Created bool
}

// ProfileUsecase defines self-service profile operations.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)
	UpsertProfile(ctx context.Context, input *UpsertProfileInput) (*UpsertProfileOutput, error)
}
