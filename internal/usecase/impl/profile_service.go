package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager   repository.TransactionManager
	profileRepo repository.ProfileRepository
	publisher   service.EventPublisher
	logger      *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProfileRepo repository.ProfileRepository
	Publisher   service.EventPublisher
	Logger      *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager:   params.TxManager,
		profileRepo: params.ProfileRepo,
		publisher:   params.Publisher,
		logger:      params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *profileService) publishAudit(ctx context.Context, userID uuid.UUID, action, ip, requestID string) {
	event := &service.AuditEvent{
		RequestID:  requestID,
		UserID:     userID.String(),
		Action:     action,
		IPAddress:  ip,
		OccurredAt: time.Now().UTC(),
	}

	if err := srv.publisher.PublishAuditEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish audit event",
			slog.String("action", action),
			slog.Any("userID", userID),
			slog.Any("error", err),
		)
	}
}

// GetProfile returns the caller's profile.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	profile, err := srv.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("profile not found")
		}

		return nil, errors.Wrap(err, "failed to load profile")
	}

	return profile, nil
}

// UpsertProfile creates the caller's profile on first write and updates it
// afterwards. Nil input fields leave the stored value untouched.
func (srv *profileService) UpsertProfile(ctx context.Context, input *usecase.UpsertProfileInput) (*usecase.UpsertProfileOutput, error) {
	if input.Gender != nil && !input.Gender.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("invalid gender value")
	}

	var result *usecase.UpsertProfileOutput

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.ProfileRepo()

		profile, findErr := profileRepo.FindByUserID(ctx, input.UserID)
		switch {
		case findErr == nil:
			applyProfileInput(profile, input)
			if err := profileRepo.Update(ctx, profile); err != nil {
				return errors.Wrap(err, "failed to update profile")
			}
			result = &usecase.UpsertProfileOutput{Profile: profile, Created: false}

		case errors.Is(findErr, repository.ErrProfileNotFound):
			profile = &entity.Profile{UserID: input.UserID}
			applyProfileInput(profile, input)
			if err := profileRepo.Create(ctx, profile); err != nil {
				return errors.Wrap(err, "failed to create profile")
			}
			result = &usecase.UpsertProfileOutput{Profile: profile, Created: true}

		default:
			return errors.Wrap(findErr, "failed to load profile for upsert")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Profile upsert failed", slog.Any("userID", input.UserID), slog.Any("error", err))

		return nil, err
	}

	action := entity.ActionProfileUpdated
	if result.Created {
		action = entity.ActionProfileCreated
	}
	srv.publishAudit(ctx, input.UserID, action, input.IPAddress, input.RequestID)

	return result, nil
}

func applyProfileInput(profile *entity.Profile, input *usecase.UpsertProfileInput) {
	if input.Gender != nil {
		profile.Gender = *input.Gender
	}
	if input.DateOfBirth != nil {
		profile.DateOfBirth = input.DateOfBirth
	}
	if input.AvatarKey != nil {
		profile.AvatarKey = *input.AvatarKey
	}
}
