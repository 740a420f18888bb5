package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// activityService implements the ActivityUsecase interface and acts as the
// audit pipeline's recorder: published events end up here as append-only
// activity log rows.
type activityService struct {
	activityRepo repository.ActivityRepository
	logger       *slog.Logger
}

// ActivityServiceParams holds dependencies for ActivityService, injected by Fx.
type ActivityServiceParams struct {
	fx.In

	ActivityRepo repository.ActivityRepository
	Logger       *slog.Logger
}

// ActivityServiceResult exposes the service under both of its roles.
type ActivityServiceResult struct {
	fx.Out

	Usecase  usecase.ActivityUsecase
	Recorder service.AuditRecorder
}

// NewActivityService is the constructor for activityService.
func NewActivityService(params ActivityServiceParams) ActivityServiceResult {
	srv := &activityService{
		activityRepo: params.ActivityRepo,
		logger:       params.Logger,
	}

	return ActivityServiceResult{
		Usecase:  srv,
		Recorder: srv,
	}
}

func (srv *activityService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RecordAuditEvent appends one published audit event to the activity log.
func (srv *activityService) RecordAuditEvent(ctx context.Context, event *service.AuditEvent) error {
	userID, err := uuid.Parse(event.UserID)
	if err != nil {
		return errors.Wrap(err, "audit event carries invalid user id")
	}

	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	entry := &entity.ActivityLog{
		UserID:    userID,
		Action:    event.Action,
		IPAddress: event.IPAddress,
		Timestamp: occurredAt,
	}

	if err := srv.activityRepo.Append(ctx, entry); err != nil {
		return errors.Wrap(err, "failed to append audit entry")
	}

	srv.log(ctx).Debug("Audit entry recorded",
		slog.Any("userID", userID),
		slog.String("action", event.Action),
	)

	return nil
}

// ListMyActivity returns the caller's audit trail, newest first.
func (srv *activityService) ListMyActivity(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.ActivityLog, error) {
	entries, err := srv.activityRepo.ListByUserID(ctx, userID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list activity entries")
	}

	return entries, nil
}
