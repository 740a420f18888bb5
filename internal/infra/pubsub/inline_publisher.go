package pubsub

import (
	"context"
	"log/slog"

	"storefront/internal/domain/service"

	"github.com/pkg/errors"
)

// inlinePublisher implements EventPublisher by handing events straight to the
// audit recorder in the same process. This is the default transport for
// single-node deployments.
type inlinePublisher struct {
	recorder service.AuditRecorder
	logger   *slog.Logger
}

// NewInlinePublisher creates a publisher that records events synchronously.
func NewInlinePublisher(recorder service.AuditRecorder, logger *slog.Logger) service.EventPublisher {
	return &inlinePublisher{
		recorder: recorder,
		logger:   logger,
	}
}

// PublishAuditEvent records the event immediately through the audit recorder.
func (p *inlinePublisher) PublishAuditEvent(ctx context.Context, event *service.AuditEvent) error {
	if err := p.recorder.RecordAuditEvent(ctx, event); err != nil {
		return errors.Wrap(err, "failed to record audit event inline")
	}

	p.logger.Debug("[InlinePubSub] Audit event recorded",
		slog.String("user_id", event.UserID),
		slog.String("action", event.Action),
	)

	return nil
}

// Close releases resources (no-op for the inline publisher)
func (p *inlinePublisher) Close() error {
	return nil
}
