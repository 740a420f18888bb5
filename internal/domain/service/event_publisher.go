package service

import (
	"context"
	"time"
)

// AuditEvent is the record of one account-affecting domain event, published
// by mutating use cases and consumed by the audit log writer. Publishing is
// best-effort: a failed publish must never affect the outcome of the
// triggering mutation.
type AuditEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For tracing the originating request.
	UserID     string    `json:"user_id"`              // The actor the event concerns.
	Action     string    `json:"action"`               // Audit action label, e.g. "User logged in".
	IPAddress  string    `json:"ip_address,omitempty"` // Client IP when available.
	OccurredAt time.Time `json:"occurred_at"`          // Server-assigned event time.
}

// AuditRecorder consumes published audit events and persists them. It is the
// receiving end of the audit pipeline, regardless of the transport between
// publisher and recorder.
type AuditRecorder interface {
	// RecordAuditEvent appends one audit event to the activity log.
	RecordAuditEvent(ctx context.Context, event *AuditEvent) error
}

// EventPublisher defines the interface for publishing audit events.
type EventPublisher interface {
	// PublishAuditEvent publishes an audit event for asynchronous recording.
	PublishAuditEvent(ctx context.Context, event *AuditEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
