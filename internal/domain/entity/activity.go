package entity

import (
	"time"

	"github.com/google/uuid"
)

// Audit action labels. The exact strings are part of the audit contract and
// are what consumers and operators filter on.
const (
	ActionUserLoggedIn   = "User logged in"
	ActionUserUpdated    = "User profile updated"
	ActionAddressCreated = "Address created"
	ActionAddressUpdated = "Address updated"
	ActionProfileCreated = "User profile created"
	ActionProfileUpdated = "User profile updated"
)

// ActivityLog is one append-only audit record of an account-affecting event.
// Rows are immutable once written; the timestamp is server-assigned.
type ActivityLog struct {
	ID        uuid.UUID // The unique identifier for the log entry.
	UserID    uuid.UUID // The actor the event concerns.
	Action    string    // Human-readable action label, one of the Action* constants.
	Timestamp time.Time // Server-assigned time of the event.
	IPAddress string    // Client IP when available, empty otherwise.
}
