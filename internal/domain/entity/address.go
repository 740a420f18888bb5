package entity

import (
	"time"

	"github.com/google/uuid"
)

// Address is a shipping address owned by exactly one user. A user owns zero
// or more addresses and at most one of them is marked as the default; the
// default flag is only changed through the dedicated swap operation, never
// through the generic update path.
type Address struct {
	ID          uuid.UUID // The unique identifier for the address.
	UserID      uuid.UUID // The owning user. Cross-user access is never permitted.
	FullName    string    // Recipient name.
	Phone       string    // Contact phone number.
	AddressLine string    // Street address.
	City        string
	Province    string
	PostalCode  string
	IsDefault   bool // At most one address per user carries this flag.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
