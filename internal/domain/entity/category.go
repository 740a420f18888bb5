package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category is a node in the catalog's category tree. The slug is unique and,
// when not supplied, derived deterministically from the name. A category's
// parent chain must never form a cycle.
type Category struct {
	ID        uuid.UUID  // The unique identifier for the category.
	Name      string     // Unique human-readable name.
	Slug      string     // Unique URL-safe identifier.
	IconKey   string     // Opaque blob-store key of the uploaded icon, empty if none.
	ParentID  *uuid.UUID // Optional parent category; nil for roots.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Brand groups products under a manufacturer name. The name is unique.
type Brand struct {
	ID        uuid.UUID // The unique identifier for the brand.
	Name      string    // Unique brand name.
	LogoKey   string    // Opaque blob-store key of the uploaded logo, empty if none.
	CreatedAt time.Time
	UpdatedAt time.Time
}
