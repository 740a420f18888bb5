package entity

import (
	"time"

	"github.com/google/uuid"
)

// Gender is the self-reported gender choice on a profile.
type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderOther          Gender = "other"
	GenderPreferNotToSay Gender = "prefer_not_to_say"
)

// IsValid checks if the Gender is a valid value. The empty string is
// accepted because the field is optional.
func (g Gender) IsValid() bool {
	switch g {
	case "", GenderMale, GenderFemale, GenderOther, GenderPreferNotToSay:
		return true
	default:
		return false
	}
}

// Profile holds the mutable per-user attributes. Exactly one profile exists
// per user once created; writes have create-or-update semantics.
type Profile struct {
	UserID        uuid.UUID  // Foreign key linking the profile to its User.
	AvatarKey     string     // Opaque blob-store key of the uploaded avatar, empty if none.
	Gender        Gender     // Optional self-reported gender.
	DateOfBirth   *time.Time // Optional birth date.
	LoyaltyPoints int        // Accumulated loyalty points.
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
