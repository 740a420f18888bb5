// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity aggregate of the system. Email is the login
// identifier and is unique and normalized; the credential is only ever held
// as a one-way bcrypt hash.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Email        string    // Primary contact email, used as the login identifier.
	Name         string    // Display name.
	PasswordHash string    // bcrypt hash of the credential. Never exposed outside the domain.
	IsActive     bool      // Inactive accounts cannot authenticate.
	IsStaff      bool      // Staff flag embedded into access-token claims.
	IsSuperuser  bool      // Set only through the superuser creation path.
	Roles        Roles     // Capability set resolved through the user_roles relation.
	Profile      *Profile  // Optional 1:1 profile. Nil until the user creates one.
	DateJoined   time.Time // Timestamp of account creation.
	UpdatedAt    time.Time // Timestamp of the last modification to the account row.
}

// HasRole reports whether the user's resolved capability set contains the role.
func (u *User) HasRole(role Role) bool {
	return u.Roles.Contains(role)
}
