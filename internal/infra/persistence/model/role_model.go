package model

import (
	"time"

	"github.com/google/uuid"
)

// RoleModel mirrors the 'roles' table. Role names are seeded on demand.
type RoleModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name      string    `gorm:"type:varchar(50);unique;not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RoleModel) TableName() string {
	return "roles"
}

// UserRoleModel mirrors the 'user_roles' join table. The (user_id, role_id)
// pair carries a unique constraint so role grants are idempotent.
type UserRoleModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_roles_user_role"`
	RoleID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_roles_user_role"`
	CreatedAt time.Time

	Role RoleModel `gorm:"foreignKey:RoleID"`
}

// TableName explicitly sets the table name for GORM.
func (UserRoleModel) TableName() string {
	return "user_roles"
}
