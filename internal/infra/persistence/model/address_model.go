package model

import (
	"time"

	"github.com/google/uuid"
)

// AddressModel mirrors the 'addresses' table. One row per shipping address;
// at most one default per user, enforced at the service layer inside a
// transaction rather than with a partial index.
type AddressModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	FullName    string    `gorm:"type:varchar(255);not null"`
	Phone       string    `gorm:"type:varchar(50);not null"`
	AddressLine string    `gorm:"type:varchar(500);not null"`
	City        string    `gorm:"type:varchar(100);not null"`
	Province    string    `gorm:"type:varchar(100)"`
	PostalCode  string    `gorm:"type:varchar(20)"`
	IsDefault   bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (AddressModel) TableName() string {
	return "addresses"
}
