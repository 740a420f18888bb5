package model

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLogModel mirrors the 'activity_logs' table. Append-only audit trail.
type ActivityLogModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Action    string    `gorm:"type:varchar(255);not null"`
	IPAddress string    `gorm:"type:varchar(45)"`
	Timestamp time.Time `gorm:"not null;index"`
}

// TableName explicitly sets the table name for GORM.
func (ActivityLogModel) TableName() string {
	return "activity_logs"
}
