package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// activityRepository implements the domain.ActivityRepository interface using GORM.
type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository is the constructor for activityRepository.
func NewActivityRepository(db *gorm.DB) repository.ActivityRepository {
	return &activityRepository{db: db}
}

// Append writes one audit entry. Entries are never updated or deleted.
func (repo *activityRepository) Append(ctx context.Context, entry *entity.ActivityLog) error {
	entryM := model.ActivityLogModel{
		ID:        entry.ID,
		UserID:    entry.UserID,
		Action:    entry.Action,
		IPAddress: entry.IPAddress,
		Timestamp: entry.Timestamp,
	}

	if err := repo.db.WithContext(ctx).Create(&entryM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to append activity log")
	}

	entry.ID = entryM.ID

	return nil
}

// ListByUserID returns up to limit entries for a user, newest first. A
// non-positive limit returns all entries.
func (repo *activityRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.ActivityLog, error) {
	query := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var entryMs []model.ActivityLogModel
	if err := query.Find(&entryMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list activity logs")
	}

	entries := make([]*entity.ActivityLog, 0, len(entryMs))
	for i := range entryMs {
		entries = append(entries, &entity.ActivityLog{
			ID:        entryMs[i].ID,
			UserID:    entryMs[i].UserID,
			Action:    entryMs[i].Action,
			IPAddress: entryMs[i].IPAddress,
			Timestamp: entryMs[i].Timestamp,
		})
	}

	return entries, nil
}
