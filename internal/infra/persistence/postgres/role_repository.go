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
	"gorm.io/gorm/clause"
)

// roleRepository implements the domain.RoleRepository interface using GORM.
type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository is the constructor for roleRepository.
func NewRoleRepository(db *gorm.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

// EnsureRole gets or creates the named role row. The unique constraint on the
// name makes concurrent seeding safe.
func (repo *roleRepository) EnsureRole(ctx context.Context, role entity.Role) error {
	roleM := model.RoleModel{Name: role.String()}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&roleM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to ensure role")
	}

	return nil
}

// AssignRole links a user to a role. Assigning an already-held role is a
// no-op, enforced by the unique (user_id, role_id) pair.
func (repo *roleRepository) AssignRole(ctx context.Context, userID uuid.UUID, role entity.Role) error {
	var roleM model.RoleModel
	err := repo.db.WithContext(ctx).
		Where("name = ?", role.String()).
		First(&roleM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repository.ErrRoleNotFound
		}

		return errors.Wrap(err, "failed to find role by name")
	}

	userRoleM := model.UserRoleModel{
		UserID: userID,
		RoleID: roleM.ID,
	}

	err = repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "role_id"}},
			DoNothing: true,
		}).
		Create(&userRoleM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to assign role")
	}

	return nil
}

// FindRolesByUserID resolves the full capability set of a user.
func (repo *roleRepository) FindRolesByUserID(ctx context.Context, userID uuid.UUID) (entity.Roles, error) {
	var names []string
	err := repo.db.WithContext(ctx).
		Model(&model.RoleModel{}).
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Pluck("roles.name", &names).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find roles by user id")
	}

	return entity.RolesFromStrings(names), nil
}
