package postgres

import (
	"context"

	"finsync/internal/domain/entity"
	domainerrors "finsync/internal/domain/errors"
	"finsync/internal/domain/repository"
	"finsync/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// roleRepository implements the repository.RoleRepository interface.
type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository is the constructor for roleRepository.
func NewRoleRepository(db *gorm.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

// EnsureRole inserts the role unless it is already present.
func (repo *roleRepository) EnsureRole(ctx context.Context, role entity.Role) error {
	if !role.IsValid() {
		return domainerrors.ErrInvalidRole
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.RoleModel{Name: string(role)}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to ensure role")
	}

	return nil
}

// Exists reports whether the role is already part of the role set.
func (repo *roleRepository) Exists(ctx context.Context, role entity.Role) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.RoleModel{}).Where("name = ?", string(role)).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check role")
	}

	return count > 0, nil
}
