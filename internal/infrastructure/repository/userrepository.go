package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/carmen-hq/carmen/internal/domain/user"
	"github.com/carmen-hq/carmen/internal/infrastructure/persistence/models"
	apperrors "github.com/carmen-hq/carmen/internal/shared/errors"
	"github.com/carmen-hq/carmen/internal/shared/logger"
	"github.com/carmen-hq/carmen/internal/shared/query"
)

// allowedUserFields whitelists columns usable in search, filter, advance and
// sort for user lists. The password hash is never reachable from a query
// parameter.
var allowedUserFields = map[string]bool{
	"id":            true,
	"username":      true,
	"email":         true,
	"platform_role": true,
	"alias_name":    true,
	"first_name":    true,
	"last_name":     true,
	"is_active":     true,
	"created_at":    true,
	"updated_at":    true,
}

// UserRepository implements user.Repository on GORM.
type UserRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewUserRepository(db *gorm.DB, log logger.Interface) user.Repository {
	return &UserRepository{db: db, logger: log}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	model := models.UserModelFromEntity(u)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create user", "username", u.Username, "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}
	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	r.logger.Infow("user created", "id", model.ID, "username", model.Username)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return model.ToEntity(), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by email", "email", email, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return model.ToEntity(), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by username", "username", username, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return model.ToEntity(), nil
}

func (r *UserRepository) List(ctx context.Context, p query.Paginate) ([]*user.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.UserModel{})

	q, err := applyConditions(q, p, allowedUserFields)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid list query: %w", err)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count users", "error", err)
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	q = applyOrder(q, p, allowedUserFields, "created_at DESC")
	q = applyPaging(q, p)

	var userModels []*models.UserModel
	if err := q.Find(&userModels).Error; err != nil {
		r.logger.Errorw("failed to list users", "error", err)
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	entities := make([]*user.User, 0, len(userModels))
	for _, model := range userModels {
		entities = append(entities, model.ToEntity())
	}
	return entities, total, nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	result := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"username":      u.Username,
			"email":         u.Email,
			"platform_role": u.PlatformRole,
			"alias_name":    u.AliasName,
			"first_name":    u.FirstName,
			"middle_name":   u.MiddleName,
			"last_name":     u.LastName,
			"telephone":     u.Telephone,
			"is_active":     u.IsActive,
			"updated_by":    u.UpdatedBy,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update user", "id", u.ID, "error", result.Error)
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	r.logger.Infow("user updated", "id", u.ID)
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	result := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		r.logger.Errorw("failed to update password", "id", id, "error", result.Error)
		return fmt.Errorf("failed to update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("user not found")
	}
	r.logger.Infow("password updated", "id", id)
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Assignments go with the account.
		if err := tx.Where("user_id = ?", id).Delete(&models.ClusterUserModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.BusinessUnitUserModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.UserModel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.NewNotFoundError("user not found")
		}
		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to delete user", "id", id, "error", err)
		return fmt.Errorf("failed to delete user: %w", err)
	}
	r.logger.Infow("user deleted", "id", id)
	return nil
}

func (r *UserRepository) ListClusterAssignments(ctx context.Context, userID uint) ([]*user.ClusterAssignment, error) {
	var joins []*models.ClusterUserModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&joins).Error; err != nil {
		r.logger.Errorw("failed to list cluster assignments", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list cluster assignments: %w", err)
	}

	assignments := make([]*user.ClusterAssignment, 0, len(joins))
	for _, join := range joins {
		a := &user.ClusterAssignment{
			ClusterID: join.ClusterID,
			Role:      join.Role,
			IsActive:  join.IsActive,
		}
		var clusterModel models.ClusterModel
		if err := r.db.WithContext(ctx).Select("code", "name").
			First(&clusterModel, join.ClusterID).Error; err == nil {
			a.ClusterCode = clusterModel.Code
			a.ClusterName = clusterModel.Name
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}

func (r *UserRepository) ListBusinessUnitAssignments(ctx context.Context, userID uint) ([]*user.BusinessUnitAssignment, error) {
	var joins []*models.BusinessUnitUserModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&joins).Error; err != nil {
		r.logger.Errorw("failed to list business unit assignments", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list business unit assignments: %w", err)
	}

	assignments := make([]*user.BusinessUnitAssignment, 0, len(joins))
	for _, join := range joins {
		a := &user.BusinessUnitAssignment{
			BusinessUnitID: join.BusinessUnitID,
			Role:           join.Role,
			IsDefault:      join.IsDefault,
			IsActive:       join.IsActive,
		}
		var buModel models.BusinessUnitModel
		if err := r.db.WithContext(ctx).Select("code", "name").
			First(&buModel, join.BusinessUnitID).Error; err == nil {
			a.BusinessUnitCode = buModel.Code
			a.BusinessUnitName = buModel.Name
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}
