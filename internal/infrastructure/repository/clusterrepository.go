package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/carmen-hq/carmen/internal/domain/cluster"
	"github.com/carmen-hq/carmen/internal/infrastructure/persistence/models"
	apperrors "github.com/carmen-hq/carmen/internal/shared/errors"
	"github.com/carmen-hq/carmen/internal/shared/logger"
	"github.com/carmen-hq/carmen/internal/shared/query"
)

// allowedClusterFields whitelists columns usable in search, filter, advance
// and sort for cluster lists.
var allowedClusterFields = map[string]bool{
	"id":          true,
	"code":        true,
	"name":        true,
	"description": true,
	"is_active":   true,
	"created_at":  true,
	"updated_at":  true,
}

// ClusterRepository implements cluster.Repository on GORM.
type ClusterRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewClusterRepository(db *gorm.DB, log logger.Interface) cluster.Repository {
	return &ClusterRepository{db: db, logger: log}
}

func (r *ClusterRepository) Create(ctx context.Context, c *cluster.Cluster) error {
	model := models.ClusterModelFromEntity(c)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create cluster", "code", c.Code, "error", err)
		return fmt.Errorf("failed to create cluster: %w", err)
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	r.logger.Infow("cluster created", "id", model.ID, "code", model.Code)
	return nil
}

func (r *ClusterRepository) GetByID(ctx context.Context, id uint) (*cluster.Cluster, error) {
	var model models.ClusterModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get cluster by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get cluster: %w", err)
	}
	entity := model.ToEntity()
	if err := r.fillCounts(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *ClusterRepository) GetByCode(ctx context.Context, code string) (*cluster.Cluster, error) {
	var model models.ClusterModel
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get cluster by code", "code", code, "error", err)
		return nil, fmt.Errorf("failed to get cluster: %w", err)
	}
	return model.ToEntity(), nil
}

func (r *ClusterRepository) List(ctx context.Context, p query.Paginate) ([]*cluster.Cluster, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.ClusterModel{})

	q, err := applyConditions(q, p, allowedClusterFields)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid list query: %w", err)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count clusters", "error", err)
		return nil, 0, fmt.Errorf("failed to count clusters: %w", err)
	}

	q = applyOrder(q, p, allowedClusterFields, "created_at DESC")
	q = applyPaging(q, p)

	var clusterModels []*models.ClusterModel
	if err := q.Find(&clusterModels).Error; err != nil {
		r.logger.Errorw("failed to list clusters", "error", err)
		return nil, 0, fmt.Errorf("failed to list clusters: %w", err)
	}

	entities := make([]*cluster.Cluster, 0, len(clusterModels))
	for _, model := range clusterModels {
		entity := model.ToEntity()
		if err := r.fillCounts(ctx, entity); err != nil {
			return nil, 0, err
		}
		entities = append(entities, entity)
	}
	return entities, total, nil
}

func (r *ClusterRepository) Update(ctx context.Context, c *cluster.Cluster) error {
	result := r.db.WithContext(ctx).Model(&models.ClusterModel{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"code":        c.Code,
			"name":        c.Name,
			"description": c.Description,
			"is_active":   c.IsActive,
			"updated_by":  c.UpdatedBy,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update cluster", "id", c.ID, "error", result.Error)
		return fmt.Errorf("failed to update cluster: %w", result.Error)
	}
	// RowsAffected may be 0 when values are unchanged; not an error.
	r.logger.Infow("cluster updated", "id", c.ID)
	return nil
}

func (r *ClusterRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ClusterModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete cluster", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete cluster: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("cluster not found")
	}
	r.logger.Infow("cluster deleted", "id", id)
	return nil
}

func (r *ClusterRepository) CountBusinessUnits(ctx context.Context, clusterID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.BusinessUnitModel{}).
		Where("cluster_id = ?", clusterID).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count business units", "cluster_id", clusterID, "error", err)
		return 0, fmt.Errorf("failed to count business units: %w", err)
	}
	return count, nil
}

func (r *ClusterRepository) fillCounts(ctx context.Context, c *cluster.Cluster) error {
	buCount, err := r.CountBusinessUnits(ctx, c.ID)
	if err != nil {
		return err
	}
	c.BUCount = buCount

	if err := r.db.WithContext(ctx).Model(&models.ClusterUserModel{}).
		Where("cluster_id = ?", c.ID).
		Count(&c.UsersCount).Error; err != nil {
		r.logger.Errorw("failed to count cluster users", "cluster_id", c.ID, "error", err)
		return fmt.Errorf("failed to count cluster users: %w", err)
	}
	return nil
}

// allowedClusterUserFields whitelists columns on the assignment list query.
var allowedClusterUserFields = map[string]bool{
	"role":       true,
	"is_active":  true,
	"created_at": true,
}

func (r *ClusterRepository) ListUsers(ctx context.Context, clusterID uint, p query.Paginate) ([]*cluster.UserAssignment, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.ClusterUserModel{}).
		Where("cluster_id = ?", clusterID)

	base, err := applyConditions(base, p, allowedClusterUserFields)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid list query: %w", err)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count cluster users", "cluster_id", clusterID, "error", err)
		return nil, 0, fmt.Errorf("failed to count cluster users: %w", err)
	}

	base = applyOrder(base, p, allowedClusterUserFields, "created_at ASC")
	base = applyPaging(base, p)

	var joins []*models.ClusterUserModel
	if err := base.Find(&joins).Error; err != nil {
		r.logger.Errorw("failed to list cluster users", "cluster_id", clusterID, "error", err)
		return nil, 0, fmt.Errorf("failed to list cluster users: %w", err)
	}

	assignments := make([]*cluster.UserAssignment, 0, len(joins))
	for _, join := range joins {
		a := &cluster.UserAssignment{
			ID:        join.ID,
			ClusterID: join.ClusterID,
			UserID:    join.UserID,
			Role:      join.Role,
			IsActive:  join.IsActive,
			CreatedAt: join.CreatedAt,
			UpdatedAt: join.UpdatedAt,
		}
		var userModel models.UserModel
		if err := r.db.WithContext(ctx).Select("username", "email").
			First(&userModel, join.UserID).Error; err == nil {
			a.Username = userModel.Username
			a.Email = userModel.Email
		}
		assignments = append(assignments, a)
	}
	return assignments, total, nil
}

func (r *ClusterRepository) AssignUser(ctx context.Context, a *cluster.UserAssignment) error {
	model := &models.ClusterUserModel{
		ClusterID: a.ClusterID,
		UserID:    a.UserID,
		Role:      a.Role,
		IsActive:  a.IsActive,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to assign user to cluster",
			"cluster_id", a.ClusterID, "user_id", a.UserID, "error", err)
		return fmt.Errorf("failed to assign user to cluster: %w", err)
	}
	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	r.logger.Infow("user assigned to cluster",
		"cluster_id", a.ClusterID, "user_id", a.UserID, "role", a.Role)
	return nil
}

func (r *ClusterRepository) RemoveUser(ctx context.Context, clusterID, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("cluster_id = ? AND user_id = ?", clusterID, userID).
		Delete(&models.ClusterUserModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to remove user from cluster",
			"cluster_id", clusterID, "user_id", userID, "error", result.Error)
		return fmt.Errorf("failed to remove user from cluster: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("assignment not found")
	}
	r.logger.Infow("user removed from cluster", "cluster_id", clusterID, "user_id", userID)
	return nil
}
