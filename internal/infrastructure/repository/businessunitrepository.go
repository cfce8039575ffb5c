package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/carmen-hq/carmen/internal/domain/businessunit"
	"github.com/carmen-hq/carmen/internal/infrastructure/persistence/models"
	apperrors "github.com/carmen-hq/carmen/internal/shared/errors"
	"github.com/carmen-hq/carmen/internal/shared/logger"
	"github.com/carmen-hq/carmen/internal/shared/query"
)

// allowedBusinessUnitFields whitelists the scalar columns usable in search,
// filter, advance and sort. JSON configuration columns are not queryable.
var allowedBusinessUnitFields = map[string]bool{
	"id":                 true,
	"cluster_id":         true,
	"code":               true,
	"name":               true,
	"alias_name":         true,
	"description":        true,
	"is_hq":              true,
	"is_active":          true,
	"calculation_method": true,
	"created_at":         true,
	"updated_at":         true,
}

// BusinessUnitRepository implements businessunit.Repository on GORM.
type BusinessUnitRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewBusinessUnitRepository(db *gorm.DB, log logger.Interface) businessunit.Repository {
	return &BusinessUnitRepository{db: db, logger: log}
}

func (r *BusinessUnitRepository) Create(ctx context.Context, bu *businessunit.BusinessUnit) error {
	model, err := models.BusinessUnitModelFromEntity(bu)
	if err != nil {
		r.logger.Errorw("failed to map business unit", "code", bu.Code, "error", err)
		return fmt.Errorf("failed to map business unit: %w", err)
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create business unit", "code", bu.Code, "error", err)
		return fmt.Errorf("failed to create business unit: %w", err)
	}
	bu.ID = model.ID
	bu.CreatedAt = model.CreatedAt
	bu.UpdatedAt = model.UpdatedAt
	r.logger.Infow("business unit created", "id", model.ID, "code", model.Code, "cluster_id", model.ClusterID)
	return nil
}

func (r *BusinessUnitRepository) GetByID(ctx context.Context, id uint) (*businessunit.BusinessUnit, error) {
	var model models.BusinessUnitModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get business unit by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get business unit: %w", err)
	}
	entity, err := model.ToEntity()
	if err != nil {
		r.logger.Errorw("failed to map business unit model", "id", id, "error", err)
		return nil, fmt.Errorf("failed to map business unit: %w", err)
	}
	return entity, nil
}

func (r *BusinessUnitRepository) GetByCode(ctx context.Context, clusterID uint, code string) (*businessunit.BusinessUnit, error) {
	var model models.BusinessUnitModel
	if err := r.db.WithContext(ctx).
		Where("cluster_id = ? AND code = ?", clusterID, code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get business unit by code",
			"cluster_id", clusterID, "code", code, "error", err)
		return nil, fmt.Errorf("failed to get business unit: %w", err)
	}
	entity, err := model.ToEntity()
	if err != nil {
		return nil, fmt.Errorf("failed to map business unit: %w", err)
	}
	return entity, nil
}

func (r *BusinessUnitRepository) List(ctx context.Context, p query.Paginate) ([]*businessunit.BusinessUnit, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.BusinessUnitModel{})

	q, err := applyConditions(q, p, allowedBusinessUnitFields)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid list query: %w", err)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count business units", "error", err)
		return nil, 0, fmt.Errorf("failed to count business units: %w", err)
	}

	q = applyOrder(q, p, allowedBusinessUnitFields, "created_at DESC")
	q = applyPaging(q, p)

	var buModels []*models.BusinessUnitModel
	if err := q.Find(&buModels).Error; err != nil {
		r.logger.Errorw("failed to list business units", "error", err)
		return nil, 0, fmt.Errorf("failed to list business units: %w", err)
	}

	entities := make([]*businessunit.BusinessUnit, 0, len(buModels))
	for _, model := range buModels {
		entity, err := model.ToEntity()
		if err != nil {
			r.logger.Warnw("failed to map business unit model, skipping", "id", model.ID, "error", err)
			continue
		}
		entities = append(entities, entity)
	}
	return entities, total, nil
}

func (r *BusinessUnitRepository) Update(ctx context.Context, bu *businessunit.BusinessUnit) error {
	model, err := models.BusinessUnitModelFromEntity(bu)
	if err != nil {
		return fmt.Errorf("failed to map business unit: %w", err)
	}

	result := r.db.WithContext(ctx).Model(&models.BusinessUnitModel{}).
		Where("id = ?", bu.ID).
		Updates(map[string]interface{}{
			"cluster_id":          model.ClusterID,
			"code":                model.Code,
			"name":                model.Name,
			"alias_name":          model.AliasName,
			"description":         model.Description,
			"is_hq":               model.IsHQ,
			"is_active":           model.IsActive,
			"hotel_contact":       model.HotelContact,
			"company_contact":     model.CompanyContact,
			"tax":                 model.Tax,
			"date_format":         model.DateFormat,
			"short_date_format":   model.ShortDateFormat,
			"long_date_format":    model.LongDateFormat,
			"time_format":         model.TimeFormat,
			"datetime_format":     model.DatetimeFormat,
			"amount_format":       model.AmountFormat,
			"quantity_format":     model.QuantityFormat,
			"currency_format":     model.CurrencyFormat,
			"percent_format":      model.PercentFormat,
			"calculation_method":  model.CalculationMethod,
			"default_currency_id": model.DefaultCurrencyID,
			"config":              model.Config,
			"db_connection":       model.DBConnection,
			"updated_by":          model.UpdatedBy,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update business unit", "id", bu.ID, "error", result.Error)
		return fmt.Errorf("failed to update business unit: %w", result.Error)
	}
	r.logger.Infow("business unit updated", "id", bu.ID)
	return nil
}

func (r *BusinessUnitRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.BusinessUnitModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete business unit", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete business unit: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("business unit not found")
	}
	r.logger.Infow("business unit deleted", "id", id)
	return nil
}

func (r *BusinessUnitRepository) HQExists(ctx context.Context, clusterID, excludeID uint) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.BusinessUnitModel{}).
		Where("cluster_id = ? AND is_hq = ?", clusterID, true)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		r.logger.Errorw("failed to check HQ existence", "cluster_id", clusterID, "error", err)
		return false, fmt.Errorf("failed to check HQ existence: %w", err)
	}
	return count > 0, nil
}

// allowedBUUserFields whitelists columns on the assignment list query.
var allowedBUUserFields = map[string]bool{
	"role":       true,
	"is_default": true,
	"is_active":  true,
	"created_at": true,
}

func (r *BusinessUnitRepository) ListUsers(ctx context.Context, businessUnitID uint, p query.Paginate) ([]*businessunit.UserAssignment, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.BusinessUnitUserModel{}).
		Where("business_unit_id = ?", businessUnitID)

	base, err := applyConditions(base, p, allowedBUUserFields)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid list query: %w", err)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count business unit users", "business_unit_id", businessUnitID, "error", err)
		return nil, 0, fmt.Errorf("failed to count business unit users: %w", err)
	}

	base = applyOrder(base, p, allowedBUUserFields, "created_at ASC")
	base = applyPaging(base, p)

	var joins []*models.BusinessUnitUserModel
	if err := base.Find(&joins).Error; err != nil {
		r.logger.Errorw("failed to list business unit users", "business_unit_id", businessUnitID, "error", err)
		return nil, 0, fmt.Errorf("failed to list business unit users: %w", err)
	}

	assignments := make([]*businessunit.UserAssignment, 0, len(joins))
	for _, join := range joins {
		a := &businessunit.UserAssignment{
			ID:             join.ID,
			BusinessUnitID: join.BusinessUnitID,
			UserID:         join.UserID,
			Role:           join.Role,
			IsDefault:      join.IsDefault,
			IsActive:       join.IsActive,
			CreatedAt:      join.CreatedAt,
			UpdatedAt:      join.UpdatedAt,
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

func (r *BusinessUnitRepository) AssignUser(ctx context.Context, a *businessunit.UserAssignment) error {
	model := &models.BusinessUnitUserModel{
		BusinessUnitID: a.BusinessUnitID,
		UserID:         a.UserID,
		Role:           a.Role,
		IsDefault:      a.IsDefault,
		IsActive:       a.IsActive,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if model.IsDefault {
			if err := tx.Model(&models.BusinessUnitUserModel{}).
				Where("user_id = ? AND is_default = ?", a.UserID, true).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(model).Error
	})
	if err != nil {
		r.logger.Errorw("failed to assign user to business unit",
			"business_unit_id", a.BusinessUnitID, "user_id", a.UserID, "error", err)
		return fmt.Errorf("failed to assign user to business unit: %w", err)
	}
	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	r.logger.Infow("user assigned to business unit",
		"business_unit_id", a.BusinessUnitID, "user_id", a.UserID, "role", a.Role)
	return nil
}

func (r *BusinessUnitRepository) RemoveUser(ctx context.Context, businessUnitID, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("business_unit_id = ? AND user_id = ?", businessUnitID, userID).
		Delete(&models.BusinessUnitUserModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to remove user from business unit",
			"business_unit_id", businessUnitID, "user_id", userID, "error", result.Error)
		return fmt.Errorf("failed to remove user from business unit: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("assignment not found")
	}
	r.logger.Infow("user removed from business unit",
		"business_unit_id", businessUnitID, "user_id", userID)
	return nil
}

func (r *BusinessUnitRepository) SetDefaultUser(ctx context.Context, businessUnitID, userID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var join models.BusinessUnitUserModel
		if err := tx.Where("business_unit_id = ? AND user_id = ?", businessUnitID, userID).
			First(&join).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFoundError("assignment not found")
			}
			return err
		}
		if err := tx.Model(&models.BusinessUnitUserModel{}).
			Where("user_id = ? AND is_default = ?", userID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.BusinessUnitUserModel{}).
			Where("id = ?", join.ID).
			Update("is_default", true).Error
	})
	if err != nil {
		r.logger.Errorw("failed to set default business unit",
			"business_unit_id", businessUnitID, "user_id", userID, "error", err)
		return fmt.Errorf("failed to set default business unit: %w", err)
	}
	r.logger.Infow("default business unit set",
		"business_unit_id", businessUnitID, "user_id", userID)
	return nil
}
