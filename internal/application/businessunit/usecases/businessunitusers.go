package usecases

import (
	"context"
	"fmt"

	"github.com/carmen-hq/carmen/internal/application/businessunit/dto"
	domainBU "github.com/carmen-hq/carmen/internal/domain/businessunit"
	domainUser "github.com/carmen-hq/carmen/internal/domain/user"
	"github.com/carmen-hq/carmen/internal/shared/errors"
	"github.com/carmen-hq/carmen/internal/shared/logger"
	"github.com/carmen-hq/carmen/internal/shared/query"
)

// BusinessUnitUsersUseCase manages the user assignments of one business unit.
type BusinessUnitUsersUseCase struct {
	buRepo   domainBU.Repository
	userRepo domainUser.Repository
	logger   logger.Interface
}

func NewBusinessUnitUsersUseCase(
	buRepo domainBU.Repository,
	userRepo domainUser.Repository,
	logger logger.Interface,
) *BusinessUnitUsersUseCase {
	return &BusinessUnitUsersUseCase{
		buRepo:   buRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *BusinessUnitUsersUseCase) List(ctx context.Context, businessUnitID uint, p query.Paginate) ([]*dto.BusinessUnitUserResponse, int64, error) {
	if err := uc.requireBusinessUnit(ctx, businessUnitID); err != nil {
		return nil, 0, err
	}

	assignments, total, err := uc.buRepo.ListUsers(ctx, businessUnitID, p)
	if err != nil {
		if errors.IsAppError(err) {
			return nil, 0, err
		}
		uc.logger.Errorw("failed to list business unit users", "business_unit_id", businessUnitID, "error", err)
		return nil, 0, fmt.Errorf("failed to list business unit users: %w", err)
	}

	responses := make([]*dto.BusinessUnitUserResponse, 0, len(assignments))
	for _, a := range assignments {
		responses = append(responses, dto.BusinessUnitUserResponseFromEntity(a))
	}
	return responses, total, nil
}

func (uc *BusinessUnitUsersUseCase) Assign(ctx context.Context, businessUnitID uint, request dto.AssignBusinessUnitUserRequest) (*dto.BusinessUnitUserResponse, error) {
	if err := uc.requireBusinessUnit(ctx, businessUnitID); err != nil {
		return nil, err
	}

	userEntity, err := uc.userRepo.GetByID(ctx, request.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", request.UserID, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if userEntity == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	assignment := &domainBU.UserAssignment{
		BusinessUnitID: businessUnitID,
		UserID:         request.UserID,
		Role:           request.Role,
		IsDefault:      request.IsDefault,
		IsActive:       true,
	}
	if request.IsActive != nil {
		assignment.IsActive = *request.IsActive
	}

	if err := uc.buRepo.AssignUser(ctx, assignment); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("user is already assigned to this business unit")
		}
		uc.logger.Errorw("failed to assign user to business unit",
			"business_unit_id", businessUnitID, "user_id", request.UserID, "error", err)
		return nil, fmt.Errorf("failed to assign user: %w", err)
	}

	assignment.Username = userEntity.Username
	assignment.Email = userEntity.Email

	uc.logger.Infow("user assigned to business unit",
		"business_unit_id", businessUnitID, "user_id", request.UserID, "is_default", request.IsDefault)
	return dto.BusinessUnitUserResponseFromEntity(assignment), nil
}

func (uc *BusinessUnitUsersUseCase) Remove(ctx context.Context, businessUnitID, userID uint) error {
	if err := uc.requireBusinessUnit(ctx, businessUnitID); err != nil {
		return err
	}

	if err := uc.buRepo.RemoveUser(ctx, businessUnitID, userID); err != nil {
		uc.logger.Errorw("failed to remove user from business unit",
			"business_unit_id", businessUnitID, "user_id", userID, "error", err)
		return fmt.Errorf("failed to remove user: %w", err)
	}

	uc.logger.Infow("user removed from business unit",
		"business_unit_id", businessUnitID, "user_id", userID)
	return nil
}

// SetDefault marks the assignment as the user's default business unit. The
// user's previous default, wherever it lives, is cleared in the same
// transaction.
func (uc *BusinessUnitUsersUseCase) SetDefault(ctx context.Context, businessUnitID, userID uint) error {
	if err := uc.requireBusinessUnit(ctx, businessUnitID); err != nil {
		return err
	}

	if err := uc.buRepo.SetDefaultUser(ctx, businessUnitID, userID); err != nil {
		if errors.IsAppError(err) {
			return err
		}
		uc.logger.Errorw("failed to set default business unit",
			"business_unit_id", businessUnitID, "user_id", userID, "error", err)
		return fmt.Errorf("failed to set default business unit: %w", err)
	}

	uc.logger.Infow("default business unit set",
		"business_unit_id", businessUnitID, "user_id", userID)
	return nil
}

func (uc *BusinessUnitUsersUseCase) requireBusinessUnit(ctx context.Context, id uint) error {
	entity, err := uc.buRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get business unit", "id", id, "error", err)
		return fmt.Errorf("failed to get business unit: %w", err)
	}
	if entity == nil {
		return errors.NewNotFoundError("business unit not found")
	}
	return nil
}
