package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/carmen-hq/carmen/internal/application/user/dto"
	domainUser "github.com/carmen-hq/carmen/internal/domain/user"
	"github.com/carmen-hq/carmen/internal/shared/constants"
	"github.com/carmen-hq/carmen/internal/shared/errors"
	"github.com/carmen-hq/carmen/internal/shared/logger"
	"github.com/carmen-hq/carmen/internal/shared/utils"
)

// UpdateUserUseCase patches a platform account. Usernames are immutable;
// support staff rename accounts by alias instead.
type UpdateUserUseCase struct {
	userRepo domainUser.Repository
	logger   logger.Interface
}

func NewUpdateUserUseCase(userRepo domainUser.Repository, logger logger.Interface) *UpdateUserUseCase {
	return &UpdateUserUseCase{userRepo: userRepo, logger: logger}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, id uint, request dto.UpdateUserRequest, actorID uint) (*dto.UserResponse, error) {
	uc.logger.Infow("executing update user use case", "id", id)

	entity, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get user", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if entity == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	if request.Email != nil {
		address := strings.ToLower(strings.TrimSpace(*request.Email))
		if !utils.IsValidEmail(address) {
			return nil, errors.NewValidationError("invalid email address")
		}
		if address != entity.Email {
			other, err := uc.userRepo.GetByEmail(ctx, address)
			if err != nil {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			if other != nil && other.ID != id {
				return nil, errors.NewConflictError("email already registered")
			}
		}
		entity.Email = address
	}
	if request.PlatformRole != nil {
		if !constants.IsValidPlatformRole(*request.PlatformRole) {
			return nil, errors.NewValidationError(fmt.Sprintf("unknown platform role %q", *request.PlatformRole))
		}
		entity.PlatformRole = *request.PlatformRole
	}
	if request.AliasName != nil {
		entity.AliasName = strings.TrimSpace(*request.AliasName)
	}
	if request.FirstName != nil {
		entity.FirstName = strings.TrimSpace(*request.FirstName)
	}
	if request.MiddleName != nil {
		entity.MiddleName = strings.TrimSpace(*request.MiddleName)
	}
	if request.LastName != nil {
		entity.LastName = strings.TrimSpace(*request.LastName)
	}
	if request.Telephone != nil {
		phone := strings.TrimSpace(*request.Telephone)
		if phone != "" && !utils.IsValidTelephone(phone) {
			return nil, errors.NewValidationError("invalid telephone number")
		}
		entity.Telephone = phone
	}
	if request.IsActive != nil {
		entity.IsActive = *request.IsActive
	}
	entity.UpdatedBy = actorID

	if err := uc.userRepo.Update(ctx, entity); err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to update user", "id", id, "error", err)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	updated, err := uc.userRepo.GetByID(ctx, id)
	if err != nil || updated == nil {
		return dto.UserResponseFromEntity(entity), nil
	}

	uc.logger.Infow("user updated", "id", id)
	return dto.UserResponseFromEntity(updated), nil
}
