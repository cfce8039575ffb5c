package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/carmen-hq/carmen/internal/application/user/dto"
	domainUser "github.com/carmen-hq/carmen/internal/domain/user"
	"github.com/carmen-hq/carmen/internal/shared/errors"
	"github.com/carmen-hq/carmen/internal/shared/logger"
	"github.com/carmen-hq/carmen/internal/shared/utils"
)

// UpdateProfileUseCase lets the signed-in user edit their own display
// fields. Role and activation state stay out of reach on purpose.
type UpdateProfileUseCase struct {
	userRepo domainUser.Repository
	profile  *GetProfileUseCase
	logger   logger.Interface
}

func NewUpdateProfileUseCase(userRepo domainUser.Repository, logger logger.Interface) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		userRepo: userRepo,
		profile:  NewGetProfileUseCase(userRepo, logger),
		logger:   logger,
	}
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, userID uint, request dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	uc.logger.Infow("executing update profile use case", "user_id", userID)

	entity, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "id", userID, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if entity == nil {
		return nil, errors.NewNotFoundError("user not found")
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
	entity.UpdatedBy = userID

	if err := uc.userRepo.Update(ctx, entity); err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to update profile", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return uc.profile.Execute(ctx, userID)
}
