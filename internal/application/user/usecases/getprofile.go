package usecases

import (
	"context"
	"fmt"

	"github.com/carmen-hq/carmen/internal/application/user/dto"
	domainUser "github.com/carmen-hq/carmen/internal/domain/user"
	"github.com/carmen-hq/carmen/internal/shared/errors"
	"github.com/carmen-hq/carmen/internal/shared/logger"
)

// GetProfileUseCase returns the signed-in user's account plus its cluster
// and business unit assignments, denormalized for the console shell.
type GetProfileUseCase struct {
	userRepo domainUser.Repository
	logger   logger.Interface
}

func NewGetProfileUseCase(userRepo domainUser.Repository, logger logger.Interface) *GetProfileUseCase {
	return &GetProfileUseCase{userRepo: userRepo, logger: logger}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, userID uint) (*dto.ProfileResponse, error) {
	entity, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "id", userID, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if entity == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	clusters, err := uc.userRepo.ListClusterAssignments(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to list cluster assignments", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list cluster assignments: %w", err)
	}
	businessUnits, err := uc.userRepo.ListBusinessUnitAssignments(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to list business unit assignments", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list business unit assignments: %w", err)
	}

	if clusters == nil {
		clusters = []*domainUser.ClusterAssignment{}
	}
	if businessUnits == nil {
		businessUnits = []*domainUser.BusinessUnitAssignment{}
	}

	return &dto.ProfileResponse{
		UserResponse:  *dto.UserResponseFromEntity(entity),
		Clusters:      clusters,
		BusinessUnits: businessUnits,
	}, nil
}
