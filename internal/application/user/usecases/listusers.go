package usecases

import (
	"context"
	"fmt"

	"github.com/carmen-hq/carmen/internal/application/user/dto"
	domainUser "github.com/carmen-hq/carmen/internal/domain/user"
	"github.com/carmen-hq/carmen/internal/shared/errors"
	"github.com/carmen-hq/carmen/internal/shared/logger"
	"github.com/carmen-hq/carmen/internal/shared/query"
)

type ListUsersUseCase struct {
	userRepo domainUser.Repository
	logger   logger.Interface
}

func NewListUsersUseCase(userRepo domainUser.Repository, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo, logger: logger}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, p query.Paginate) ([]*dto.UserResponse, int64, error) {
	entities, total, err := uc.userRepo.List(ctx, p)
	if err != nil {
		if errors.IsAppError(err) {
			return nil, 0, err
		}
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]*dto.UserResponse, 0, len(entities))
	for _, entity := range entities {
		responses = append(responses, dto.UserResponseFromEntity(entity))
	}
	return responses, total, nil
}
