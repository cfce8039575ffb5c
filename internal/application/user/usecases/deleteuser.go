package usecases

import (
	"context"
	"fmt"

	domainUser "github.com/carmen-hq/carmen/internal/domain/user"
	"github.com/carmen-hq/carmen/internal/shared/errors"
	"github.com/carmen-hq/carmen/internal/shared/logger"
)

// DeleteUserUseCase removes a platform account together with its cluster
// and business unit assignments. An account may not delete itself.
type DeleteUserUseCase struct {
	userRepo domainUser.Repository
	logger   logger.Interface
}

func NewDeleteUserUseCase(userRepo domainUser.Repository, logger logger.Interface) *DeleteUserUseCase {
	return &DeleteUserUseCase{userRepo: userRepo, logger: logger}
}

func (uc *DeleteUserUseCase) Execute(ctx context.Context, id uint, actorID uint) error {
	uc.logger.Infow("executing delete user use case", "id", id)

	if id == actorID {
		return errors.NewUnprocessableError("cannot delete your own account")
	}

	entity, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get user", "id", id, "error", err)
		return fmt.Errorf("failed to get user: %w", err)
	}
	if entity == nil {
		return errors.NewNotFoundError("user not found")
	}

	if err := uc.userRepo.Delete(ctx, id); err != nil {
		if errors.IsAppError(err) {
			return err
		}
		uc.logger.Errorw("failed to delete user", "id", id, "error", err)
		return fmt.Errorf("failed to delete user: %w", err)
	}

	uc.logger.Infow("user deleted", "id", id, "username", entity.Username)
	return nil
}
