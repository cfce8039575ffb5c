package usecases

import (
	"context"
	"fmt"

	"github.com/carmen-hq/carmen/internal/application/user/dto"
	domainUser "github.com/carmen-hq/carmen/internal/domain/user"
	"github.com/carmen-hq/carmen/internal/infrastructure/email"
	"github.com/carmen-hq/carmen/internal/shared/errors"
	"github.com/carmen-hq/carmen/internal/shared/logger"
)

// ChangePasswordUseCase rotates the signed-in user's password. The current
// password must verify before the new one is accepted.
type ChangePasswordUseCase struct {
	userRepo domainUser.Repository
	hasher   PasswordHasher
	mailer   email.Service
	logger   logger.Interface
}

func NewChangePasswordUseCase(
	userRepo domainUser.Repository,
	hasher PasswordHasher,
	mailer email.Service,
	logger logger.Interface,
) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		mailer:   mailer,
		logger:   logger,
	}
}

func (uc *ChangePasswordUseCase) Execute(ctx context.Context, userID uint, request dto.ChangePasswordRequest) error {
	uc.logger.Infow("executing change password use case", "user_id", userID)

	entity, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "id", userID, "error", err)
		return fmt.Errorf("failed to get user: %w", err)
	}
	if entity == nil {
		return errors.NewNotFoundError("user not found")
	}

	if err := uc.hasher.Verify(request.CurrentPassword, entity.PasswordHash); err != nil {
		return errors.NewUnauthorizedError("current password is incorrect")
	}
	if len(request.NewPassword) < 8 {
		return errors.NewValidationError("password must be at least 8 characters")
	}
	if request.NewPassword == request.CurrentPassword {
		return errors.NewValidationError("new password must differ from the current one")
	}

	hash, err := uc.hasher.Hash(request.NewPassword)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := uc.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		if errors.IsAppError(err) {
			return err
		}
		uc.logger.Errorw("failed to update password", "user_id", userID, "error", err)
		return fmt.Errorf("failed to update password: %w", err)
	}

	// Notification is best effort.
	if err := uc.mailer.SendPasswordChangedEmail(entity.Email, entity.DisplayName()); err != nil {
		uc.logger.Warnw("failed to send password changed email", "user_id", userID, "error", err)
	}

	uc.logger.Infow("password changed", "user_id", userID)
	return nil
}
