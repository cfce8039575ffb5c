package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/carmen-hq/carmen/internal/application/user/dto"
	domainUser "github.com/carmen-hq/carmen/internal/domain/user"
	"github.com/carmen-hq/carmen/internal/infrastructure/email"
	"github.com/carmen-hq/carmen/internal/shared/constants"
	"github.com/carmen-hq/carmen/internal/shared/errors"
	"github.com/carmen-hq/carmen/internal/shared/logger"
	"github.com/carmen-hq/carmen/internal/shared/utils"
)

// PasswordHasher hashes plaintext passwords and verifies them against a
// stored hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

const tempPasswordLength = 12

// CreateUserUseCase creates a platform account. When no password is supplied
// a temporary one is generated, and the invite email carries it when invites
// are requested.
type CreateUserUseCase struct {
	userRepo domainUser.Repository
	hasher   PasswordHasher
	mailer   email.Service
	logger   logger.Interface
}

func NewCreateUserUseCase(
	userRepo domainUser.Repository,
	hasher PasswordHasher,
	mailer email.Service,
	logger logger.Interface,
) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		mailer:   mailer,
		logger:   logger,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, request dto.CreateUserRequest, actorID uint) (*dto.UserResponse, error) {
	uc.logger.Infow("executing create user use case", "username", request.Username)

	username := strings.ToLower(strings.TrimSpace(request.Username))
	address := strings.ToLower(strings.TrimSpace(request.Email))

	if !utils.IsValidEmail(address) {
		return nil, errors.NewValidationError("invalid email address")
	}
	if request.Telephone != "" && !utils.IsValidTelephone(request.Telephone) {
		return nil, errors.NewValidationError("invalid telephone number")
	}

	role := request.PlatformRole
	if role == "" {
		role = constants.RoleUser
	}
	if !constants.IsValidPlatformRole(role) {
		return nil, errors.NewValidationError(fmt.Sprintf("unknown platform role %q", role))
	}

	if existing, err := uc.userRepo.GetByUsername(ctx, username); err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	} else if existing != nil {
		return nil, errors.NewConflictError("username already taken")
	}
	if existing, err := uc.userRepo.GetByEmail(ctx, address); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	} else if existing != nil {
		return nil, errors.NewConflictError("email already registered")
	}

	password := request.Password
	generated := false
	if password == "" {
		var err error
		password, err = utils.GenerateTempPassword(tempPasswordLength)
		if err != nil {
			return nil, fmt.Errorf("failed to generate temporary password: %w", err)
		}
		generated = true
	}
	if len(password) < 8 {
		return nil, errors.NewValidationError("password must be at least 8 characters")
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	isActive := true
	if request.IsActive != nil {
		isActive = *request.IsActive
	}

	entity := &domainUser.User{
		Username:     username,
		Email:        address,
		PlatformRole: role,
		AliasName:    strings.TrimSpace(request.AliasName),
		FirstName:    strings.TrimSpace(request.FirstName),
		MiddleName:   strings.TrimSpace(request.MiddleName),
		LastName:     strings.TrimSpace(request.LastName),
		Telephone:    strings.TrimSpace(request.Telephone),
		IsActive:     isActive,
		PasswordHash: hash,
		CreatedBy:    actorID,
		UpdatedBy:    actorID,
	}

	if err := uc.userRepo.Create(ctx, entity); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("user already exists")
		}
		uc.logger.Errorw("failed to create user", "username", username, "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if request.SendInvite && generated {
		// Invite delivery is best effort; the account exists either way.
		if err := uc.mailer.SendInviteEmail(entity.Email, entity.DisplayName(), entity.Username, password); err != nil {
			uc.logger.Warnw("failed to send invite email", "user_id", entity.ID, "error", err)
		}
	}

	uc.logger.Infow("user created", "id", entity.ID, "username", entity.Username)
	return dto.UserResponseFromEntity(entity), nil
}
