package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/carmen-hq/carmen/internal/application/auth/dto"
	domainUser "github.com/carmen-hq/carmen/internal/domain/user"
	"github.com/carmen-hq/carmen/internal/infrastructure/ratelimit"
	"github.com/carmen-hq/carmen/internal/shared/constants"
	"github.com/carmen-hq/carmen/internal/shared/errors"
	"github.com/carmen-hq/carmen/internal/shared/logger"
)

// PasswordVerifier checks a plaintext password against a stored hash.
type PasswordVerifier interface {
	Verify(password, hash string) error
}

// TokenIssuer signs access tokens for authenticated accounts.
type TokenIssuer interface {
	Generate(userID uint, username, role string) (string, time.Time, error)
}

// LoginUseCase authenticates a console account. Only accounts whose platform
// role is on the console allow-list may sign in; everyone else gets the same
// rejection as a wrong password so the console does not leak which accounts
// exist.
type LoginUseCase struct {
	userRepo  domainUser.Repository
	verifier  PasswordVerifier
	tokens    TokenIssuer
	limiter   ratelimit.Limiter
	debugMode bool
	logger    logger.Interface
}

func NewLoginUseCase(
	userRepo domainUser.Repository,
	verifier PasswordVerifier,
	tokens TokenIssuer,
	limiter ratelimit.Limiter,
	debugMode bool,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo:  userRepo,
		verifier:  verifier,
		tokens:    tokens,
		limiter:   limiter,
		debugMode: debugMode,
		logger:    logger,
	}
}

// Execute authenticates the request. clientAddr keys the login rate limit.
func (uc *LoginUseCase) Execute(ctx context.Context, request dto.LoginRequest, clientAddr string) (*dto.LoginResponse, error) {
	if uc.limiter != nil && clientAddr != "" {
		allowed, err := uc.limiter.Allow("login:" + clientAddr)
		if err != nil {
			uc.logger.Warnw("login rate limiter unavailable", "error", err)
		} else if !allowed {
			uc.logger.Warnw("login rate limit exceeded", "client_addr", clientAddr)
			return nil, errors.NewRateLimitError("too many login attempts, try again later")
		}
	}

	userEntity, err := uc.lookupAccount(ctx, request.Email)
	if err != nil {
		uc.logger.Errorw("failed to look up account", "error", err)
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if userEntity == nil {
		uc.logger.Infow("login rejected, unknown account", "email", request.Email)
		return nil, uc.rejection("account not found")
	}

	if err := uc.verifier.Verify(request.Password, userEntity.PasswordHash); err != nil {
		uc.logger.Infow("login rejected, bad password", "user_id", userEntity.ID)
		return nil, uc.rejection("password mismatch")
	}

	if !userEntity.IsActive {
		uc.logger.Infow("login rejected, inactive account", "user_id", userEntity.ID)
		return nil, uc.rejection("account inactive")
	}

	if !constants.IsConsoleRole(userEntity.PlatformRole) {
		uc.logger.Infow("login rejected, role not permitted",
			"user_id", userEntity.ID,
			"platform_role", userEntity.PlatformRole)
		return nil, uc.rejection("role not permitted on console")
	}

	token, expiresAt, err := uc.tokens.Generate(userEntity.ID, userEntity.Username, userEntity.PlatformRole)
	if err != nil {
		uc.logger.Errorw("failed to issue token", "user_id", userEntity.ID, "error", err)
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	uc.logger.Infow("login succeeded", "user_id", userEntity.ID, "platform_role", userEntity.PlatformRole)

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User: dto.LoginUserInfo{
			ID:           userEntity.ID,
			Username:     userEntity.Username,
			Email:        userEntity.Email,
			DisplayName:  userEntity.DisplayName(),
			PlatformRole: userEntity.PlatformRole,
		},
	}, nil
}

func (uc *LoginUseCase) lookupAccount(ctx context.Context, identifier string) (*domainUser.User, error) {
	if strings.Contains(identifier, "@") {
		return uc.userRepo.GetByEmail(ctx, identifier)
	}
	return uc.userRepo.GetByUsername(ctx, identifier)
}

// rejection returns a 401 with a uniform message. Debug builds attach the real
// reason so operators can diagnose sign-in problems locally.
func (uc *LoginUseCase) rejection(reason string) error {
	if uc.debugMode {
		return errors.NewUnauthorizedError("invalid credentials", reason)
	}
	return errors.NewUnauthorizedError("invalid credentials")
}
