package usecases

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carmen-hq/carmen/internal/application/auth/dto"
	domainUser "github.com/carmen-hq/carmen/internal/domain/user"
	"github.com/carmen-hq/carmen/internal/shared/constants"
	"github.com/carmen-hq/carmen/internal/shared/errors"
	"github.com/carmen-hq/carmen/internal/shared/logger"
	"github.com/carmen-hq/carmen/internal/shared/query"
)

type fakeUserRepo struct {
	users []*domainUser.User
}

func (r *fakeUserRepo) Create(ctx context.Context, u *domainUser.User) error { return nil }
func (r *fakeUserRepo) GetByID(ctx context.Context, id uint) (*domainUser.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domainUser.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domainUser.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) List(ctx context.Context, p query.Paginate) ([]*domainUser.User, int64, error) {
	return r.users, int64(len(r.users)), nil
}
func (r *fakeUserRepo) Update(ctx context.Context, u *domainUser.User) error { return nil }
func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return nil
}
func (r *fakeUserRepo) Delete(ctx context.Context, id uint) error { return nil }
func (r *fakeUserRepo) ListClusterAssignments(ctx context.Context, userID uint) ([]*domainUser.ClusterAssignment, error) {
	return nil, nil
}
func (r *fakeUserRepo) ListBusinessUnitAssignments(ctx context.Context, userID uint) ([]*domainUser.BusinessUnitAssignment, error) {
	return nil, nil
}

type fakeVerifier struct{ valid string }

func (v *fakeVerifier) Verify(password, hash string) error {
	if password == v.valid {
		return nil
	}
	return errors.NewUnauthorizedError("password verification failed")
}

type fakeTokenIssuer struct{ issued int }

func (t *fakeTokenIssuer) Generate(userID uint, username, role string) (string, time.Time, error) {
	t.issued++
	return "token-" + username, time.Now().Add(time.Hour), nil
}

type fakeLimiter struct {
	allowed bool
	calls   []string
}

func (l *fakeLimiter) Allow(key string) (bool, error) {
	l.calls = append(l.calls, key)
	return l.allowed, nil
}

func (l *fakeLimiter) Reset(key string) error { return nil }

func quietLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testAccounts() []*domainUser.User {
	return []*domainUser.User{
		{ID: 1, Username: "admin", Email: "admin@example.com", PlatformRole: constants.RolePlatformAdmin, IsActive: true, PasswordHash: "h"},
		{ID: 2, Username: "guest", Email: "guest@example.com", PlatformRole: constants.RoleUser, IsActive: true, PasswordHash: "h"},
		{ID: 3, Username: "frozen", Email: "frozen@example.com", PlatformRole: constants.RoleSupportStaff, IsActive: false, PasswordHash: "h"},
	}
}

func TestLoginUseCase_Execute_Success(t *testing.T) {
	issuer := &fakeTokenIssuer{}
	uc := NewLoginUseCase(
		&fakeUserRepo{users: testAccounts()},
		&fakeVerifier{valid: "good-password"},
		issuer,
		nil, // no limiter in tests
		false,
		quietLogger(),
	)

	resp, err := uc.Execute(context.Background(), dto.LoginRequest{Email: "admin", Password: "good-password"}, "192.0.2.1")
	require.NoError(t, err)
	assert.Equal(t, "token-admin", resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, constants.RolePlatformAdmin, resp.User.PlatformRole)
	assert.Equal(t, 1, issuer.issued)
}

func TestLoginUseCase_Execute_ByEmail(t *testing.T) {
	uc := NewLoginUseCase(
		&fakeUserRepo{users: testAccounts()},
		&fakeVerifier{valid: "good-password"},
		&fakeTokenIssuer{},
		nil,
		false,
		quietLogger(),
	)

	resp, err := uc.Execute(context.Background(), dto.LoginRequest{Email: "admin@example.com", Password: "good-password"}, "")
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.User.Username)
}

func TestLoginUseCase_Execute_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		password   string
	}{
		{"unknown account", "nobody", "good-password"},
		{"bad password", "admin", "wrong"},
		{"role not on allow-list", "guest", "good-password"},
		{"inactive account", "frozen", "good-password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issuer := &fakeTokenIssuer{}
			uc := NewLoginUseCase(
				&fakeUserRepo{users: testAccounts()},
				&fakeVerifier{valid: "good-password"},
				issuer,
				nil,
				false,
				quietLogger(),
			)

			_, err := uc.Execute(context.Background(), dto.LoginRequest{Email: tt.identifier, Password: tt.password}, "")
			require.Error(t, err)

			appErr := errors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, errors.ErrorTypeUnauthorized, appErr.Type)
			// Identical message for every rejection cause.
			assert.Equal(t, "invalid credentials", appErr.Message)
			assert.Empty(t, appErr.Details)
			assert.Zero(t, issuer.issued)
		})
	}
}

func TestLoginUseCase_Execute_Throttled(t *testing.T) {
	limiter := &fakeLimiter{allowed: false}
	issuer := &fakeTokenIssuer{}
	uc := NewLoginUseCase(
		&fakeUserRepo{users: testAccounts()},
		&fakeVerifier{valid: "good-password"},
		issuer,
		limiter,
		false,
		quietLogger(),
	)

	_, err := uc.Execute(context.Background(), dto.LoginRequest{Email: "admin", Password: "good-password"}, "192.0.2.1")
	require.Error(t, err)

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeRateLimited, appErr.Type)
	assert.Equal(t, []string{"login:192.0.2.1"}, limiter.calls)
	assert.Zero(t, issuer.issued)
}

func TestLoginUseCase_Execute_LimiterAllows(t *testing.T) {
	limiter := &fakeLimiter{allowed: true}
	uc := NewLoginUseCase(
		&fakeUserRepo{users: testAccounts()},
		&fakeVerifier{valid: "good-password"},
		&fakeTokenIssuer{},
		limiter,
		false,
		quietLogger(),
	)

	resp, err := uc.Execute(context.Background(), dto.LoginRequest{Email: "admin", Password: "good-password"}, "192.0.2.1")
	require.NoError(t, err)
	assert.Equal(t, "token-admin", resp.AccessToken)
	assert.Equal(t, []string{"login:192.0.2.1"}, limiter.calls)
}

func TestLoginUseCase_Execute_DebugModeCarriesReason(t *testing.T) {
	uc := NewLoginUseCase(
		&fakeUserRepo{users: testAccounts()},
		&fakeVerifier{valid: "good-password"},
		&fakeTokenIssuer{},
		nil,
		true,
		quietLogger(),
	)

	_, err := uc.Execute(context.Background(), dto.LoginRequest{Email: "guest", Password: "good-password"}, "")
	require.Error(t, err)

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "invalid credentials", appErr.Message)
	assert.Equal(t, "role not permitted on console", appErr.Details)
}
