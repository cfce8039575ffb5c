package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	authUC "github.com/carmen-hq/carmen/internal/application/auth/usecases"
	buUC "github.com/carmen-hq/carmen/internal/application/businessunit/usecases"
	clusterUC "github.com/carmen-hq/carmen/internal/application/cluster/usecases"
	userUC "github.com/carmen-hq/carmen/internal/application/user/usecases"
	"github.com/carmen-hq/carmen/internal/domain/user"
	"github.com/carmen-hq/carmen/internal/infrastructure/auth"
	"github.com/carmen-hq/carmen/internal/infrastructure/email"
	"github.com/carmen-hq/carmen/internal/infrastructure/persistence/models"
	"github.com/carmen-hq/carmen/internal/infrastructure/repository"
	"github.com/carmen-hq/carmen/internal/shared/constants"
	"github.com/carmen-hq/carmen/internal/shared/logger"
)

type testEnv struct {
	engine   *gin.Engine
	userRepo user.Repository
}

func quietLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// asUser stands in for the auth middleware.
func asUser(id uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, id)
		c.Set(constants.ContextKeyUserRole, role)
		c.Next()
	}
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.ClusterModel{},
		&models.ClusterUserModel{},
		&models.BusinessUnitModel{},
		&models.BusinessUnitUserModel{},
		&models.UserModel{},
	))

	log := quietLogger()
	clusterRepo := repository.NewClusterRepository(db, log)
	buRepo := repository.NewBusinessUnitRepository(db, log)
	userRepo := repository.NewUserRepository(db, log)

	hasher := auth.NewBcryptPasswordHasher(4)
	jwtService := auth.NewJWTService("test-secret", 60)
	mailer := email.NewNoopEmailService()

	loginUC := authUC.NewLoginUseCase(
		userRepo, hasher, jwtService, nil, false, log)

	authHandler := NewAuthHandler(loginUC, log)
	profileHandler := NewProfileHandler(
		userUC.NewGetProfileUseCase(userRepo, log),
		userUC.NewUpdateProfileUseCase(userRepo, log),
		userUC.NewChangePasswordUseCase(userRepo, hasher, mailer, log),
		log,
	)
	clusterHandler := NewClusterHandler(
		clusterUC.NewCreateClusterUseCase(clusterRepo, log),
		clusterUC.NewGetClusterUseCase(clusterRepo, log),
		clusterUC.NewListClustersUseCase(clusterRepo, log),
		clusterUC.NewUpdateClusterUseCase(clusterRepo, log),
		clusterUC.NewDeleteClusterUseCase(clusterRepo, log),
		clusterUC.NewClusterUsersUseCase(clusterRepo, userRepo, log),
		log,
	)
	buHandler := NewBusinessUnitHandler(
		buUC.NewCreateBusinessUnitUseCase(buRepo, clusterRepo, log),
		buUC.NewGetBusinessUnitUseCase(buRepo, log),
		buUC.NewListBusinessUnitsUseCase(buRepo, log),
		buUC.NewUpdateBusinessUnitUseCase(buRepo, log),
		buUC.NewDeleteBusinessUnitUseCase(buRepo, log),
		buUC.NewBusinessUnitUsersUseCase(buRepo, userRepo, log),
		log,
	)
	userHandler := NewUserHandler(
		userUC.NewCreateUserUseCase(userRepo, hasher, mailer, log),
		userUC.NewGetUserUseCase(userRepo, log),
		userUC.NewListUsersUseCase(userRepo, log),
		userUC.NewUpdateUserUseCase(userRepo, log),
		userUC.NewDeleteUserUseCase(userRepo, log),
		log,
	)

	engine := gin.New()
	engine.POST("/api/auth/login", authHandler.Login)

	signedIn := engine.Group("", asUser(1, constants.RolePlatformAdmin))
	{
		signedIn.POST("/api/auth/logout", authHandler.Logout)
		signedIn.GET("/api/user/profile", profileHandler.GetProfile)
		signedIn.PUT("/api/user/profile", profileHandler.UpdateProfile)
		signedIn.PUT("/api/user/profile/password", profileHandler.ChangePassword)

		signedIn.GET("/api-system/clusters", clusterHandler.List)
		signedIn.POST("/api-system/clusters", clusterHandler.Create)
		signedIn.GET("/api-system/clusters/:id", clusterHandler.Get)
		signedIn.DELETE("/api-system/clusters/:id", clusterHandler.Delete)

		signedIn.POST("/api-system/business-units", buHandler.Create)
		signedIn.PUT("/api-system/business-units/:id/users/:userID/default", buHandler.SetDefaultUser)

		signedIn.GET("/api-system/users", userHandler.List)
		signedIn.POST("/api-system/users", userHandler.Create)
		signedIn.DELETE("/api-system/users/:id", userHandler.Delete)
	}

	return &testEnv{engine: engine, userRepo: userRepo}
}

func (e *testEnv) request(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) seedAdmin(t *testing.T) {
	t.Helper()
	hasher := auth.NewBcryptPasswordHasher(4)
	hash, err := hasher.Hash("admin-password")
	require.NoError(t, err)
	require.NoError(t, e.userRepo.Create(context.Background(), &user.User{
		Username:     "admin",
		Email:        "admin@example.com",
		PlatformRole: constants.RolePlatformAdmin,
		IsActive:     true,
		PasswordHash: hash,
	}))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupEnv(t)
	env.seedAdmin(t)

	t.Run("valid credentials issue a token", func(t *testing.T) {
		rec := env.request(t, http.MethodPost, "/api/auth/login", gin.H{
			"email":    "admin",
			"password": "admin-password",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		data := decodeBody(t, rec)["data"].(map[string]interface{})
		assert.NotEmpty(t, data["access_token"])
		assert.Equal(t, "Bearer", data["token_type"])
	})

	t.Run("wrong password stays generic", func(t *testing.T) {
		rec := env.request(t, http.MethodPost, "/api/auth/login", gin.H{
			"email":    "admin",
			"password": "nope",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid credentials", decodeBody(t, rec)["message"])
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := env.request(t, http.MethodPost, "/api/auth/login", gin.H{"email": "admin"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestClusterHandler_CRUD(t *testing.T) {
	env := setupEnv(t)

	rec := env.request(t, http.MethodPost, "/api-system/clusters", gin.H{
		"code": "apac",
		"name": "Asia Pacific",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "APAC", created["code"])
	clusterID := int(created["id"].(float64))

	t.Run("list carries the paginate block", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/api-system/clusters?page=1&perpage=10", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		paginate := body["paginate"].(map[string]interface{})
		assert.Equal(t, float64(1), paginate["total"])
		assert.Equal(t, float64(1), paginate["page"])
	})

	t.Run("unknown filter column is a client error", func(t *testing.T) {
		rec := env.request(t, http.MethodGet,
			"/api-system/clusters?filter=%7B%22password_hash%22%3A%22x%22%7D", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete refused while business units remain", func(t *testing.T) {
		rec := env.request(t, http.MethodPost, "/api-system/business-units", gin.H{
			"cluster_id": clusterID,
			"code":       "BKK01",
			"name":       "Bangkok Riverside",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = env.request(t, http.MethodDelete, "/api-system/clusters/1", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("bad id param", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/api-system/clusters/abc", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestBusinessUnitHandler_SetDefaultUser(t *testing.T) {
	env := setupEnv(t)

	rec := env.request(t, http.MethodPost, "/api-system/clusters", gin.H{
		"code": "APAC", "name": "Asia Pacific",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.request(t, http.MethodPost, "/api-system/business-units", gin.H{
		"cluster_id": 1, "code": "BKK01", "name": "Bangkok Riverside",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.request(t, http.MethodPut, "/api-system/business-units/1/users/99/default", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserHandler(t *testing.T) {
	env := setupEnv(t)
	env.seedAdmin(t)

	t.Run("create and list", func(t *testing.T) {
		rec := env.request(t, http.MethodPost, "/api-system/users", gin.H{
			"username":      "somchai",
			"email":         "somchai@example.com",
			"platform_role": "support_staff",
			"password":      "hunter2hunter2",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = env.request(t, http.MethodGet, "/api-system/users", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		paginate := decodeBody(t, rec)["paginate"].(map[string]interface{})
		assert.Equal(t, float64(2), paginate["total"])
	})

	t.Run("self deletion refused", func(t *testing.T) {
		rec := env.request(t, http.MethodDelete, "/api-system/users/1", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestProfileHandler(t *testing.T) {
	env := setupEnv(t)
	env.seedAdmin(t)

	t.Run("profile includes assignment lists", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/api/user/profile", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		data := decodeBody(t, rec)["data"].(map[string]interface{})
		assert.Equal(t, "admin", data["username"])
		assert.NotNil(t, data["clusters"])
		assert.NotNil(t, data["business_units"])
	})

	t.Run("change password requires the current one", func(t *testing.T) {
		rec := env.request(t, http.MethodPut, "/api/user/profile/password", gin.H{
			"current_password": "wrong",
			"new_password":     "brand-new-password",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("profile update can rotate the password", func(t *testing.T) {
		rec := env.request(t, http.MethodPut, "/api/user/profile", gin.H{
			"alias_name":       "Root",
			"current_password": "admin-password",
			"new_password":     "rotated-password",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		data := decodeBody(t, rec)["data"].(map[string]interface{})
		assert.Equal(t, "Root", data["alias_name"])

		rec = env.request(t, http.MethodPost, "/api/auth/login", gin.H{
			"email":    "admin",
			"password": "rotated-password",
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("logout answers with a message", func(t *testing.T) {
		rec := env.request(t, http.MethodPost, "/api/auth/logout", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "logged out", decodeBody(t, rec)["message"])
	})
}
