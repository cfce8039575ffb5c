// Package http assembles the console's REST surface: repositories, use
// cases, handlers and the middleware chain.
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	authUC "github.com/carmen-hq/carmen/internal/application/auth/usecases"
	buUC "github.com/carmen-hq/carmen/internal/application/businessunit/usecases"
	clusterUC "github.com/carmen-hq/carmen/internal/application/cluster/usecases"
	userUC "github.com/carmen-hq/carmen/internal/application/user/usecases"
	"github.com/carmen-hq/carmen/internal/infrastructure/auth"
	"github.com/carmen-hq/carmen/internal/infrastructure/config"
	"github.com/carmen-hq/carmen/internal/infrastructure/email"
	"github.com/carmen-hq/carmen/internal/infrastructure/permission"
	"github.com/carmen-hq/carmen/internal/infrastructure/ratelimit"
	"github.com/carmen-hq/carmen/internal/infrastructure/repository"
	"github.com/carmen-hq/carmen/internal/interfaces/http/handlers"
	"github.com/carmen-hq/carmen/internal/interfaces/http/middleware"
	"github.com/carmen-hq/carmen/internal/shared/logger"

	_ "github.com/carmen-hq/carmen/docs"
)

// Policy resources and actions, matching the seeded policy table.
const (
	ResourceCluster      = "cluster"
	ResourceBusinessUnit = "business_unit"
	ResourceUser         = "user"

	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

type Router struct {
	engine               *gin.Engine
	cfg                  *config.Config
	authHandler          *handlers.AuthHandler
	profileHandler       *handlers.ProfileHandler
	clusterHandler       *handlers.ClusterHandler
	businessUnitHandler  *handlers.BusinessUnitHandler
	userHandler          *handlers.UserHandler
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	logger               logger.Interface
}

// NewRouter builds the full dependency graph on top of the shared database
// handle. redisClient may be nil, in which case login rate limiting is off.
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Router, error) {
	engine := gin.New()

	clusterRepo := repository.NewClusterRepository(db, log)
	buRepo := repository.NewBusinessUnitRepository(db, log)
	userRepo := repository.NewUserRepository(db, log)

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)

	enforcer, err := permission.NewEnforcer(db, cfg.Auth.RBACModelPath, log)
	if err != nil {
		return nil, err
	}
	if err := permission.InitConsolePolicies(enforcer, log); err != nil {
		return nil, err
	}

	var emailService email.Service
	if cfg.Email.Enabled {
		emailService = email.NewSMTPEmailService(email.SMTPConfig{
			Host:        cfg.Email.SMTPHost,
			Port:        cfg.Email.SMTPPort,
			Username:    cfg.Email.SMTPUser,
			Password:    cfg.Email.SMTPPassword,
			FromAddress: cfg.Email.FromAddress,
			FromName:    cfg.Email.FromName,
			ConsoleURL:  cfg.Email.ConsoleURL,
		})
	} else {
		emailService = email.NewNoopEmailService()
	}

	var limiter ratelimit.Limiter
	if redisClient != nil {
		limiter = ratelimit.NewRedisLimiter(redisClient, ratelimit.Windows{
			PerMinute: cfg.RateLimit.LoginPerMinute,
			PerHour:   cfg.RateLimit.LoginPerHour,
		})
	}

	loginUC := authUC.NewLoginUseCase(userRepo, hasher, jwtService, limiter, cfg.Server.IsDebug(), log)

	authHandler := handlers.NewAuthHandler(loginUC, log)

	profileHandler := handlers.NewProfileHandler(
		userUC.NewGetProfileUseCase(userRepo, log),
		userUC.NewUpdateProfileUseCase(userRepo, log),
		userUC.NewChangePasswordUseCase(userRepo, hasher, emailService, log),
		log,
	)

	clusterHandler := handlers.NewClusterHandler(
		clusterUC.NewCreateClusterUseCase(clusterRepo, log),
		clusterUC.NewGetClusterUseCase(clusterRepo, log),
		clusterUC.NewListClustersUseCase(clusterRepo, log),
		clusterUC.NewUpdateClusterUseCase(clusterRepo, log),
		clusterUC.NewDeleteClusterUseCase(clusterRepo, log),
		clusterUC.NewClusterUsersUseCase(clusterRepo, userRepo, log),
		log,
	)

	businessUnitHandler := handlers.NewBusinessUnitHandler(
		buUC.NewCreateBusinessUnitUseCase(buRepo, clusterRepo, log),
		buUC.NewGetBusinessUnitUseCase(buRepo, log),
		buUC.NewListBusinessUnitsUseCase(buRepo, log),
		buUC.NewUpdateBusinessUnitUseCase(buRepo, log),
		buUC.NewDeleteBusinessUnitUseCase(buRepo, log),
		buUC.NewBusinessUnitUsersUseCase(buRepo, userRepo, log),
		log,
	)

	userHandler := handlers.NewUserHandler(
		userUC.NewCreateUserUseCase(userRepo, hasher, emailService, log),
		userUC.NewGetUserUseCase(userRepo, log),
		userUC.NewListUsersUseCase(userRepo, log),
		userUC.NewUpdateUserUseCase(userRepo, log),
		userUC.NewDeleteUserUseCase(userRepo, log),
		log,
	)

	return &Router{
		engine:               engine,
		cfg:                  cfg,
		authHandler:          authHandler,
		profileHandler:       profileHandler,
		clusterHandler:       clusterHandler,
		businessUnitHandler:  businessUnitHandler,
		userHandler:          userHandler,
		authMiddleware:       middleware.NewAuthMiddleware(jwtService, log),
		permissionMiddleware: middleware.NewPermissionMiddleware(enforcer, log),
		logger:               log,
	}, nil
}

// SetupRoutes configures the middleware chain and every route group.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api", middleware.RequireAppID(r.cfg.App.ID))
	{
		api.POST("/auth/login", r.authHandler.Login)
		api.POST("/auth/logout", r.authMiddleware.RequireAuth(), r.authHandler.Logout)

		profile := api.Group("/user/profile", r.authMiddleware.RequireAuth())
		{
			profile.GET("", r.profileHandler.GetProfile)
			profile.PUT("", r.profileHandler.UpdateProfile)
			profile.PUT("/password", r.profileHandler.ChangePassword)
		}
	}

	system := r.engine.Group("/api-system",
		middleware.RequireAppID(r.cfg.App.ID),
		r.authMiddleware.RequireAuth(),
	)
	{
		clusters := system.Group("/clusters")
		{
			clusters.GET("", r.requirePerm(ResourceCluster, ActionRead), r.clusterHandler.List)
			clusters.GET("/:id", r.requirePerm(ResourceCluster, ActionRead), r.clusterHandler.Get)
			clusters.POST("", r.requirePerm(ResourceCluster, ActionCreate), r.clusterHandler.Create)
			clusters.PUT("/:id", r.requirePerm(ResourceCluster, ActionUpdate), r.clusterHandler.Update)
			clusters.DELETE("/:id", r.requirePerm(ResourceCluster, ActionDelete), r.clusterHandler.Delete)

			clusters.GET("/:id/users", r.requirePerm(ResourceCluster, ActionRead), r.clusterHandler.ListUsers)
			clusters.POST("/:id/users", r.requirePerm(ResourceCluster, ActionUpdate), r.clusterHandler.AssignUser)
			clusters.DELETE("/:id/users/:userID", r.requirePerm(ResourceCluster, ActionUpdate), r.clusterHandler.RemoveUser)
		}

		businessUnits := system.Group("/business-units")
		{
			businessUnits.GET("", r.requirePerm(ResourceBusinessUnit, ActionRead), r.businessUnitHandler.List)
			businessUnits.GET("/:id", r.requirePerm(ResourceBusinessUnit, ActionRead), r.businessUnitHandler.Get)
			businessUnits.POST("", r.requirePerm(ResourceBusinessUnit, ActionCreate), r.businessUnitHandler.Create)
			businessUnits.PUT("/:id", r.requirePerm(ResourceBusinessUnit, ActionUpdate), r.businessUnitHandler.Update)
			businessUnits.DELETE("/:id", r.requirePerm(ResourceBusinessUnit, ActionDelete), r.businessUnitHandler.Delete)

			businessUnits.GET("/:id/users", r.requirePerm(ResourceBusinessUnit, ActionRead), r.businessUnitHandler.ListUsers)
			businessUnits.POST("/:id/users", r.requirePerm(ResourceBusinessUnit, ActionUpdate), r.businessUnitHandler.AssignUser)
			businessUnits.DELETE("/:id/users/:userID", r.requirePerm(ResourceBusinessUnit, ActionUpdate), r.businessUnitHandler.RemoveUser)
			businessUnits.PUT("/:id/users/:userID/default", r.requirePerm(ResourceBusinessUnit, ActionUpdate), r.businessUnitHandler.SetDefaultUser)
		}

		users := system.Group("/users")
		{
			users.GET("", r.requirePerm(ResourceUser, ActionRead), r.userHandler.List)
			users.GET("/:id", r.requirePerm(ResourceUser, ActionRead), r.userHandler.Get)
			users.POST("", r.requirePerm(ResourceUser, ActionCreate), r.userHandler.Create)
			users.PUT("/:id", r.requirePerm(ResourceUser, ActionUpdate), r.userHandler.Update)
			users.DELETE("/:id", r.requirePerm(ResourceUser, ActionDelete), r.userHandler.Delete)
		}
	}
}

func (r *Router) requirePerm(resource, action string) gin.HandlerFunc {
	return r.permissionMiddleware.RequirePermission(resource, action)
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
