// Package routes handles the setup and configuration of API routes
package routes

import (
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "shopadmin/docs" // Import swagger docs
	"shopadmin/internal/api/handlers"
	"shopadmin/internal/api/middleware"
	"shopadmin/internal/audit"
	"shopadmin/internal/auth"
	"shopadmin/internal/authz"
	"shopadmin/internal/config"
	"shopadmin/internal/email"
	"shopadmin/internal/jobs"
	"shopadmin/internal/otp"
	"shopadmin/internal/ratelimit"
	"shopadmin/internal/repository/postgres"
)

// Deps carries the externally managed dependencies the router needs
type Deps struct {
	DB           *sql.DB
	AttemptStore ratelimit.AttemptStore
	EmailSender  email.Sender
	Recorder     *audit.Recorder
	JobManager   *jobs.Manager
}

// SetupRoutes configures all API routes and their handlers
func SetupRoutes(cfg *config.Config, deps Deps) *gin.Engine {
	// Create router
	r := gin.Default()

	// Initialize health handler for basic routes
	healthHandler := handlers.NewHealthHandler(deps.DB)

	// Routes without rate limiting
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Apply rate limiting to all other routes
	r.Use(middleware.NewRateLimiter(cfg).Middleware())

	// Initialize repositories
	userRepo := postgres.NewUserRepository(deps.DB)
	roleRepo := postgres.NewRoleRepository(deps.DB)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(deps.DB)
	historyRepo := postgres.NewLoginHistoryRepository(deps.DB)
	otpCodeRepo := postgres.NewOTPCodeRepository(deps.DB)
	snapshotRepo := postgres.NewSnapshotRepository(deps.DB)

	// Initialize throttles on the shared attempt store
	loginLimiter := ratelimit.NewLimiter(deps.AttemptStore, cfg.RateLimit.LoginMax, time.Duration(cfg.RateLimit.LoginWindow)*time.Second)
	otpLimiter := ratelimit.NewLimiter(deps.AttemptStore, cfg.RateLimit.OTPMax, time.Duration(cfg.RateLimit.OTPWindow)*time.Second)

	// Initialize services
	authService := auth.NewService(cfg, userRepo, refreshTokenRepo)
	loginFlow := auth.NewLoginFlow(authService, userRepo, loginLimiter, deps.Recorder, cfg.Auth.HomePath)
	otpService := otp.NewService(otpCodeRepo, otpLimiter, deps.EmailSender, cfg.Auth.OTPExpiry)
	gate := authz.NewGate(roleRepo)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authService, userRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(loginFlow, authService, otpService, userRepo)
	userHandler := handlers.NewUserHandler(userRepo, authService)
	roleHandler := handlers.NewRoleHandler(roleRepo)
	historyHandler := handlers.NewLoginHistoryHandler(historyRepo)
	jobHandler := handlers.NewJobHandler(deps.JobManager)
	snapshotHandler := handlers.NewSnapshotHandler(snapshotRepo)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Health check (no authentication required)
		v1.GET("/health", healthHandler.Check)

		// Auth routes
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/otp", authHandler.RequestOTP)
			authGroup.POST("/otp/verify", authHandler.VerifyOTP)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authHandler.Logout)
		}

		// User routes
		users := v1.Group("/users")
		users.Use(authMiddleware.AuthRequired())
		{
			users.GET("/me", userHandler.Me)
			users.GET("", middleware.RequirePermission(gate, "users.view"), userHandler.List)
			users.GET("/:id", middleware.RequirePermission(gate, "users.view"), userHandler.Get)
			users.POST("", middleware.RequirePermission(gate, "users.manage"), userHandler.Create)
			users.PUT("/:id", middleware.RequirePermission(gate, "users.manage"), userHandler.Update)
			users.PUT("/:id/roles", middleware.RequirePermission(gate, "users.manage"), userHandler.AssignRoles)
		}

		// Role routes
		roles := v1.Group("/roles")
		roles.Use(authMiddleware.AuthRequired())
		{
			roles.GET("", middleware.RequirePermission(gate, "roles.view"), roleHandler.List)
			roles.GET("/:id", middleware.RequirePermission(gate, "roles.view"), roleHandler.Get)
			roles.POST("", middleware.RequirePermission(gate, "roles.manage"), roleHandler.Create)
			roles.PUT("/:id", middleware.RequirePermission(gate, "roles.manage"), roleHandler.Update)
			roles.DELETE("/:id", middleware.RequirePermission(gate, "roles.manage"), roleHandler.Delete)
			roles.PUT("/:id/permissions", middleware.RequirePermission(gate, "roles.manage"), roleHandler.SetPermissions)
		}

		// Permission catalogue
		v1.GET("/permissions", authMiddleware.AuthRequired(), middleware.RequirePermission(gate, "roles.view"), roleHandler.ListPermissions)

		// Login history routes
		history := v1.Group("/login-history")
		history.Use(authMiddleware.AuthRequired())
		{
			history.GET("/me", historyHandler.Me)
			history.GET("", middleware.RequirePermission(gate, "login-history.view"), historyHandler.List)
		}

		// Inventory snapshot routes
		v1.GET("/inventory-snapshots", authMiddleware.AuthRequired(), middleware.RequirePermission(gate, "jobs.run"), snapshotHandler.List)

		// Job routes
		jobGroup := v1.Group("/jobs")
		jobGroup.Use(authMiddleware.AuthRequired())
		{
			jobGroup.GET("", middleware.RequirePermission(gate, "jobs.run"), jobHandler.List)
			jobGroup.POST("/:name/run", middleware.RequirePermission(gate, "jobs.run"), jobHandler.Run)
		}
	}

	return r
}
