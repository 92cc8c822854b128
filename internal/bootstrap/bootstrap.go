package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appAuth "github.com/yigit/atcampus/internal/app/auth"
	appControllers "github.com/yigit/atcampus/internal/app/controllers"
	appMigrations "github.com/yigit/atcampus/internal/app/migrations"
	appRepos "github.com/yigit/atcampus/internal/app/repositories"
	appRoutes "github.com/yigit/atcampus/internal/app/routes"
	appServices "github.com/yigit/atcampus/internal/app/services"
	"github.com/yigit/atcampus/internal/config"
	"github.com/yigit/atcampus/internal/db"
	appMiddleware "github.com/yigit/atcampus/internal/middleware"
	pkgAuth "github.com/yigit/atcampus/internal/pkg/auth"
	"github.com/yigit/atcampus/internal/pkg/email"
	"github.com/yigit/atcampus/internal/pkg/filestorage"
	"github.com/yigit/atcampus/internal/pkg/logger"
	"github.com/yigit/atcampus/internal/pkg/realtime"
	"github.com/yigit/atcampus/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService        *appServices.AuthService
	ResearchService    appServices.ResearchService // Interface type
	SavedJobService    appServices.SavedJobService // Interface type
	AuthController     *appControllers.AuthController
	ResearchController *appControllers.ResearchController
	SavedJobController *appControllers.SavedJobController
	RealtimeController *appControllers.RealtimeController
	AuthMiddleware     *appMiddleware.AuthMiddleware
	Repos              *appRepos.Repositories
	JWTService         *pkgAuth.JWTService
	AuthzService       *appAuth.AuthorizationService
	Hub                *realtime.Hub
	FileStorage        *filestorage.LocalStorage
	Logger             zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	if p := os.Getenv("ATCAMPUS_CONFIG"); p != "" {
		configPath = p
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) != "json"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	ctx := context.Background()

	lgr.Info().Msg("Running database migrations...")
	migrationsDir := cfg.Database.MigrationsPath
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		dbPool.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(dbPool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		dbPool.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	seedOpts := seed.Options{
		AdminEmail:    cfg.Seed.AdminEmail,
		AdminPassword: cfg.Seed.AdminPassword,
		DemoJobs:      cfg.Seed.DemoJobs,
	}
	if err := seed.CreateDefaultData(ctx, appRepos.NewUserRepository(dbPool), appRepos.NewSavedJobRepository(dbPool), seedOpts, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// The base URL must match the static file serving path
	var err error
	fileStorageBaseURL := strings.TrimRight(cfg.Server.BaseURL, "/") + "/uploads"
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, fileStorageBaseURL, logger.Component("filestorage"))
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Hub = realtime.NewHub(logger.Component("realtime"), realtime.Options{
		AllowedOrigins: cfg.AllowedOrigins(),
		SendBufferSize: cfg.Realtime.SendBufferSize,
	})

	deps.AuthzService = appAuth.NewAuthorizationService(
		deps.Repos.UserRepository,
		deps.Repos.ResearchRepository,
	)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  cfg.AccessTokenTTL(),
		RefreshTokenExp: cfg.RefreshTokenTTL(),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	notifier := email.NewSMTPNotifier(email.SMTPConfig{
		Host:      cfg.Email.Host,
		Port:      cfg.Email.Port,
		Username:  cfg.Email.Username,
		Password:  cfg.Email.Password,
		FromName:  cfg.Email.FromName,
		FromEmail: cfg.Email.FromEmail,
		UseTLS:    cfg.Email.UseTLS,
		LoginURL:  strings.TrimRight(cfg.Server.BaseURL, "/") + "/login",
	}, logger.Component("email"))

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		deps.AuthzService,
		notifier,
		logger.Component("auth"),
	)
	deps.ResearchService = appServices.NewResearchService(
		deps.Repos.ResearchRepository,
		deps.Repos.UserRepository,
		deps.FileStorage,
		deps.AuthzService,
		deps.Hub,
		logger.Component("research"),
	)
	deps.SavedJobService = appServices.NewSavedJobService(
		deps.Repos.SavedJobRepository,
		deps.Repos.UserRepository,
		logger.Component("jobs"),
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.ResearchController = appControllers.NewResearchController(deps.ResearchService, lgr)
	deps.SavedJobController = appControllers.NewSavedJobController(deps.SavedJobService, lgr)
	deps.RealtimeController = appControllers.NewRealtimeController(deps.Hub, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestID(), appMiddleware.RequestLogger(logger.Component("http")))

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ResearchController,
		deps.SavedJobController,
		deps.RealtimeController,
		deps.AuthMiddleware,
		cfg.MaxUploadSize(),
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
