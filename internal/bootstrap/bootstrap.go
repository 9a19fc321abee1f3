package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/demirhan/taportal/internal/app/controllers"
	"github.com/demirhan/taportal/internal/app/lifecycle"
	"github.com/demirhan/taportal/internal/app/migrations"
	"github.com/demirhan/taportal/internal/app/repositories"
	"github.com/demirhan/taportal/internal/app/routes"
	"github.com/demirhan/taportal/internal/app/services"
	"github.com/demirhan/taportal/internal/config"
	"github.com/demirhan/taportal/internal/db"
	"github.com/demirhan/taportal/internal/middleware"
	"github.com/demirhan/taportal/internal/pkg/auth"
	"github.com/demirhan/taportal/internal/pkg/helpers"
	"github.com/demirhan/taportal/internal/pkg/logger"
	"github.com/demirhan/taportal/internal/seed"
)

// Dependencies holds the wired application components
type Dependencies struct {
	Repos                 *repositories.Repositories
	Services              *services.Services
	JWTService            *auth.JWTService
	AuthController        *controllers.AuthController
	ApplicationController *controllers.ApplicationController
	PositionController    *controllers.PositionController
	StudentController     *controllers.StudentController
	ScholarshipController *controllers.ScholarshipController
	ReportController      *controllers.ReportController
	NoticeController      *controllers.NoticeController
	DepartmentController  *controllers.DepartmentController
	AuthMiddleware        *middleware.AuthMiddleware
}

// LoadConfigAndSetupLogger loads configuration and configures the global logger
func LoadConfigAndSetupLogger() (*config.Config, error) {
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Configure(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Format == "text",
	})

	logger.Info().
		Str("port", cfg.Server.Port).
		Str("mode", cfg.Server.Mode).
		Msg("Configuration loaded")

	return cfg, nil
}

// SetupDatabase connects to PostgreSQL, runs migrations and seeds default data
func SetupDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info().Msg("Connected to PostgreSQL database")

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); err == nil {
		migrator := migrations.NewMigrator(dbPool)
		if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	} else {
		logger.Warn().Str("dir", migrationsDir).Msg("Migrations directory not found, skipping migrations")
	}

	adminPassword := config.GetEnv("ADMIN_PASSWORD", "Admin123!")
	if err := seed.CreateDefaultData(context.Background(), dbPool, adminPassword); err != nil {
		// Seed failures should not prevent startup; an operator can seed later
		logger.Error().Err(err).Msg("Failed to seed default data")
	}

	return dbPool, nil
}

// BuildDependencies creates repositories, services, controllers and middleware
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool) *Dependencies {
	repos := repositories.NewRepositories(dbPool)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		TokenIssuer:     cfg.JWT.Issuer,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
	})

	periodBounds := lifecycle.PeriodBounds{
		StartMonth:   time.Month(cfg.Academic.StartMonth),
		StartDay:     cfg.Academic.StartDay,
		EndMonth:     time.Month(cfg.Academic.EndMonth),
		EndDay:       cfg.Academic.EndDay,
		LateEndMonth: time.Month(cfg.Academic.LateEndMonth),
		LateEndDay:   cfg.Academic.LateEndDay,
	}

	svcs := services.NewServices(repos, jwtService, periodBounds)

	return &Dependencies{
		Repos:                 repos,
		Services:              svcs,
		JWTService:            jwtService,
		AuthController:        controllers.NewAuthController(svcs.AuthService),
		ApplicationController: controllers.NewApplicationController(svcs.ApplicationService),
		PositionController:    controllers.NewPositionController(svcs.PositionService),
		StudentController:     controllers.NewStudentController(svcs.StudentService),
		ScholarshipController: controllers.NewScholarshipController(svcs.ScholarshipService),
		ReportController:      controllers.NewReportController(svcs.ReportService, svcs.StudentService),
		NoticeController:      controllers.NewNoticeController(svcs.NoticeService),
		DepartmentController:  controllers.NewDepartmentController(svcs.DepartmentService),
		AuthMiddleware:        middleware.NewAuthMiddleware(jwtService),
	}
}

// SetupRouter creates the Gin engine and registers all routes
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	routes.SetupRouter(
		router,
		deps.AuthController,
		deps.ApplicationController,
		deps.PositionController,
		deps.StudentController,
		deps.ScholarshipController,
		deps.ReportController,
		deps.NoticeController,
		deps.DepartmentController,
		deps.AuthMiddleware,
	)

	return router
}
