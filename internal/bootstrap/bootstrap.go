package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/erp-migrator/internal/app/controllers"
	"github.com/yigit/erp-migrator/internal/app/etl"
	"github.com/yigit/erp-migrator/internal/app/legacy"
	appMigrations "github.com/yigit/erp-migrator/internal/app/migrations"
	appRepos "github.com/yigit/erp-migrator/internal/app/repositories"
	appRoutes "github.com/yigit/erp-migrator/internal/app/routes"
	appServices "github.com/yigit/erp-migrator/internal/app/services"
	"github.com/yigit/erp-migrator/internal/config"
	"github.com/yigit/erp-migrator/internal/db"
	appMiddleware "github.com/yigit/erp-migrator/internal/middleware"
	pkgAuth "github.com/yigit/erp-migrator/internal/pkg/auth"
	"github.com/yigit/erp-migrator/internal/pkg/filestorage"
	"github.com/yigit/erp-migrator/internal/pkg/logger"
	"github.com/yigit/erp-migrator/internal/seed"
)

// DefaultConfigPath is used when no config path is given
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Postgres            *db.PostgresDB
	Legacy              *db.MySQLDB
	Redis               *redis.Client
	Repos               *appRepos.Repositories
	Registry            *prometheus.Registry
	Metrics             *etl.Metrics
	Checkpoints         etl.CheckpointStore
	Driver              *etl.Driver
	MigrationService    *appServices.MigrationService
	MigrationController *appControllers.MigrationController
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to the target database, applies the schema and
// creates the default lookup rows.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Str("path", cfg.Database.MigrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, cfg.Database.MigrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(ctx, appRepos.NewLookupRepository(database.Pool), lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// SetupLegacyDatabase opens the legacy MySQL database
func SetupLegacyDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.MySQLDB, error) {
	lgr.Info().Str("host", cfg.Legacy.Host).Str("database", cfg.Legacy.DBName).Msg("Connecting to legacy database...")
	legacyDB, err := db.NewMySQLDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to legacy database")
		return nil, err
	}
	return legacyDB, nil
}

// SetupCheckpoints returns the checkpoint store selected by configuration.
// The redis client is non-nil only for the redis backend.
func SetupCheckpoints(ctx context.Context, cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) (etl.CheckpointStore, *redis.Client, error) {
	switch cfg.Migration.Checkpoint {
	case config.CheckpointRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Using redis checkpoint store")
		return etl.NewRedisCheckpointStore(client, cfg.Redis.KeyPrefix, etl.DefaultCheckpointName), client, nil
	case config.CheckpointNone:
		lgr.Info().Msg("Checkpoints disabled")
		return etl.NopCheckpointStore{}, nil, nil
	default:
		lgr.Info().Msg("Using postgres checkpoint store")
		return etl.NewPostgresCheckpointStore(repos.Checkpoints, etl.DefaultCheckpointName), nil, nil
	}
}

// Setup connects every backing store and builds the dependency graph.
// Resources opened before a failure are released.
func Setup(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	pg, err := SetupDatabase(ctx, cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	legacyDB, err := SetupLegacyDatabase(cfg, lgr)
	if err != nil {
		pg.Close()
		return nil, fmt.Errorf("failed to setup legacy database: %w", err)
	}

	deps, err := BuildDependencies(ctx, cfg, pg, legacyDB, lgr)
	if err != nil {
		pg.Close()
		_ = legacyDB.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}
	return deps, nil
}

// BuildDependencies initializes repositories, the migration pipeline,
// services and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, pg *db.PostgresDB, legacyDB *db.MySQLDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Postgres: pg,
		Legacy:   legacyDB,
		Logger:   lgr,
	}

	deps.Repos = appRepos.NewRepositories(pg.Pool)

	deps.Registry = prometheus.NewRegistry()
	deps.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	deps.Metrics = etl.NewMetrics(deps.Registry)

	reader, err := legacy.NewReader(legacyDB.DB, cfg.Legacy.Table)
	if err != nil {
		return nil, fmt.Errorf("failed to create legacy reader: %w", err)
	}

	deps.Checkpoints, deps.Redis, err = SetupCheckpoints(ctx, cfg, deps.Repos, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to setup checkpoint store")
		return nil, err
	}

	upserters := etl.NewUpserters(
		legacy.NewLookupReader(legacyDB.DB),
		pkgAuth.NewBcryptHasher(cfg.Migration.BcryptCost),
		cfg.Migration.EmailDomain,
	)
	orchestrator := etl.NewOrchestrator(
		etl.NewPostgresTarget(pg.Pool),
		upserters,
		deps.Metrics,
		logger.Component("orchestrator"),
	)
	deps.Driver = etl.NewDriver(reader, orchestrator, deps.Checkpoints, deps.Metrics, logger.Component("migration"))

	deps.MigrationService = appServices.NewMigrationService(deps.Driver, deps.Checkpoints, etl.Options{
		BatchSize:   cfg.Migration.BatchSize,
		Concurrency: cfg.Migration.Concurrency,
		RowTimeout:  cfg.Migration.RowTimeout,
	}, lgr)
	if cfg.Migration.StorageDir != "" {
		storage, err := filestorage.NewLocalStorage(cfg.Migration.StorageDir)
		if err != nil {
			return nil, fmt.Errorf("failed to setup report storage: %w", err)
		}
		deps.MigrationService.WithArchive(filestorage.NewReportArchive(storage))
	}
	deps.MigrationController = appControllers.NewMigrationController(deps.MigrationService)

	return deps, nil
}

// Close releases every connection held by deps
func (d *Dependencies) Close() error {
	var errs error
	if d.Redis != nil {
		errs = errors.Join(errs, d.Redis.Close())
	}
	if d.Legacy != nil {
		errs = errors.Join(errs, d.Legacy.Close())
	}
	if d.Postgres != nil {
		d.Postgres.Close()
	}
	return errs
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(logger.Component("http")))

	appRoutes.SetupRouter(router, deps.MigrationController, deps.Registry)

	return router
}
