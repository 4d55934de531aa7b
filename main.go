package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/config"
	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/database"
	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/handlers"
	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/logging"
	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/middleware"
	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/repositories"
	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("bind_addr", cfg.BindAddr),
		zap.String("port", cfg.Port),
		zap.String("database", cfg.Database.Database),
		zap.String("redis_host", cfg.Redis.Host))

	ctx := context.Background()

	// Migrations run over database/sql; the pool below is pgx-native.
	sqlDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("Failed to close migration connection", zap.Error(err))
	}

	db, err := database.NewConnection(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, summary caching disabled", zap.Error(err))
	}

	defaults, err := services.LoadMetadataDefaults(cfg.MetadataDefaultsPath)
	if err != nil {
		logger.Fatal("Failed to load metadata defaults", zap.Error(err))
	}

	var defaultClientID uuid.UUID
	if cfg.DefaultClientID != "" {
		defaultClientID, err = uuid.Parse(cfg.DefaultClientID)
		if err != nil {
			logger.Fatal("Invalid default client id", zap.Error(err))
		}
	}

	// Repositories
	useCaseRepo := repositories.NewUseCaseRepository()
	engagementRepo := repositories.NewEngagementRepository()
	metadataRepo := repositories.NewMetadataRepository()
	auditRepo := repositories.NewGovernanceAuditRepository()

	// Services
	auditService := services.NewGovernanceAuditService(auditRepo, logger)
	orchestrator := services.NewOrchestrator(
		services.NewScoringEngine(),
		services.NewPhaseDeriver(),
		services.NewValueEstimator(),
		services.NewCapabilityDeriver(),
		services.NewGateEngine(auditService),
		services.NewConfigResolver(),
		auditService,
		useCaseRepo,
		engagementRepo,
		metadataRepo,
		defaults,
		logger,
	)
	summaryService := services.NewSummaryService(orchestrator, redisClient, logger)
	metadataService := services.NewMetadataService(metadataRepo, orchestrator, defaults, logger)
	engagementService := services.NewEngagementService(engagementRepo)

	mux := http.NewServeMux()
	tenant := handlers.TenantMiddleware(database.WithClientContext(db, defaultClientID, logger))

	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewUseCaseHandler(orchestrator, logger).RegisterRoutes(mux, tenant)
	handlers.NewGovernanceHandler(orchestrator, auditService, logger).RegisterRoutes(mux, tenant)
	handlers.NewDeriveHandler(orchestrator, summaryService, logger).RegisterRoutes(mux, tenant)
	handlers.NewMetadataHandler(metadataService, logger).RegisterRoutes(mux, tenant)
	handlers.NewEngagementHandler(engagementService, logger).RegisterRoutes(mux, tenant)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting usecase-portfolio-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
