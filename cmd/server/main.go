// Command server runs the store launch HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	identityapp "github.com/storelaunch/backend/internal/application/identity"
	importapp "github.com/storelaunch/backend/internal/application/import"
	inventoryapp "github.com/storelaunch/backend/internal/application/inventory"
	launchapp "github.com/storelaunch/backend/internal/application/launch"
	pricingapp "github.com/storelaunch/backend/internal/application/pricing"
	recipeapp "github.com/storelaunch/backend/internal/application/recipe"
	translationapp "github.com/storelaunch/backend/internal/application/translation"
	"github.com/storelaunch/backend/internal/domain/translation"
	"github.com/storelaunch/backend/internal/infrastructure/auth"
	"github.com/storelaunch/backend/internal/infrastructure/cache"
	"github.com/storelaunch/backend/internal/infrastructure/config"
	"github.com/storelaunch/backend/internal/infrastructure/event"
	"github.com/storelaunch/backend/internal/infrastructure/logger"
	"github.com/storelaunch/backend/internal/infrastructure/migration"
	"github.com/storelaunch/backend/internal/infrastructure/persistence"
	"github.com/storelaunch/backend/internal/infrastructure/scheduler"
	"github.com/storelaunch/backend/internal/infrastructure/storage"
	"github.com/storelaunch/backend/internal/infrastructure/telemetry"
	infratranslation "github.com/storelaunch/backend/internal/infrastructure/translation"
	"github.com/storelaunch/backend/internal/interfaces/http/handler"
	"github.com/storelaunch/backend/internal/interfaces/http/middleware"
	"github.com/storelaunch/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: logger.DefaultTimeFormat,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx := context.Background()

	// OpenTelemetry: traces, metrics and the zap log bridge
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = loggerProvider.Bridge(log, zapcore.InfoLevel)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = loggerProvider.Shutdown(shutdownCtx)
		_ = meterProvider.Shutdown(shutdownCtx)
		_ = tracerProvider.Shutdown(shutdownCtx)
	}()

	log.Info("Starting store launch backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	// Decimal amounts are plain JSON numbers on the wire
	decimal.MarshalJSONWithoutQuotes = true

	// Initialize database connection with a zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithLogger(gormLog),
		persistence.WithTracing(cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled),
	)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Database.AutoMigrate {
		if err := migrateUp(db, cfg, log); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	// Business counters
	launchMetrics, err := telemetry.NewLaunchMetrics(meterProvider.Meter("storelaunch"))
	if err != nil {
		log.Fatal("Failed to create launch metrics", zap.Error(err))
	}

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	resetTokenRepo := persistence.NewGormResetTokenRepository(db.DB)
	auditRepo := persistence.NewGormAuditLogRepository(db.DB)
	countryRepo := persistence.NewGormCountryRepository(db.DB)
	ingredientRepo := persistence.NewGormIngredientRepository(db.DB)
	priceTemplateRepo := persistence.NewGormIngredientTemplateRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	manualRepo := persistence.NewGormManualRepository(db.DB)
	manualGroupRepo := persistence.NewGormManualGroupRepository(db.DB)
	costVersionRepo := persistence.NewGormCostVersionRepository(db.DB)
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	storeFileRepo := persistence.NewGormStoreFileRepository(db.DB)
	taskRepo := persistence.NewGormTaskRepository(db.DB)
	launchTemplateRepo := persistence.NewGormLaunchTemplateRepository(db.DB)
	inventoryGroupRepo := persistence.NewGormInventoryGroupRepository(db.DB)
	inventoryPeriodRepo := persistence.NewGormInventoryPeriodRepository(db.DB)

	// Event bus: audit rows are written from domain events
	eventBus := event.NewInMemoryEventBus(log)
	auditHandler := event.NewAuditHandler(auditRepo, log)
	eventBus.Subscribe(auditHandler, auditHandler.EventTypes()...)

	// Token blacklist: Redis when configured, in-memory otherwise
	blacklist, err := auth.NewTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to initialize token blacklist", zap.Error(err))
	}

	// Object storage for store files
	objects, err := storage.New(ctx, &cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, resetTokenRepo, jwtService, blacklist, eventBus,
		identityapp.AuthServiceConfig{
			BcryptCost:     cfg.Auth.BcryptCost,
			ResetTokenTTL:  cfg.Auth.ResetTokenTTL,
			MinPasswordLen: cfg.Auth.MinPasswordLen,
			ExposeDevToken: cfg.Auth.ExposeDevToken,
		}, log)
	authService.SetMetrics(launchMetrics)

	countryService := pricingapp.NewCountryService(countryRepo, log)
	ingredientService := pricingapp.NewIngredientService(ingredientRepo, priceTemplateRepo, log)
	priceTemplateService := pricingapp.NewTemplateService(priceTemplateRepo, ingredientRepo, countryRepo, log)
	vendorService := pricingapp.NewVendorService(vendorRepo, log)
	ingredientImportService := importapp.NewIngredientImportService(ingredientRepo, log)

	manualService := recipeapp.NewManualService(manualRepo, manualGroupRepo, costVersionRepo, priceTemplateRepo, countryRepo, log)
	manualService.SetMetrics(launchMetrics)
	manualGroupService := recipeapp.NewGroupService(manualGroupRepo, manualRepo, costVersionRepo, priceTemplateRepo, log)
	manualGroupService.SetMetrics(launchMetrics)

	storeService := launchapp.NewStoreService(storeRepo, taskRepo, countryRepo, auditRepo, eventBus, log)
	storeService.SetMetrics(launchMetrics)
	taskService := launchapp.NewTaskService(taskRepo, storeRepo, launchTemplateRepo, eventBus, log)
	taskService.SetMetrics(launchMetrics)
	launchTemplateService := launchapp.NewTemplateService(launchTemplateRepo, log)
	fileService := launchapp.NewFileService(storeFileRepo, storeRepo, objects, log)

	inventoryService := inventoryapp.NewInventoryService(inventoryGroupRepo, inventoryPeriodRepo, manualRepo, log)

	var refiner translation.Refiner
	if cfg.Translation.Provider == "mymemory" {
		refineCache, err := cache.NewTextCache(cfg.Redis, cache.DefaultKeyPrefix)
		if err != nil {
			log.Fatal("Failed to initialize translation cache", zap.Error(err))
		}
		defer func() { _ = refineCache.Close() }()
		refiner = infratranslation.NewCachedRefiner(
			infratranslation.NewMyMemoryRefiner(cfg.Translation), refineCache, cfg.Translation.CacheTTL, log)
		log.Info("Translation refiner enabled",
			zap.String("provider", cfg.Translation.Provider),
			zap.Duration("cache_ttl", cfg.Translation.CacheTTL),
		)
	}
	translationService := translationapp.NewService(refiner, launchMetrics, log)

	// Default countries are always present
	if _, err := countryService.Seed(ctx); err != nil {
		log.Warn("Failed to seed countries", zap.Error(err))
	}

	// Housekeeping jobs
	if cfg.Scheduler.Enabled {
		jobs := scheduler.New(scheduler.Config{Enabled: true, JobTimeout: cfg.Scheduler.JobTimeout}, log)
		var sweeper scheduler.BlacklistSweeper
		if mem, ok := blacklist.(*auth.InMemoryTokenBlacklist); ok {
			sweeper = mem
		}
		for _, job := range scheduler.MaintenanceJobs(cfg.Scheduler.TokenCleanupSpec, authService, sweeper, cfg.JWT.RefreshTokenExpiration) {
			if err := jobs.Register(job); err != nil {
				log.Fatal("Failed to register job", zap.String("job", job.Name), zap.Error(err))
			}
		}
		if err := jobs.Start(ctx); err != nil {
			log.Fatal("Failed to start scheduler", zap.Error(err))
		}
		defer func() {
			if err := jobs.Stop(context.Background()); err != nil {
				log.Error("Error stopping scheduler", zap.Error(err))
			}
		}()
		log.Info("Scheduler started", zap.String("spec", cfg.Scheduler.TokenCleanupSpec))
	}

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Health:             handler.NewHealthHandler(db, cfg),
		Auth:               handler.NewAuthHandler(authService),
		Translation:        handler.NewTranslationHandler(translationService),
		TemplateDownload:   handler.NewTemplateDownloadHandler(),
		Ingredient:         handler.NewIngredientHandler(countryService, ingredientService, ingredientImportService),
		IngredientTemplate: handler.NewIngredientTemplateHandler(priceTemplateService),
		Vendor:             handler.NewVendorHandler(vendorService),
		Manual:             handler.NewManualHandler(manualService),
		ManualGroup:        handler.NewManualGroupHandler(manualGroupService),
		Store:              handler.NewStoreHandler(storeService),
		Task:               handler.NewTaskHandler(taskService),
		LaunchTemplate:     handler.NewLaunchTemplateHandler(launchTemplateService),
		File:               handler.NewFileHandler(fileService),
		Inventory:          handler.NewInventoryHandler(inventoryService),
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack in order:
	// request id, tracing, panic recovery, access log, metrics,
	// security headers, CORS, body limit, global rate limit
	engine.Use(middleware.RequestID())
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.HTTPMetrics(meterProvider, log))

	security := middleware.DefaultSecurityConfig()
	security.HSTSEnabled = cfg.App.Env == "production"
	engine.Use(middleware.Secure(security))

	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Local uploads are served as /files/<key>
	if local, ok := objects.(*storage.LocalObjectStorage); ok {
		engine.Static("/files", local.Dir())
	}

	authLimiter := middleware.NewRateLimiterWithBurst(
		rate.Limit(float64(cfg.Auth.LoginRatePerMin)/60.0),
		cfg.Auth.LoginRateBurst,
	)

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	router.RegisterAPI(r, handlers, router.Security{
		JWT:         jwtService,
		Blacklist:   blacklist,
		AuthLimiter: authLimiter,
		Logger:      log,
	})
	r.Use(middleware.TracingAttributeInjector())
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

// migrateUp applies the versioned SQL migrations over the open connection
func migrateUp(db *persistence.Database, cfg *config.Config, log *zap.Logger) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, cfg.Database.Driver, cfg.Database.MigrationsPath, log)
	if err != nil {
		return err
	}
	return m.Up()
}
