// Package main provides the main entry point for the Izanagi ad marketplace API
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amirphl/Izanagi/app/handlers"
	"github.com/amirphl/Izanagi/app/middleware"
	"github.com/amirphl/Izanagi/app/router"
	"github.com/amirphl/Izanagi/app/scheduler"
	"github.com/amirphl/Izanagi/app/services"
	businessflow "github.com/amirphl/Izanagi/business_flow"
	"github.com/amirphl/Izanagi/config"
	_ "github.com/amirphl/Izanagi/docs"
	"github.com/amirphl/Izanagi/models"
	"github.com/amirphl/Izanagi/repository"
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Application represents the main application structure
type Application struct {
	router    *router.FiberRouter
	config    *config.ProductionConfig
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	log.Println("Starting Izanagi application...")

	// Load production configuration
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogOutput(cfg.Logging)

	// Initialize application
	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Setup routes
	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server starting on %s", address)

		if err := app.server.Listen(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down gracefully...")

	// Stop background workers
	for _, fn := range app.stopFuncs {
		fn()
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// setupLogOutput routes the standard logger to a rotated file when configured
func setupLogOutput(cfg config.LoggingConfig) {
	if cfg.FilePath == "" {
		return
	}

	fileWriter := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	switch cfg.Output {
	case "file":
		log.SetOutput(fileWriter)
	case "both":
		log.SetOutput(io.MultiWriter(os.Stdout, fileWriter))
	}
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB for connection pooling configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pooling
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test the connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

// initializeCache initializes the Redis client and verifies connectivity.
// Returns nil when caching is disabled.
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	// Override DB if provided in config
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established to %s (db=%d)", cfg.RedisURL, cfg.RedisDB)
	return rc, nil
}

// startCacheHealthMonitor starts a background goroutine that periodically pings Redis
// to detect connectivity issues. The returned cancel function stops the monitor.
func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(context.Background(), 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					log.Printf("Redis healthcheck failed: %v", err)
				}
				c()
			}
		}
	}()
	return cancel
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	var stopFuncs []func()

	// Initialize database
	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}

	if rc != nil {
		cancel := startCacheHealthMonitor(context.Background(), rc, 30*time.Second)
		stopFuncs = append(stopFuncs, cancel)
	}

	// Seed the initial operator account when configured
	if err := ensureBootstrapAdmin(db, cfg); err != nil {
		return nil, err
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	screenRepo := repository.NewScreenRepository(db)
	adRepo := repository.NewAdRepository(db)
	orderRepo := repository.NewAdOrderRepository(db)
	incomeRepo := repository.NewIncomeRepository(db)
	assetRepo := repository.NewImageAssetRepository(db)

	// Captcha service for admin login
	captchaSvc, err := services.NewCaptchaService(rc, cfg.Captcha.TTL, cfg.Captcha.Padding, cfg.Captcha.ImageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize captcha service: %w", err)
	}

	// Initialize token service
	tokenService, err := services.NewTokenService(
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.UseRSAKeys,
		cfg.JWT.PrivateKey,
		cfg.JWT.PublicKey,
		cfg.JWT.SecretKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	log.Printf("Token service initialized with issuer: %s, audience: %s", cfg.JWT.Issuer, cfg.JWT.Audience)

	// Initialize flows
	authFlow := businessflow.NewAuthFlow(
		userRepo,
		businessRepo,
		adminRepo,
		categoryRepo,
		tokenService,
		captchaSvc,
		cfg.Security.BcryptCost,
		db,
	)

	catalogFlow := businessflow.NewCatalogFlow(
		categoryRepo,
		addressRepo,
		businessRepo,
	)

	screenFlow := businessflow.NewScreenFlow(
		screenRepo,
		addressRepo,
		businessRepo,
		rc,
		cfg.Cache.RedisPrefix,
	)

	adFlow := businessflow.NewAdFlow(
		adRepo,
		userRepo,
		categoryRepo,
		db,
	)

	orderFlow := businessflow.NewOrderFlow(
		orderRepo,
		adRepo,
		screenRepo,
		incomeRepo,
		db,
	)

	incomeFlow := businessflow.NewIncomeFlow(incomeRepo)

	mediaFlow := businessflow.NewMediaFlow(userRepo, assetRepo, cfg.Media)

	// Initialize handlers
	h := router.Handlers{
		Auth:    handlers.NewAuthHandler(authFlow),
		Screen:  handlers.NewScreenHandler(screenFlow),
		Ad:      handlers.NewAdHandler(adFlow),
		Order:   handlers.NewOrderHandler(orderFlow),
		Income:  handlers.NewIncomeHandler(incomeFlow),
		Catalog: handlers.NewCatalogHandler(catalogFlow),
		Media:   handlers.NewMediaHandler(mediaFlow),
	}

	// Initialize auth middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Initialize router
	appRouter := router.NewFiberRouter(h, authMiddleware)

	if rc != nil {
		// Keep candidate screen sets warm for the allocator (every 1 minute)
		warmer := scheduler.NewCacheWarmer(categoryRepo, screenRepo, rc, db, cfg.Cache.RedisPrefix, time.Minute, log.Default())
		stopWarmer := warmer.Start(context.Background())
		stopFuncs = append(stopFuncs, stopWarmer)
	}

	// Create application struct from FiberRouter
	fiberRouter := appRouter.(*router.FiberRouter)
	application := &Application{
		router:    fiberRouter,
		config:    cfg,
		server:    fiberRouter.GetApp(),
		stopFuncs: stopFuncs,
	}

	return application, nil
}

// ensureBootstrapAdmin creates the configured operator account if it does not exist
func ensureBootstrapAdmin(db *gorm.DB, cfg *config.ProductionConfig) error {
	if cfg.Bootstrap.AdminName == "" || cfg.Bootstrap.AdminPassword == "" {
		return nil
	}

	adminRepo := repository.NewAdminRepository(db)

	existing, err := adminRepo.ByName(context.Background(), cfg.Bootstrap.AdminName)
	if err != nil {
		return fmt.Errorf("failed to lookup bootstrap admin: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Bootstrap.AdminPassword), cfg.Security.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap admin password: %w", err)
	}

	admin := models.Admin{
		Name:         cfg.Bootstrap.AdminName,
		PasswordHash: string(hash),
	}
	if err := adminRepo.Save(context.Background(), &admin); err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	log.Printf("Bootstrap admin %q created", cfg.Bootstrap.AdminName)
	return nil
}
