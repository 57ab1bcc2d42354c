package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"greencart/internal/app"
	"greencart/internal/config"
	"greencart/internal/handler"
	"greencart/internal/middleware"
	internalRedis "greencart/internal/redis"
	"greencart/internal/repository/postgres"
	"greencart/internal/service"
)

func main() {
	configPath := flag.String("config", "", "optional config file (yaml, json or toml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	nrApp := app.NewNewRelic(cfg.NewRelic, logger)
	if nrApp != nil {
		defer nrApp.Shutdown(5 * time.Second)
	}

	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()
	logger.Info("connected to PostgreSQL")

	if err := postgres.InitSchema(ctx, db); err != nil {
		logger.WithError(err).Fatal("failed to initialize schema")
	}

	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to redis")
	}
	defer redisClient.Close()
	logger.Info("connected to Redis")

	server := wireServer(db, redisClient, nrApp, cfg, logger)

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server error")
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server forced to shutdown")
	}

	logger.Info("server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config, logger *logrus.Logger) *http.Server {
	// Initialize Redis stores.
	cacheStore := internalRedis.NewCacheStore(redisClient, cfg.Cache.KPITTL)
	lockStore := internalRedis.NewLockStore(redisClient)
	eventBus := internalRedis.NewEventBus(redisClient)

	// Initialize repositories.
	userRepo := postgres.NewUserRepository(db)
	driverRepo := postgres.NewDriverRepository(db)
	routeRepo := postgres.NewRouteRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	simRepo := postgres.NewSimulationRepository(db)
	importer := postgres.NewFleetImporter(db)

	// Initialize services.
	notificationService := service.NewNotificationService(eventBus, logger)
	authService := service.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	fleetService := service.NewFleetService(driverRepo, routeRepo, orderRepo)
	simulationService := service.NewSimulationService(driverRepo, routeRepo, orderRepo, simRepo, cacheStore, notificationService, logger)
	dashboardService := service.NewDashboardService(driverRepo, routeRepo, orderRepo, simRepo, cacheStore, logger)
	seedService := service.NewSeedService(importer, authService, lockStore, cacheStore, service.AdminAccount{
		Username: cfg.Seed.AdminUsername,
		Password: cfg.Seed.AdminPassword,
	}, logger)

	// Initialize handlers.
	router := app.NewRouter(app.RouterDeps{
		AuthHandler:       handler.NewAuthHandler(authService),
		DriverHandler:     handler.NewDriverHandler(fleetService),
		RouteHandler:      handler.NewRouteHandler(fleetService),
		OrderHandler:      handler.NewOrderHandler(fleetService),
		SimulationHandler: handler.NewSimulationHandler(simulationService, eventBus),
		DashboardHandler:  handler.NewDashboardHandler(dashboardService),
		SeedHandler:       handler.NewSeedHandler(seedService),
		TokenVerifier:     authService,
		RateLimiter:       middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		RedisClient:       redisClient,
		NewRelicApp:       nrApp,
		Logger:            logger,
		CORSOrigin:        cfg.Server.CORSOrigin,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
