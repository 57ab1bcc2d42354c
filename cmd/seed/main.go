// Command seed creates the schema and imports fleet data from CSV files.
//
// Usage:
//
//	seed [-config path] [-drivers drivers.csv] [-routes routes.csv] [-orders orders.csv]
//
// Tables without a file are filled from the built-in fixture.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"greencart/internal/app"
	"greencart/internal/config"
	internalRedis "greencart/internal/redis"
	"greencart/internal/repository/postgres"
	"greencart/internal/service"
)

func main() {
	configPath := flag.String("config", "", "optional config file")
	driversPath := flag.String("drivers", "", "drivers CSV (name,shift_hours,past_week_hours)")
	routesPath := flag.String("routes", "", "routes CSV (route_id,distance_km,traffic_level,base_time_min)")
	ordersPath := flag.String("orders", "", "orders CSV (order_id,value_rs,route_id,delivery_time)")
	schemaOnly := flag.Bool("schema-only", false, "create tables and exit")
	flag.Parse()

	if err := run(*configPath, *driversPath, *routesPath, *ordersPath, *schemaOnly); err != nil {
		fmt.Fprintln(os.Stderr, "seed:", err)
		os.Exit(1)
	}
}

func run(configPath, driversPath, routesPath, ordersPath string, schemaOnly bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := app.NewDatabase(ctx, cfg.Database, nil)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.InitSchema(ctx, db); err != nil {
		return err
	}
	logger.Info("schema ready")
	if schemaOnly {
		return nil
	}

	// Flags win over the configured default paths.
	if driversPath == "" {
		driversPath = cfg.Seed.DriversCSV
	}
	if routesPath == "" {
		routesPath = cfg.Seed.RoutesCSV
	}
	if ordersPath == "" {
		ordersPath = cfg.Seed.OrdersCSV
	}

	var src service.SeedSource
	for _, f := range []struct {
		path string
		dst  *io.Reader
	}{
		{driversPath, &src.Drivers},
		{routesPath, &src.Routes},
		{ordersPath, &src.Orders},
	} {
		if f.path == "" {
			continue
		}
		file, err := os.Open(f.path)
		if err != nil {
			return err
		}
		defer file.Close()
		*f.dst = file
	}

	// The lock is optional here: without Redis the import still runs, but is
	// not serialized against the API.
	var locker internalRedis.LockStoreInterface
	var cache internalRedis.KPICacheInterface
	if redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nil); err != nil {
		logger.WithError(err).Warn("redis unavailable, seeding without lock")
	} else {
		defer redisClient.Close()
		locker = internalRedis.NewLockStore(redisClient)
		cache = internalRedis.NewCacheStore(redisClient, cfg.Cache.KPITTL)
	}

	authService := service.NewAuthService(postgres.NewUserRepository(db), cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	seedService := service.NewSeedService(postgres.NewFleetImporter(db), authService, locker, cache, service.AdminAccount{
		Username: cfg.Seed.AdminUsername,
		Password: cfg.Seed.AdminPassword,
	}, logger)

	report, err := seedService.Seed(ctx, src)
	if err != nil {
		return err
	}

	for _, le := range report.Errors {
		logger.WithField("file", le.File).WithField("line", le.Line).Warn(le.Message)
	}
	fmt.Printf("imported %d drivers, %d routes, %d orders (%d rejected lines)\n",
		report.Drivers, report.Routes, report.Orders, len(report.Errors))
	return nil
}
