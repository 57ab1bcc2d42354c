package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"greencart/internal/domain"
	"greencart/internal/ingest"
	"greencart/internal/metrics"
	"greencart/internal/redis"
	"greencart/internal/repository"
)

// seedLockTTL bounds how long a crashed import can block others.
const seedLockTTL = 2 * time.Minute

// SeedSource holds optional CSV inputs. A nil reader takes that table from
// the built-in fixture.
type SeedSource struct {
	Drivers io.Reader
	Routes  io.Reader
	Orders  io.Reader
}

// SeedLineError is a rejected CSV record.
type SeedLineError struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// SeedReport summarizes an import.
type SeedReport struct {
	Drivers      int
	Routes       int
	Orders       int
	FromFixture  []string
	Errors       []SeedLineError
	AdminCreated bool
}

// AdminAccount is the account ensured by every import.
type AdminAccount struct {
	Username string
	Password string
}

// SeedService replaces the stored fleet from CSV files or the fixture.
type SeedService struct {
	importer    repository.FleetImporter
	authService *AuthService
	locker      redis.LockStoreInterface
	cache       redis.KPICacheInterface
	admin       AdminAccount
	logger      *logrus.Logger
}

// NewSeedService creates a new SeedService. locker and cache may be nil.
func NewSeedService(
	importer repository.FleetImporter,
	authService *AuthService,
	locker redis.LockStoreInterface,
	cache redis.KPICacheInterface,
	admin AdminAccount,
	logger *logrus.Logger,
) *SeedService {
	return &SeedService{
		importer:    importer,
		authService: authService,
		locker:      locker,
		cache:       cache,
		admin:       admin,
		logger:      logger,
	}
}

// Seed replaces all drivers, routes and orders. Invalid CSV records are
// skipped and reported; the rest are imported in file order.
func (s *SeedService) Seed(ctx context.Context, src SeedSource) (report *SeedReport, err error) {
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		metrics.SeedImports.WithLabelValues(outcome).Inc()
	}()

	if s.locker != nil {
		token, ok, err := s.locker.AcquireLock(ctx, redis.SeedLock, seedLockTTL)
		if err != nil {
			return nil, fmt.Errorf("acquire seed lock: %w", err)
		}
		if !ok {
			return nil, ErrSeedInProgress
		}
		defer func() {
			if err := s.locker.ReleaseLock(context.WithoutCancel(ctx), redis.SeedLock, token); err != nil {
				s.logger.WithError(err).Warn("failed to release seed lock")
			}
		}()
	}

	fleet, report, err := s.collect(src)
	if err != nil {
		return nil, err
	}

	for _, d := range fleet.Drivers {
		d.ID = uuid.New().String()
	}

	if err := s.importer.ReplaceAll(ctx, fleet); err != nil {
		return nil, fmt.Errorf("replace fleet: %w", err)
	}

	if s.authService != nil && s.admin.Username != "" {
		created, err := s.authService.EnsureUser(ctx, s.admin.Username, s.admin.Password, domain.UserRoleAdmin)
		if err != nil {
			return nil, fmt.Errorf("ensure admin user: %w", err)
		}
		report.AdminCreated = created
	}

	if s.cache != nil {
		if err := s.cache.InvalidateLatestKPIs(ctx); err != nil {
			s.logger.WithError(err).Warn("failed to invalidate cached KPIs")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"drivers":       report.Drivers,
		"routes":        report.Routes,
		"orders":        report.Orders,
		"fixture":       report.FromFixture,
		"line_errors":   len(report.Errors),
		"admin_created": report.AdminCreated,
	}).Info("fleet imported")

	return report, nil
}

func (s *SeedService) collect(src SeedSource) (repository.Fleet, *SeedReport, error) {
	var fleet repository.Fleet
	report := &SeedReport{}

	var fixture *ingest.Fixture
	loadFixture := func(table string) (*ingest.Fixture, error) {
		report.FromFixture = append(report.FromFixture, table)
		if fixture != nil {
			return fixture, nil
		}
		fx, err := ingest.LoadFixture()
		if err != nil {
			return nil, err
		}
		fixture = fx
		return fixture, nil
	}

	addErrors := func(file string, lineErrs []ingest.LineError) {
		for _, le := range lineErrs {
			report.Errors = append(report.Errors, SeedLineError{File: file, Line: le.Line, Message: le.Err.Error()})
		}
	}

	if src.Drivers != nil {
		drivers, lineErrs, err := ingest.ParseDrivers(src.Drivers)
		if err != nil {
			return fleet, nil, fmt.Errorf("%w: drivers: %v", domain.ErrValidation, err)
		}
		fleet.Drivers = drivers
		addErrors("drivers", lineErrs)
	} else {
		fx, err := loadFixture("drivers")
		if err != nil {
			return fleet, nil, err
		}
		fleet.Drivers = fx.Drivers
	}

	if src.Routes != nil {
		routes, lineErrs, err := ingest.ParseRoutes(src.Routes)
		if err != nil {
			return fleet, nil, fmt.Errorf("%w: routes: %v", domain.ErrValidation, err)
		}
		fleet.Routes = routes
		addErrors("routes", lineErrs)
	} else {
		fx, err := loadFixture("routes")
		if err != nil {
			return fleet, nil, err
		}
		fleet.Routes = fx.Routes
	}

	if src.Orders != nil {
		orders, lineErrs, err := ingest.ParseOrders(src.Orders)
		if err != nil {
			return fleet, nil, fmt.Errorf("%w: orders: %v", domain.ErrValidation, err)
		}
		fleet.Orders = orders
		addErrors("orders", lineErrs)
	} else {
		fx, err := loadFixture("orders")
		if err != nil {
			return fleet, nil, err
		}
		fleet.Orders = fx.Orders
	}

	report.Drivers = len(fleet.Drivers)
	report.Routes = len(fleet.Routes)
	report.Orders = len(fleet.Orders)
	return fleet, report, nil
}
