package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"greencart/internal/domain"
	"greencart/internal/engine"
	"greencart/internal/metrics"
	"greencart/internal/redis"
	"greencart/internal/repository"
)

const (
	maxHoursPerShift   = 24
	defaultHistorySize = 10
	maxHistorySize     = 100
)

// SimulationService runs simulations over the stored fleet and keeps their history.
type SimulationService struct {
	driverRepo repository.DriverRepository
	routeRepo  repository.RouteRepository
	orderRepo  repository.OrderRepository
	simRepo    repository.SimulationRepository
	cache      redis.KPICacheInterface
	notifier   *NotificationService
	logger     *logrus.Logger
}

// NewSimulationService creates a new SimulationService. cache and notifier may be nil.
func NewSimulationService(
	driverRepo repository.DriverRepository,
	routeRepo repository.RouteRepository,
	orderRepo repository.OrderRepository,
	simRepo repository.SimulationRepository,
	cache redis.KPICacheInterface,
	notifier *NotificationService,
	logger *logrus.Logger,
) *SimulationService {
	return &SimulationService{
		driverRepo: driverRepo,
		routeRepo:  routeRepo,
		orderRepo:  orderRepo,
		simRepo:    simRepo,
		cache:      cache,
		notifier:   notifier,
		logger:     logger,
	}
}

// SimulationReport is the full outcome of a run.
type SimulationReport struct {
	Simulation  *domain.Simulation
	Scores      []domain.OrderScore
	DriverLoads []engine.DriverLoad
}

// Run validates the inputs, simulates the current fleet and stores the result.
func (s *SimulationService) Run(ctx context.Context, in domain.SimulationInputs) (*SimulationReport, error) {
	if err := validateInputs(in); err != nil {
		metrics.SimulationsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	snap, err := s.loadSnapshot(ctx, in.AvailableDrivers)
	if err != nil {
		metrics.SimulationsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	start := time.Now()
	outcome := engine.Run(snap, in.MaxHoursPerDriver)
	elapsed := time.Since(start)
	metrics.SimulationDuration.Observe(elapsed.Seconds())

	sim := &domain.Simulation{
		ID:              uuid.New().String(),
		Inputs:          in,
		Results:         outcome.KPIs,
		AllocatedOrders: len(outcome.Allocations),
		SkippedOrders:   outcome.Skipped,
	}
	if err := s.simRepo.Create(ctx, sim); err != nil {
		metrics.SimulationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("store simulation: %w", err)
	}

	s.cacheLatest(ctx, sim)
	s.notifier.NotifySimulationCompleted(ctx, sim)

	metrics.SimulationsTotal.WithLabelValues("success").Inc()
	metrics.OrdersProcessed.WithLabelValues("allocated").Add(float64(sim.AllocatedOrders))
	metrics.OrdersProcessed.WithLabelValues("skipped").Add(float64(sim.SkippedOrders))
	metrics.LastEfficiency.Set(sim.Results.EfficiencyScore)
	metrics.LastProfit.Set(sim.Results.TotalProfit)

	s.logger.WithFields(logrus.Fields{
		"simulation_id": sim.ID,
		"drivers":       len(snap.Drivers),
		"allocated":     sim.AllocatedOrders,
		"skipped":       sim.SkippedOrders,
		"efficiency":    sim.Results.EfficiencyScore,
		"duration_ms":   elapsed.Milliseconds(),
	}).Info("simulation completed")

	return &SimulationReport{
		Simulation:  sim,
		Scores:      outcome.Scores,
		DriverLoads: outcome.DriverLoads,
	}, nil
}

// History returns recent simulations, newest first. A non-positive limit
// selects the default; limits above the maximum are capped.
func (s *SimulationService) History(ctx context.Context, limit int) ([]*domain.Simulation, error) {
	return s.simRepo.ListRecent(ctx, clampHistory(limit))
}

// Get returns a stored simulation.
func (s *SimulationService) Get(ctx context.Context, id string) (*domain.Simulation, error) {
	if id == "" {
		return nil, ErrInvalidSimulationID
	}
	return s.simRepo.GetByID(ctx, id)
}

func validateInputs(in domain.SimulationInputs) error {
	if in.AvailableDrivers <= 0 {
		return ErrInvalidDriverCount
	}
	if in.MaxHoursPerDriver <= 0 || in.MaxHoursPerDriver > maxHoursPerShift {
		return ErrInvalidMaxHours
	}
	if !domain.IsClockTime(in.StartTime) {
		return ErrInvalidStartTime
	}
	return nil
}

// loadSnapshot reads the first n drivers of the roster, all routes and all
// orders in backlog order.
func (s *SimulationService) loadSnapshot(ctx context.Context, n int) (engine.Snapshot, error) {
	drivers, err := s.driverRepo.List(ctx, n)
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("load drivers: %w", err)
	}
	if len(drivers) < n {
		return engine.Snapshot{}, fmt.Errorf("%w: requested %d, only %d available", ErrInsufficientDrivers, n, len(drivers))
	}

	routes, err := s.routeRepo.List(ctx)
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("load routes: %w", err)
	}
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("load orders: %w", err)
	}

	snap := engine.Snapshot{
		Drivers: make([]domain.Driver, 0, len(drivers)),
		Routes:  make([]domain.Route, 0, len(routes)),
		Orders:  make([]domain.Order, 0, len(orders)),
	}
	for _, d := range drivers {
		snap.Drivers = append(snap.Drivers, *d)
	}
	for _, r := range routes {
		snap.Routes = append(snap.Routes, *r)
	}
	for _, o := range orders {
		snap.Orders = append(snap.Orders, *o)
	}
	return snap, nil
}

func (s *SimulationService) cacheLatest(ctx context.Context, sim *domain.Simulation) {
	if s.cache == nil {
		return
	}
	err := s.cache.SetLatestKPIs(ctx, &redis.CachedKPIs{
		SimulationID: sim.ID,
		KPIs:         sim.Results,
		CreatedAt:    sim.CreatedAt,
	})
	if err != nil {
		s.logger.WithError(err).WithField("simulation_id", sim.ID).Warn("failed to cache latest KPIs")
	}
}

func clampHistory(limit int) int {
	if limit <= 0 {
		return defaultHistorySize
	}
	if limit > maxHistorySize {
		return maxHistorySize
	}
	return limit
}
