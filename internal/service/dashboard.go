package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"greencart/internal/domain"
	"greencart/internal/redis"
	"greencart/internal/repository"
)

// KPI sources reported in DashboardSnapshot.Source.
const (
	SourceCache    = "cache"
	SourceDatabase = "database"
	SourceNone     = "none"
)

// DashboardService serves the manager dashboard.
type DashboardService struct {
	driverRepo repository.DriverRepository
	routeRepo  repository.RouteRepository
	orderRepo  repository.OrderRepository
	simRepo    repository.SimulationRepository
	cache      redis.KPICacheInterface
	logger     *logrus.Logger
}

// NewDashboardService creates a new DashboardService. cache may be nil.
func NewDashboardService(
	driverRepo repository.DriverRepository,
	routeRepo repository.RouteRepository,
	orderRepo repository.OrderRepository,
	simRepo repository.SimulationRepository,
	cache redis.KPICacheInterface,
	logger *logrus.Logger,
) *DashboardService {
	return &DashboardService{
		driverRepo: driverRepo,
		routeRepo:  routeRepo,
		orderRepo:  orderRepo,
		simRepo:    simRepo,
		cache:      cache,
		logger:     logger,
	}
}

// DashboardSnapshot is the latest KPIs together with fleet size.
// KPIs are zero when no simulation has been run.
type DashboardSnapshot struct {
	HasSimulation bool
	SimulationID  string
	KPIs          domain.KPIResult
	LastRunAt     time.Time
	Source        string
	Drivers       int
	Routes        int
	Orders        int
}

// TrendPoint is one run in the KPI trend.
type TrendPoint struct {
	SimulationID    string    `json:"simulation_id"`
	CreatedAt       time.Time `json:"created_at"`
	EfficiencyScore float64   `json:"efficiency_score"`
	TotalProfit     float64   `json:"total_profit"`
	TotalDeliveries int       `json:"total_deliveries"`
}

// KPIs returns the latest simulation results, preferring the cache.
func (s *DashboardService) KPIs(ctx context.Context) (*DashboardSnapshot, error) {
	snap, err := s.latest(ctx)
	if err != nil {
		return nil, err
	}

	if snap.Drivers, err = s.driverRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count drivers: %w", err)
	}
	if snap.Routes, err = s.routeRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count routes: %w", err)
	}
	if snap.Orders, err = s.orderRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	return snap, nil
}

// Trend returns recent runs, oldest first.
func (s *DashboardService) Trend(ctx context.Context, limit int) ([]TrendPoint, error) {
	sims, err := s.simRepo.ListRecent(ctx, clampHistory(limit))
	if err != nil {
		return nil, err
	}

	points := make([]TrendPoint, len(sims))
	for i, sim := range sims {
		// ListRecent is newest first.
		points[len(sims)-1-i] = TrendPoint{
			SimulationID:    sim.ID,
			CreatedAt:       sim.CreatedAt,
			EfficiencyScore: sim.Results.EfficiencyScore,
			TotalProfit:     sim.Results.TotalProfit,
			TotalDeliveries: sim.Results.TotalDeliveries,
		}
	}
	return points, nil
}

func (s *DashboardService) latest(ctx context.Context) (*DashboardSnapshot, error) {
	if s.cache != nil {
		cached, err := s.cache.GetLatestKPIs(ctx)
		if err != nil {
			s.logger.WithError(err).Warn("failed to read cached KPIs")
		}
		if cached != nil {
			return &DashboardSnapshot{
				HasSimulation: true,
				SimulationID:  cached.SimulationID,
				KPIs:          cached.KPIs,
				LastRunAt:     cached.CreatedAt,
				Source:        SourceCache,
			}, nil
		}
	}

	sim, err := s.simRepo.Latest(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return &DashboardSnapshot{Source: SourceNone}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load latest simulation: %w", err)
	}

	// A simulation finishing after our read has already cached newer KPIs.
	if s.cache != nil {
		_, err := s.cache.SetLatestKPIsIfAbsent(ctx, &redis.CachedKPIs{
			SimulationID: sim.ID,
			KPIs:         sim.Results,
			CreatedAt:    sim.CreatedAt,
		})
		if err != nil {
			s.logger.WithError(err).Warn("failed to cache latest KPIs")
		}
	}

	return &DashboardSnapshot{
		HasSimulation: true,
		SimulationID:  sim.ID,
		KPIs:          sim.Results,
		LastRunAt:     sim.CreatedAt,
		Source:        SourceDatabase,
	}, nil
}
