package tests

import (
	"io"

	"github.com/sirupsen/logrus"

	"greencart/internal/domain"
	"greencart/internal/service"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// testFleet holds mock repositories loaded with a small fleet:
//
//   - drv-tired averages 9h/day, drv-fresh averages 6h/day
//   - route 1 is 10km Low traffic, 50 min; route 2 is 10km High traffic, 30 min
//   - ORD-A (1200) on route 1, ORD-B (500) on route 2, ORD-X (900) on missing route 99
type testFleet struct {
	drivers *MockDriverRepository
	routes  *MockRouteRepository
	orders  *MockOrderRepository
	sims    *MockSimulationRepository
}

func newTestFleet() *testFleet {
	f := &testFleet{
		drivers: NewMockDriverRepository(),
		routes:  NewMockRouteRepository(),
		orders:  NewMockOrderRepository(),
		sims:    NewMockSimulationRepository(),
	}

	f.drivers.AddDriver(&domain.Driver{ID: "drv-tired", Name: "Tired", ShiftHours: 8, PastWeekHours: []float64{9, 9, 9, 9, 9, 9, 9}})
	f.drivers.AddDriver(&domain.Driver{ID: "drv-fresh", Name: "Fresh", ShiftHours: 8, PastWeekHours: []float64{6, 6, 6, 6, 6, 6, 6}})

	f.routes.AddRoute(&domain.Route{RouteID: 1, DistanceKM: 10, TrafficLevel: domain.TrafficLow, BaseTimeMin: 50})
	f.routes.AddRoute(&domain.Route{RouteID: 2, DistanceKM: 10, TrafficLevel: domain.TrafficHigh, BaseTimeMin: 30})

	f.orders.AddOrder(&domain.Order{OrderID: "ORD-A", ValueRs: 1200, RouteID: 1, DeliveryTime: "10:00"})
	f.orders.AddOrder(&domain.Order{OrderID: "ORD-B", ValueRs: 500, RouteID: 2, DeliveryTime: "11:00"})
	f.orders.AddOrder(&domain.Order{OrderID: "ORD-X", ValueRs: 900, RouteID: 99, DeliveryTime: "12:00"})

	return f
}

func (f *testFleet) simulationService(cache *MockKPICache, publisher *MockEventPublisher) *service.SimulationService {
	logger := newTestLogger()
	var notifier *service.NotificationService
	if publisher != nil {
		notifier = service.NewNotificationService(publisher, logger)
	}
	if cache == nil {
		return service.NewSimulationService(f.drivers, f.routes, f.orders, f.sims, nil, notifier, logger)
	}
	return service.NewSimulationService(f.drivers, f.routes, f.orders, f.sims, cache, notifier, logger)
}

func (f *testFleet) dashboardService(cache *MockKPICache) *service.DashboardService {
	if cache == nil {
		return service.NewDashboardService(f.drivers, f.routes, f.orders, f.sims, nil, newTestLogger())
	}
	return service.NewDashboardService(f.drivers, f.routes, f.orders, f.sims, cache, newTestLogger())
}
