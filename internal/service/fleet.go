package service

import (
	"context"

	"github.com/google/uuid"

	"greencart/internal/domain"
	"greencart/internal/repository"
)

// FleetService manages drivers, routes and orders.
type FleetService struct {
	driverRepo repository.DriverRepository
	routeRepo  repository.RouteRepository
	orderRepo  repository.OrderRepository
}

// NewFleetService creates a new FleetService.
func NewFleetService(
	driverRepo repository.DriverRepository,
	routeRepo repository.RouteRepository,
	orderRepo repository.OrderRepository,
) *FleetService {
	return &FleetService{
		driverRepo: driverRepo,
		routeRepo:  routeRepo,
		orderRepo:  orderRepo,
	}
}

// CreateDriver validates a driver, assigns it an ID and appends it to the roster.
func (s *FleetService) CreateDriver(ctx context.Context, driver *domain.Driver) error {
	if err := driver.Validate(); err != nil {
		return err
	}
	driver.ID = uuid.New().String()
	return s.driverRepo.Create(ctx, driver)
}

// GetDriver returns a driver by ID.
func (s *FleetService) GetDriver(ctx context.Context, id string) (*domain.Driver, error) {
	if id == "" {
		return nil, ErrInvalidDriverID
	}
	return s.driverRepo.GetByID(ctx, id)
}

// ListDrivers returns the roster in order.
func (s *FleetService) ListDrivers(ctx context.Context) ([]*domain.Driver, error) {
	return s.driverRepo.List(ctx, 0)
}

// UpdateDriver validates and stores a driver's new attributes.
func (s *FleetService) UpdateDriver(ctx context.Context, driver *domain.Driver) error {
	if driver.ID == "" {
		return ErrInvalidDriverID
	}
	if err := driver.Validate(); err != nil {
		return err
	}
	return s.driverRepo.Update(ctx, driver)
}

// DeleteDriver removes a driver.
func (s *FleetService) DeleteDriver(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidDriverID
	}
	return s.driverRepo.Delete(ctx, id)
}

// CreateRoute validates and stores a new route.
func (s *FleetService) CreateRoute(ctx context.Context, route *domain.Route) error {
	if err := route.Validate(); err != nil {
		return err
	}
	return s.routeRepo.Create(ctx, route)
}

// GetRoute returns a route by route ID.
func (s *FleetService) GetRoute(ctx context.Context, routeID int) (*domain.Route, error) {
	if routeID <= 0 {
		return nil, ErrInvalidRouteID
	}
	return s.routeRepo.GetByID(ctx, routeID)
}

// ListRoutes returns all routes.
func (s *FleetService) ListRoutes(ctx context.Context) ([]*domain.Route, error) {
	return s.routeRepo.List(ctx)
}

// UpdateRoute validates and stores a route's new attributes.
func (s *FleetService) UpdateRoute(ctx context.Context, route *domain.Route) error {
	if route.RouteID <= 0 {
		return ErrInvalidRouteID
	}
	if err := route.Validate(); err != nil {
		return err
	}
	return s.routeRepo.Update(ctx, route)
}

// DeleteRoute removes a route. Orders on it stay and are skipped by simulations.
func (s *FleetService) DeleteRoute(ctx context.Context, routeID int) error {
	if routeID <= 0 {
		return ErrInvalidRouteID
	}
	return s.routeRepo.Delete(ctx, routeID)
}

// CreateOrder validates an order and appends it to the backlog.
// The route does not have to exist yet.
func (s *FleetService) CreateOrder(ctx context.Context, order *domain.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}
	return s.orderRepo.Create(ctx, order)
}

// GetOrder returns an order by order ID.
func (s *FleetService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}
	return s.orderRepo.GetByID(ctx, orderID)
}

// ListOrders returns the backlog in order.
func (s *FleetService) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.orderRepo.List(ctx)
}

// UpdateOrder validates and stores an order's new attributes.
func (s *FleetService) UpdateOrder(ctx context.Context, order *domain.Order) error {
	if order.OrderID == "" {
		return ErrInvalidOrderID
	}
	if err := order.Validate(); err != nil {
		return err
	}
	return s.orderRepo.Update(ctx, order)
}

// DeleteOrder removes an order.
func (s *FleetService) DeleteOrder(ctx context.Context, orderID string) error {
	if orderID == "" {
		return ErrInvalidOrderID
	}
	return s.orderRepo.Delete(ctx, orderID)
}
