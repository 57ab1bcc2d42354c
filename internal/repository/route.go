package repository

import (
	"context"

	"greencart/internal/domain"
)

// RouteRepository defines the persistence operations for routes.
type RouteRepository interface {
	Create(ctx context.Context, route *domain.Route) error
	GetByID(ctx context.Context, routeID int) (*domain.Route, error)
	List(ctx context.Context) ([]*domain.Route, error)
	Update(ctx context.Context, route *domain.Route) error
	Delete(ctx context.Context, routeID int) error
	Count(ctx context.Context) (int, error)
}
