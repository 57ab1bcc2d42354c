package repository

import (
	"context"

	"greencart/internal/domain"
)

// Fleet is a complete set of drivers, routes and orders.
type Fleet struct {
	Drivers []*domain.Driver
	Routes  []*domain.Route
	Orders  []*domain.Order
}

// FleetImporter replaces the stored fleet as a single unit.
type FleetImporter interface {
	// ReplaceAll deletes every driver, route and order and inserts the given
	// ones in slice order. Either all changes apply or none do.
	ReplaceAll(ctx context.Context, fleet Fleet) error
}
