package repository

import (
	"context"

	"greencart/internal/domain"
)

// DriverRepository defines the persistence operations for drivers.
type DriverRepository interface {
	// Create adds a new driver at the end of the roster.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID retrieves a driver by ID.
	GetByID(ctx context.Context, id string) (*domain.Driver, error)

	// List retrieves drivers in roster order. A limit <= 0 returns all drivers.
	List(ctx context.Context, limit int) ([]*domain.Driver, error)

	// Update replaces a driver's attributes without moving it in the roster.
	Update(ctx context.Context, driver *domain.Driver) error

	// Delete removes a driver.
	Delete(ctx context.Context, id string) error

	// Count returns the number of drivers.
	Count(ctx context.Context) (int, error)
}
