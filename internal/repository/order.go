package repository

import (
	"context"

	"greencart/internal/domain"
)

// OrderRepository defines the persistence operations for orders.
type OrderRepository interface {
	// Create appends an order to the backlog.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by its order ID.
	GetByID(ctx context.Context, orderID string) (*domain.Order, error)

	// List retrieves all orders in the order they were added.
	List(ctx context.Context) ([]*domain.Order, error)

	// Update replaces an order's attributes without moving it in the backlog.
	Update(ctx context.Context, order *domain.Order) error

	// Delete removes an order.
	Delete(ctx context.Context, orderID string) error

	// Count returns the number of orders.
	Count(ctx context.Context) (int, error)
}
