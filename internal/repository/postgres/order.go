package postgres

import (
	"context"
	"database/sql"

	"greencart/internal/domain"
)

// OrderRepository is a PostgreSQL implementation of repository.OrderRepository.
type OrderRepository struct {
	q Querier
}

// NewOrderRepository creates a new PostgreSQL order repository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{q: db}
}

// NewOrderRepositoryWithTx creates an order repository using a transaction.
func NewOrderRepositoryWithTx(tx *sql.Tx) *OrderRepository {
	return &OrderRepository{q: tx}
}

// Create appends an order to the backlog.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `INSERT INTO orders (order_id, value_rs, route_id, delivery_time) VALUES ($1, $2, $3, $4)`
	_, err := r.q.ExecContext(ctx, query, order.OrderID, order.ValueRs, order.RouteID, order.DeliveryTime)
	return translateError(err)
}

// GetByID retrieves an order by its order ID.
func (r *OrderRepository) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `SELECT order_id, value_rs, route_id, delivery_time FROM orders WHERE order_id = $1`

	var order domain.Order
	err := r.q.QueryRowContext(ctx, query, orderID).Scan(
		&order.OrderID,
		&order.ValueRs,
		&order.RouteID,
		&order.DeliveryTime,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

// List retrieves all orders in insertion order.
func (r *OrderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	query := `SELECT order_id, value_rs, route_id, delivery_time FROM orders ORDER BY seq`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.OrderID, &order.ValueRs, &order.RouteID, &order.DeliveryTime); err != nil {
			return nil, err
		}
		orders = append(orders, &order)
	}
	return orders, rows.Err()
}

// Update replaces an order's attributes.
func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	query := `UPDATE orders SET value_rs = $1, route_id = $2, delivery_time = $3 WHERE order_id = $4`

	result, err := r.q.ExecContext(ctx, query, order.ValueRs, order.RouteID, order.DeliveryTime, order.OrderID)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Delete removes an order.
func (r *OrderRepository) Delete(ctx context.Context, orderID string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM orders WHERE order_id = $1`, orderID)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Count returns the number of orders.
func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.q, `SELECT COUNT(*) FROM orders`)
}
