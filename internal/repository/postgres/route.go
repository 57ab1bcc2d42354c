package postgres

import (
	"context"
	"database/sql"

	"greencart/internal/domain"
)

// RouteRepository is a PostgreSQL implementation of repository.RouteRepository.
type RouteRepository struct {
	q Querier
}

// NewRouteRepository creates a new PostgreSQL route repository.
func NewRouteRepository(db *sql.DB) *RouteRepository {
	return &RouteRepository{q: db}
}

// NewRouteRepositoryWithTx creates a route repository using a transaction.
func NewRouteRepositoryWithTx(tx *sql.Tx) *RouteRepository {
	return &RouteRepository{q: tx}
}

// Create adds a new route.
func (r *RouteRepository) Create(ctx context.Context, route *domain.Route) error {
	query := `INSERT INTO routes (route_id, distance_km, traffic_level, base_time_min) VALUES ($1, $2, $3, $4)`
	_, err := r.q.ExecContext(ctx, query, route.RouteID, route.DistanceKM, route.TrafficLevel, route.BaseTimeMin)
	return translateError(err)
}

// GetByID retrieves a route by its route ID.
func (r *RouteRepository) GetByID(ctx context.Context, routeID int) (*domain.Route, error) {
	query := `SELECT route_id, distance_km, traffic_level, base_time_min FROM routes WHERE route_id = $1`

	var route domain.Route
	err := r.q.QueryRowContext(ctx, query, routeID).Scan(
		&route.RouteID,
		&route.DistanceKM,
		&route.TrafficLevel,
		&route.BaseTimeMin,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &route, nil
}

// List retrieves all routes ordered by route ID.
func (r *RouteRepository) List(ctx context.Context) ([]*domain.Route, error) {
	query := `SELECT route_id, distance_km, traffic_level, base_time_min FROM routes ORDER BY route_id`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := []*domain.Route{}
	for rows.Next() {
		var route domain.Route
		if err := rows.Scan(&route.RouteID, &route.DistanceKM, &route.TrafficLevel, &route.BaseTimeMin); err != nil {
			return nil, err
		}
		routes = append(routes, &route)
	}
	return routes, rows.Err()
}

// Update replaces a route's attributes.
func (r *RouteRepository) Update(ctx context.Context, route *domain.Route) error {
	query := `UPDATE routes SET distance_km = $1, traffic_level = $2, base_time_min = $3 WHERE route_id = $4`

	result, err := r.q.ExecContext(ctx, query, route.DistanceKM, route.TrafficLevel, route.BaseTimeMin, route.RouteID)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Delete removes a route. Orders referencing it are kept and skipped by the allocator.
func (r *RouteRepository) Delete(ctx context.Context, routeID int) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM routes WHERE route_id = $1`, routeID)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Count returns the number of routes.
func (r *RouteRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.q, `SELECT COUNT(*) FROM routes`)
}
