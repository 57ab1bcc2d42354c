package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"greencart/internal/domain"
)

// DriverRepository is a PostgreSQL implementation of repository.DriverRepository.
type DriverRepository struct {
	q Querier
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{q: db}
}

// NewDriverRepositoryWithTx creates a driver repository using a transaction.
func NewDriverRepositoryWithTx(tx *sql.Tx) *DriverRepository {
	return &DriverRepository{q: tx}
}

const driverColumns = `id, name, shift_hours, past_week_hours, created_at`

// Create adds a new driver at the end of the roster.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	query := `INSERT INTO drivers (id, name, shift_hours, past_week_hours) VALUES ($1, $2, $3, $4) RETURNING created_at`
	err := r.q.QueryRowContext(ctx, query,
		driver.ID, driver.Name, driver.ShiftHours, pq.Array(driver.PastWeekHours),
	).Scan(&driver.CreatedAt)
	return translateError(err)
}

// GetByID retrieves a driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`

	driver, err := scanDriver(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err)
	}
	return driver, nil
}

// List retrieves drivers in roster order. A limit <= 0 returns all drivers.
func (r *DriverRepository) List(ctx context.Context, limit int) ([]*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers ORDER BY seq`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drivers := []*domain.Driver{}
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, driver)
	}
	return drivers, rows.Err()
}

// Update replaces a driver's attributes.
func (r *DriverRepository) Update(ctx context.Context, driver *domain.Driver) error {
	query := `UPDATE drivers SET name = $1, shift_hours = $2, past_week_hours = $3 WHERE id = $4`

	result, err := r.q.ExecContext(ctx, query,
		driver.Name, driver.ShiftHours, pq.Array(driver.PastWeekHours), driver.ID,
	)
	if err != nil {
		return translateError(err)
	}
	return requireAffected(result)
}

// Delete removes a driver.
func (r *DriverRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Count returns the number of drivers.
func (r *DriverRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.q, `SELECT COUNT(*) FROM drivers`)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDriver(row rowScanner) (*domain.Driver, error) {
	var driver domain.Driver
	var hours pq.Float64Array
	if err := row.Scan(&driver.ID, &driver.Name, &driver.ShiftHours, &hours, &driver.CreatedAt); err != nil {
		return nil, err
	}
	driver.PastWeekHours = []float64(hours)
	return &driver, nil
}
