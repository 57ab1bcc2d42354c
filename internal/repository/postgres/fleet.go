package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"greencart/internal/repository"
)

// FleetImporter implements repository.FleetImporter using a single transaction.
type FleetImporter struct {
	db *sql.DB
}

// NewFleetImporter creates a new FleetImporter.
func NewFleetImporter(db *sql.DB) *FleetImporter {
	return &FleetImporter{db: db}
}

// ReplaceAll deletes every driver, route and order and inserts the given ones.
func (f *FleetImporter) ReplaceAll(ctx context.Context, fleet repository.Fleet) (err error) {
	tx, err := f.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"orders", "routes", "drivers"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	txDriverRepo := NewDriverRepositoryWithTx(tx)
	txRouteRepo := NewRouteRepositoryWithTx(tx)
	txOrderRepo := NewOrderRepositoryWithTx(tx)

	for _, d := range fleet.Drivers {
		if err = txDriverRepo.Create(ctx, d); err != nil {
			return fmt.Errorf("insert driver %q: %w", d.Name, err)
		}
	}
	for _, r := range fleet.Routes {
		if err = txRouteRepo.Create(ctx, r); err != nil {
			return fmt.Errorf("insert route %d: %w", r.RouteID, err)
		}
	}
	for _, o := range fleet.Orders {
		if err = txOrderRepo.Create(ctx, o); err != nil {
			return fmt.Errorf("insert order %q: %w", o.OrderID, err)
		}
	}

	return tx.Commit()
}
