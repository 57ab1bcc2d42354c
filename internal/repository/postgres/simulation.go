package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"greencart/internal/domain"
)

// SimulationRepository is a PostgreSQL implementation of repository.SimulationRepository.
// Inputs and results are stored as JSONB.
type SimulationRepository struct {
	q Querier
}

// NewSimulationRepository creates a new PostgreSQL simulation repository.
func NewSimulationRepository(db *sql.DB) *SimulationRepository {
	return &SimulationRepository{q: db}
}

const simulationColumns = `id, inputs, results, allocated_orders, skipped_orders, created_at`

// Create stores a completed run.
func (r *SimulationRepository) Create(ctx context.Context, sim *domain.Simulation) error {
	inputs, err := json.Marshal(sim.Inputs)
	if err != nil {
		return fmt.Errorf("marshal inputs: %w", err)
	}
	results, err := json.Marshal(sim.Results)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	query := `INSERT INTO simulations (id, inputs, results, allocated_orders, skipped_orders)
		VALUES ($1, $2, $3, $4, $5) RETURNING created_at`
	err = r.q.QueryRowContext(ctx, query,
		sim.ID, inputs, results, sim.AllocatedOrders, sim.SkippedOrders,
	).Scan(&sim.CreatedAt)
	return translateError(err)
}

// GetByID retrieves a run by ID.
func (r *SimulationRepository) GetByID(ctx context.Context, id string) (*domain.Simulation, error) {
	query := `SELECT ` + simulationColumns + ` FROM simulations WHERE id = $1`

	sim, err := scanSimulation(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err)
	}
	return sim, nil
}

// ListRecent retrieves up to limit runs, newest first.
func (r *SimulationRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Simulation, error) {
	query := `SELECT ` + simulationColumns + ` FROM simulations ORDER BY created_at DESC, id LIMIT $1`
	rows, err := r.q.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sims := []*domain.Simulation{}
	for rows.Next() {
		sim, err := scanSimulation(rows)
		if err != nil {
			return nil, err
		}
		sims = append(sims, sim)
	}
	return sims, rows.Err()
}

// Latest retrieves the most recent run.
func (r *SimulationRepository) Latest(ctx context.Context) (*domain.Simulation, error) {
	query := `SELECT ` + simulationColumns + ` FROM simulations ORDER BY created_at DESC, id LIMIT 1`

	sim, err := scanSimulation(r.q.QueryRowContext(ctx, query))
	if err != nil {
		return nil, translateError(err)
	}
	return sim, nil
}

func scanSimulation(row rowScanner) (*domain.Simulation, error) {
	var sim domain.Simulation
	var inputs, results []byte
	if err := row.Scan(&sim.ID, &inputs, &results, &sim.AllocatedOrders, &sim.SkippedOrders, &sim.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(inputs, &sim.Inputs); err != nil {
		return nil, fmt.Errorf("unmarshal inputs: %w", err)
	}
	if err := json.Unmarshal(results, &sim.Results); err != nil {
		return nil, fmt.Errorf("unmarshal results: %w", err)
	}
	return &sim, nil
}
