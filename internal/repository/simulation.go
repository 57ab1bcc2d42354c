package repository

import (
	"context"

	"greencart/internal/domain"
)

// SimulationRepository defines the persistence operations for simulation runs.
type SimulationRepository interface {
	// Create stores a completed run.
	Create(ctx context.Context, sim *domain.Simulation) error

	// GetByID retrieves a run by ID.
	GetByID(ctx context.Context, id string) (*domain.Simulation, error)

	// ListRecent retrieves up to limit runs, newest first.
	ListRecent(ctx context.Context, limit int) ([]*domain.Simulation, error)

	// Latest retrieves the most recent run, or ErrNotFound if none exist.
	Latest(ctx context.Context) (*domain.Simulation, error)
}
