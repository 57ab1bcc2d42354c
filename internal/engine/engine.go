package engine

import "greencart/internal/domain"

// Snapshot is a read-only view of the data a simulation runs over.
// Drivers must already be limited to the drivers available for the run.
type Snapshot struct {
	Drivers []domain.Driver
	Routes  []domain.Route
	Orders  []domain.Order
}

// DriverLoad is the work a driver received in a run.
type DriverLoad struct {
	DriverID string  `json:"driver_id"`
	Orders   int     `json:"orders"`
	Hours    float64 `json:"hours"`
}

// Outcome is the complete result of a simulation run.
type Outcome struct {
	Allocations []domain.Allocation
	Scores      []domain.OrderScore
	KPIs        domain.KPIResult
	DriverLoads []DriverLoad
	Skipped     int
}

// Run allocates the snapshot's orders and scores the allocations.
// maxHoursPerDriver must be positive; callers validate it.
func Run(snap Snapshot, maxHoursPerDriver float64) Outcome {
	allocations := Allocate(snap.Drivers, snap.Routes, snap.Orders, maxHoursPerDriver)
	scores := scoreAll(allocations)

	return Outcome{
		Allocations: allocations,
		Scores:      scores,
		KPIs:        aggregate(scores),
		DriverLoads: driverLoads(snap.Drivers, allocations),
		Skipped:     len(snap.Orders) - len(allocations),
	}
}

// driverLoads reports per-driver work in roster order.
func driverLoads(drivers []domain.Driver, allocations []domain.Allocation) []DriverLoad {
	loads := make([]DriverLoad, len(drivers))
	pos := make(map[string]int, len(drivers))
	for i, d := range drivers {
		loads[i].DriverID = d.ID
		if _, exists := pos[d.ID]; !exists {
			pos[d.ID] = i
		}
	}

	for _, a := range allocations {
		i := pos[a.DriverID]
		loads[i].Orders++
		loads[i].Hours += a.Route.BaseTimeMin / 60
	}

	return loads
}
