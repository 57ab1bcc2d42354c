package domain

import "time"

// Allocation pairs an order with the driver it was assigned to.
// Route is always the resolved route of the order.
type Allocation struct {
	Order                    Order
	DriverID                 string
	Route                    Route
	EstimatedDeliveryMinutes int
}

// OrderScore is the outcome of applying the business rules to one allocation.
// Money fields are unrounded contributions.
type OrderScore struct {
	OrderID                  string  `json:"order_id"`
	DriverID                 string  `json:"driver_id"`
	RouteID                  int     `json:"route_id"`
	EstimatedDeliveryMinutes int     `json:"estimated_delivery_minutes"`
	FuelCost                 float64 `json:"fuel_cost"`
	Late                     bool    `json:"late"`
	Penalty                  float64 `json:"penalty"`
	Bonus                    float64 `json:"bonus"`
	Profit                   float64 `json:"profit"`
}

// KPIResult holds the aggregate outcome of a simulation.
type KPIResult struct {
	TotalProfit      float64 `json:"total_profit"`
	EfficiencyScore  float64 `json:"efficiency_score"`
	OnTimeDeliveries int     `json:"on_time_deliveries"`
	LateDeliveries   int     `json:"late_deliveries"`
	TotalFuelCost    float64 `json:"total_fuel_cost"`
	HighValueBonuses float64 `json:"high_value_bonuses"`
	LatePenalties    float64 `json:"late_penalties"`
	TotalDeliveries  int     `json:"total_deliveries"`
}

// SimulationInputs are the parameters a manager picks for a run.
type SimulationInputs struct {
	AvailableDrivers  int     `json:"available_drivers"`
	StartTime         string  `json:"start_time"`
	MaxHoursPerDriver float64 `json:"max_hours_per_driver"`
}

// Simulation is a persisted simulation run.
type Simulation struct {
	ID              string
	Inputs          SimulationInputs
	Results         KPIResult
	AllocatedOrders int
	SkippedOrders   int
	CreatedAt       time.Time
}
