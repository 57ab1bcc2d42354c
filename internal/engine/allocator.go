// Package engine implements the allocation-and-scoring rules of a delivery
// simulation. Every function is pure: it reads its input snapshots, never
// mutates them, and returns the same output for the same input.
package engine

import "greencart/internal/domain"

const (
	// fatigueThresholdHours is the average daily hours above which a driver is fatigued.
	fatigueThresholdHours = 8.0
	// fatigueSlowdown is the delivery time multiplier for fatigued drivers.
	fatigueSlowdown = 1.3
)

// IsFatigued reports whether the driver's past week shows overwork.
// It depends only on the driver's history, never on load within a run.
func IsFatigued(driver domain.Driver) bool {
	return driver.AverageDailyHours() > fatigueThresholdHours
}

// EstimateDeliveryMinutes returns the expected delivery duration of a route
// when driven by the given driver.
func EstimateDeliveryMinutes(driver domain.Driver, route domain.Route) int {
	minutes := route.BaseTimeMin
	if IsFatigued(driver) {
		minutes *= fatigueSlowdown
	}
	return int(roundHalfUp(minutes))
}

// Allocate assigns orders to drivers using first-fit in input order.
//
// Orders are processed in the order given; that order is the priority. Each
// order goes to the first driver whose allocated hours plus the route's base
// time stay within maxHoursPerDriver. Orders whose route is unknown, and
// orders no driver can take, are left out of the result.
func Allocate(drivers []domain.Driver, routes []domain.Route, orders []domain.Order, maxHoursPerDriver float64) []domain.Allocation {
	routeByID := indexRoutes(routes)
	workHours := make([]float64, len(drivers))
	allocations := make([]domain.Allocation, 0, len(orders))

	for _, order := range orders {
		route, ok := routeByID[order.RouteID]
		if !ok {
			continue
		}

		routeHours := route.BaseTimeMin / 60
		idx := findAvailableDriver(workHours, routeHours, maxHoursPerDriver)
		if idx == -1 {
			continue
		}

		driver := drivers[idx]
		workHours[idx] += routeHours

		allocations = append(allocations, domain.Allocation{
			Order:                    order,
			DriverID:                 driver.ID,
			Route:                    route,
			EstimatedDeliveryMinutes: EstimateDeliveryMinutes(driver, route),
		})
	}

	return allocations
}

// findAvailableDriver returns the index of the first driver with enough
// remaining hours, or -1.
func findAvailableDriver(workHours []float64, routeHours, maxHours float64) int {
	for i, h := range workHours {
		if h+routeHours <= maxHours {
			return i
		}
	}
	return -1
}

// indexRoutes maps route IDs to routes. The first route wins on duplicates.
func indexRoutes(routes []domain.Route) map[int]domain.Route {
	byID := make(map[int]domain.Route, len(routes))
	for _, r := range routes {
		if _, exists := byID[r.RouteID]; !exists {
			byID[r.RouteID] = r
		}
	}
	return byID
}
