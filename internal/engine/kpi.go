package engine

import "greencart/internal/domain"

const (
	fuelCostPerKM          = 5.0  // Base fuel cost per km
	highTrafficFuelPerKM   = 2.0  // Surcharge per km on High traffic routes
	lateGraceMinutes       = 10.0 // Tolerance over the route's base time
	latePenalty            = 50.0
	highValueThreshold     = 1000.0
	highValueBonusFraction = 0.1
)

// FuelCost returns the fuel cost of driving a route once.
func FuelCost(route domain.Route) float64 {
	cost := route.DistanceKM * fuelCostPerKM
	if route.TrafficLevel == domain.TrafficHigh {
		cost += route.DistanceKM * highTrafficFuelPerKM
	}
	return cost
}

// ScoreOrder applies the fuel, lateness, penalty and bonus rules to one allocation.
//
// An order is late when its estimate exceeds the route's unadjusted base time
// plus the grace window. Late orders pay the penalty; on-time orders above the
// high-value threshold earn the bonus. No order gets both.
func ScoreOrder(a domain.Allocation) domain.OrderScore {
	score := domain.OrderScore{
		OrderID:                  a.Order.OrderID,
		DriverID:                 a.DriverID,
		RouteID:                  a.Route.RouteID,
		EstimatedDeliveryMinutes: a.EstimatedDeliveryMinutes,
		FuelCost:                 FuelCost(a.Route),
		Late:                     float64(a.EstimatedDeliveryMinutes) > a.Route.BaseTimeMin+lateGraceMinutes,
	}

	profit := a.Order.ValueRs
	if score.Late {
		score.Penalty = latePenalty
		profit -= latePenalty
	} else if a.Order.ValueRs > highValueThreshold {
		score.Bonus = a.Order.ValueRs * highValueBonusFraction
		profit += score.Bonus
	}
	score.Profit = profit - score.FuelCost

	return score
}

// ComputeKPIs aggregates the scores of all allocations into a KPIResult.
// An empty input yields a zero result.
func ComputeKPIs(records []domain.Allocation) domain.KPIResult {
	return aggregate(scoreAll(records))
}

func scoreAll(records []domain.Allocation) []domain.OrderScore {
	scores := make([]domain.OrderScore, 0, len(records))
	for _, r := range records {
		scores = append(scores, ScoreOrder(r))
	}
	return scores
}

// aggregate sums per-order scores. Money totals are rounded once, at the end.
func aggregate(scores []domain.OrderScore) domain.KPIResult {
	var (
		result                         domain.KPIResult
		profit, fuel, bonuses, penalty float64
	)

	for _, s := range scores {
		fuel += s.FuelCost
		if s.Late {
			penalty += s.Penalty
			result.LateDeliveries++
		} else {
			result.OnTimeDeliveries++
			bonuses += s.Bonus
		}
		profit += s.Profit
	}

	result.TotalDeliveries = result.OnTimeDeliveries + result.LateDeliveries
	if result.TotalDeliveries > 0 {
		efficiency := float64(result.OnTimeDeliveries) / float64(result.TotalDeliveries) * 100
		result.EfficiencyScore = round2(efficiency)
	}

	result.TotalProfit = roundHalfUp(profit)
	result.TotalFuelCost = roundHalfUp(fuel)
	result.HighValueBonuses = roundHalfUp(bonuses)
	result.LatePenalties = penalty

	return result
}
