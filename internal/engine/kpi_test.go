package engine_test

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"greencart/internal/domain"
	"greencart/internal/engine"
)

func TestFuelCost(t *testing.T) {
	testCases := []struct {
		traffic domain.TrafficLevel
		want    float64
	}{
		{domain.TrafficLow, 50},
		{domain.TrafficMedium, 50},
		{domain.TrafficHigh, 70},
	}

	for _, tc := range testCases {
		t.Run(string(tc.traffic), func(t *testing.T) {
			got := engine.FuelCost(domain.Route{DistanceKM: 10, TrafficLevel: tc.traffic})
			if got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestScenarioA_RestedDriverOnTime(t *testing.T) {
	snap := engine.Snapshot{
		Drivers: []domain.Driver{rested("d1")},
		Routes:  []domain.Route{{RouteID: 1, DistanceKM: 10, TrafficLevel: domain.TrafficLow, BaseTimeMin: 30}},
		Orders:  []domain.Order{{OrderID: "o1", ValueRs: 500, RouteID: 1}},
	}

	out := engine.Run(snap, 8)

	if len(out.Allocations) != 1 {
		t.Fatalf("expected 1 allocation, got %d", len(out.Allocations))
	}
	if out.Allocations[0].EstimatedDeliveryMinutes != 30 {
		t.Errorf("expected 30 minutes, got %d", out.Allocations[0].EstimatedDeliveryMinutes)
	}
	want := domain.KPIResult{
		TotalProfit:      450,
		EfficiencyScore:  100,
		OnTimeDeliveries: 1,
		TotalFuelCost:    50,
		TotalDeliveries:  1,
	}
	if out.KPIs != want {
		t.Errorf("expected %+v, got %+v", want, out.KPIs)
	}
}

func TestScenarioB_FatigueInsideGraceWindow(t *testing.T) {
	records := engine.Allocate(
		[]domain.Driver{fatigued("d1")},
		[]domain.Route{{RouteID: 1, DistanceKM: 10, TrafficLevel: domain.TrafficLow, BaseTimeMin: 30}},
		[]domain.Order{{OrderID: "o1", ValueRs: 500, RouteID: 1}},
		8,
	)

	if records[0].EstimatedDeliveryMinutes != 39 {
		t.Fatalf("expected 39 minutes, got %d", records[0].EstimatedDeliveryMinutes)
	}
	kpis := engine.ComputeKPIs(records)
	if kpis.OnTimeDeliveries != 1 || kpis.LateDeliveries != 0 {
		t.Errorf("expected on time, got %+v", kpis)
	}
}

func TestScenarioC_GraceWindowUsesUnadjustedBase(t *testing.T) {
	testCases := []struct {
		base    float64
		wantEst int
	}{
		{25, 33},
		{20, 26},
	}

	for _, tc := range testCases {
		records := engine.Allocate(
			[]domain.Driver{fatigued("d1")},
			[]domain.Route{{RouteID: 1, DistanceKM: 10, TrafficLevel: domain.TrafficLow, BaseTimeMin: tc.base}},
			[]domain.Order{{OrderID: "o1", ValueRs: 500, RouteID: 1}},
			8,
		)
		if records[0].EstimatedDeliveryMinutes != tc.wantEst {
			t.Errorf("base %v: expected %d minutes, got %d", tc.base, tc.wantEst, records[0].EstimatedDeliveryMinutes)
		}
		if score := engine.ScoreOrder(records[0]); score.Late {
			t.Errorf("base %v: expected on time, got late", tc.base)
		}
	}
}

func TestScenarioD_HighValueBonus(t *testing.T) {
	records := engine.Allocate(
		[]domain.Driver{rested("d1")},
		[]domain.Route{{RouteID: 1, DistanceKM: 10, TrafficLevel: domain.TrafficLow, BaseTimeMin: 30}},
		[]domain.Order{{OrderID: "o1", ValueRs: 1500, RouteID: 1}},
		8,
	)

	kpis := engine.ComputeKPIs(records)

	if kpis.HighValueBonuses != 150 {
		t.Errorf("expected bonus 150, got %v", kpis.HighValueBonuses)
	}
	if kpis.TotalProfit != 1500-50+150 {
		t.Errorf("expected profit 1600, got %v", kpis.TotalProfit)
	}
}

func TestScenarioE_NoCapacity(t *testing.T) {
	snap := engine.Snapshot{
		Drivers: []domain.Driver{rested("d1")},
		Routes:  []domain.Route{{RouteID: 1, DistanceKM: 10, TrafficLevel: domain.TrafficLow, BaseTimeMin: 120}},
		Orders:  []domain.Order{{OrderID: "o1", ValueRs: 500, RouteID: 1}},
	}

	out := engine.Run(snap, 1)

	if len(out.Allocations) != 0 {
		t.Errorf("expected no allocations, got %d", len(out.Allocations))
	}
	if out.KPIs != (domain.KPIResult{}) {
		t.Errorf("expected zero KPIs, got %+v", out.KPIs)
	}
	if out.Skipped != 1 {
		t.Errorf("expected 1 skipped order, got %d", out.Skipped)
	}
}

func TestScoreOrder_LatePaysPenaltyAndNoBonus(t *testing.T) {
	a := domain.Allocation{
		Order:                    domain.Order{OrderID: "o1", ValueRs: 2000, RouteID: 1},
		DriverID:                 "d1",
		Route:                    domain.Route{RouteID: 1, DistanceKM: 20, TrafficLevel: domain.TrafficHigh, BaseTimeMin: 40},
		EstimatedDeliveryMinutes: 52,
	}

	got := engine.ScoreOrder(a)

	if !got.Late {
		t.Fatal("expected 52 > 40+10 to be late")
	}
	if got.Bonus != 0 {
		t.Errorf("expected no bonus on a late order, got %v", got.Bonus)
	}
	if got.Penalty != 50 {
		t.Errorf("expected penalty 50, got %v", got.Penalty)
	}
	if got.FuelCost != 140 {
		t.Errorf("expected fuel 140, got %v", got.FuelCost)
	}
	if got.Profit != 2000-50-140 {
		t.Errorf("expected profit 1810, got %v", got.Profit)
	}
}

func TestScoreOrder_BonusNeedsValueAboveThreshold(t *testing.T) {
	a := domain.Allocation{
		Order:                    domain.Order{OrderID: "o1", ValueRs: 1000, RouteID: 1},
		Route:                    domain.Route{RouteID: 1, DistanceKM: 1, BaseTimeMin: 10},
		EstimatedDeliveryMinutes: 10,
	}

	if got := engine.ScoreOrder(a); got.Bonus != 0 {
		t.Errorf("expected no bonus at exactly 1000, got %v", got.Bonus)
	}
}

func TestComputeKPIs_Empty(t *testing.T) {
	got := engine.ComputeKPIs(nil)
	if got != (domain.KPIResult{}) {
		t.Errorf("expected zero result, got %+v", got)
	}
}

func TestComputeKPIs_RoundsTotalsOnce(t *testing.T) {
	route := domain.Route{RouteID: 1, DistanceKM: 0.1, TrafficLevel: domain.TrafficLow, BaseTimeMin: 10}
	records := make([]domain.Allocation, 3)
	for i := range records {
		records[i] = domain.Allocation{
			Order:                    domain.Order{OrderID: "o", ValueRs: 10, RouteID: 1},
			Route:                    route,
			EstimatedDeliveryMinutes: 10,
		}
	}

	got := engine.ComputeKPIs(records)

	// Each order costs 0.5 in fuel; rounding per order would give 3.
	if got.TotalFuelCost != 2 {
		t.Errorf("expected fuel rounded once to 2, got %v", got.TotalFuelCost)
	}
	if got.TotalProfit != 29 {
		t.Errorf("expected profit 28.5 rounded to 29, got %v", got.TotalProfit)
	}
}

func TestComputeKPIs_NegativeProfitRoundsHalfUp(t *testing.T) {
	// 52.5 value, 50 penalty and 5 fuel leave a profit of -2.5.
	late := domain.Allocation{
		Order:                    domain.Order{OrderID: "o", ValueRs: 52.5, RouteID: 1},
		Route:                    domain.Route{RouteID: 1, DistanceKM: 1, TrafficLevel: domain.TrafficLow, BaseTimeMin: 10},
		EstimatedDeliveryMinutes: 21,
	}

	got := engine.ComputeKPIs([]domain.Allocation{late})

	if got.LateDeliveries != 1 || got.LatePenalties != 50 {
		t.Fatalf("expected one late delivery with 50 penalty, got %+v", got)
	}
	if got.TotalFuelCost != 5 {
		t.Errorf("expected fuel 5, got %v", got.TotalFuelCost)
	}
	// Half-up rounds toward positive infinity: -2.5 becomes -2, not -3.
	if got.TotalProfit != -2 {
		t.Errorf("expected profit -2.5 rounded to -2, got %v", got.TotalProfit)
	}
}

func TestComputeKPIs_EfficiencyTwoDecimals(t *testing.T) {
	onTime := domain.Allocation{
		Order:                    domain.Order{ValueRs: 100, RouteID: 1},
		Route:                    domain.Route{RouteID: 1, BaseTimeMin: 30},
		EstimatedDeliveryMinutes: 30,
	}
	late := onTime
	late.EstimatedDeliveryMinutes = 41

	got := engine.ComputeKPIs([]domain.Allocation{onTime, onTime, late})

	if got.EfficiencyScore != 66.67 {
		t.Errorf("expected 66.67, got %v", got.EfficiencyScore)
	}
	if got.LatePenalties != 50 || got.LateDeliveries != 1 {
		t.Errorf("expected one late delivery with 50 penalty, got %+v", got)
	}
}

// randomSnapshot builds a reproducible mixed workload.
func randomSnapshot(seed int64) engine.Snapshot {
	rng := rand.New(rand.NewSource(seed))
	levels := []domain.TrafficLevel{domain.TrafficLow, domain.TrafficMedium, domain.TrafficHigh}

	var snap engine.Snapshot
	for i := 0; i < 1+rng.Intn(5); i++ {
		hours := make([]float64, domain.DaysOfHistory)
		for d := range hours {
			hours[d] = float64(5 + rng.Intn(7))
		}
		snap.Drivers = append(snap.Drivers, domain.Driver{ID: string(rune('A' + i)), PastWeekHours: hours})
	}
	for i := 1; i <= 6; i++ {
		snap.Routes = append(snap.Routes, domain.Route{
			RouteID:      i,
			DistanceKM:   float64(rng.Intn(30)),
			TrafficLevel: levels[rng.Intn(len(levels))],
			BaseTimeMin:  float64(15 + rng.Intn(100)),
		})
	}
	for i := 0; i < 40; i++ {
		snap.Orders = append(snap.Orders, domain.Order{
			OrderID: string(rune('a' + i)),
			ValueRs: float64(rng.Intn(3000)),
			RouteID: 1 + rng.Intn(8), // Some routes do not exist.
		})
	}
	return snap
}

func TestRun_Invariants(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		snap := randomSnapshot(seed)
		maxHours := float64(1 + seed%8)

		out := engine.Run(snap, maxHours)
		kpis := out.KPIs

		if kpis.OnTimeDeliveries+kpis.LateDeliveries != kpis.TotalDeliveries {
			t.Errorf("seed %d: on time + late != total: %+v", seed, kpis)
		}
		if kpis.TotalDeliveries != len(out.Allocations) {
			t.Errorf("seed %d: total %d != allocations %d", seed, kpis.TotalDeliveries, len(out.Allocations))
		}
		if out.Skipped != len(snap.Orders)-len(out.Allocations) {
			t.Errorf("seed %d: skipped count mismatch", seed)
		}

		wantEff := 0.0
		if kpis.TotalDeliveries > 0 {
			ratio := float64(kpis.OnTimeDeliveries) / float64(kpis.TotalDeliveries) * 100
			wantEff = math.Floor(ratio*100+0.5) / 100
		}
		if math.Abs(kpis.EfficiencyScore-wantEff) > 1e-9 {
			t.Errorf("seed %d: efficiency %v, want %v", seed, kpis.EfficiencyScore, wantEff)
		}

		for _, load := range out.DriverLoads {
			if load.Hours > maxHours+1e-9 {
				t.Errorf("seed %d: driver %s has %v hours over cap %v", seed, load.DriverID, load.Hours, maxHours)
			}
		}

		known := make(map[int]bool)
		for _, r := range snap.Routes {
			known[r.RouteID] = true
		}
		for _, a := range out.Allocations {
			if !known[a.Order.RouteID] {
				t.Errorf("seed %d: order %s with unknown route %d allocated", seed, a.Order.OrderID, a.Order.RouteID)
			}
		}

		for _, s := range out.Scores {
			if s.Bonus > 0 && s.Penalty > 0 {
				t.Errorf("seed %d: order %s has both bonus and penalty", seed, s.OrderID)
			}
		}
	}
}

func TestRun_Deterministic(t *testing.T) {
	snap := randomSnapshot(42)

	first := engine.Run(snap, 6)
	second := engine.Run(snap, 6)

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical outcomes for identical inputs")
	}
}

func TestRun_DriverLoadsInRosterOrder(t *testing.T) {
	snap := engine.Snapshot{
		Drivers: []domain.Driver{rested("d1"), rested("d2"), rested("d3")},
		Routes:  []domain.Route{{RouteID: 1, BaseTimeMin: 90}},
		Orders:  []domain.Order{{OrderID: "o1", RouteID: 1}, {OrderID: "o2", RouteID: 1}},
	}

	out := engine.Run(snap, 2)

	want := []engine.DriverLoad{
		{DriverID: "d1", Orders: 1, Hours: 1.5},
		{DriverID: "d2", Orders: 1, Hours: 1.5},
		{DriverID: "d3"},
	}
	if !reflect.DeepEqual(out.DriverLoads, want) {
		t.Errorf("expected %+v, got %+v", want, out.DriverLoads)
	}
}
