package engine_test

import (
	"testing"

	"greencart/internal/domain"
	"greencart/internal/engine"
)

func rested(id string) domain.Driver {
	return domain.Driver{ID: id, PastWeekHours: []float64{8, 8, 8, 8, 8, 8, 8}}
}

func fatigued(id string) domain.Driver {
	return domain.Driver{ID: id, PastWeekHours: []float64{10, 10, 10, 10, 10, 9, 9}}
}

func TestIsFatigued(t *testing.T) {
	testCases := []struct {
		name  string
		hours []float64
		want  bool
	}{
		{"exactly eight is not fatigued", []float64{8, 8, 8, 8, 8, 8, 8}, false},
		{"above eight is fatigued", []float64{10, 10, 10, 10, 10, 9, 9}, true},
		{"order does not matter", []float64{9, 9, 10, 10, 10, 10, 10}, true},
		{"light week", []float64{6, 6, 8, 7, 5, 6, 6}, false},
		{"empty history averages to zero", nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := engine.IsFatigued(domain.Driver{PastWeekHours: tc.hours})
			if got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestEstimateDeliveryMinutes(t *testing.T) {
	testCases := []struct {
		name   string
		driver domain.Driver
		base   float64
		want   int
	}{
		{"rested keeps base time", rested("d1"), 30, 30},
		{"fatigued adds thirty percent", fatigued("d1"), 30, 39},
		{"fatigued rounds half up", fatigued("d1"), 25, 33},
		{"fatigued short route", fatigued("d1"), 20, 26},
		{"rested rounds fractional base", rested("d1"), 12.5, 13},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := engine.EstimateDeliveryMinutes(tc.driver, domain.Route{BaseTimeMin: tc.base})
			if got != tc.want {
				t.Errorf("expected %d minutes, got %d", tc.want, got)
			}
		})
	}
}

func TestAllocate_FirstFitInInputOrder(t *testing.T) {
	drivers := []domain.Driver{rested("d1"), rested("d2")}
	routes := []domain.Route{{RouteID: 1, BaseTimeMin: 60}}
	orders := []domain.Order{
		{OrderID: "o1", RouteID: 1},
		{OrderID: "o2", RouteID: 1},
		{OrderID: "o3", RouteID: 1},
	}

	// Each driver can take two one-hour routes.
	got := engine.Allocate(drivers, routes, orders, 2)

	if len(got) != 3 {
		t.Fatalf("expected 3 allocations, got %d", len(got))
	}
	wantDrivers := []string{"d1", "d1", "d2"}
	for i, a := range got {
		if a.Order.OrderID != orders[i].OrderID {
			t.Errorf("allocation %d: expected order %s, got %s", i, orders[i].OrderID, a.Order.OrderID)
		}
		if a.DriverID != wantDrivers[i] {
			t.Errorf("allocation %d: expected driver %s, got %s", i, wantDrivers[i], a.DriverID)
		}
	}
}

func TestAllocate_SkipsOrdersWithUnknownRoute(t *testing.T) {
	drivers := []domain.Driver{rested("d1")}
	routes := []domain.Route{{RouteID: 1, BaseTimeMin: 30}}
	orders := []domain.Order{
		{OrderID: "o1", RouteID: 99},
		{OrderID: "o2", RouteID: 1},
	}

	got := engine.Allocate(drivers, routes, orders, 8)

	if len(got) != 1 {
		t.Fatalf("expected 1 allocation, got %d", len(got))
	}
	if got[0].Order.OrderID != "o2" {
		t.Errorf("expected o2, got %s", got[0].Order.OrderID)
	}
}

func TestAllocate_SkipsUnassignableAndContinues(t *testing.T) {
	drivers := []domain.Driver{rested("d1")}
	routes := []domain.Route{
		{RouteID: 1, BaseTimeMin: 120},
		{RouteID: 2, BaseTimeMin: 30},
	}
	orders := []domain.Order{
		{OrderID: "long", RouteID: 1},
		{OrderID: "short", RouteID: 2},
	}

	got := engine.Allocate(drivers, routes, orders, 1)

	if len(got) != 1 || got[0].Order.OrderID != "short" {
		t.Fatalf("expected only the short order to be allocated, got %+v", got)
	}
}

func TestAllocate_FillsExactlyToCap(t *testing.T) {
	drivers := []domain.Driver{rested("d1")}
	routes := []domain.Route{{RouteID: 1, BaseTimeMin: 30}}
	orders := make([]domain.Order, 5)
	for i := range orders {
		orders[i] = domain.Order{OrderID: string(rune('a' + i)), RouteID: 1}
	}

	got := engine.Allocate(drivers, routes, orders, 2)

	if len(got) != 4 {
		t.Errorf("expected 4 half-hour orders within 2 hours, got %d", len(got))
	}
}

func TestAllocate_FatigueUsesHistoryNotLoad(t *testing.T) {
	drivers := []domain.Driver{rested("d1")}
	routes := []domain.Route{{RouteID: 1, BaseTimeMin: 60}}
	orders := make([]domain.Order, 10)
	for i := range orders {
		orders[i] = domain.Order{OrderID: string(rune('a' + i)), RouteID: 1}
	}

	got := engine.Allocate(drivers, routes, orders, 10)

	for _, a := range got {
		if a.EstimatedDeliveryMinutes != 60 {
			t.Fatalf("expected 60 minutes regardless of in-run load, got %d", a.EstimatedDeliveryMinutes)
		}
	}
}

func TestAllocate_DoesNotMutateInputs(t *testing.T) {
	drivers := []domain.Driver{fatigued("d1")}
	routes := []domain.Route{{RouteID: 1, BaseTimeMin: 30, DistanceKM: 10}}
	orders := []domain.Order{{OrderID: "o1", RouteID: 1, ValueRs: 500}}

	_ = engine.Allocate(drivers, routes, orders, 8)

	if routes[0].BaseTimeMin != 30 {
		t.Errorf("route base time mutated: %v", routes[0].BaseTimeMin)
	}
	if drivers[0].PastWeekHours[0] != 10 {
		t.Errorf("driver history mutated: %v", drivers[0].PastWeekHours)
	}
}

func TestAllocate_EmptyInputs(t *testing.T) {
	if got := engine.Allocate(nil, nil, nil, 8); len(got) != 0 {
		t.Errorf("expected no allocations, got %d", len(got))
	}

	orders := []domain.Order{{OrderID: "o1", RouteID: 1}}
	routes := []domain.Route{{RouteID: 1, BaseTimeMin: 30}}
	if got := engine.Allocate(nil, routes, orders, 8); len(got) != 0 {
		t.Errorf("expected no allocations without drivers, got %d", len(got))
	}
}
