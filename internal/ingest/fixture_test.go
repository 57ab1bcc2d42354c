package ingest

import "testing"

func TestLoadFixture(t *testing.T) {
	fx, err := LoadFixture()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fx.Drivers) != 3 || len(fx.Routes) != 3 || len(fx.Orders) != 3 {
		t.Fatalf("expected 3 of each, got %d drivers, %d routes, %d orders",
			len(fx.Drivers), len(fx.Routes), len(fx.Orders))
	}
	if fx.Drivers[2].AverageDailyHours() <= 8 {
		t.Errorf("expected %s to be fatigued", fx.Drivers[2].Name)
	}
}

func TestLoadFixture_FreshValues(t *testing.T) {
	a, err := LoadFixture()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a.Orders[0].ValueRs = 0

	b, err := LoadFixture()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Orders[0].ValueRs != 1250 {
		t.Errorf("expected an independent copy, got value %v", b.Orders[0].ValueRs)
	}
}

func TestDecodeFixture_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{"bad yaml", "drivers: [\n"},
		{"bad driver", "drivers:\n  - name: X\n    past_week_hours: [8]\n"},
		{"bad route", "routes:\n  - route_id: 1\n    traffic_level: Jammed\n"},
		{"bad order", "orders:\n  - order_id: A\n    route_id: 1\n    delivery_time: noon\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := decodeFixture([]byte(tc.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
