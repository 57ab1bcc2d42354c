package ingest

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"greencart/internal/domain"
)

//go:embed fixtures.yaml
var fixtureYAML []byte

type fixtureFile struct {
	Drivers []struct {
		Name          string    `yaml:"name"`
		ShiftHours    float64   `yaml:"shift_hours"`
		PastWeekHours []float64 `yaml:"past_week_hours"`
	} `yaml:"drivers"`
	Routes []struct {
		RouteID      int     `yaml:"route_id"`
		DistanceKM   float64 `yaml:"distance_km"`
		TrafficLevel string  `yaml:"traffic_level"`
		BaseTimeMin  float64 `yaml:"base_time_min"`
	} `yaml:"routes"`
	Orders []struct {
		OrderID      string  `yaml:"order_id"`
		ValueRs      float64 `yaml:"value_rs"`
		RouteID      int     `yaml:"route_id"`
		DeliveryTime string  `yaml:"delivery_time"`
	} `yaml:"orders"`
}

// Fixture is the built-in demo fleet.
type Fixture struct {
	Drivers []*domain.Driver
	Routes  []*domain.Route
	Orders  []*domain.Order
}

// LoadFixture decodes and validates the built-in demo fleet.
// Each call returns fresh values.
func LoadFixture() (*Fixture, error) {
	return decodeFixture(fixtureYAML)
}

func decodeFixture(data []byte) (*Fixture, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}

	fx := &Fixture{}
	for _, d := range file.Drivers {
		driver := &domain.Driver{Name: d.Name, ShiftHours: d.ShiftHours, PastWeekHours: d.PastWeekHours}
		if err := driver.Validate(); err != nil {
			return nil, fmt.Errorf("fixture driver %q: %w", d.Name, err)
		}
		fx.Drivers = append(fx.Drivers, driver)
	}
	for _, r := range file.Routes {
		route := &domain.Route{
			RouteID:      r.RouteID,
			DistanceKM:   r.DistanceKM,
			TrafficLevel: domain.TrafficLevel(r.TrafficLevel),
			BaseTimeMin:  r.BaseTimeMin,
		}
		if err := route.Validate(); err != nil {
			return nil, fmt.Errorf("fixture route %d: %w", r.RouteID, err)
		}
		fx.Routes = append(fx.Routes, route)
	}
	for _, o := range file.Orders {
		order := &domain.Order{OrderID: o.OrderID, ValueRs: o.ValueRs, RouteID: o.RouteID, DeliveryTime: o.DeliveryTime}
		if err := order.Validate(); err != nil {
			return nil, fmt.Errorf("fixture order %q: %w", o.OrderID, err)
		}
		fx.Orders = append(fx.Orders, order)
	}

	return fx, nil
}
