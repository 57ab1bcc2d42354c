package domain

import (
	"errors"
	"math"
	"testing"
)

func TestIsClockTime(t *testing.T) {
	testCases := []struct {
		in   string
		want bool
	}{
		{"00:00", true},
		{"09:30", true},
		{"23:59", true},
		{"24:00", false},
		{"9:30", false},
		{"12:60", false},
		{"12-30", false},
		{"", false},
	}

	for _, tc := range testCases {
		if got := IsClockTime(tc.in); got != tc.want {
			t.Errorf("IsClockTime(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDriver_Validate(t *testing.T) {
	week := []float64{8, 7, 9, 8, 6, 8, 7}

	testCases := []struct {
		name    string
		driver  Driver
		wantErr bool
	}{
		{"valid", Driver{Name: "Amit", ShiftHours: 8, PastWeekHours: week}, false},
		{"missing name", Driver{ShiftHours: 8, PastWeekHours: week}, true},
		{"negative shift", Driver{Name: "Amit", ShiftHours: -1, PastWeekHours: week}, true},
		{"shift over a day", Driver{Name: "Amit", ShiftHours: 25, PastWeekHours: week}, true},
		{"six days", Driver{Name: "Amit", ShiftHours: 8, PastWeekHours: week[:6]}, true},
		{"day over 24", Driver{Name: "Amit", ShiftHours: 8, PastWeekHours: []float64{8, 8, 8, 8, 8, 8, 25}}, true},
		{"NaN shift", Driver{Name: "Amit", ShiftHours: math.NaN(), PastWeekHours: week}, true},
		{"NaN day", Driver{Name: "Amit", ShiftHours: 8, PastWeekHours: []float64{math.NaN(), 8, 8, 8, 8, 8, 8}}, true},
		{"infinite day", Driver{Name: "Amit", ShiftHours: 8, PastWeekHours: []float64{8, 8, 8, math.Inf(1), 8, 8, 8}}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.driver.Validate()
			if tc.wantErr && !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestRoute_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		route   Route
		wantErr bool
	}{
		{"valid", Route{RouteID: 1, DistanceKM: 10, TrafficLevel: TrafficLow, BaseTimeMin: 30}, false},
		{"zero distance", Route{RouteID: 1, TrafficLevel: TrafficHigh}, false},
		{"zero id", Route{RouteID: 0, DistanceKM: 10, TrafficLevel: TrafficLow, BaseTimeMin: 30}, true},
		{"negative distance", Route{RouteID: 1, DistanceKM: -1, TrafficLevel: TrafficLow, BaseTimeMin: 30}, true},
		{"unknown traffic", Route{RouteID: 1, DistanceKM: 10, TrafficLevel: "low", BaseTimeMin: 30}, true},
		{"negative base time", Route{RouteID: 1, DistanceKM: 10, TrafficLevel: TrafficLow, BaseTimeMin: -5}, true},
		{"NaN distance", Route{RouteID: 1, DistanceKM: math.NaN(), TrafficLevel: TrafficLow, BaseTimeMin: 30}, true},
		{"infinite distance", Route{RouteID: 1, DistanceKM: math.Inf(1), TrafficLevel: TrafficLow, BaseTimeMin: 30}, true},
		{"NaN base time", Route{RouteID: 1, DistanceKM: 10, TrafficLevel: TrafficLow, BaseTimeMin: math.NaN()}, true},
		{"infinite base time", Route{RouteID: 1, DistanceKM: 10, TrafficLevel: TrafficLow, BaseTimeMin: math.Inf(1)}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.route.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("wantErr=%v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestOrder_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		order   Order
		wantErr bool
	}{
		{"valid", Order{OrderID: "ORD001", ValueRs: 1250, RouteID: 101, DeliveryTime: "14:30"}, false},
		{"missing id", Order{ValueRs: 1250, RouteID: 101, DeliveryTime: "14:30"}, true},
		{"negative value", Order{OrderID: "ORD001", ValueRs: -1, RouteID: 101, DeliveryTime: "14:30"}, true},
		{"NaN value", Order{OrderID: "ORD001", ValueRs: math.NaN(), RouteID: 101, DeliveryTime: "14:30"}, true},
		{"infinite value", Order{OrderID: "ORD001", ValueRs: math.Inf(1), RouteID: 101, DeliveryTime: "14:30"}, true},
		{"zero route", Order{OrderID: "ORD001", ValueRs: 1, RouteID: 0, DeliveryTime: "14:30"}, true},
		{"bad time", Order{OrderID: "ORD001", ValueRs: 1, RouteID: 101, DeliveryTime: "2:30pm"}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.order.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("wantErr=%v, got %v", tc.wantErr, err)
			}
		})
	}
}
