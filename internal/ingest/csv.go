// Package ingest reads fleet data from CSV files and the built-in fixture.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"greencart/internal/domain"
)

// LineError describes a CSV record that was rejected.
type LineError struct {
	Line int
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e LineError) Unwrap() error {
	return e.Err
}

// ParseDrivers reads "name,shift_hours,past_week_hours" records, where
// past_week_hours is a pipe-separated list such as "8|7|9|8|6|8|7".
// Driver IDs are left empty.
func ParseDrivers(r io.Reader) ([]*domain.Driver, []LineError, error) {
	return parse(r, "name", 3, func(f []string) (*domain.Driver, error) {
		shift, err := parseNumber("shift_hours", f[1])
		if err != nil {
			return nil, err
		}
		hours, err := parseHours(f[2])
		if err != nil {
			return nil, err
		}
		d := &domain.Driver{Name: f[0], ShiftHours: shift, PastWeekHours: hours}
		if err := d.Validate(); err != nil {
			return nil, err
		}
		return d, nil
	})
}

// ParseRoutes reads "route_id,distance_km,traffic_level,base_time_min" records.
// A repeated route_id is rejected; the first occurrence is kept.
func ParseRoutes(r io.Reader) ([]*domain.Route, []LineError, error) {
	seen := make(map[int]bool)
	return parse(r, "route_id", 4, func(f []string) (*domain.Route, error) {
		id, err := strconv.Atoi(f[0])
		if err != nil {
			return nil, fmt.Errorf("route_id: %q is not an integer", f[0])
		}
		distance, err := parseNumber("distance_km", f[1])
		if err != nil {
			return nil, err
		}
		base, err := parseNumber("base_time_min", f[3])
		if err != nil {
			return nil, err
		}
		route := &domain.Route{
			RouteID:      id,
			DistanceKM:   distance,
			TrafficLevel: domain.TrafficLevel(f[2]),
			BaseTimeMin:  base,
		}
		if err := route.Validate(); err != nil {
			return nil, err
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate route_id %d", id)
		}
		seen[id] = true
		return route, nil
	})
}

// ParseOrders reads "order_id,value_rs,route_id,delivery_time" records.
// A repeated order_id is rejected; the first occurrence is kept.
func ParseOrders(r io.Reader) ([]*domain.Order, []LineError, error) {
	seen := make(map[string]bool)
	return parse(r, "order_id", 4, func(f []string) (*domain.Order, error) {
		value, err := parseNumber("value_rs", f[1])
		if err != nil {
			return nil, err
		}
		routeID, err := strconv.Atoi(f[2])
		if err != nil {
			return nil, fmt.Errorf("route_id: %q is not an integer", f[2])
		}
		order := &domain.Order{OrderID: f[0], ValueRs: value, RouteID: routeID, DeliveryTime: f[3]}
		if err := order.Validate(); err != nil {
			return nil, err
		}
		if seen[order.OrderID] {
			return nil, fmt.Errorf("duplicate order_id %q", order.OrderID)
		}
		seen[order.OrderID] = true
		return order, nil
	})
}

// parse reads records, skipping a leading header row whose first column is
// header. Records that fail build are reported and skipped.
func parse[T any](r io.Reader, header string, columns int, build func([]string) (T, error)) ([]T, []LineError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	items := []T{}
	var lineErrs []LineError
	first := true

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)

		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}

		if first {
			first = false
			if strings.EqualFold(record[0], header) {
				continue
			}
		}

		if len(record) != columns {
			lineErrs = append(lineErrs, LineError{Line: line, Err: fmt.Errorf("expected %d fields, got %d", columns, len(record))})
			continue
		}

		item, err := build(record)
		if err != nil {
			lineErrs = append(lineErrs, LineError{Line: line, Err: err})
			continue
		}
		items = append(items, item)
	}

	return items, lineErrs, nil
}

func parseNumber(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", field, s)
	}
	// ParseFloat accepts "NaN" and "Inf", which would slip through range checks.
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s: %q is not a finite number", field, s)
	}
	return v, nil
}

func parseHours(s string) ([]float64, error) {
	parts := strings.Split(s, "|")
	hours := make([]float64, 0, len(parts))
	for _, p := range parts {
		h, err := parseNumber("past_week_hours", strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		hours = append(hours, h)
	}
	return hours, nil
}
