package domain

import (
	"errors"
	"fmt"
	"math"
	"regexp"
)

// ErrValidation is wrapped by every validation failure.
var ErrValidation = errors.New("validation failed")

const maxHoursPerDay = 24

var clockTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// IsClockTime reports whether s is a 24-hour "HH:MM" time.
func IsClockTime(s string) bool {
	return clockTimePattern.MatchString(s)
}

// isFinite reports whether v is neither NaN nor an infinity.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// within reports whether v is a finite number in [lo, hi].
func within(v, lo, hi float64) bool {
	return isFinite(v) && v >= lo && v <= hi
}

// nonNegative reports whether v is a finite number >= 0.
func nonNegative(v float64) bool {
	return isFinite(v) && v >= 0
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Validate checks the driver's attributes.
func (d Driver) Validate() error {
	if d.Name == "" {
		return invalid("driver name is required")
	}
	if !within(d.ShiftHours, 0, maxHoursPerDay) {
		return invalid("shift_hours must be between 0 and %d", maxHoursPerDay)
	}
	if len(d.PastWeekHours) != DaysOfHistory {
		return invalid("past_week_hours must have %d entries, got %d", DaysOfHistory, len(d.PastWeekHours))
	}
	for i, h := range d.PastWeekHours {
		if !within(h, 0, maxHoursPerDay) {
			return invalid("past_week_hours[%d] must be between 0 and %d", i, maxHoursPerDay)
		}
	}
	return nil
}

// Validate checks the route's attributes.
func (r Route) Validate() error {
	if r.RouteID <= 0 {
		return invalid("route_id must be positive")
	}
	if !nonNegative(r.DistanceKM) {
		return invalid("distance_km must be a non-negative number")
	}
	if !r.TrafficLevel.Valid() {
		return invalid("traffic_level must be Low, Medium or High, got %q", r.TrafficLevel)
	}
	if !nonNegative(r.BaseTimeMin) {
		return invalid("base_time_min must be a non-negative number")
	}
	return nil
}

// Validate checks the order's attributes. The route is not required to exist.
func (o Order) Validate() error {
	if o.OrderID == "" {
		return invalid("order_id is required")
	}
	if !nonNegative(o.ValueRs) {
		return invalid("value_rs must be a non-negative number")
	}
	if o.RouteID <= 0 {
		return invalid("route_id must be positive")
	}
	if !IsClockTime(o.DeliveryTime) {
		return invalid("delivery_time must be HH:MM, got %q", o.DeliveryTime)
	}
	return nil
}
