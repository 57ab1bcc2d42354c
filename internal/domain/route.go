package domain

// TrafficLevel represents the congestion level of a route.
type TrafficLevel string

const (
	TrafficLow    TrafficLevel = "Low"
	TrafficMedium TrafficLevel = "Medium"
	TrafficHigh   TrafficLevel = "High"
)

// Valid reports whether the traffic level is one of the known levels.
func (t TrafficLevel) Valid() bool {
	switch t {
	case TrafficLow, TrafficMedium, TrafficHigh:
		return true
	}
	return false
}

// Route represents a delivery route in the catalog.
type Route struct {
	RouteID      int
	DistanceKM   float64
	TrafficLevel TrafficLevel
	BaseTimeMin  float64 // Expected duration under nominal conditions
}
