package domain

// Order represents a pending delivery order.
type Order struct {
	OrderID      string
	ValueRs      float64
	RouteID      int
	DeliveryTime string // "HH:MM", informational
}
