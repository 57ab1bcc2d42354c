package domain

import "time"

// DaysOfHistory is the number of daily-hour entries kept per driver.
const DaysOfHistory = 7

// Driver represents a delivery driver on the roster.
type Driver struct {
	ID            string
	Name          string
	ShiftHours    float64   // Contracted hours, informational only
	PastWeekHours []float64 // Exactly DaysOfHistory entries
	CreatedAt     time.Time
}

// AverageDailyHours returns the mean of the past week's daily hours.
// The divisor is always DaysOfHistory.
func (d Driver) AverageDailyHours() float64 {
	var sum float64
	for _, h := range d.PastWeekHours {
		sum += h
	}
	return sum / DaysOfHistory
}
