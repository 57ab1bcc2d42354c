package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the API.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, route and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// SimulationsTotal counts simulation runs by outcome.
	SimulationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "greencart_simulations_total", Help: "Simulation runs by outcome."},
		[]string{"outcome"},
	)
	// SimulationDuration records engine run time in seconds.
	SimulationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "greencart_simulation_duration_seconds",
			Help:    "Time spent allocating and scoring a simulation.",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		},
	)
	// OrdersProcessed counts orders seen by the allocator, split by result.
	OrdersProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "greencart_orders_processed_total", Help: "Orders processed by simulations."},
		[]string{"result"},
	)
	// LastEfficiency is the efficiency score of the most recent run.
	LastEfficiency = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "greencart_last_efficiency_score", Help: "Efficiency score of the latest simulation."},
	)
	// LastProfit is the total profit of the most recent run.
	LastProfit = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "greencart_last_total_profit", Help: "Total profit of the latest simulation."},
	)
	// SeedImports counts fleet imports by outcome.
	SeedImports = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "greencart_seed_imports_total", Help: "Fleet imports by outcome."},
		[]string{"outcome"},
	)
)

// Register registers all collectors on Registry. Safe to call more than once.
func Register() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(SimulationsTotal)
		Registry.MustRegister(SimulationDuration)
		Registry.MustRegister(OrdersProcessed)
		Registry.MustRegister(LastEfficiency)
		Registry.MustRegister(LastProfit)
		Registry.MustRegister(SeedImports)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
