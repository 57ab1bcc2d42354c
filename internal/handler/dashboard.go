package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"greencart/internal/domain"
	"greencart/internal/service"
)

// DashboardHandler handles HTTP requests for the dashboard.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// FleetCounts is the number of stored drivers, routes and orders.
type FleetCounts struct {
	Drivers int `json:"drivers"`
	Routes  int `json:"routes"`
	Orders  int `json:"orders"`
}

// DashboardResponse is the HTTP response for GET /v1/dashboard/kpis.
type DashboardResponse struct {
	HasSimulation bool             `json:"has_simulation"`
	SimulationID  string           `json:"simulation_id,omitempty"`
	LastRunAt     string           `json:"last_run_at,omitempty"`
	Source        string           `json:"source"`
	KPIs          domain.KPIResult `json:"kpis"`
	Counts        FleetCounts      `json:"counts"`
}

// KPIs handles GET /v1/dashboard/kpis
func (h *DashboardHandler) KPIs(c *gin.Context) {
	snap, err := h.dashboardService.KPIs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := DashboardResponse{
		HasSimulation: snap.HasSimulation,
		SimulationID:  snap.SimulationID,
		Source:        snap.Source,
		KPIs:          snap.KPIs,
		Counts: FleetCounts{
			Drivers: snap.Drivers,
			Routes:  snap.Routes,
			Orders:  snap.Orders,
		},
	}
	if !snap.LastRunAt.IsZero() {
		response.LastRunAt = snap.LastRunAt.Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, response)
}

// Trend handles GET /v1/dashboard/trend
func (h *DashboardHandler) Trend(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		respondBadRequest(c, "limit must be a positive integer")
		return
	}

	points, err := h.dashboardService.Trend(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}
