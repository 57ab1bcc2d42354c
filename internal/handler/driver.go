package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"greencart/internal/domain"
	"greencart/internal/engine"
	"greencart/internal/service"
)

// DriverHandler handles HTTP requests for drivers.
type DriverHandler struct {
	fleetService *service.FleetService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(fleetService *service.FleetService) *DriverHandler {
	return &DriverHandler{fleetService: fleetService}
}

// DriverRequest is the HTTP request body for creating or updating a driver.
type DriverRequest struct {
	Name          string    `json:"name"`
	ShiftHours    float64   `json:"shift_hours"`
	PastWeekHours []float64 `json:"past_week_hours"`
}

// DriverResponse is the HTTP response for driver data.
type DriverResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	ShiftHours        float64   `json:"shift_hours"`
	PastWeekHours     []float64 `json:"past_week_hours"`
	AverageDailyHours float64   `json:"average_daily_hours"`
	Fatigued          bool      `json:"fatigued"`
	CreatedAt         string    `json:"created_at"`
}

func toDriverResponse(d *domain.Driver) DriverResponse {
	return DriverResponse{
		ID:                d.ID,
		Name:              d.Name,
		ShiftHours:        d.ShiftHours,
		PastWeekHours:     d.PastWeekHours,
		AverageDailyHours: d.AverageDailyHours(),
		Fatigued:          engine.IsFatigued(*d),
		CreatedAt:         d.CreatedAt.Format(time.RFC3339),
	}
}

// Create handles POST /v1/drivers
func (h *DriverHandler) Create(c *gin.Context) {
	var req DriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	driver := &domain.Driver{
		Name:          req.Name,
		ShiftHours:    req.ShiftHours,
		PastWeekHours: req.PastWeekHours,
	}
	if err := h.fleetService.CreateDriver(c.Request.Context(), driver); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toDriverResponse(driver))
}

// GetAll handles GET /v1/drivers
func (h *DriverHandler) GetAll(c *gin.Context) {
	drivers, err := h.fleetService.ListDrivers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		response = append(response, toDriverResponse(d))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /v1/drivers/:id
func (h *DriverHandler) Get(c *gin.Context) {
	driver, err := h.fleetService.GetDriver(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDriverResponse(driver))
}

// Update handles PUT /v1/drivers/:id
func (h *DriverHandler) Update(c *gin.Context) {
	var req DriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	driver := &domain.Driver{
		ID:            c.Param("id"),
		Name:          req.Name,
		ShiftHours:    req.ShiftHours,
		PastWeekHours: req.PastWeekHours,
	}
	ctx := c.Request.Context()
	if err := h.fleetService.UpdateDriver(ctx, driver); err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.fleetService.GetDriver(ctx, driver.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDriverResponse(updated))
}

// Delete handles DELETE /v1/drivers/:id
func (h *DriverHandler) Delete(c *gin.Context) {
	if err := h.fleetService.DeleteDriver(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
