package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"greencart/internal/domain"
	"greencart/internal/service"
)

// RouteHandler handles HTTP requests for routes.
type RouteHandler struct {
	fleetService *service.FleetService
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(fleetService *service.FleetService) *RouteHandler {
	return &RouteHandler{fleetService: fleetService}
}

// RouteRequest is the HTTP request body for creating or updating a route.
// RouteID is ignored on update.
type RouteRequest struct {
	RouteID      int     `json:"route_id"`
	DistanceKM   float64 `json:"distance_km"`
	TrafficLevel string  `json:"traffic_level"`
	BaseTimeMin  float64 `json:"base_time_min"`
}

// RouteResponse is the HTTP response for route data.
type RouteResponse struct {
	RouteID      int     `json:"route_id"`
	DistanceKM   float64 `json:"distance_km"`
	TrafficLevel string  `json:"traffic_level"`
	BaseTimeMin  float64 `json:"base_time_min"`
}

func toRouteResponse(r *domain.Route) RouteResponse {
	return RouteResponse{
		RouteID:      r.RouteID,
		DistanceKM:   r.DistanceKM,
		TrafficLevel: string(r.TrafficLevel),
		BaseTimeMin:  r.BaseTimeMin,
	}
}

// Create handles POST /v1/routes
func (h *RouteHandler) Create(c *gin.Context) {
	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	route := &domain.Route{
		RouteID:      req.RouteID,
		DistanceKM:   req.DistanceKM,
		TrafficLevel: domain.TrafficLevel(req.TrafficLevel),
		BaseTimeMin:  req.BaseTimeMin,
	}
	if err := h.fleetService.CreateRoute(c.Request.Context(), route); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toRouteResponse(route))
}

// GetAll handles GET /v1/routes
func (h *RouteHandler) GetAll(c *gin.Context) {
	routes, err := h.fleetService.ListRoutes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RouteResponse, 0, len(routes))
	for _, r := range routes {
		response = append(response, toRouteResponse(r))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /v1/routes/:route_id
func (h *RouteHandler) Get(c *gin.Context) {
	routeID, ok := routeIDParam(c)
	if !ok {
		return
	}

	route, err := h.fleetService.GetRoute(c.Request.Context(), routeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRouteResponse(route))
}

// Update handles PUT /v1/routes/:route_id
func (h *RouteHandler) Update(c *gin.Context) {
	routeID, ok := routeIDParam(c)
	if !ok {
		return
	}

	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	route := &domain.Route{
		RouteID:      routeID,
		DistanceKM:   req.DistanceKM,
		TrafficLevel: domain.TrafficLevel(req.TrafficLevel),
		BaseTimeMin:  req.BaseTimeMin,
	}
	if err := h.fleetService.UpdateRoute(c.Request.Context(), route); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRouteResponse(route))
}

// Delete handles DELETE /v1/routes/:route_id
func (h *RouteHandler) Delete(c *gin.Context) {
	routeID, ok := routeIDParam(c)
	if !ok {
		return
	}

	if err := h.fleetService.DeleteRoute(c.Request.Context(), routeID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func routeIDParam(c *gin.Context) (int, bool) {
	routeID, err := strconv.Atoi(c.Param("route_id"))
	if err != nil || routeID <= 0 {
		respondError(c, service.ErrInvalidRouteID)
		return 0, false
	}
	return routeID, true
}
