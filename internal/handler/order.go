package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"greencart/internal/domain"
	"greencart/internal/service"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	fleetService *service.FleetService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(fleetService *service.FleetService) *OrderHandler {
	return &OrderHandler{fleetService: fleetService}
}

// OrderRequest is the HTTP request body for creating or updating an order.
// OrderID is ignored on update.
type OrderRequest struct {
	OrderID      string  `json:"order_id"`
	ValueRs      float64 `json:"value_rs"`
	RouteID      int     `json:"route_id"`
	DeliveryTime string  `json:"delivery_time"`
}

// OrderResponse is the HTTP response for order data.
type OrderResponse struct {
	OrderID      string  `json:"order_id"`
	ValueRs      float64 `json:"value_rs"`
	RouteID      int     `json:"route_id"`
	DeliveryTime string  `json:"delivery_time"`
}

func toOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		OrderID:      o.OrderID,
		ValueRs:      o.ValueRs,
		RouteID:      o.RouteID,
		DeliveryTime: o.DeliveryTime,
	}
}

// Create handles POST /v1/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	order := &domain.Order{
		OrderID:      req.OrderID,
		ValueRs:      req.ValueRs,
		RouteID:      req.RouteID,
		DeliveryTime: req.DeliveryTime,
	}
	if err := h.fleetService.CreateOrder(c.Request.Context(), order); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toOrderResponse(order))
}

// GetAll handles GET /v1/orders
func (h *OrderHandler) GetAll(c *gin.Context) {
	orders, err := h.fleetService.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /v1/orders/:order_id
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.fleetService.GetOrder(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Update handles PUT /v1/orders/:order_id
func (h *OrderHandler) Update(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	order := &domain.Order{
		OrderID:      c.Param("order_id"),
		ValueRs:      req.ValueRs,
		RouteID:      req.RouteID,
		DeliveryTime: req.DeliveryTime,
	}
	if err := h.fleetService.UpdateOrder(c.Request.Context(), order); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Delete handles DELETE /v1/orders/:order_id
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.fleetService.DeleteOrder(c.Request.Context(), c.Param("order_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
