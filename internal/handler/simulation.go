package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"greencart/internal/domain"
	"greencart/internal/engine"
	"greencart/internal/redis"
	"greencart/internal/service"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

// SimulationHandler handles HTTP requests for simulations.
type SimulationHandler struct {
	simulationService *service.SimulationService
	subscriber        redis.EventSubscriberInterface
}

// NewSimulationHandler creates a new SimulationHandler. subscriber may be nil,
// which disables the live stream.
func NewSimulationHandler(simulationService *service.SimulationService, subscriber redis.EventSubscriberInterface) *SimulationHandler {
	return &SimulationHandler{
		simulationService: simulationService,
		subscriber:        subscriber,
	}
}

// RunSimulationRequest is the HTTP request body for running a simulation.
type RunSimulationRequest struct {
	AvailableDrivers  int     `json:"available_drivers"`
	StartTime         string  `json:"start_time"`
	MaxHoursPerDriver float64 `json:"max_hours_per_driver"`
}

// SimulationResponse is the HTTP response for a stored simulation.
type SimulationResponse struct {
	ID              string                  `json:"id"`
	Inputs          domain.SimulationInputs `json:"inputs"`
	Results         domain.KPIResult        `json:"results"`
	AllocatedOrders int                     `json:"allocated_orders"`
	SkippedOrders   int                     `json:"skipped_orders"`
	CreatedAt       string                  `json:"created_at"`
}

// RunSimulationResponse is the HTTP response for a completed run.
type RunSimulationResponse struct {
	SimulationResponse
	Orders      []domain.OrderScore `json:"orders"`
	DriverLoads []engine.DriverLoad `json:"driver_loads"`
}

func toSimulationResponse(sim *domain.Simulation) SimulationResponse {
	return SimulationResponse{
		ID:              sim.ID,
		Inputs:          sim.Inputs,
		Results:         sim.Results,
		AllocatedOrders: sim.AllocatedOrders,
		SkippedOrders:   sim.SkippedOrders,
		CreatedAt:       sim.CreatedAt.Format(time.RFC3339),
	}
}

// Run handles POST /v1/simulations
func (h *SimulationHandler) Run(c *gin.Context) {
	var req RunSimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	report, err := h.simulationService.Run(c.Request.Context(), domain.SimulationInputs{
		AvailableDrivers:  req.AvailableDrivers,
		StartTime:         req.StartTime,
		MaxHoursPerDriver: req.MaxHoursPerDriver,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, RunSimulationResponse{
		SimulationResponse: toSimulationResponse(report.Simulation),
		Orders:             report.Scores,
		DriverLoads:        report.DriverLoads,
	})
}

// History handles GET /v1/simulations
func (h *SimulationHandler) History(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		respondBadRequest(c, "limit must be a positive integer")
		return
	}

	sims, err := h.simulationService.History(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]SimulationResponse, 0, len(sims))
	for _, sim := range sims {
		response = append(response, toSimulationResponse(sim))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /v1/simulations/:id
func (h *SimulationHandler) Get(c *gin.Context) {
	sim, err := h.simulationService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSimulationResponse(sim))
}

// Stream handles GET /v1/simulations/stream, pushing each completed run to
// the client as a JSON text message.
func (h *SimulationHandler) Stream(c *gin.Context) {
	if h.subscriber == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "live updates are not available"})
		return
	}

	sub, err := h.subscriber.Subscribe(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	defer sub.Close()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// The upgrader has already replied.
		return
	}
	defer conn.Close()

	// Clients send nothing but control frames; reading is only needed to
	// process pongs and notice the close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case evt, ok := <-sub.Events():
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(evt); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
