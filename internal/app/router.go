package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"greencart/internal/domain"
	"greencart/internal/handler"
	"greencart/internal/metrics"
	"greencart/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler       *handler.AuthHandler
	DriverHandler     *handler.DriverHandler
	RouteHandler      *handler.RouteHandler
	OrderHandler      *handler.OrderHandler
	SimulationHandler *handler.SimulationHandler
	DashboardHandler  *handler.DashboardHandler
	SeedHandler       *handler.SeedHandler
	TokenVerifier     middleware.TokenVerifier
	RateLimiter       *middleware.RateLimiter
	RedisClient       *redis.Client
	NewRelicApp       *newrelic.Application
	Logger            *logrus.Logger
	CORSOrigin        string
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(deps.CORSOrigin))

	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	metrics.Register()
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/v1")
	if deps.RateLimiter != nil {
		v1.Use(middleware.RateLimitMiddleware(deps.RateLimiter))
	}

	v1.POST("/auth/login", deps.AuthHandler.Login)

	api := v1.Group("")
	api.Use(middleware.Authenticate(deps.TokenVerifier))
	api.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
	adminOnly := middleware.RequireRole(domain.UserRoleAdmin)
	{
		drivers := api.Group("/drivers")
		{
			drivers.POST("", deps.DriverHandler.Create)
			drivers.GET("", deps.DriverHandler.GetAll)
			drivers.GET("/:id", deps.DriverHandler.Get)
			drivers.PUT("/:id", deps.DriverHandler.Update)
			drivers.DELETE("/:id", adminOnly, deps.DriverHandler.Delete)
		}

		routes := api.Group("/routes")
		{
			routes.POST("", deps.RouteHandler.Create)
			routes.GET("", deps.RouteHandler.GetAll)
			routes.GET("/:route_id", deps.RouteHandler.Get)
			routes.PUT("/:route_id", deps.RouteHandler.Update)
			routes.DELETE("/:route_id", adminOnly, deps.RouteHandler.Delete)
		}

		orders := api.Group("/orders")
		{
			orders.POST("", deps.OrderHandler.Create)
			orders.GET("", deps.OrderHandler.GetAll)
			orders.GET("/:order_id", deps.OrderHandler.Get)
			orders.PUT("/:order_id", deps.OrderHandler.Update)
			orders.DELETE("/:order_id", adminOnly, deps.OrderHandler.Delete)
		}

		simulations := api.Group("/simulations")
		{
			simulations.POST("", deps.SimulationHandler.Run)
			simulations.GET("", deps.SimulationHandler.History)
			simulations.GET("/stream", deps.SimulationHandler.Stream)
			simulations.GET("/:id", deps.SimulationHandler.Get)
		}

		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("/kpis", deps.DashboardHandler.KPIs)
			dashboard.GET("/trend", deps.DashboardHandler.Trend)
		}

		api.POST("/seed", adminOnly, deps.SeedHandler.Seed)
	}

	return router
}
