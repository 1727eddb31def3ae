// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"fleetroute/config"
	"fleetroute/internal/delivery/http/router/handler"
	"fleetroute/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	Config       *config.Config
	RouteHandler *handler.RouteHandler
	Registry     *prometheus.Registry `optional:"true"`
}

// router holds all the handlers that need to be registered.
type router struct {
	cfg          *config.Config
	routeHandler *handler.RouteHandler
	registry     *prometheus.Registry
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cfg:          params.Config,
		routeHandler: params.RouteHandler,
		registry:     params.Registry,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Route optimization
	routeGroup := e.Group("/optimize-routes")
	{
		routeGroup.POST("", r.routeHandler.OptimizeRoutes)
		routeGroup.POST("/geojson", r.routeHandler.OptimizeRoutesGeoJSON)
	}

	// Prometheus exposition
	if r.registry != nil && r.cfg.Metrics != nil && r.cfg.Metrics.Enabled {
		e.GET(r.cfg.Metrics.Path, echo.WrapHandler(metrics.Handler(r.registry)))
	}
}
