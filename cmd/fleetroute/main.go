package main

import (
	"context"
	"log/slog"
	"os"

	"fleetroute/config"
	"fleetroute/internal/delivery"
	"fleetroute/internal/delivery/http"
	"fleetroute/internal/delivery/http/middleware"
	"fleetroute/internal/delivery/http/router/handler"
	logs "fleetroute/internal/infra/log"
	"fleetroute/internal/infra/metrics"
	"fleetroute/internal/infra/pubsub"
	"fleetroute/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			newRoutingConfig,
		),
		metrics.Module,
		pubsub.Module,
	)
}

// newRoutingConfig exposes the routing section to the planner
func newRoutingConfig(cfg *config.Config) *config.RoutingConfig {
	return cfg.Routing
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewRoutePlanningService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewRouteHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
