package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"fleetroute/config"
	"fleetroute/internal/domain/entity"
	logs "fleetroute/internal/infra/log"
	"fleetroute/internal/infra/routing/fleet"
	"fleetroute/internal/infra/routing/loader"
	"fleetroute/internal/usecase"
	"fleetroute/internal/usecase/impl"
	"fleetroute/internal/util"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	formatJSON    = "json"
	formatGeoJSON = "geojson"
)

type planOptions struct {
	*rootOptions

	input          string
	vehicles       int
	metric         string
	format         string
	skipIncomplete bool
}

// planOutput is the JSON document written for --format json
type planOutput struct {
	Routes     map[string][][2]float64 `json:"routes"`
	Vehicles   []entity.RouteSummary   `json:"vehicles"`
	Iterations int                     `json:"iterations"`
	Converged  bool                    `json:"converged"`
}

func newPlanCmd(root *rootOptions) *cobra.Command {
	opts := &planOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan closed vehicle routes for the stops in a CSV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "", "CSV file with a header row and lat/long or location columns")
	flags.IntVarP(&opts.vehicles, "vehicles", "n", 0, "number of vehicles (defaults to routing.defaultVehicles)")
	flags.StringVar(&opts.metric, "metric", "", "distance metric: planar or haversine (defaults to routing.metric)")
	flags.StringVarP(&opts.format, "format", "f", formatJSON, "output format: json or geojson")
	flags.BoolVar(&opts.skipIncomplete, "skip-incomplete", false, "drop rows with a missing coordinate")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (o *planOptions) run(cmd *cobra.Command) error {
	if o.format != formatJSON && o.format != formatGeoJSON {
		return errors.Errorf("unsupported format %q, want %s or %s", o.format, formatJSON, formatGeoJSON)
	}

	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	if o.metric != "" {
		cfg.Routing.Metric = o.metric
	}

	logger, err := logs.NewWithWriter(cfg, cmd.ErrOrStderr())
	if err != nil {
		return errors.Wrap(err, "create logger")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := o.plan(ctx, cmd, cfg, logger)
	if err != nil {
		return err
	}

	for _, summary := range result.Vehicles {
		logger.Info("Vehicle route",
			slog.Int("vehicle", summary.Vehicle),
			slog.Int("stops", summary.Stops),
			slog.Float64("distance_km", summary.DistanceKm),
		)
	}
	logger.Info("Plan complete",
		slog.Int("vehicles", len(result.Vehicles)),
		slog.Int("stops", result.StopCount),
		slog.String("elapsed", util.FormatDuration(result.Duration)),
	)

	return writePlan(cmd.OutOrStdout(), o.format, result)
}

func (o *planOptions) plan(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) (*usecase.PlanRoutesResult, error) {
	dataset, err := loader.NewCSVLoader(loader.Options{SkipIncomplete: o.skipIncomplete}).LoadFile(o.input)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", o.input)
	}

	meta, err := loader.DescribeFile(o.input, dataset)
	if err != nil {
		return nil, err
	}
	attrs := make([]any, 0, len(meta.Summary()))
	for key, value := range meta.Summary() {
		attrs = append(attrs, slog.Any(key, value))
	}
	logger.Info("Loaded stops", attrs...)

	planner, err := impl.NewRoutePlanningService(impl.RoutePlanningServiceParams{
		Config: cfg.Routing,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	input := &usecase.PlanRoutesInput{Locations: dataset.Locations}
	if cmd.Flags().Changed("vehicles") {
		vehicles := o.vehicles
		input.Vehicles = &vehicles
	}

	return planner.PlanRoutes(ctx, input)
}

func writePlan(w io.Writer, format string, result *usecase.PlanRoutesResult) error {
	if format == formatGeoJSON {
		body, err := fleet.FeatureCollection(result.Routes).MarshalJSON()
		if err != nil {
			return errors.Wrap(err, "encode geojson")
		}
		_, err = w.Write(append(body, '\n'))

		return errors.WithStack(err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return errors.WithStack(encoder.Encode(planOutput{
		Routes:     result.Routes.Coordinates(),
		Vehicles:   result.Vehicles,
		Iterations: result.Iterations,
		Converged:  result.Converged,
	}))
}
