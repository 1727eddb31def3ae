package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "fleetroute/internal/delivery/context"
	"fleetroute/internal/delivery/http/response"
	"fleetroute/internal/domain/entity"
	domainerrors "fleetroute/internal/domain/errors"
	"fleetroute/internal/infra/routing/fleet"
	"fleetroute/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const mimeGeoJSON = "application/geo+json"

// RouteHandlerParams holds dependencies for RouteHandler, injected by Fx.
type RouteHandlerParams struct {
	fx.In

	RoutePlanningUC usecase.RoutePlanningUsecase
	Logger          *slog.Logger
}

// RouteHandler serves the route optimization endpoints
type RouteHandler struct {
	routePlanningUC usecase.RoutePlanningUsecase
	logger          *slog.Logger
}

// NewRouteHandler is the constructor for RouteHandler
func NewRouteHandler(params RouteHandlerParams) *RouteHandler {
	return &RouteHandler{
		routePlanningUC: params.RoutePlanningUC,
		logger:          params.Logger,
	}
}

// LocationRequest is one stop in an optimize request
type LocationRequest struct {
	Lat  *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Long *float64 `json:"long" validate:"required,min=-180,max=180"`
}

// OptimizeRoutesRequest represents the request body for route optimization
type OptimizeRoutesRequest struct {
	Locations []LocationRequest `json:"locations" validate:"dive"`
	NVehicles *int              `json:"n_vehicles" validate:"omitempty,min=1"`
}

// OptimizeRoutesResponse is the data payload of a successful optimization
type OptimizeRoutesResponse struct {
	Routes     map[string][][2]float64 `json:"routes"`
	Vehicles   []entity.RouteSummary   `json:"vehicles"`
	Iterations int                     `json:"iterations"`
	Converged  bool                    `json:"converged"`
}

// OptimizeRoutes handles POST /optimize-routes
func (h *RouteHandler) OptimizeRoutes(c echo.Context) error {
	result, err := h.planRoutes(c)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, OptimizeRoutesResponse{
		Routes:     result.Routes.Coordinates(),
		Vehicles:   result.Vehicles,
		Iterations: result.Iterations,
		Converged:  result.Converged,
	}, "Routes optimized successfully")
}

// OptimizeRoutesGeoJSON handles POST /optimize-routes/geojson
func (h *RouteHandler) OptimizeRoutesGeoJSON(c echo.Context) error {
	result, err := h.planRoutes(c)
	if err != nil {
		return h.handleAppError(c, err)
	}

	body, err := fleet.FeatureCollection(result.Routes).MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "encode geojson")
	}

	return c.Blob(http.StatusOK, mimeGeoJSON, body)
}

func (h *RouteHandler) planRoutes(c echo.Context) (*usecase.PlanRoutesResult, error) {
	var req OptimizeRoutesRequest
	if err := c.Bind(&req); err != nil {
		return nil, domainerrors.ErrInvalidInput.WithDetails(err.Error())
	}

	if len(req.Locations) == 0 {
		return nil, domainerrors.NewValidationError(domainerrors.CodeNoLocations, "locations", "no locations provided")
	}

	if err := c.Validate(&req); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	input := &usecase.PlanRoutesInput{
		Locations: make([]entity.RawLocation, len(req.Locations)),
		Vehicles:  req.NVehicles,
	}
	for i, loc := range req.Locations {
		input.Locations[i] = entity.RawLocation{Lat: loc.Lat, Long: loc.Long}
	}

	deliverycontext.RequestLogger(c, h.logger).Debug("Planning routes",
		slog.Int("locations", len(input.Locations)),
	)

	return h.routePlanningUC.PlanRoutes(c.Request().Context(), input)
}

// handleAppError converts an AppError to a response, otherwise returns the error for the error middleware to handle
func (h *RouteHandler) handleAppError(c echo.Context, err error) error {
	if appErr, ok := domainerrors.AsAppError(err); ok && appErr.HTTPCode() < http.StatusInternalServerError {
		return response.AppError(c, appErr)
	}

	return errors.WithStack(err)
}
