package middleware

import (
	"fmt"
	"log/slog"

	deliverycontext "fleetroute/internal/delivery/context"
	"fleetroute/internal/delivery/http/response"
	domainerrors "fleetroute/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	logger := deliverycontext.RequestLogger(c, m.logger)

	// Try to parse as AppError
	if appErr, ok := domainerrors.AsAppError(err); ok {
		if appErr.HTTPCode() >= 500 {
			logger.Error("Request failed", slog.Any("error", err))
		}
		_ = response.AppError(c, appErr)

		return
	}

	// Check if it's Echo's HTTPError
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := fmt.Sprint(httpErr.Message)
		_ = response.Error(c, httpErr.Code, "HTTP_ERROR", message, message)

		return
	}

	// Default to internal error, log error and return generic error
	logger.Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	_ = response.InternalServerError(c, domainerrors.ErrInternalServer.ErrorCode(), domainerrors.ErrInternalServer.Message())
}
