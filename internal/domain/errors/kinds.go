package errors

import (
	"fmt"
	"net/http"
)

// Validation error codes
const (
	CodeNoLocations         = "NO_LOCATIONS"
	CodeInvalidLocation     = "INVALID_LOCATION"
	CodeInvalidVehicleCount = "INVALID_VEHICLE_COUNT"
	CodeTooManyStops        = "TOO_MANY_STOPS"
	CodeValidationFailed    = "VALIDATION_FAILED"
)

// CodeComputationFailed is reported for every ComputationError.
const CodeComputationFailed = "COMPUTATION_FAILED"

const (
	messageNoLocations    = "No locations provided"
	messageInvalidRequest = "Invalid route request"
	messageComputation    = "Route computation failed"
)

// ValidationError reports input that can never produce a route plan.
// Field names the offending input, e.g. "locations[3].lat".
type ValidationError struct {
	Code   string
	Field  string
	Reason string
}

// NewValidationError creates a validation error. An empty code defaults to
// CodeValidationFailed.
func NewValidationError(code, field, reason string) *ValidationError {
	if code == "" {
		code = CodeValidationFailed
	}

	return &ValidationError{
		Code:   code,
		Field:  field,
		Reason: reason,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}

	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) HTTPCode() int {
	return http.StatusBadRequest
}

func (e *ValidationError) ErrorCode() string {
	return e.Code
}

func (e *ValidationError) Message() string {
	if e.Code == CodeNoLocations {
		return messageNoLocations
	}

	return messageInvalidRequest
}

func (e *ValidationError) Details() string {
	return e.Error()
}

// ComputationError reports an internal failure of the planning pipeline.
// Stage names the step that failed: "partition", "tour" or "assemble".
type ComputationError struct {
	Stage string
	Err   error
}

// NewComputationError wraps err as a failure of the given stage.
func NewComputationError(stage string, err error) *ComputationError {
	return &ComputationError{
		Stage: stage,
		Err:   err,
	}
}

// Error implements the error interface
func (e *ComputationError) Error() string {
	if e.Err == nil {
		return "computation failed in " + e.Stage
	}

	return fmt.Sprintf("computation failed in %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ComputationError) Unwrap() error {
	return e.Err
}

func (e *ComputationError) HTTPCode() int {
	return http.StatusInternalServerError
}

func (e *ComputationError) ErrorCode() string {
	return CodeComputationFailed
}

func (e *ComputationError) Message() string {
	return messageComputation
}

func (e *ComputationError) Details() string {
	return e.Error()
}
