package errors

import (
	"fleetroute/internal/errors"
)

// AsAppError extracts the first AppError in err's chain.
func AsAppError(err error) (AppError, bool) {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}

	return nil, false
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var validationErr *ValidationError

	return errors.As(err, &validationErr)
}

// IsComputation reports whether err carries a ComputationError.
func IsComputation(err error) bool {
	var computationErr *ComputationError

	return errors.As(err, &computationErr)
}
