package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input validation errors
	ErrInsufficientData  = errors.New("insufficient data for analysis")
	ErrNonFinite         = errors.New("non-finite value")
	ErrZeroVariance      = errors.New("sample has zero variance")
	ErrConfidenceLevel   = errors.New("confidence level must be in (0, 1)")
	ErrDegreesOfFreedom  = errors.New("degrees of freedom must be >= 1")
	ErrUnsupportedFormat = errors.New("unsupported report format")
)

// NewValidationError describes why a named input was rejected.
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// IsInputError reports whether err carries one of the input validation sentinels.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrNonFinite) ||
		errors.Is(err, ErrZeroVariance) ||
		errors.Is(err, ErrConfidenceLevel) ||
		errors.Is(err, ErrDegreesOfFreedom) ||
		errors.Is(err, ErrUnsupportedFormat)
}
