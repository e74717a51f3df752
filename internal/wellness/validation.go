package wellness

import (
	"errors"
	"fmt"
)

// Accepted input ranges. Values outside are rejected, never clamped.
const (
	MinHeightCm  = 80
	MaxHeightCm  = 250
	MinWeightKg  = 20
	MaxWeightKg  = 250
	MinRestingHR = 30
	MaxRestingHR = 120

	// Per entry.
	MaxWaterMl         = 10000
	MaxActivityMinutes = 1440
)

// ErrCorruptRecord is returned when a stored document does not match its schema.
var ErrCorruptRecord = errors.New("corrupt record")

// ValidationError reports a single rejected input field.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func checkRange(field string, v *float64, min, max float64, unit string) error {
	if v == nil {
		return nil
	}
	if *v < min || *v > max {
		return invalid(field, fmt.Sprintf("must be between %g and %g %s", min, max, unit))
	}
	return nil
}
