package valuation

import (
	"errors"
	"fmt"
)

var (
	// ErrOracle covers transport failures, timeouts and responses without a
	// usable land rate.
	ErrOracle = errors.New("oracle failure")
	// ErrEstimationUnavailable is returned when the oracle failed and there
	// is no baseline to fall back on.
	ErrEstimationUnavailable = errors.New("estimation unavailable")
	ErrValidation            = errors.New("invalid valuation input")
	// ErrPersistence wraps background write failures. It is logged, never
	// returned from Estimate.
	ErrPersistence = errors.New("persistence failure")
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
