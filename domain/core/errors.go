package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Statistical degradation markers. Test routines never return these;
	// they flag the condition on the result and degrade to a neutral
	// no-evidence outcome. TestResult.DegradationCause maps the assumption
	// flags back onto them for callers that classify results in error space.
	ErrInsufficientSampleSize = errors.New("insufficient sample size")
	ErrDegenerateInput        = errors.New("degenerate input")

	// Infrastructure errors - these do propagate to callers
	ErrAnalysisCancelled = errors.New("analysis cancelled")
)

// Error constructors with context
func NewSampleSizeError(scope string, n int) error {
	return fmt.Errorf("%w: %s has %d observations", ErrInsufficientSampleSize, scope, n)
}

func NewDegenerateInputError(reason string) error {
	return fmt.Errorf("%w: %s", ErrDegenerateInput, reason)
}

// AnalysisCancelled wraps the cause of an abandoned slot wait.
func AnalysisCancelled(cause error) error {
	return fmt.Errorf("%w: %v", ErrAnalysisCancelled, cause)
}

// Error checking helpers
func IsInsufficientSample(err error) bool {
	return errors.Is(err, ErrInsufficientSampleSize)
}

func IsDegenerateInput(err error) bool {
	return errors.Is(err, ErrDegenerateInput)
}

func IsAnalysisCancelled(err error) bool {
	return errors.Is(err, ErrAnalysisCancelled)
}
