package bench

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidParameter is returned for non-positive iteration or round counts
var ErrInvalidParameter = errors.New("invalid parameter")

// Measure runs op iterations times in sequence and returns the mean wall-clock latency.
// The clock is read once before the first call and once after the last call.
// An error returned by op aborts the measurement.
func Measure(op func() error, iterations int) (time.Duration, error) {
	if iterations < 1 {
		return 0, fmt.Errorf("%w: iterations must be at least 1, got %d", ErrInvalidParameter, iterations)
	}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		if err := op(); err != nil {
			return 0, fmt.Errorf("iteration %d: %w", i+1, err)
		}
	}
	elapsed := time.Since(start)

	return elapsed / time.Duration(iterations), nil
}

// MeasureResult is like Measure but also returns the value produced by the last call
func MeasureResult[T any](op func() (T, error), iterations int) (time.Duration, T, error) {
	var last T
	mean, err := Measure(func() error {
		v, err := op()
		if err != nil {
			return err
		}
		last = v
		return nil
	}, iterations)
	if err != nil {
		var zero T
		return 0, zero, err
	}
	return mean, last, nil
}
