package bench

import (
	"fmt"
	"strings"
)

const (
	DefaultIterations = 1000
	DefaultRounds     = 1
)

// Config holds the settings of a benchmark run
type Config struct {
	// Iterations is the number of encode (and decode) calls per timed measurement
	Iterations int
	// Rounds is the number of times each measurement is repeated
	Rounds int
}

// DefaultConfig returns the default benchmark settings
func DefaultConfig() Config {
	return Config{Iterations: DefaultIterations, Rounds: DefaultRounds}
}

// Validate checks that all counts are positive
func (c Config) Validate() error {
	if c.Iterations < 1 {
		return fmt.Errorf("%w: iterations must be at least 1, got %d", ErrInvalidParameter, c.Iterations)
	}
	if c.Rounds < 1 {
		return fmt.Errorf("%w: rounds must be at least 1, got %d", ErrInvalidParameter, c.Rounds)
	}
	return nil
}

func (c Config) String() string {
	var sb strings.Builder
	sb.WriteString("Benchmark Configuration:\n")
	sb.WriteString(fmt.Sprintf("  %-12s %d\n", "Iterations:", c.Iterations))
	sb.WriteString(fmt.Sprintf("  %-12s %d\n", "Rounds:", c.Rounds))
	return sb.String()
}
