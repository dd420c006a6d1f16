package artifact

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/segmentio/ksuid"
)

// Logger is the logger used by all artifact stores
var Logger = logger.GetLogger("artifact")

var (
	// ErrNotFound is returned by Get if no artifact with the given name was stored
	ErrNotFound = errors.New("artifact not found")
	// ErrInvalidName is returned for names that are empty or contain path elements
	ErrInvalidName = errors.New("invalid artifact name")
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IStore persists the artifacts of one benchmark run.
// Artifacts are addressed by a plain name (e.g. "data.json") within the run.
type IStore interface {
	// Run returns the id of the run this store writes to
	Run() string
	// Put stores the data under the given name, replacing any previous value.
	// It returns a human-readable location of the stored artifact.
	Put(name string, data []byte) (location string, err error)
	// Get returns a copy of the data stored under the given name
	Get(name string) (data []byte, err error)
	// Close releases all resources held by the store
	Close() error
}

// NewRunID returns a new, time-ordered run id
func NewRunID() string {
	return ksuid.New().String()
}

// checkName rejects names that could escape the run namespace
func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
