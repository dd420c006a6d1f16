package artifact

import (
	"fmt"

	"github.com/puzpuzpuz/xsync/v3"
)

// NewMemoryStore creates a store that keeps all artifacts in memory.
// Nothing survives Close.
func NewMemoryStore(runID string) IStore {
	return &memStoreImpl{run: runID, data: xsync.NewMapOf[string, []byte]()}
}

// memStoreImpl implements the IStore interface with a concurrent map
type memStoreImpl struct {
	run  string
	data *xsync.MapOf[string, []byte]
}

// --------------------------------------------------------------------------
// Interface Methods (docu see artifact.IStore)
// --------------------------------------------------------------------------

func (s *memStoreImpl) Run() string {
	return s.run
}

func (s *memStoreImpl) Put(name string, data []byte) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	s.data.Store(name, append([]byte(nil), data...))
	return "mem:" + s.run + "/" + name, nil
}

func (s *memStoreImpl) Get(name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	data, ok := s.data.Load(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return append([]byte(nil), data...), nil
}

func (s *memStoreImpl) Close() error {
	s.data.Clear()
	return nil
}
