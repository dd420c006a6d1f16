package artifact

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
)

// NewPebbleStore creates a store backed by a pebble database in dir.
// All runs share the database, artifacts are keyed by <runID>/<name>.
func NewPebbleStore(dir, runID string) (IStore, error) {
	if err := checkName(runID); err != nil {
		return nil, err
	}
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble store: %w", err)
	}
	Logger.Debugf("writing artifacts to pebble db %s", dir)
	return &pebbleStoreImpl{run: runID, dir: dir, db: db}, nil
}

// pebbleStoreImpl implements the IStore interface on top of a pebble database
type pebbleStoreImpl struct {
	run string
	dir string
	db  *pebble.DB
}

func (s *pebbleStoreImpl) key(name string) []byte {
	return []byte(s.run + "/" + name)
}

// --------------------------------------------------------------------------
// Interface Methods (docu see artifact.IStore)
// --------------------------------------------------------------------------

func (s *pebbleStoreImpl) Run() string {
	return s.run
}

func (s *pebbleStoreImpl) Put(name string, data []byte) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	if err := s.db.Set(s.key(name), data, pebble.Sync); err != nil {
		return "", fmt.Errorf("write artifact %s: %w", name, err)
	}
	location := fmt.Sprintf("pebble:%s#%s", s.dir, s.key(name))
	Logger.Debugf("stored %s (%d bytes)", location, len(data))
	return location, nil
}

func (s *pebbleStoreImpl) Get(name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	value, closer, err := s.db.Get(s.key(name))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", name, err)
	}
	defer closer.Close()

	// value is only valid until closer is closed
	data := make([]byte, len(value))
	copy(data, value)
	return data, nil
}

func (s *pebbleStoreImpl) Close() error {
	return s.db.Close()
}
