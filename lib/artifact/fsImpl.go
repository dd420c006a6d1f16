package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// NewFSStore creates a store that writes each artifact as a file to <dir>/<runID>/<name>
func NewFSStore(dir, runID string) (IStore, error) {
	if err := checkName(runID); err != nil {
		return nil, err
	}
	root := filepath.Join(dir, runID)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	Logger.Debugf("writing artifacts to %s", root)
	return &fsStoreImpl{run: runID, root: root}, nil
}

// fsStoreImpl implements the IStore interface on top of the local filesystem
type fsStoreImpl struct {
	run  string
	root string
}

// --------------------------------------------------------------------------
// Interface Methods (docu see artifact.IStore)
// --------------------------------------------------------------------------

func (s *fsStoreImpl) Run() string {
	return s.run
}

func (s *fsStoreImpl) Put(name string, data []byte) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	path := filepath.Join(s.root, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact %s: %w", name, err)
	}
	Logger.Debugf("stored %s (%d bytes)", path, len(data))
	return path, nil
}

func (s *fsStoreImpl) Get(name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.root, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", name, err)
	}
	return data, nil
}

func (s *fsStoreImpl) Close() error {
	return nil
}
