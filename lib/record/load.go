package record

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// document is the on-disk shape of a data file: {"employee": [...]}
type document struct {
	Employee Batch `json:"employee" yaml:"employee"`
}

// LoadFile reads a batch from a JSON or YAML data file.
// The format is chosen by file extension (.yaml/.yml, everything else is JSON).
func LoadFile(path string) (Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	var doc document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse data file %s: %w", path, err)
	}

	if doc.Employee == nil {
		return Batch{}, nil
	}
	return doc.Employee, nil
}
