package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Documents reads the flat JSON files other processes drop into the data
// directory (channel stats, ROI ledger, status override). The dashboard
// never writes these; absence is an expected condition handled by callers
// with defaults.
type Documents struct {
	dir string
}

// New creates a document reader rooted at dir.
func New(dir string) *Documents {
	return &Documents{dir: dir}
}

// Load reads and unmarshals the named document into out.
func (d *Documents) Load(name string, out any) error {
	data, err := os.ReadFile(filepath.Join(d.dir, name))
	if err != nil {
		return fmt.Errorf("failed to read document %s: %w", name, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse document %s: %w", name, err)
	}

	return nil
}

// LoadMap reads the named document as a generic JSON object, for documents
// whose schema is not enforced by this process.
func (d *Documents) LoadMap(name string) (map[string]any, error) {
	var m map[string]any
	if err := d.Load(name, &m); err != nil {
		return nil, err
	}
	return m, nil
}
