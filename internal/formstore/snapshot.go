package formstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/projectflow-dev/projectflow/internal/metrics"
)

// Snapshotter persists the whole store to a single JSON file. Writes go
// through a temp file and rename so a crash never leaves a half-written
// snapshot behind.
type Snapshotter struct {
	mu   sync.Mutex
	path string
}

type snapshotDoc struct {
	Version int    `json:"version"`
	Forms   []Form `json:"forms"`
}

// NewSnapshotter returns a snapshotter writing to path. The parent
// directory is created on first write.
func NewSnapshotter(path string) *Snapshotter {
	return &Snapshotter{path: path}
}

// Write serializes the given forms to the snapshot file.
func (sn *Snapshotter) Write(forms []Form) error {
	sn.mu.Lock()
	defer sn.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(sn.path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(snapshotDoc{Version: 1, Forms: forms}, "", "  ")
	if err != nil {
		return err
	}
	tmp := sn.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, sn.path); err != nil {
		return err
	}
	metrics.SnapshotWrites.Inc()
	return nil
}

// Load reads the snapshot file back. A missing file yields an empty form
// list, not an error.
func (sn *Snapshotter) Load() ([]Form, error) {
	sn.mu.Lock()
	defer sn.mu.Unlock()
	b, err := os.ReadFile(sn.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var doc snapshotDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc.Forms, nil
}

// Hydrate loads the snapshot at path into the store and attaches the
// snapshotter so later mutations are persisted back.
func Hydrate(s *Store, path string) error {
	sn := NewSnapshotter(path)
	forms, err := sn.Load()
	if err != nil {
		return err
	}
	for _, f := range forms {
		s.Put(f)
	}
	s.AttachSnapshotter(sn)
	return nil
}
