// Package workspace keeps the CLI's current graph on disk between
// invocations as a JSON structure document.
package workspace

import (
	"errors"
	"fmt"
	"os"

	"github.com/msalah0e/tourney/internal/graph"
	"github.com/msalah0e/tourney/internal/persist"
)

// Workspace is a store bound to the file it was loaded from.
type Workspace struct {
	Path   string
	Store  *graph.Store
	Bridge *persist.Bridge
}

// Load reads the workspace at path. A missing file yields an empty graph
// named fallbackName.
func Load(path, fallbackName string) (*Workspace, error) {
	if fallbackName == "" {
		fallbackName = persist.DefaultName
	}
	s := graph.New(fallbackName)
	w := &Workspace{Path: path, Store: s, Bridge: persist.NewBridge(s, fallbackName)}

	if _, err := w.Bridge.ImportFile(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return w, nil
		}
		return nil, fmt.Errorf("workspace load: %w", err)
	}
	return w, nil
}

// Reload re-reads the file into the existing store.
func (w *Workspace) Reload() (persist.Report, error) {
	rep, err := w.Bridge.ImportFile(w.Path)
	if err != nil {
		return persist.Report{}, fmt.Errorf("workspace reload: %w", err)
	}
	return rep, nil
}

// Save writes the store back to its file.
func (w *Workspace) Save() error {
	if err := w.Bridge.ExportFile(w.Path, persist.JSON); err != nil {
		return fmt.Errorf("workspace save: %w", err)
	}
	return nil
}

// Reset replaces the graph with an empty one called name.
func (w *Workspace) Reset(name string) {
	if name == "" {
		name = persist.DefaultName
	}
	w.Store.ReplaceAll(name, nil, nil)
}
