package persist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/msalah0e/tourney/internal/graph"
	"github.com/msalah0e/tourney/internal/log"
)

// ErrImportInProgress is returned when an import starts while another one
// on the same Bridge has not finished.
var ErrImportInProgress = errors.New("import already in progress")

// Bridge moves a store through files.
type Bridge struct {
	store        *graph.Store
	fallbackName string
	now          func() time.Time
	importing    atomic.Bool
}

// NewBridge wraps s. fallbackName names documents that carry none.
func NewBridge(s *graph.Store, fallbackName string) *Bridge {
	return &Bridge{store: s, fallbackName: fallbackName, now: time.Now}
}

// Export snapshots the store.
func (b *Bridge) Export() Document {
	return Export(b.store, b.now())
}

// Render encodes the store in format f.
func (b *Bridge) Render(f Format) ([]byte, error) {
	return Render(b.store, f, b.now())
}

// ExportFile writes the store to path in format f, creating parent
// directories as needed.
func (b *Bridge) ExportFile(path string, f Format) error {
	data, err := b.Render(f)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("export write: %w", err)
	}
	log.Debug(context.Background()).Str("path", path).Str("format", string(f)).Msg("persist: exported")
	return nil
}

// Import replaces the store with data. Only one import may run at a time.
func (b *Bridge) Import(data []byte, f Format) (Report, error) {
	if !b.importing.CompareAndSwap(false, true) {
		return Report{}, ErrImportInProgress
	}
	defer b.importing.Store(false)

	rep, err := Import(b.store, data, f, b.fallbackName)
	if err != nil {
		return Report{}, err
	}
	if rep.DroppedBlocks > 0 || rep.DroppedConnections > 0 {
		log.Info(context.Background()).
			Int("dropped_blocks", rep.DroppedBlocks).
			Int("dropped_connections", rep.DroppedConnections).
			Msg("persist: skipped malformed entries")
	}
	return rep, nil
}

// ImportFile reads path and imports it, picking the format from its
// extension.
func (b *Bridge) ImportFile(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("import read: %w", err)
	}
	return b.Import(data, FormatFromPath(path))
}
