package library

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msalah0e/tourney/internal/block"
	"github.com/msalah0e/tourney/internal/graph"
)

// setupTestLibrary creates a temporary catalogue for testing
func setupTestLibrary(t *testing.T) *Library {
	t.Helper()
	lib, err := Open(filepath.Join(t.TempDir(), "nested", "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { lib.Close() })
	return lib
}

func sampleStore(t *testing.T) *graph.Store {
	t.Helper()
	s := graph.New("Spring Open")
	a := s.AddBlock(block.Group, graph.Position{X: 10, Y: 10}, "Pools")
	b := s.AddBlock(block.DoubleElimination, graph.Position{X: 300, Y: 10}, "")
	_, err := s.AddConnection(a.ID, b.ID)
	require.NoError(t, err)
	return s
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	lib := setupTestLibrary(t)
	src := sampleStore(t)

	require.NoError(t, lib.Save(ctx, "", src))

	dst := graph.New("scratch")
	rep, err := lib.Load(ctx, "Spring Open", dst)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Blocks)
	assert.Equal(t, 1, rep.Connections)
	assert.Equal(t, "Spring Open", dst.Name())
	assert.Equal(t, src.Blocks(), dst.Blocks())
	assert.Equal(t, src.Connections(), dst.Connections())
}

func TestSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	lib := setupTestLibrary(t)
	s := sampleStore(t)

	require.NoError(t, lib.Save(ctx, "v1", s))
	s.AddBlock(block.Ladder, graph.Position{}, "")
	require.NoError(t, lib.Save(ctx, "v1", s))

	entries, err := lib.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 3, entries[0].Blocks)
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	lib := setupTestLibrary(t)
	s := sampleStore(t)

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"older", "newer"} {
		at := base.Add(time.Duration(i) * time.Hour)
		lib.now = func() time.Time { return at }
		require.NoError(t, lib.Save(ctx, name, s))
	}

	entries, err := lib.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "newer", entries[0].Name)
	assert.Equal(t, "older", entries[1].Name)
	assert.Equal(t, 2, entries[0].Blocks)
	assert.Equal(t, 1, entries[0].Connections)
	assert.True(t, entries[0].SavedAt.Equal(base.Add(time.Hour)))
}

func TestMissingDesign(t *testing.T) {
	ctx := context.Background()
	lib := setupTestLibrary(t)
	s := sampleStore(t)

	_, err := lib.Load(ctx, "ghost", s)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, s.Blocks(), 2, "failed load must leave the store alone")

	assert.ErrorIs(t, lib.Delete(ctx, "ghost"), ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	lib := setupTestLibrary(t)
	require.NoError(t, lib.Save(ctx, "gone", sampleStore(t)))
	require.NoError(t, lib.Delete(ctx, "gone"))

	entries, err := lib.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
