package activity

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJournal(t *testing.T) *Journal {
	t.Helper()
	j := Open(filepath.Join(t.TempDir(), "tourney", "activity.jsonl"))
	clock := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	j.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return j
}

func TestReadMissingJournal(t *testing.T) {
	entries, err := newJournal(t).Read(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRecordAndReadNewestFirst(t *testing.T) {
	j := newJournal(t)
	require.NoError(t, j.Record("add", "Cup", "Pools", "group"))
	require.NoError(t, j.Record("connect", "Cup", "Pools", "Pools -> Finals"))
	require.NoError(t, j.Record("rm", "Cup", "Finals", ""))

	entries, err := j.Read(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "rm", entries[0].Action)
	assert.Equal(t, "connect", entries[1].Action)
}

func TestReadSkipsGarbageLines(t *testing.T) {
	j := newJournal(t)
	require.NoError(t, j.Record("add", "Cup", "Pools", ""))
	f, err := os.OpenFile(j.Path(), os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("not json\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	entries, err := j.Read(0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSearchIgnoresCase(t *testing.T) {
	j := newJournal(t)
	require.NoError(t, j.Record("add", "Cup", "Pools", "group"))
	require.NoError(t, j.Record("set", "Cup", "Playoffs", "third_place=true"))

	hits, err := j.Search("THIRD", 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Playoffs", hits[0].Target)
}

func TestClear(t *testing.T) {
	j := newJournal(t)
	require.NoError(t, j.Clear())
	require.NoError(t, j.Record("add", "Cup", "Pools", ""))
	require.NoError(t, j.Clear())
	entries, err := j.Read(0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
